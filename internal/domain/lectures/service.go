package lectures

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ichewm/MedicalBible-sub001/internal/platform/fhir"
)

// LevelSource reports which certification levels a user's active
// subscriptions currently cover. Satisfied by the billing service.
type LevelSource interface {
	ActiveLevelIDs(ctx context.Context, userID int64, now time.Time) ([]int64, error)
}

type Service struct {
	repo   Repository
	levels LevelSource
}

func NewService(repo Repository, levels LevelSource) *Service {
	return &Service{repo: repo, levels: levels}
}

// GetDocumentResource resolves a DocumentReference logical id and projects it
// for the caller, including their bookmark when one exists.
func (s *Service) GetDocumentResource(ctx context.Context, resourceID string, callerID int64) (map[string]interface{}, error) {
	id, err := fhir.DecodeDocumentReferenceID(resourceID)
	if err != nil {
		return nil, err
	}
	doc, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fhir.NewNotFound("DocumentReference", resourceID)
	}
	if err != nil {
		return nil, err
	}
	return s.project(ctx, doc, callerID)
}

// SearchDocumentResources fans out from the target user's active
// subscriptions to the lectures their levels cover. A user with no active
// subscription gets an empty, zero-total result without touching the
// lectures table.
func (s *Service) SearchDocumentResources(ctx context.Context, targetID int64, limit, offset int) ([]map[string]interface{}, int, error) {
	levelIDs, err := s.levels.ActiveLevelIDs(ctx, targetID, time.Now())
	if err != nil {
		return nil, 0, err
	}
	if len(levelIDs) == 0 {
		return []map[string]interface{}{}, 0, nil
	}

	docs, total, err := s.repo.ListByLevels(ctx, levelIDs, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	resources := make([]map[string]interface{}, len(docs))
	for i, doc := range docs {
		resource, err := s.project(ctx, doc, targetID)
		if err != nil {
			return nil, 0, err
		}
		resources[i] = resource
	}
	return resources, total, nil
}

func (s *Service) project(ctx context.Context, doc *Document, readerID int64) (map[string]interface{}, error) {
	resource := doc.ToFHIR(readerID)

	progress, err := s.repo.GetProgress(ctx, readerID, doc.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return resource, nil
	}
	if err != nil {
		return nil, err
	}
	AppendReadingProgress(resource, progress)
	return resource, nil
}
