package wrongbook

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ichewm/MedicalBible-sub001/internal/platform/fhir"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetEntry resolves a Condition logical id to the caller's wrong-book entry.
func (s *Service) GetEntry(ctx context.Context, resourceID string, callerID int64) (*Entry, error) {
	id, err := fhir.DecodeConditionID(resourceID)
	if err != nil {
		return nil, err
	}
	entry, err := s.repo.GetByIDForUser(ctx, id, callerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fhir.NewNotFound("Condition", resourceID)
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) SearchEntries(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Entry, int, error) {
	return s.repo.Search(ctx, filter, limit, offset)
}
