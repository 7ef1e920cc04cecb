package exams

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

// GetSessionAsObservation resolves an Observation logical id to the caller's
// session.
func (s *Service) GetSessionAsObservation(ctx context.Context, resourceID string, callerID int64) (*ExamSession, error) {
	sessionID, err := fhir.DecodeObservationID(resourceID)
	if err != nil {
		return nil, err
	}
	session, err := s.repo.GetByIDForUser(ctx, sessionID, callerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fhir.NewNotFound("Observation", resourceID)
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// GetSessionAsEncounter resolves an Encounter logical id (the session id
// verbatim) to the caller's session.
func (s *Service) GetSessionAsEncounter(ctx context.Context, resourceID string, callerID int64) (*ExamSession, error) {
	sessionID, err := fhir.DecodeEncounterID(resourceID)
	if err != nil {
		return nil, err
	}
	session, err := s.repo.GetByIDForUser(ctx, sessionID, callerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fhir.NewNotFound("Encounter", resourceID)
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// SearchSessions lists a user's sessions newest first.
func (s *Service) SearchSessions(ctx context.Context, filter SearchFilter, limit, offset int) ([]*ExamSession, int, error) {
	return s.repo.Search(ctx, filter, limit, offset)
}
