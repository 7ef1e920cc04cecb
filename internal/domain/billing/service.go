package billing

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ichewm/MedicalBible-sub001/internal/platform/fhir"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetSubscription resolves a Coverage logical id to the caller's subscription.
func (s *Service) GetSubscription(ctx context.Context, resourceID string, callerID int64) (*Subscription, error) {
	id, err := fhir.DecodeCoverageID(resourceID)
	if err != nil {
		return nil, err
	}
	sub, err := s.repo.GetByIDForUser(ctx, id, callerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fhir.NewNotFound("Coverage", resourceID)
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// ListSubscriptions lists the caller's subscriptions newest first. Coverage
// has no subject search parameter; it is always caller scoped.
func (s *Service) ListSubscriptions(ctx context.Context, callerID int64, limit, offset int) ([]*Subscription, int, error) {
	return s.repo.ListByUser(ctx, callerID, limit, offset)
}

// ActiveLevelIDs exposes the user's currently covered certification levels
// for the lecture fan-out.
func (s *Service) ActiveLevelIDs(ctx context.Context, userID int64, now time.Time) ([]int64, error) {
	return s.repo.ActiveLevelIDs(ctx, userID, now)
}
