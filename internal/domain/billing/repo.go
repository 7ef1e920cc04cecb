package billing

import (
	"context"
	"time"
)

type Repository interface {
	GetByIDForUser(ctx context.Context, id, userID int64) (*Subscription, error)
	// ListByUser returns all of a user's subscriptions, newest first.
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*Subscription, int, error)
	// ActiveLevelIDs returns the distinct level ids covered by the user's
	// non-expired subscriptions.
	ActiveLevelIDs(ctx context.Context, userID int64, now time.Time) ([]int64, error)
}
