package lectures

import (
	"context"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Document, error)
	// ListByLevels returns lectures in subjects belonging to the given
	// certification levels, ordered by sortOrder ascending.
	ListByLevels(ctx context.Context, levelIDs []int64, limit, offset int) ([]*Document, int, error)
	// GetProgress returns the user's bookmark in a lecture, or pgx.ErrNoRows
	// when none exists.
	GetProgress(ctx context.Context, userID, lectureID int64) (*ReadingProgress, error)
}
