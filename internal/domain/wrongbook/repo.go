package wrongbook

import (
	"context"
)

// SearchFilter narrows an entry search to one user's wrong book.
type SearchFilter struct {
	UserID int64
}

type Repository interface {
	GetByIDForUser(ctx context.Context, id, userID int64) (*Entry, error)
	Search(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Entry, int, error)
}
