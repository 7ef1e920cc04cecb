package identity

import (
	"context"
)

// SearchFilter narrows an account search. Identifier matches phone or email
// exactly; empty means no filter.
type SearchFilter struct {
	Identifier string
}

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Account, error)
	Search(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Account, int, error)
}
