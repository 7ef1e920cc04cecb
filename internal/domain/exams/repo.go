package exams

import (
	"context"
)

// SearchFilter narrows a session search to one user's sessions.
type SearchFilter struct {
	UserID int64
}

type Repository interface {
	// GetByIDForUser resolves a session by id scoped to its owner; a session
	// belonging to another user reads as absent.
	GetByIDForUser(ctx context.Context, sessionID string, userID int64) (*ExamSession, error)
	Search(ctx context.Context, filter SearchFilter, limit, offset int) ([]*ExamSession, int, error)
}
