package wrongbook

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const entryCols = `id, user_id, question_id, wrong_count, last_wrong_at, is_deleted`

func (r *repoPG) GetByIDForUser(ctx context.Context, id, userID int64) (*Entry, error) {
	return scanEntry(r.pool.QueryRow(ctx,
		`SELECT `+entryCols+` FROM wrong_book WHERE id = $1 AND user_id = $2`, id, userID))
}

// Search lists entries newest first. Soft-deleted rows are included; the
// deletion flag travels inside the Condition extension instead.
func (r *repoPG) Search(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Entry, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM wrong_book WHERE user_id = $1`, filter.UserID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+entryCols+` FROM wrong_book WHERE user_id = $1 ORDER BY last_wrong_at DESC LIMIT $2 OFFSET $3`,
		filter.UserID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectEntries(rows, total)
}

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.UserID, &e.QuestionID, &e.WrongCount, &e.LastWrongAt, &e.IsDeleted)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func collectEntries(rows pgx.Rows, total int) ([]*Entry, int, error) {
	var entries []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.QuestionID, &e.WrongCount, &e.LastWrongAt, &e.IsDeleted); err != nil {
			return nil, 0, err
		}
		entries = append(entries, &e)
	}
	return entries, total, rows.Err()
}
