package billing

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const subCols = `id, user_id, level_id, start_at, expire_at`

func (r *repoPG) GetByIDForUser(ctx context.Context, id, userID int64) (*Subscription, error) {
	return scanSub(r.pool.QueryRow(ctx,
		`SELECT `+subCols+` FROM subscriptions WHERE id = $1 AND user_id = $2`, id, userID))
}

func (r *repoPG) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*Subscription, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM subscriptions WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+subCols+` FROM subscriptions WHERE user_id = $1 ORDER BY start_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectSubs(rows, total)
}

func (r *repoPG) ActiveLevelIDs(ctx context.Context, userID int64, now time.Time) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT level_id FROM subscriptions WHERE user_id = $1 AND expire_at > $2`,
		userID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		levels = append(levels, id)
	}
	return levels, rows.Err()
}

func scanSub(row pgx.Row) (*Subscription, error) {
	var s Subscription
	err := row.Scan(&s.ID, &s.UserID, &s.LevelID, &s.StartAt, &s.ExpireAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func collectSubs(rows pgx.Rows, total int) ([]*Subscription, int, error) {
	var subs []*Subscription
	for rows.Next() {
		var s Subscription
		if err := rows.Scan(&s.ID, &s.UserID, &s.LevelID, &s.StartAt, &s.ExpireAt); err != nil {
			return nil, 0, err
		}
		subs = append(subs, &s)
	}
	return subs, total, rows.Err()
}
