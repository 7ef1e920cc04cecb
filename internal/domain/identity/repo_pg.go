package identity

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

const accountCols = `id, phone, email, username, avatar_url, invite_code, current_level_id, status`

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Account, error) {
	return scanAccount(r.pool.QueryRow(ctx, `SELECT `+accountCols+` FROM users WHERE id = $1`, id))
}

func (r *repoPG) Search(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Account, int, error) {
	if filter.Identifier != "" {
		var total int
		if err := r.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM users WHERE phone = $1 OR email = $1`, filter.Identifier).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err := r.pool.Query(ctx,
			`SELECT `+accountCols+` FROM users WHERE phone = $1 OR email = $1 ORDER BY id LIMIT $2 OFFSET $3`,
			filter.Identifier, limit, offset)
		if err != nil {
			return nil, 0, err
		}
		defer rows.Close()
		return collectAccounts(rows, total)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+accountCols+` FROM users ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectAccounts(rows, total)
}

func scanAccount(row pgx.Row) (*Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.Phone, &a.Email, &a.Username, &a.AvatarURL, &a.InviteCode, &a.CurrentLevelID, &a.Status)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectAccounts(rows pgx.Rows, total int) ([]*Account, int, error) {
	var accounts []*Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Phone, &a.Email, &a.Username, &a.AvatarURL, &a.InviteCode, &a.CurrentLevelID, &a.Status); err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, &a)
	}
	return accounts, total, rows.Err()
}
