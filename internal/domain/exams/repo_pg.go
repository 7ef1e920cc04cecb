package exams

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

// Paper and subject names degrade to empty strings when the join graph is
// partial, so a dangling paper_id never fails a session read.
const sessionCols = `s.id, s.user_id, s.paper_id, s.status, s.mode, s.score, s.start_at, s.submit_at, s.time_limit,
	COALESCE(p.name, '') AS paper_name, COALESCE(sub.name, '') AS subject_name`

const sessionJoins = ` FROM exam_sessions s
	LEFT JOIN papers p ON p.id = s.paper_id
	LEFT JOIN subjects sub ON sub.id = p.subject_id`

func (r *repoPG) GetByIDForUser(ctx context.Context, sessionID string, userID int64) (*ExamSession, error) {
	return scanSession(r.pool.QueryRow(ctx,
		`SELECT `+sessionCols+sessionJoins+` WHERE s.id = $1 AND s.user_id = $2`,
		sessionID, userID))
}

func (r *repoPG) Search(ctx context.Context, filter SearchFilter, limit, offset int) ([]*ExamSession, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM exam_sessions WHERE user_id = $1`, filter.UserID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+sessionCols+sessionJoins+` WHERE s.user_id = $1 ORDER BY s.start_at DESC LIMIT $2 OFFSET $3`,
		filter.UserID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectSessions(rows, total)
}

func scanSession(row pgx.Row) (*ExamSession, error) {
	var s ExamSession
	err := row.Scan(&s.ID, &s.UserID, &s.PaperID, &s.Status, &s.Mode, &s.Score,
		&s.StartAt, &s.SubmitAt, &s.TimeLimit, &s.PaperName, &s.SubjectName)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func collectSessions(rows pgx.Rows, total int) ([]*ExamSession, int, error) {
	var sessions []*ExamSession
	for rows.Next() {
		var s ExamSession
		if err := rows.Scan(&s.ID, &s.UserID, &s.PaperID, &s.Status, &s.Mode, &s.Score,
			&s.StartAt, &s.SubmitAt, &s.TimeLimit, &s.PaperName, &s.SubjectName); err != nil {
			return nil, 0, err
		}
		sessions = append(sessions, &s)
	}
	return sessions, total, rows.Err()
}
