package lectures

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

const lectureCols = `l.id, l.subject_id, l.title, l.file_url, l.page_count, l.sort_order,
	COALESCE(s.name, '') AS subject_name`

const lectureJoins = ` FROM lectures l
	LEFT JOIN subjects s ON s.id = l.subject_id`

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Document, error) {
	return scanDoc(r.pool.QueryRow(ctx,
		`SELECT `+lectureCols+lectureJoins+` WHERE l.id = $1`, id))
}

func (r *repoPG) ListByLevels(ctx context.Context, levelIDs []int64, limit, offset int) ([]*Document, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM lectures l JOIN subjects s ON s.id = l.subject_id WHERE s.level_id = ANY($1)`,
		levelIDs).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+lectureCols+` FROM lectures l
			JOIN subjects s ON s.id = l.subject_id
			WHERE s.level_id = ANY($1)
			ORDER BY l.sort_order ASC LIMIT $2 OFFSET $3`,
		levelIDs, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectDocs(rows, total)
}

func (r *repoPG) GetProgress(ctx context.Context, userID, lectureID int64) (*ReadingProgress, error) {
	var p ReadingProgress
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, lecture_id, last_page, last_read_at FROM reading_progress
			WHERE user_id = $1 AND lecture_id = $2`,
		userID, lectureID).Scan(&p.UserID, &p.LectureID, &p.LastPage, &p.LastReadAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanDoc(row pgx.Row) (*Document, error) {
	var d Document
	err := row.Scan(&d.ID, &d.SubjectID, &d.Title, &d.FileURL, &d.PageCount, &d.SortOrder, &d.SubjectName)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func collectDocs(rows pgx.Rows, total int) ([]*Document, int, error) {
	var docs []*Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.SubjectID, &d.Title, &d.FileURL, &d.PageCount, &d.SortOrder, &d.SubjectName); err != nil {
			return nil, 0, err
		}
		docs = append(docs, &d)
	}
	return docs, total, rows.Err()
}
