package repository

import (
	"context"
	"database/sql"
)

// ReportRepo handles post reports.
type ReportRepo struct {
	db *sql.DB
}

func NewReportRepo(db *sql.DB) *ReportRepo {
	return &ReportRepo{db: db}
}

func (r *ReportRepo) Insert(ctx context.Context, rep Report) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO reports(id, post_id, reason, comment)
	VALUES (?, ?, ?, ?);
	`, rep.ID, rep.PostID, rep.Reason, rep.Comment)
	return err
}

// ByPost returns the reports filed against a post, oldest first.
func (r *ReportRepo) ByPost(ctx context.Context, postID string) ([]Report, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, post_id, reason, comment, created_at
	FROM reports WHERE post_id = ?
	ORDER BY created_at, id`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Report
	for rows.Next() {
		var rep Report
		if err := rows.Scan(&rep.ID, &rep.PostID, &rep.Reason, &rep.Comment, &rep.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

// Count returns how many reports a post has accumulated.
func (r *ReportRepo) Count(ctx context.Context, postID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports WHERE post_id = ?`, postID).Scan(&n)
	return n, err
}
