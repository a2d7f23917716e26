package repository

import (
	"context"
	"database/sql"
)

// UpvoteRepo handles upvotes.
type UpvoteRepo struct {
	db *sql.DB
}

func NewUpvoteRepo(db *sql.DB) *UpvoteRepo {
	return &UpvoteRepo{db: db}
}

// Add records an upvote; voting twice on one post is a no-op.
func (r *UpvoteRepo) Add(ctx context.Context, u Upvote) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO upvotes(id, post_id, username)
	VALUES (?, ?, ?)
	ON CONFLICT(post_id, username) DO NOTHING;
	`, u.ID, u.PostID, u.Username)
	return err
}

// ByPost returns the upvotes for a post, most recent first.
func (r *UpvoteRepo) ByPost(ctx context.Context, postID string) ([]Upvote, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, post_id, username, created_at
	FROM upvotes WHERE post_id = ?
	ORDER BY created_at DESC, username`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Upvote
	for rows.Next() {
		var u Upvote
		if err := rows.Scan(&u.ID, &u.PostID, &u.Username, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
