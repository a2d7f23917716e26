package repository

import (
	"context"
	"database/sql"
)

// PostRepo handles posts.
type PostRepo struct {
	db *sql.DB
}

func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{db: db}
}

func (r *PostRepo) Upsert(ctx context.Context, p Post) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO posts(id, squad_id, title, author, url)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 squad_id=excluded.squad_id,
	 title=excluded.title,
	 author=excluded.author,
	 url=excluded.url;
	`, p.ID, p.SquadID, p.Title, p.Author, p.URL)
	return err
}

// List returns posts newest first, each carrying its upvote count.
func (r *PostRepo) List(ctx context.Context) ([]Post, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT p.id, p.squad_id, p.title, p.author, p.url, p.created_at,
	       (SELECT COUNT(*) FROM upvotes u WHERE u.post_id = p.id) AS upvotes
	FROM posts p
	ORDER BY p.created_at DESC, p.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.SquadID, &p.Title, &p.Author, &p.URL, &p.CreatedAt, &p.Upvotes); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostRepo) Get(ctx context.Context, id string) (*Post, error) {
	var p Post
	err := r.db.QueryRowContext(ctx, `
	SELECT p.id, p.squad_id, p.title, p.author, p.url, p.created_at,
	       (SELECT COUNT(*) FROM upvotes u WHERE u.post_id = p.id) AS upvotes
	FROM posts p WHERE p.id = ?`, id).
		Scan(&p.ID, &p.SquadID, &p.Title, &p.Author, &p.URL, &p.CreatedAt, &p.Upvotes)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
