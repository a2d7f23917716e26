package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// SeedDefaults populates a fresh database with a small demo feed so the TUI
// has something to show. The whole seed runs in one transaction: a partial
// demo dataset is worse than none. Idempotent, safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	var existing int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM squads`).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	// Deterministic ids keep reseeding stable across runs.
	sid := func(handle string) string {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte("squad:"+handle)).String()
	}
	pid := func(title string) string {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte("post:"+title)).String()
	}

	return WithTx(db, func(tx *sql.Tx) error {
		squads := []struct {
			handle string
			name   string
		}{
			{"gophers", "Gophers"},
			{"terminal-life", "Terminal Life"},
		}
		for _, s := range squads {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO squads(id, handle, name) VALUES (?, ?, ?)`,
				sid(s.handle), s.handle, s.name)
			if err != nil {
				return err
			}
		}

		members := []struct {
			squad    string
			username string
			role     string
		}{
			{"gophers", "ana", "admin"},
			{"gophers", "bo", "member"},
			{"gophers", "cleo", "member"},
			{"terminal-life", "bo", "admin"},
		}
		for _, m := range members {
			mid := uuid.NewSHA1(uuid.NameSpaceOID, []byte("member:"+m.squad+":"+m.username)).String()
			_, err := tx.ExecContext(ctx,
				`INSERT INTO squad_members(id, squad_id, username, role) VALUES (?, ?, ?, ?)`,
				mid, sid(m.squad), m.username, m.role)
			if err != nil {
				return err
			}
		}

		posts := []struct {
			squad  string
			title  string
			author string
		}{
			{"gophers", "Error handling patterns we actually use", "ana"},
			{"gophers", "Profiling a slow test suite", "cleo"},
			{"terminal-life", "Living in tmux: a field guide", "bo"},
		}
		// Stagger created_at so the feed's newest-first order is stable
		// instead of depending on insertion tie-breaks.
		base := Now()
		for i, p := range posts {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO posts(id, squad_id, title, author, created_at) VALUES (?, ?, ?, ?, ?)`,
				pid(p.title), sid(p.squad), p.title, p.author, base.Add(-time.Duration(i)*time.Minute))
			if err != nil {
				return err
			}
		}
		return nil
	})
}
