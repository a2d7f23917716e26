package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens the squadtui database. Foreign keys are enforced so deleting a
// post takes its upvotes and reports with it, and the busy timeout covers
// the seed transaction racing a second process.
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// sqlite: one writer at a time
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	return db, nil
}

// WithTx runs fn in a single transaction, rolling back when fn errors.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Now returns UTC time truncated to seconds, matching the resolution of the
// schema's CURRENT_TIMESTAMP defaults. Rows stamped with it sort stably
// against rows stamped by sqlite itself.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
