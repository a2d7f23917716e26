package repository

import (
	"context"
	"database/sql"
)

// SquadRepo handles squads and their memberships.
type SquadRepo struct {
	db *sql.DB
}

func NewSquadRepo(db *sql.DB) *SquadRepo {
	return &SquadRepo{db: db}
}

func (r *SquadRepo) Upsert(ctx context.Context, s Squad) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO squads(id, handle, name, description)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 handle=excluded.handle,
	 name=excluded.name,
	 description=excluded.description;
	`, s.ID, s.Handle, s.Name, s.Description)
	return err
}

func (r *SquadRepo) List(ctx context.Context) ([]Squad, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, handle, name, description, created_at FROM squads ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Squad
	for rows.Next() {
		var s Squad
		if err := rows.Scan(&s.ID, &s.Handle, &s.Name, &s.Description, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SquadRepo) Get(ctx context.Context, id string) (*Squad, error) {
	var s Squad
	err := r.db.QueryRowContext(ctx, `SELECT id, handle, name, description, created_at FROM squads WHERE id = ?`, id).
		Scan(&s.ID, &s.Handle, &s.Name, &s.Description, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SquadRepo) AddMember(ctx context.Context, m SquadMember) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO squad_members(id, squad_id, username, role)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(squad_id, username) DO UPDATE SET role=excluded.role;
	`, m.ID, m.SquadID, m.Username, m.Role)
	return err
}

func (r *SquadRepo) Members(ctx context.Context, squadID string) ([]SquadMember, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, squad_id, username, role, joined_at
	FROM squad_members WHERE squad_id = ?
	ORDER BY role, username`, squadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SquadMember
	for rows.Next() {
		var m SquadMember
		if err := rows.Scan(&m.ID, &m.SquadID, &m.Username, &m.Role, &m.JoinedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Member returns one membership row, or nil if username is not in the squad.
func (r *SquadRepo) Member(ctx context.Context, squadID, username string) (*SquadMember, error) {
	var m SquadMember
	err := r.db.QueryRowContext(ctx, `
	SELECT id, squad_id, username, role, joined_at
	FROM squad_members WHERE squad_id = ? AND username = ?`, squadID, username).
		Scan(&m.ID, &m.SquadID, &m.Username, &m.Role, &m.JoinedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
