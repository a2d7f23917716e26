package repository

import "time"

// Squad represents a squad row.
type Squad struct {
	ID          string
	Handle      string
	Name        string
	Description *string
	CreatedAt   time.Time
}

// SquadMember represents a squad membership row.
type SquadMember struct {
	ID       string
	SquadID  string
	Username string
	Role     string
	JoinedAt time.Time
}

// Post represents a post row. Upvotes is a derived count, populated by list
// queries.
type Post struct {
	ID        string
	SquadID   *string
	Title     string
	Author    string
	URL       *string
	CreatedAt time.Time
	Upvotes   int
}

// Upvote represents an upvote row.
type Upvote struct {
	ID        string
	PostID    string
	Username  string
	CreatedAt time.Time
}

// Report represents a post report row.
type Report struct {
	ID        string
	PostID    string
	Reason    string
	Comment   *string
	CreatedAt time.Time
}
