package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/squadhq/squadtui/internal/database"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	migrations, err := filepath.Abs("../migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrationsWithDB(db, migrations))
	return db
}

func TestSquadUpsertAndMembers(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db := openTestDB(t)
	repo := NewSquadRepo(db)

	squad := Squad{ID: uuid.NewString(), Handle: "gophers", Name: "Gophers"}
	require.NoError(t, repo.Upsert(ctx, squad))

	// Upsert on the same id updates in place.
	squad.Name = "Go Gophers"
	require.NoError(t, repo.Upsert(ctx, squad))

	got, err := repo.Get(ctx, squad.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Go Gophers", got.Name)

	missing, err := repo.Get(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, missing)

	member := SquadMember{ID: uuid.NewString(), SquadID: squad.ID, Username: "ana", Role: "member"}
	require.NoError(t, repo.AddMember(ctx, member))
	// Same squad+username promotes instead of duplicating.
	member.ID = uuid.NewString()
	member.Role = "admin"
	require.NoError(t, repo.AddMember(ctx, member))

	members, err := repo.Members(ctx, squad.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, "admin", members[0].Role)

	m, err := repo.Member(ctx, squad.ID, "ana")
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, "admin", m.Role)
}

func TestPostListCarriesUpvoteCounts(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db := openTestDB(t)
	posts := NewPostRepo(db)
	upvotes := NewUpvoteRepo(db)

	a := Post{ID: uuid.NewString(), Title: "first", Author: "ana"}
	b := Post{ID: uuid.NewString(), Title: "second", Author: "ben"}
	require.NoError(t, posts.Upsert(ctx, a))
	require.NoError(t, posts.Upsert(ctx, b))

	require.NoError(t, upvotes.Add(ctx, Upvote{ID: uuid.NewString(), PostID: a.ID, Username: "ben"}))
	require.NoError(t, upvotes.Add(ctx, Upvote{ID: uuid.NewString(), PostID: a.ID, Username: "cam"}))
	// Double vote by one user is a no-op.
	require.NoError(t, upvotes.Add(ctx, Upvote{ID: uuid.NewString(), PostID: a.ID, Username: "ben"}))

	list, err := posts.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	counts := map[string]int{}
	for _, p := range list {
		counts[p.ID] = p.Upvotes
	}
	require.Equal(t, 2, counts[a.ID])
	require.Equal(t, 0, counts[b.ID])

	voters, err := upvotes.ByPost(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, voters, 2)
}

func TestReportInsertAndCount(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db := openTestDB(t)
	posts := NewPostRepo(db)
	reports := NewReportRepo(db)

	p := Post{ID: uuid.NewString(), Title: "spammy", Author: "eve"}
	require.NoError(t, posts.Upsert(ctx, p))

	comment := "obvious spam"
	require.NoError(t, reports.Insert(ctx, Report{ID: uuid.NewString(), PostID: p.ID, Reason: "spam", Comment: &comment}))
	require.NoError(t, reports.Insert(ctx, Report{ID: uuid.NewString(), PostID: p.ID, Reason: "off-topic"}))

	n, err := reports.Count(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	filed, err := reports.ByPost(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, filed, 2)
	byReason := map[string]Report{}
	for _, rep := range filed {
		byReason[rep.Reason] = rep
	}
	require.NotNil(t, byReason["spam"].Comment)
	require.Equal(t, comment, *byReason["spam"].Comment)
	require.Nil(t, byReason["off-topic"].Comment)
}
