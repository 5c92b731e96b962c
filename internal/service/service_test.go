package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"notes-server/internal/repository/sqlstore"
)

func openStore(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlstore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestUserService(t *testing.T) UserService {
	t.Helper()
	repo := sqlstore.NewUserRepository(openStore(t))
	require.NoError(t, repo.Init(context.Background()))

	svc, err := NewUserService(repo, WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)
	return svc
}

// stepClock advances by one second on every call.
type stepClock struct {
	t time.Time
}

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestNoteService(t *testing.T, opts ...NoteOption) NoteService {
	t.Helper()
	repo := sqlstore.NewNoteRepository(openStore(t))
	require.NoError(t, repo.Init(context.Background()))
	return NewNoteService(repo, opts...)
}
