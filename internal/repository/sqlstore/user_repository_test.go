package sqlstore

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-server/internal/domain"
	"notes-server/internal/repository"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	created := time.Date(2024, 3, 1, 12, 0, 0, 123, time.UTC)
	user := &domain.User{Username: "alice", PasswordHash: "hash", CreatedAt: created}
	id, err := repo.Create(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.Equal(t, id, user.ID)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, byName.ID)
	assert.Equal(t, "hash", byName.PasswordHash)
	assert.True(t, created.Equal(byName.CreatedAt))

	byID, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.User{Username: "bob", PasswordHash: "h1"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.User{Username: "bob", PasswordHash: "h2"})
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	_, err := repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_StoreFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, password_hash, created_at")).
		WithArgs("alice").
		WillReturnError(boom)

	_, err = NewUserRepository(db).GetByUsername(context.Background(), "alice")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_MySQLDuplicateMapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice' for key 'username'"})

	_, err = NewUserRepository(db).Create(context.Background(), &domain.User{Username: "alice", PasswordHash: "h"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: users.username (2067)")))
	assert.True(t, isUniqueViolation(&mysql.MySQLError{Number: 1062}))
	assert.False(t, isUniqueViolation(&mysql.MySQLError{Number: 1045}))
	assert.False(t, isUniqueViolation(errors.New("disk I/O error")))
}

func TestUserRepository_UsernamesAreCaseSensitive(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.User{Username: "Alice", PasswordHash: "h1", CreatedAt: time.Now()})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h2", CreatedAt: time.Now()})
	require.NoError(t, err)

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "h2", got.PasswordHash)
}

func TestUsersTableDDL(t *testing.T) {
	assert.Contains(t, usersTableDDL(true), "username VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL UNIQUE")
	assert.Contains(t, usersTableDDL(false), "username VARCHAR(255) NOT NULL UNIQUE")
}
