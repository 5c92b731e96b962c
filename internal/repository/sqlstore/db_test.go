package sqlstore

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB returns an in-memory store with both tables created.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, NewUserRepository(db).Init(ctx))
	require.NoError(t, NewNoteRepository(db).Init(ctx))
	return db
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open("  ")
	require.Error(t, err)
}

func TestOpen_SQLiteFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "notes.db")

	db, err := Open("sqlite://" + path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, NewUserRepository(db).Init(context.Background()))
	assert.FileExists(t, path)
}

func TestInit_Idempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	assert.NoError(t, NewUserRepository(db).Init(ctx))
	assert.NoError(t, NewNoteRepository(db).Init(ctx))
}

func TestMySQLDSN_CountsMatchedRows(t *testing.T) {
	dsn, err := mysqlDSN("notes:secret@tcp(localhost:3306)/notes?parseTime=true")
	require.NoError(t, err)

	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.True(t, cfg.ClientFoundRows)
	assert.Equal(t, "notes", cfg.User)
	assert.Equal(t, "localhost:3306", cfg.Addr)
	assert.Equal(t, "notes", cfg.DBName)
	assert.True(t, cfg.ParseTime)

	_, err = mysqlDSN("not a dsn")
	assert.Error(t, err)
}

func TestIsMySQL(t *testing.T) {
	// sql.Open does not dial, so no server is needed
	db, err := sql.Open("mysql", "notes:secret@tcp(127.0.0.1:1)/notes")
	require.NoError(t, err)
	defer db.Close()
	assert.True(t, isMySQL(db))

	assert.False(t, isMySQL(openTestDB(t)))
}
