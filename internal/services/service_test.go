package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/petrolog/petrolog-be/internal/database"
	"github.com/petrolog/petrolog-be/internal/models"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a fresh in-memory database. A single connection keeps
// every query on the same in-memory instance.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func registerUser(t *testing.T, users *UserService, username string) models.User {
	t.Helper()
	user, err := users.Register(context.Background(), username, "secret123", "")
	require.NoError(t, err)
	return user
}
