package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegister_CreatesActiveUser(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)

	user, err := users.Register(context.Background(), "station1", "secret123", "Station One")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "station1", user.Username)
	require.Equal(t, "Station One", user.FullName)
	require.True(t, user.IsActive)
	require.Empty(t, user.PasswordHash, "hash must not be returned")
}

func TestRegister_FullNameDefaultsToUsername(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)

	user, err := users.Register(context.Background(), "station2", "secret123", "")
	require.NoError(t, err)
	require.Equal(t, "station2", user.FullName)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)

	registerUser(t, users, "station1")

	// A different password does not make the username available.
	_, err := users.Register(context.Background(), "station1", "otherpassword", "")
	require.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestRegister_Validation(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)

	var ve *ValidationError

	_, err := users.Register(context.Background(), "ab", "secret123", "")
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "username", ve.Field)

	_, err = users.Register(context.Background(), "station1", "short", "")
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "password", ve.Field)
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	registered := registerUser(t, users, "station1")

	user, err := users.Authenticate(context.Background(), "station1", "secret123")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
	require.Empty(t, user.PasswordHash)

	_, err = users.Authenticate(context.Background(), "station1", "wrongpass")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = users.Authenticate(context.Background(), "nobody", "secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_InactiveUser(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	user := registerUser(t, users, "station1")

	_, err := db.Exec("UPDATE users SET is_active = 0 WHERE id = ?", user.ID)
	require.NoError(t, err)

	_, err = users.Authenticate(context.Background(), "station1", "secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetActiveUserByID(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	user := registerUser(t, users, "station1")

	got, err := users.GetActiveUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Username, got.Username)

	_, err = users.GetActiveUserByID(context.Background(), "no-such-id")
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = db.Exec("UPDATE users SET is_active = 0 WHERE id = ?", user.ID)
	require.NoError(t, err)
	_, err = users.GetActiveUserByID(context.Background(), user.ID)
	require.ErrorIs(t, err, ErrUnauthenticated)
}
