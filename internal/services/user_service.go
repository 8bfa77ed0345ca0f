package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/petrolog/petrolog-be/internal/auth"
	"github.com/petrolog/petrolog-be/internal/models"
)

// UserServiceProvider defines the interface for user account operations.
type UserServiceProvider interface {
	Register(ctx context.Context, username, password, fullName string) (models.User, error)
	Authenticate(ctx context.Context, username, password string) (models.User, error)
	GetActiveUserByID(ctx context.Context, id string) (models.User, error)
}

// UserService provides business logic for user accounts.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new active account with a hashed password. The username
// must be free; full name defaults to the username.
func (s *UserService) Register(ctx context.Context, username, password, fullName string) (models.User, error) {
	if len(username) < 3 || len(username) > 50 {
		return models.User{}, &ValidationError{Field: "username", Reason: "must be between 3 and 50 characters"}
	}
	if len(password) < 6 {
		return models.User{}, &ValidationError{Field: "password", Reason: "must be at least 6 characters"}
	}

	var taken int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM users WHERE username = ?", username).Scan(&taken)
	if err != nil {
		return models.User{}, err
	}
	if taken > 0 {
		return models.User{}, ErrDuplicateUsername
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	if fullName == "" {
		fullName = username
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		FullName:     fullName,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	stmt, err := s.db.PrepareContext(ctx, "INSERT INTO users(id, username, password_hash, full_name, is_active, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, user.ID, user.Username, user.PasswordHash, user.FullName, user.IsActive, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return models.User{}, err
	}

	// Return user without password hash
	user.PasswordHash = ""
	return user, nil
}

// Authenticate verifies a user's credentials. Unknown usernames, wrong
// passwords and deactivated accounts all fail with ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx, "SELECT id, username, password_hash, full_name, is_active, created_at, updated_at FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.FullName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if !user.IsActive || !auth.CheckPassword(password, user.PasswordHash) {
		return models.User{}, ErrInvalidCredentials
	}

	user.PasswordHash = ""
	return user, nil
}

// GetActiveUserByID retrieves a user by id, failing with ErrUnauthenticated
// when the user is absent or deactivated.
func (s *UserService) GetActiveUserByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx, "SELECT id, username, full_name, is_active, created_at, updated_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Username, &user.FullName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrUnauthenticated
		}
		return models.User{}, err
	}
	if !user.IsActive {
		return models.User{}, ErrUnauthenticated
	}
	return user, nil
}
