package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/petrolog/petrolog-be/internal/models"
)

// StatusServiceProvider defines the interface for client status checks.
type StatusServiceProvider interface {
	CreateStatusCheck(ctx context.Context, clientName string) (models.StatusCheck, error)
	GetStatusChecks(ctx context.Context) ([]models.StatusCheck, error)
}

// StatusService records unauthenticated liveness pings from clients.
type StatusService struct {
	db *sql.DB
}

// NewStatusService creates a new StatusService.
func NewStatusService(db *sql.DB) *StatusService {
	return &StatusService{db: db}
}

// CreateStatusCheck stores a new status check for the named client.
func (s *StatusService) CreateStatusCheck(ctx context.Context, clientName string) (models.StatusCheck, error) {
	if clientName == "" {
		return models.StatusCheck{}, &ValidationError{Field: "client_name", Reason: "is required"}
	}

	check := models.StatusCheck{
		ID:         uuid.New().String(),
		ClientName: clientName,
		Timestamp:  time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, "INSERT INTO status_checks(id, client_name, timestamp) VALUES(?, ?, ?)",
		check.ID, check.ClientName, check.Timestamp)
	if err != nil {
		return models.StatusCheck{}, err
	}
	return check, nil
}

// GetStatusChecks returns stored status checks in insertion order, capped at
// 1000.
func (s *StatusService) GetStatusChecks(ctx context.Context) ([]models.StatusCheck, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, client_name, timestamp FROM status_checks ORDER BY rowid LIMIT 1000")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checks := []models.StatusCheck{}
	for rows.Next() {
		var c models.StatusCheck
		if err := rows.Scan(&c.ID, &c.ClientName, &c.Timestamp); err != nil {
			return nil, err
		}
		checks = append(checks, c)
	}
	return checks, rows.Err()
}
