package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/petrolog/petrolog-be/internal/models"
)

// RecordServiceProvider defines the interface for the per-user business
// records. Records are immutable once created; corrections are new records.
type RecordServiceProvider interface {
	CreateFuelSale(ctx context.Context, ownerID string, in models.FuelSale) (models.FuelSale, error)
	ListFuelSales(ctx context.Context, ownerID, date string) ([]models.FuelSale, error)
	CreateCreditSale(ctx context.Context, ownerID string, in models.CreditSale) (models.CreditSale, error)
	ListCreditSales(ctx context.Context, ownerID, date string) ([]models.CreditSale, error)
	CreateIncomeExpense(ctx context.Context, ownerID string, in models.IncomeExpense) (models.IncomeExpense, error)
	ListIncomeExpenses(ctx context.Context, ownerID, date string) ([]models.IncomeExpense, error)
	CreateFuelRate(ctx context.Context, ownerID string, in models.FuelRate) (models.FuelRate, error)
	ListFuelRates(ctx context.Context, ownerID, date string) ([]models.FuelRate, error)
}

// RecordService provides persistence for the four record kinds. Every query
// is scoped by the owner id; there is no cross-user read or write path.
type RecordService struct {
	db *sql.DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *sql.DB) *RecordService {
	return &RecordService{db: db}
}

// stamp assigns the server-controlled fields of a new record.
func stamp(ownerID string) (id, userID string, createdAt time.Time) {
	return uuid.New().String(), ownerID, time.Now().UTC()
}

func requireDate(date string) error {
	if date == "" {
		return &ValidationError{Field: "date", Reason: "is required"}
	}
	return nil
}

// ownerQuery builds the list query for one record table, narrowing to an
// exact date match when a date filter is given. Insertion order is kept.
func ownerQuery(columns, table, date string, ownerID string) (string, []any) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE user_id = ?", columns, table)
	args := []any{ownerID}
	if date != "" {
		query += " AND date = ?"
		args = append(args, date)
	}
	return query + " ORDER BY rowid", args
}

// CreateFuelSale persists a new fuel sale for the owner. Numeric values are
// taken as given; out-of-range readings are not rejected.
func (s *RecordService) CreateFuelSale(ctx context.Context, ownerID string, in models.FuelSale) (models.FuelSale, error) {
	if err := requireDate(in.Date); err != nil {
		return models.FuelSale{}, err
	}
	in.ID, in.UserID, in.CreatedAt = stamp(ownerID)

	const query = `INSERT INTO fuel_sales(id, user_id, date, fuel_type, nozzle_id, opening_reading, closing_reading, liters, rate, amount, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query, in.ID, in.UserID, in.Date, in.FuelType, in.NozzleID,
		in.OpeningReading, in.ClosingReading, in.Liters, in.Rate, in.Amount, in.CreatedAt)
	if err != nil {
		return models.FuelSale{}, fmt.Errorf("failed to insert fuel sale: %w", err)
	}
	return in, nil
}

// ListFuelSales returns the owner's fuel sales, optionally for one date.
func (s *RecordService) ListFuelSales(ctx context.Context, ownerID, date string) ([]models.FuelSale, error) {
	query, args := ownerQuery("id, user_id, date, fuel_type, nozzle_id, opening_reading, closing_reading, liters, rate, amount, created_at",
		"fuel_sales", date, ownerID)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := []models.FuelSale{}
	for rows.Next() {
		var fs models.FuelSale
		if err := rows.Scan(&fs.ID, &fs.UserID, &fs.Date, &fs.FuelType, &fs.NozzleID,
			&fs.OpeningReading, &fs.ClosingReading, &fs.Liters, &fs.Rate, &fs.Amount, &fs.CreatedAt); err != nil {
			return nil, err
		}
		sales = append(sales, fs)
	}
	return sales, rows.Err()
}

// CreateCreditSale persists a new credit sale for the owner.
func (s *RecordService) CreateCreditSale(ctx context.Context, ownerID string, in models.CreditSale) (models.CreditSale, error) {
	if err := requireDate(in.Date); err != nil {
		return models.CreditSale{}, err
	}
	in.ID, in.UserID, in.CreatedAt = stamp(ownerID)

	const query = `INSERT INTO credit_sales(id, user_id, date, customer_name, amount, description, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query, in.ID, in.UserID, in.Date, in.CustomerName, in.Amount, in.Description, in.CreatedAt)
	if err != nil {
		return models.CreditSale{}, fmt.Errorf("failed to insert credit sale: %w", err)
	}
	return in, nil
}

// ListCreditSales returns the owner's credit sales, optionally for one date.
func (s *RecordService) ListCreditSales(ctx context.Context, ownerID, date string) ([]models.CreditSale, error) {
	query, args := ownerQuery("id, user_id, date, customer_name, amount, description, created_at",
		"credit_sales", date, ownerID)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := []models.CreditSale{}
	for rows.Next() {
		var cs models.CreditSale
		if err := rows.Scan(&cs.ID, &cs.UserID, &cs.Date, &cs.CustomerName, &cs.Amount, &cs.Description, &cs.CreatedAt); err != nil {
			return nil, err
		}
		sales = append(sales, cs)
	}
	return sales, rows.Err()
}

// CreateIncomeExpense persists a new income/expense entry for the owner.
func (s *RecordService) CreateIncomeExpense(ctx context.Context, ownerID string, in models.IncomeExpense) (models.IncomeExpense, error) {
	if err := requireDate(in.Date); err != nil {
		return models.IncomeExpense{}, err
	}
	in.ID, in.UserID, in.CreatedAt = stamp(ownerID)

	const query = `INSERT INTO income_expenses(id, user_id, date, type, category, amount, description, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query, in.ID, in.UserID, in.Date, in.Type, in.Category, in.Amount, in.Description, in.CreatedAt)
	if err != nil {
		return models.IncomeExpense{}, fmt.Errorf("failed to insert income/expense record: %w", err)
	}
	return in, nil
}

// ListIncomeExpenses returns the owner's ledger entries, optionally for one
// date.
func (s *RecordService) ListIncomeExpenses(ctx context.Context, ownerID, date string) ([]models.IncomeExpense, error) {
	query, args := ownerQuery("id, user_id, date, type, category, amount, description, created_at",
		"income_expenses", date, ownerID)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.IncomeExpense{}
	for rows.Next() {
		var ie models.IncomeExpense
		if err := rows.Scan(&ie.ID, &ie.UserID, &ie.Date, &ie.Type, &ie.Category, &ie.Amount, &ie.Description, &ie.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, ie)
	}
	return records, rows.Err()
}

// CreateFuelRate persists a new fuel rate for the owner.
func (s *RecordService) CreateFuelRate(ctx context.Context, ownerID string, in models.FuelRate) (models.FuelRate, error) {
	if err := requireDate(in.Date); err != nil {
		return models.FuelRate{}, err
	}
	in.ID, in.UserID, in.CreatedAt = stamp(ownerID)

	const query = `INSERT INTO fuel_rates(id, user_id, date, fuel_type, rate, created_at)
		VALUES(?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query, in.ID, in.UserID, in.Date, in.FuelType, in.Rate, in.CreatedAt)
	if err != nil {
		return models.FuelRate{}, fmt.Errorf("failed to insert fuel rate: %w", err)
	}
	return in, nil
}

// ListFuelRates returns the owner's fuel rates, optionally for one date.
func (s *RecordService) ListFuelRates(ctx context.Context, ownerID, date string) ([]models.FuelRate, error) {
	query, args := ownerQuery("id, user_id, date, fuel_type, rate, created_at",
		"fuel_rates", date, ownerID)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rates := []models.FuelRate{}
	for rows.Next() {
		var fr models.FuelRate
		if err := rows.Scan(&fr.ID, &fr.UserID, &fr.Date, &fr.FuelType, &fr.Rate, &fr.CreatedAt); err != nil {
			return nil, err
		}
		rates = append(rates, fr)
	}
	return rates, rows.Err()
}
