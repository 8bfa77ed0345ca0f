package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/petrolog/petrolog-be/internal/models"
)

// SyncServiceProvider defines the interface for full-state backup sync.
type SyncServiceProvider interface {
	Upload(ctx context.Context, ownerID string, data models.SyncData) (time.Time, error)
	Download(ctx context.Context, ownerID string) (models.SyncData, time.Time, bool, error)
	Backup(ctx context.Context, user models.User) (models.BackupData, error)
}

// SyncService stores one aggregate document per user. An upload replaces the
// previous document wholesale; concurrent uploads are last-writer-wins.
type SyncService struct {
	db      *sql.DB
	records RecordServiceProvider
}

// NewSyncService creates a new SyncService.
func NewSyncService(db *sql.DB, records RecordServiceProvider) *SyncService {
	return &SyncService{db: db, records: records}
}

// Upload replaces the owner's stored sync document with data and stamps the
// sync timestamps. Returns the new last-sync time.
func (s *SyncService) Upload(ctx context.Context, ownerID string, data models.SyncData) (time.Time, error) {
	data.Normalize()
	now := time.Now().UTC()

	cols := make([]string, 0, 11)
	for _, v := range []any{
		data.Customers, data.CreditRecords, data.Payments, data.Sales,
		data.IncomeRecords, data.ExpenseRecords, data.FuelSettings,
		data.StockRecords, data.Notes, data.ContactInfo, data.AppPreferences,
	} {
		b, err := json.Marshal(v)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to marshal sync collection: %w", err)
		}
		cols = append(cols, string(b))
	}

	const query = `
	INSERT INTO sync_data(user_id, customers_json, credit_records_json, payments_json, sales_json,
		income_records_json, expense_records_json, fuel_settings_json, stock_records_json,
		notes_json, contact_info_json, app_preferences_json, last_sync_timestamp, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(user_id) DO UPDATE SET
		customers_json = excluded.customers_json,
		credit_records_json = excluded.credit_records_json,
		payments_json = excluded.payments_json,
		sales_json = excluded.sales_json,
		income_records_json = excluded.income_records_json,
		expense_records_json = excluded.expense_records_json,
		fuel_settings_json = excluded.fuel_settings_json,
		stock_records_json = excluded.stock_records_json,
		notes_json = excluded.notes_json,
		contact_info_json = excluded.contact_info_json,
		app_preferences_json = excluded.app_preferences_json,
		last_sync_timestamp = excluded.last_sync_timestamp,
		updated_at = excluded.updated_at`

	args := make([]any, 0, 14)
	args = append(args, ownerID)
	for _, c := range cols {
		args = append(args, c)
	}
	args = append(args, now, now)

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return time.Time{}, fmt.Errorf("failed to upsert sync document: %w", err)
	}
	return now, nil
}

// Download returns the owner's stored sync document. When no document exists
// yet it returns an empty default with found=false; absence is not an error.
func (s *SyncService) Download(ctx context.Context, ownerID string) (models.SyncData, time.Time, bool, error) {
	const query = `
	SELECT customers_json, credit_records_json, payments_json, sales_json,
		income_records_json, expense_records_json, fuel_settings_json, stock_records_json,
		notes_json, contact_info_json, app_preferences_json, last_sync_timestamp
	FROM sync_data WHERE user_id = ?`

	var raw [11]sql.NullString
	var lastSync time.Time
	row := s.db.QueryRowContext(ctx, query, ownerID)
	err := row.Scan(&raw[0], &raw[1], &raw[2], &raw[3], &raw[4], &raw[5],
		&raw[6], &raw[7], &raw[8], &raw[9], &raw[10], &lastSync)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.EmptySyncData(), time.Now().UTC(), false, nil
		}
		return models.SyncData{}, time.Time{}, false, err
	}

	data := models.EmptySyncData()
	lists := []*[]map[string]any{
		&data.Customers, &data.CreditRecords, &data.Payments, &data.Sales,
		&data.IncomeRecords, &data.ExpenseRecords, nil, &data.StockRecords,
		&data.Notes, nil, nil,
	}
	maps := []*map[string]any{
		nil, nil, nil, nil, nil, nil,
		&data.FuelSettings, nil, nil, &data.ContactInfo, &data.AppPreferences,
	}
	for i, col := range raw {
		if !col.Valid || col.String == "" {
			continue
		}
		var dst any
		if lists[i] != nil {
			dst = lists[i]
		} else {
			dst = maps[i]
		}
		if err := json.Unmarshal([]byte(col.String), dst); err != nil {
			return models.SyncData{}, time.Time{}, false, fmt.Errorf("failed to unmarshal sync collection: %w", err)
		}
	}
	data.Normalize()
	data.LastSyncTimestamp = lastSync

	return data, lastSync, true, nil
}

// Backup assembles the aggregate export of everything the server holds for
// the user: the account plus all four record collections.
func (s *SyncService) Backup(ctx context.Context, user models.User) (models.BackupData, error) {
	fuelSales, err := s.records.ListFuelSales(ctx, user.ID, "")
	if err != nil {
		return models.BackupData{}, err
	}
	creditSales, err := s.records.ListCreditSales(ctx, user.ID, "")
	if err != nil {
		return models.BackupData{}, err
	}
	incomeExpenses, err := s.records.ListIncomeExpenses(ctx, user.ID, "")
	if err != nil {
		return models.BackupData{}, err
	}
	fuelRates, err := s.records.ListFuelRates(ctx, user.ID, "")
	if err != nil {
		return models.BackupData{}, err
	}

	user.PasswordHash = ""
	return models.BackupData{
		User:           user,
		FuelSales:      fuelSales,
		CreditSales:    creditSales,
		IncomeExpenses: incomeExpenses,
		FuelRates:      fuelRates,
		BackupDate:     time.Now().UTC(),
	}, nil
}
