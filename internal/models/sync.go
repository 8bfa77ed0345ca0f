package models

import "time"

// SyncData is the full client-side state uploaded for backup and returned on
// restore. The collections are free-form; the server never interprets them.
type SyncData struct {
	Customers         []map[string]any `json:"customers"`
	CreditRecords     []map[string]any `json:"credit_records"`
	Payments          []map[string]any `json:"payments"`
	Sales             []map[string]any `json:"sales"`
	IncomeRecords     []map[string]any `json:"income_records"`
	ExpenseRecords    []map[string]any `json:"expense_records"`
	FuelSettings      map[string]any   `json:"fuel_settings"`
	StockRecords      []map[string]any `json:"stock_records"`
	Notes             []map[string]any `json:"notes"`
	ContactInfo       map[string]any   `json:"contact_info"`
	AppPreferences    map[string]any   `json:"app_preferences"`
	LastSyncTimestamp time.Time        `json:"last_sync_timestamp"`
}

// EmptySyncData returns the default document served before a first upload.
func EmptySyncData() SyncData {
	return SyncData{
		Customers:      []map[string]any{},
		CreditRecords:  []map[string]any{},
		Payments:       []map[string]any{},
		Sales:          []map[string]any{},
		IncomeRecords:  []map[string]any{},
		ExpenseRecords: []map[string]any{},
		StockRecords:   []map[string]any{},
		Notes:          []map[string]any{},
	}
}

// Normalize replaces nil collections with empty ones so a partial upload
// round-trips the same way a full one does.
func (d *SyncData) Normalize() {
	if d.Customers == nil {
		d.Customers = []map[string]any{}
	}
	if d.CreditRecords == nil {
		d.CreditRecords = []map[string]any{}
	}
	if d.Payments == nil {
		d.Payments = []map[string]any{}
	}
	if d.Sales == nil {
		d.Sales = []map[string]any{}
	}
	if d.IncomeRecords == nil {
		d.IncomeRecords = []map[string]any{}
	}
	if d.ExpenseRecords == nil {
		d.ExpenseRecords = []map[string]any{}
	}
	if d.StockRecords == nil {
		d.StockRecords = []map[string]any{}
	}
	if d.Notes == nil {
		d.Notes = []map[string]any{}
	}
}

// SyncResponse is the body returned by the sync upload/download endpoints.
type SyncResponse struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	Data     *SyncData `json:"data,omitempty"`
	LastSync time.Time `json:"last_sync"`
}

// BackupData is the aggregate export of everything the server holds for one
// user.
type BackupData struct {
	User           User            `json:"user"`
	FuelSales      []FuelSale      `json:"fuel_sales"`
	CreditSales    []CreditSale    `json:"credit_sales"`
	IncomeExpenses []IncomeExpense `json:"income_expenses"`
	FuelRates      []FuelRate      `json:"fuel_rates"`
	BackupDate     time.Time       `json:"backup_date"`
}
