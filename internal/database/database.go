package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		full_name TEXT,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS fuel_sales (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		fuel_type TEXT,
		nozzle_id TEXT,
		opening_reading REAL,
		closing_reading REAL,
		liters REAL,
		rate REAL,
		amount REAL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS credit_sales (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		customer_name TEXT,
		amount REAL,
		description TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS income_expenses (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		type TEXT,
		category TEXT,
		amount REAL,
		description TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS fuel_rates (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		fuel_type TEXT,
		rate REAL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sync_data (
		user_id TEXT NOT NULL PRIMARY KEY,
		-- Store free-form collections as JSON text
		customers_json TEXT,
		credit_records_json TEXT,
		payments_json TEXT,
		sales_json TEXT,
		income_records_json TEXT,
		expense_records_json TEXT,
		fuel_settings_json TEXT,
		stock_records_json TEXT,
		notes_json TEXT,
		contact_info_json TEXT,
		app_preferences_json TEXT,
		last_sync_timestamp DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS status_checks (
		id TEXT NOT NULL PRIMARY KEY,
		client_name TEXT NOT NULL,
		timestamp DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_fuel_sales_owner_date ON fuel_sales(user_id, date);
	CREATE INDEX IF NOT EXISTS idx_credit_sales_owner_date ON credit_sales(user_id, date);
	CREATE INDEX IF NOT EXISTS idx_income_expenses_owner_date ON income_expenses(user_id, date);
	CREATE INDEX IF NOT EXISTS idx_fuel_rates_owner_date ON fuel_rates(user_id, date);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
