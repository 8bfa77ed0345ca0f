package models

import "time"

// FuelSale records the meter readings and takings of one nozzle for a day.
// Dates are calendar-date strings (e.g. "2025-07-14") as sent by the client.
type FuelSale struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Date           string    `json:"date"`
	FuelType       string    `json:"fuel_type"`
	NozzleID       string    `json:"nozzle_id"`
	OpeningReading float64   `json:"opening_reading"`
	ClosingReading float64   `json:"closing_reading"`
	Liters         float64   `json:"liters"`
	Rate           float64   `json:"rate"`
	Amount         float64   `json:"amount"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreditSale records fuel handed out on credit to a named customer.
type CreditSale struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Date         string    `json:"date"`
	CustomerName string    `json:"customer_name"`
	Amount       float64   `json:"amount"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// IncomeExpense is a single ledger entry; Type is "income" or "expense".
type IncomeExpense struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Date        string    `json:"date"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FuelRate records the posted per-liter price of a fuel type on a day.
type FuelRate struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`
	FuelType  string    `json:"fuel_type"`
	Rate      float64   `json:"rate"`
	CreatedAt time.Time `json:"created_at"`
}
