package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/petrolog/petrolog-be/internal/auth"
	"github.com/petrolog/petrolog-be/internal/models"
	"github.com/petrolog/petrolog-be/internal/services"
	"github.com/rs/zerolog/log"
)

// RecordHandler handles HTTP requests for the four record kinds. Every
// operation is scoped to the authenticated user from the request context.
type RecordHandler struct {
	records services.RecordServiceProvider
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(records services.RecordServiceProvider) *RecordHandler {
	return &RecordHandler{records: records}
}

func ownerFromContext(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user from request context")
		respondError(w, http.StatusUnauthorized, "Invalid or expired token")
	}
	return user, ok
}

func created(w http.ResponseWriter, message, id string) {
	respondJSON(w, http.StatusOK, map[string]string{"message": message, "id": id})
}

// CreateFuelSale handles POST /fuel-sales.
func (h *RecordHandler) CreateFuelSale(w http.ResponseWriter, r *http.Request) {
	user, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	var payload models.FuelSale
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sale, err := h.records.CreateFuelSale(r.Context(), user.ID, payload)
	if err != nil {
		respondServiceError(w, err, "Failed to create fuel sale")
		return
	}
	created(w, "Fuel sale created", sale.ID)
}

// ListFuelSales handles GET /fuel-sales?date=.
func (h *RecordHandler) ListFuelSales(w http.ResponseWriter, r *http.Request) {
	user, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	sales, err := h.records.ListFuelSales(r.Context(), user.ID, r.URL.Query().Get("date"))
	if err != nil {
		respondServiceError(w, err, "Failed to fetch fuel sales")
		return
	}
	respondJSON(w, http.StatusOK, sales)
}

// CreateCreditSale handles POST /credit-sales.
func (h *RecordHandler) CreateCreditSale(w http.ResponseWriter, r *http.Request) {
	user, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	var payload models.CreditSale
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sale, err := h.records.CreateCreditSale(r.Context(), user.ID, payload)
	if err != nil {
		respondServiceError(w, err, "Failed to create credit sale")
		return
	}
	created(w, "Credit sale created", sale.ID)
}

// ListCreditSales handles GET /credit-sales?date=.
func (h *RecordHandler) ListCreditSales(w http.ResponseWriter, r *http.Request) {
	user, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	sales, err := h.records.ListCreditSales(r.Context(), user.ID, r.URL.Query().Get("date"))
	if err != nil {
		respondServiceError(w, err, "Failed to fetch credit sales")
		return
	}
	respondJSON(w, http.StatusOK, sales)
}

// CreateIncomeExpense handles POST /income-expenses.
func (h *RecordHandler) CreateIncomeExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	var payload models.IncomeExpense
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.records.CreateIncomeExpense(r.Context(), user.ID, payload)
	if err != nil {
		respondServiceError(w, err, "Failed to create income/expense record")
		return
	}
	created(w, "Income/expense record created", record.ID)
}

// ListIncomeExpenses handles GET /income-expenses?date=.
func (h *RecordHandler) ListIncomeExpenses(w http.ResponseWriter, r *http.Request) {
	user, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	records, err := h.records.ListIncomeExpenses(r.Context(), user.ID, r.URL.Query().Get("date"))
	if err != nil {
		respondServiceError(w, err, "Failed to fetch income/expense records")
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// CreateFuelRate handles POST /fuel-rates.
func (h *RecordHandler) CreateFuelRate(w http.ResponseWriter, r *http.Request) {
	user, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	var payload models.FuelRate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rate, err := h.records.CreateFuelRate(r.Context(), user.ID, payload)
	if err != nil {
		respondServiceError(w, err, "Failed to create fuel rate")
		return
	}
	created(w, "Fuel rate created", rate.ID)
}

// ListFuelRates handles GET /fuel-rates?date=.
func (h *RecordHandler) ListFuelRates(w http.ResponseWriter, r *http.Request) {
	user, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	rates, err := h.records.ListFuelRates(r.Context(), user.ID, r.URL.Query().Get("date"))
	if err != nil {
		respondServiceError(w, err, "Failed to fetch fuel rates")
		return
	}
	respondJSON(w, http.StatusOK, rates)
}
