package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/petrolog/petrolog-be/internal/auth"
	"github.com/petrolog/petrolog-be/internal/config"
	"github.com/petrolog/petrolog-be/internal/database"
	"github.com/petrolog/petrolog-be/internal/services"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{CORSOrigins: []string{"*"}}
	tokens := auth.NewTokenManager([]byte("test-secret"), time.Hour)
	userService := services.NewUserService(db)
	recordService := services.NewRecordService(db)
	syncService := services.NewSyncService(db, recordService)
	statusService := services.NewStatusService(db)

	srv := httptest.NewServer(NewRouter(cfg, tokens, userService, recordService, syncService, statusService))
	t.Cleanup(func() {
		srv.Close()
		db.Close()
	})
	return srv
}

// doJSON sends a JSON request and decodes the JSON response into a generic
// map. A nil body sends no payload; an empty token sends no auth header.
func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func doJSONList(t *testing.T, srv *httptest.Server, path, token string) (int, []map[string]any) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}
	var decoded []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func register(t *testing.T, srv *httptest.Server, username, password string) (token, userID string) {
	t.Helper()
	status, body := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "bearer", body["token_type"])
	return body["access_token"].(string), body["user_id"].(string)
}

func TestRegisterLoginMe(t *testing.T) {
	srv := newTestServer(t)

	token, userID := register(t, srv, "station1", "secret123")
	require.NotEmpty(t, token)
	require.NotEmpty(t, userID)

	// Duplicate registration fails regardless of password.
	status, body := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "station1",
		"password": "completely-different",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Username already registered", body["detail"])

	status, body = doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "station1",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, userID, body["user_id"])
	loginToken := body["access_token"].(string)

	status, body = doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "station1",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Invalid username or password", body["detail"])

	status, body = doJSON(t, srv, http.MethodGet, "/api/auth/me", loginToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "station1", body["username"])
	require.Equal(t, userID, body["id"])
	require.NotContains(t, body, "password_hash")

	status, _ = doJSON(t, srv, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	status, body = doJSON(t, srv, http.MethodGet, "/api/auth/me", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Invalid or expired token", body["detail"])
}

func TestRegister_ValidationDetail(t *testing.T) {
	srv := newTestServer(t)

	status, body := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "ab",
		"password": "secret123",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, body["detail"], "username")
}

func TestFuelSales_CreateListIsolation(t *testing.T) {
	srv := newTestServer(t)

	tokenA, _ := register(t, srv, "stationA", "secret123")
	tokenB, _ := register(t, srv, "stationB", "secret123")

	status, body := doJSON(t, srv, http.MethodPost, "/api/fuel-sales", tokenA, map[string]any{
		"date":            "2025-07-14",
		"fuel_type":       "petrol",
		"nozzle_id":       "N1",
		"opening_reading": 1200.5,
		"closing_reading": 1350.0,
		"liters":          149.5,
		"rate":            106.2,
		"amount":          15876.9,
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Fuel sale created", body["message"])
	saleID := body["id"].(string)
	require.NotEmpty(t, saleID)

	status, list := doJSONList(t, srv, "/api/fuel-sales?date=2025-07-14", tokenA)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)
	require.Equal(t, saleID, list[0]["id"])
	require.Equal(t, 149.5, list[0]["liters"])

	// A second user sees an empty list for the same date.
	status, list = doJSONList(t, srv, "/api/fuel-sales?date=2025-07-14", tokenB)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, list)

	status, list = doJSONList(t, srv, "/api/fuel-sales?date=2025-01-01", tokenA)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, list)

	status, _ = doJSONList(t, srv, "/api/fuel-sales", "")
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestOtherRecordKinds(t *testing.T) {
	srv := newTestServer(t)
	token, _ := register(t, srv, "station1", "secret123")

	status, body := doJSON(t, srv, http.MethodPost, "/api/credit-sales", token, map[string]any{
		"date": "2025-07-14", "customer_name": "Transport Co", "amount": 5400,
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Credit sale created", body["message"])

	status, body = doJSON(t, srv, http.MethodPost, "/api/income-expenses", token, map[string]any{
		"date": "2025-07-14", "type": "expense", "category": "maintenance", "amount": 1200,
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Income/expense record created", body["message"])

	status, body = doJSON(t, srv, http.MethodPost, "/api/fuel-rates", token, map[string]any{
		"date": "2025-07-14", "fuel_type": "diesel", "rate": 92.4,
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Fuel rate created", body["message"])

	for _, path := range []string{"/api/credit-sales", "/api/income-expenses", "/api/fuel-rates"} {
		status, list := doJSONList(t, srv, path+"?date=2025-07-14", token)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, list, 1, path)
	}
}

func TestSyncUploadDownload(t *testing.T) {
	srv := newTestServer(t)
	token, _ := register(t, srv, "station1", "secret123")

	// Before any upload the download succeeds with an empty default.
	status, body := doJSON(t, srv, http.MethodGet, "/api/sync/download", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["success"])
	require.Equal(t, "No cloud data found", body["message"])
	data := body["data"].(map[string]any)
	require.Empty(t, data["customers"])

	payload := map[string]any{
		"customers":       []map[string]any{{"name": "Transport Co"}},
		"notes":           []map[string]any{{"text": "check nozzle 2"}},
		"app_preferences": map[string]any{"theme": "dark"},
	}
	status, body = doJSON(t, srv, http.MethodPost, "/api/sync/upload", token, payload)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["success"])
	require.Equal(t, "Data synced successfully", body["message"])
	require.NotEmpty(t, body["last_sync"])

	status, body = doJSON(t, srv, http.MethodGet, "/api/sync/download", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Data retrieved successfully", body["message"])
	data = body["data"].(map[string]any)
	customers := data["customers"].([]any)
	require.Len(t, customers, 1)
	require.Equal(t, "Transport Co", customers[0].(map[string]any)["name"])
	require.Equal(t, "dark", data["app_preferences"].(map[string]any)["theme"])
	require.Empty(t, data["payments"])
}

func TestSyncBackup(t *testing.T) {
	srv := newTestServer(t)
	token, userID := register(t, srv, "station1", "secret123")

	status, _ := doJSON(t, srv, http.MethodPost, "/api/fuel-sales", token, map[string]any{
		"date": "2025-07-14", "liters": 10.0,
	})
	require.Equal(t, http.StatusOK, status)

	status, body := doJSON(t, srv, http.MethodPost, "/api/sync/backup", token, nil)
	require.Equal(t, http.StatusOK, status)
	user := body["user"].(map[string]any)
	require.Equal(t, userID, user["id"])
	require.NotContains(t, user, "password_hash")
	require.Len(t, body["fuel_sales"].([]any), 1)
	require.Empty(t, body["credit_sales"])
}

func TestRootAndStatusChecks(t *testing.T) {
	srv := newTestServer(t)

	status, body := doJSON(t, srv, http.MethodGet, "/api/", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Hello World", body["message"])

	status, body = doJSON(t, srv, http.MethodPost, "/api/status", "", map[string]string{"client_name": "android-app"})
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, body["id"])

	status, list := doJSONList(t, srv, "/api/status", "")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)
}

func TestMalformedBody(t *testing.T) {
	srv := newTestServer(t)
	token, _ := register(t, srv, "station1", "secret123")

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/fuel-sales", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Invalid request body", body["detail"])
}
