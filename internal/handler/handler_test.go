package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ihuza/ihuza-go/internal/config"
	"github.com/ihuza/ihuza-go/internal/identity"
	"github.com/ihuza/ihuza-go/internal/inventory"
	"github.com/ihuza/ihuza-go/internal/middleware"
	"github.com/ihuza/ihuza-go/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, store.Migrate(db))

	st := store.New(db)
	cfg := &config.Config{
		AdminEmail:        "admin@ihuza.com",
		AdminPassword:     "123456",
		AdminName:         "System Administrator",
		LowStockThreshold: 10,
		ActiveWindowDays:  30,
		DefaultTheme:      config.ThemeLight,
	}

	ids, err := identity.New(st, cfg)
	require.NoError(t, err)
	inv, err := inventory.New(st, cfg, ids)
	require.NoError(t, err)

	h := New(ids, inv, st, cfg, nil)
	// A generous limit keeps the rate limiter out of the way.
	lp := middleware.NewLoginProtection(middleware.LoginProtectionConfig{IPRateLimit: 1000, IPBurst: 1000})

	srv := httptest.NewServer(h.Routes(lp))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func login(t *testing.T, srv *httptest.Server, email, password string) {
	t.Helper()

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "login failed: %v", body)
}

func TestAuthFlow(t *testing.T) {
	srv := newTestServer(t)

	// Signed out.
	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Bad credentials.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", map[string]string{
		"email": "admin@ihuza.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	login(t, srv, "admin@ihuza.com", "123456")

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/auth/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["is_admin"])

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", map[string]string{
		"name": "Jo", "email": "jo@x.com", "password": "pw",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := body["user"].(map[string]any)
	assert.Equal(t, "user", user["role"])

	// Registration signed Jo in.
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/auth/me", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Duplicate and reserved emails are rejected.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", map[string]string{
		"name": "Jo2", "email": "jo@x.com", "password": "pw",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", map[string]string{
		"name": "X", "email": "admin@ihuza.com", "password": "pw",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestProductEndpoints(t *testing.T) {
	srv := newTestServer(t)
	login(t, srv, "admin@ihuza.com", "123456")

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/products", map[string]any{
		"name": "Monitor", "category": "Electronics", "quantity": 4, "price": 199.99, "sku": "MON-001",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	product := body["product"].(map[string]any)
	id := product["id"].(string)
	assert.Equal(t, "Low Stock", product["status"])

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/products", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["products"].([]any), 1)

	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/api/products/"+id, map[string]any{"quantity": 40})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/products/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "In Stock", body["product"].(map[string]any)["status"])

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/products/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/products/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAccountEndpoints_AdminOnly(t *testing.T) {
	srv := newTestServer(t)

	// A regular user may not manage accounts.
	_, _ = doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", map[string]string{
		"name": "Jo", "email": "jo@x.com", "password": "pw",
	})

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/accounts", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["accounts"].([]any))

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/accounts", map[string]string{
		"name": "X", "email": "x@x.com", "password": "pw", "role": "user",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The admin sees the registered account.
	login(t, srv, "admin@ihuza.com", "123456")

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/accounts", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	accounts := body["accounts"].([]any)
	require.Len(t, accounts, 1)
	first := accounts[0].(map[string]any)
	assert.Equal(t, "jo@x.com", first["email"])
	// Jo just signed in during registration, so the account is active.
	assert.Equal(t, true, first["active"])
	_, hasHash := first["password_hash"]
	assert.False(t, hasHash)
}

func TestDeleteAccount_SelfGuardAtBoundary(t *testing.T) {
	srv := newTestServer(t)
	login(t, srv, "admin@ihuza.com", "123456")

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/auth/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	selfID := body["user"].(map[string]any)["id"].(string)

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/accounts/"+selfID, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	login(t, srv, "admin@ihuza.com", "123456")

	_, _ = doJSON(t, http.MethodPost, srv.URL+"/api/products", map[string]any{
		"name": "A", "price": 10, "quantity": 2,
	})
	_, _ = doJSON(t, http.MethodPost, srv.URL+"/api/products", map[string]any{
		"name": "B", "price": 5, "quantity": 3,
	})

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := body["stats"].(map[string]any)
	assert.Equal(t, float64(2), stats["total_products"])
	assert.Equal(t, float64(35), stats["total_value"])
	assert.Equal(t, float64(2), stats["low_stock_count"])
}

func TestThemeEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/theme", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "light", body["theme"])

	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/api/theme", map[string]string{"theme": "dark"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/theme", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "dark", body["theme"])

	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/api/theme", map[string]string{"theme": "sepia"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
