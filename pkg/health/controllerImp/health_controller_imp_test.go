package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indash/database"
)

func get(t *testing.T, h *HealthCtrl) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	require.NoError(t, h.Health(c))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealthWithoutDatabase(t *testing.T) {
	code, body := get(t, NewHealthCtrl(nil, "http", func() (int, int) { return 2025, 1 }))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "http", body["backend"])
	checks := body["checks"].(map[string]any)["database"].(map[string]any)
	assert.Equal(t, true, checks["skipped"])
	assert.Equal(t, 2025.0, body["period"].(map[string]any)["year"])
}

func TestHealthSQLite(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "h.db"))
	require.NoError(t, err)
	code, _ := get(t, NewHealthCtrl(db, "sqlite", nil))
	assert.Equal(t, http.StatusOK, code)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	code, body := get(t, NewHealthCtrl(db, "sqlite", nil))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, false, body["status"].(map[string]any)["ok"])
}
