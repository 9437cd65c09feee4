package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelordialeseya/fruit-pos/configs"
	"github.com/samuelordialeseya/fruit-pos/internal/usecase"
)

func baseConfig() configs.Config {
	var cfg configs.Config
	cfg.App.Name = "fruit-pos-test"
	cfg.App.HTTPAddr = ":0"
	cfg.App.LogLevel = "error"
	cfg.HTTP.HandlerTimeout = time.Second
	cfg.Store.Driver = "memory"
	cfg.Idempotency.Driver = "memory"
	cfg.Idempotency.TTL = time.Hour
	cfg.Ledger.Timezone = "Asia/Manila"
	return cfg
}

func TestInitWithConfig_Memory(t *testing.T) {
	a, cleanup, err := InitWithConfig(context.Background(), baseConfig())
	require.NoError(t, err)
	t.Cleanup(cleanup)

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pos_store_ops_total")
}

func TestInitWithConfig_SQLiteSurvivesRestart(t *testing.T) {
	cfg := baseConfig()
	cfg.Store.Driver = "sql"
	cfg.SQL.Dialect = "sqlite"
	cfg.SQL.DSN = "file:" + filepath.Join(t.TempDir(), "pos.db")

	a, cleanup, err := InitWithConfig(context.Background(), cfg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/products",
		strings.NewReader(`{"name":"Calamansi","price":"60","unit":"kg","category":"Fruit"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	cleanup()

	a, cleanup, err = InitWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	products := a.POS.ListProducts(usecase.ProductFilter{})
	require.Len(t, products, 1)
	assert.Equal(t, "Calamansi", products[0].Name)
}

func TestInitWithConfig_BadUnitPolicy(t *testing.T) {
	cfg := baseConfig()
	cfg.Pricing.UnitPolicy = "per_bushel"
	_, _, err := InitWithConfig(context.Background(), cfg)
	assert.ErrorContains(t, err, "unknown unit policy")
}
