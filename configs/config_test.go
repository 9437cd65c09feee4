package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_BaseDevAndEnv(t *testing.T) {
	t.Setenv("POS_NOTICE__TTL", "5s")
	t.Setenv("POS_PRICING__UNIT_POLICY", "grams_per_kilo")

	cfg, err := Load(".", "dev")
	require.NoError(t, err)

	assert.Equal(t, "fruit-pos", cfg.App.Name)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "sql", cfg.Store.Driver)
	assert.Equal(t, "sqlite", cfg.SQL.Dialect)
	assert.Equal(t, 5*time.Second, cfg.Notice.TTL)
	assert.Equal(t, 3*time.Second, cfg.Notice.CheckoutTTL)
	assert.Equal(t, "grams_per_kilo", cfg.Pricing.UnitPolicy)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "Asia/Manila", cfg.Location().String())
	assert.Equal(t, 3*time.Second, cfg.HTTP.HandlerTimeout)
	assert.Equal(t, 30*time.Minute, cfg.SQL.ConnMaxLifetime)
	assert.Empty(t, cfg.Rabbit.DispatchQueue)
}

func TestLoad_Prod(t *testing.T) {
	cfg, err := Load(".", "prod")
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.True(t, cfg.Rabbit.Enabled)
	assert.Equal(t, "pos.dispatch.status.q", cfg.Rabbit.DispatchQueue)
	assert.Equal(t, "dispatch.status", cfg.Rabbit.DispatchKey)
	assert.True(t, cfg.Kafka.Enabled)
}

func TestLoad_MissingEnvFileIsFine(t *testing.T) {
	cfg, err := Load(".", "staging")
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Driver)
}

func TestLoad_MissingBase(t *testing.T) {
	_, err := Load(t.TempDir(), "dev")
	assert.ErrorContains(t, err, "load base")
}

func TestLoad_InvalidDriver(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte("app:\n  http_addr: \":1\"\nstore:\n  driver: etcd\n"), 0o644))
	_, err := Load(dir, "dev")
	assert.ErrorContains(t, err, "store.driver")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.App.HTTPAddr = ":8080"
		c.Store.Driver = "memory"
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"ok", func(*Config) {}, ""},
		{"no addr", func(c *Config) { c.App.HTTPAddr = "" }, "app.http_addr"},
		{"redis without addr", func(c *Config) { c.Store.Driver = "redis" }, "redis.addr"},
		{"sql bad dialect", func(c *Config) { c.Store.Driver = "sql"; c.SQL.Dialect = "oracle"; c.SQL.DSN = "x" }, "sql.dialect"},
		{"sql without dsn", func(c *Config) { c.Store.Driver = "sql"; c.SQL.Dialect = "sqlite" }, "sql.dsn"},
		{"bad timezone", func(c *Config) { c.Ledger.Timezone = "Mars/Olympus" }, "ledger.timezone"},
		{"manila timezone", func(c *Config) { c.Ledger.Timezone = "Asia/Manila" }, ""},
		{"utc timezone", func(c *Config) { c.Ledger.Timezone = "UTC" }, ""},
		{"rabbit without url", func(c *Config) { c.Rabbit.Enabled = true }, "rabbitmq.url"},
		{"kafka without topic", func(c *Config) { c.Kafka.Enabled = true; c.Kafka.Brokers = []string{"b:9092"} }, "kafka.topic"},
		{"idempotency redis without addr", func(c *Config) { c.Idempotency.Driver = "redis" }, "idempotency.driver"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
