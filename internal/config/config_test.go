package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	vars := map[string]string{
		"STOREFRONT_PRIMARY.ENV":                 "local",
		"STOREFRONT_SERVER.PORT":                 "8080",
		"STOREFRONT_SERVER.READ_TIMEOUT":         "30",
		"STOREFRONT_SERVER.WRITE_TIMEOUT":        "30",
		"STOREFRONT_SERVER.IDLE_TIMEOUT":         "60",
		"STOREFRONT_SERVER.CORS_ALLOWED_ORIGINS": "*",
		"STOREFRONT_DATABASE.HOST":               "localhost",
		"STOREFRONT_DATABASE.PORT":               "5432",
		"STOREFRONT_DATABASE.USER":               "postgres",
		"STOREFRONT_DATABASE.PASSWORD":           "postgres",
		"STOREFRONT_DATABASE.NAME":               "storefront",
		"STOREFRONT_DATABASE.SSL_MODE":           "disable",
		"STOREFRONT_DATABASE.MAX_OPEN_CONNS":     "25",
		"STOREFRONT_DATABASE.MAX_IDLE_CONNS":     "25",
		"STOREFRONT_DATABASE.CONN_MAX_LIFETIME":  "300",
		"STOREFRONT_DATABASE.CONN_MAX_IDLE_TIME": "300",
		"STOREFRONT_REDIS.ADDRESS":               "localhost:6379",
		"STOREFRONT_INTEGRATION.RESEND_API_KEY":  "re_test",
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, float64(DefaultRateLimit), cfg.Server.RateLimit)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "local", cfg.Observability.Environment)
}

func TestLoadConfig_MissingDatabaseHost(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STOREFRONT_DATABASE.HOST", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestObservabilityConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ObservabilityConfig)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *ObservabilityConfig) {},
		},
		{
			name:    "unknown level",
			mutate:  func(c *ObservabilityConfig) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "negative slow query threshold",
			mutate:  func(c *ObservabilityConfig) { c.Logging.SlowQueryThreshold = -time.Second },
			wantErr: true,
		},
		{
			name:    "empty service name",
			mutate:  func(c *ObservabilityConfig) { c.ServiceName = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultObservabilityConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	c := DefaultObservabilityConfig()
	c.Logging.Level = ""

	c.Environment = "production"
	assert.Equal(t, "info", c.GetLogLevel())

	c.Environment = "development"
	assert.Equal(t, "debug", c.GetLogLevel())

	c.Logging.Level = "warn"
	assert.Equal(t, "warn", c.GetLogLevel())
}

func TestObservabilityConfig_HealthCheckEnabled(t *testing.T) {
	c := DefaultObservabilityConfig()
	assert.True(t, c.HealthCheckEnabled("database"))
	assert.True(t, c.HealthCheckEnabled("redis"))
	assert.False(t, c.HealthCheckEnabled("kafka"))

	c.HealthChecks.Checks = nil
	assert.True(t, c.HealthCheckEnabled("kafka"))

	c.HealthChecks.Enabled = false
	assert.False(t, c.HealthCheckEnabled("database"))
}
