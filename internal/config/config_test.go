package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DB_DRIVER", "TAX_RATE", "LOCK_TIMEOUT_MS", "REQUEST_TIMEOUT_SECONDS",
		"REPORT_TIMEZONE", "CORS_ALLOWED_ORIGINS", "AUTO_MIGRATE", "JWT_SECRET", "DATABASE_URL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "0.08", cfg.TaxRate.String())
	assert.Equal(t, 5*time.Second, cfg.LockTimeout)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.UTC, cfg.ReportLocation)
	assert.True(t, cfg.AllowAllOrigins())
	assert.False(t, cfg.AutoMigrate)
	assert.Empty(t, cfg.JWTSecret)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "MEMORY")
	t.Setenv("TAX_RATE", "0.1")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.test, https://b.test")
	t.Setenv("AUTO_MIGRATE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.DBDriver)
	assert.Equal(t, "0.1", cfg.TaxRate.String())
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.AllowedOrigins)
	assert.False(t, cfg.AllowAllOrigins())
	assert.True(t, cfg.AutoMigrate)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PORT", "abc"},
		{"DB_DRIVER", "sqlite"},
		{"TAX_RATE", "1"},
		{"TAX_RATE", "-0.01"},
		{"TAX_RATE", "oito"},
		{"LOCK_TIMEOUT_MS", "-5"},
		{"REPORT_TIMEZONE", "Mars/Olympus"},
		{"DB_PORT", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
