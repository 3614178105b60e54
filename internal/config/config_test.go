package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("REMINDER_WINDOW", "")
	t.Setenv("REMINDER_HORIZON", "")
	t.Setenv("REMINDER_SWEEP_INTERVAL", "")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.ReminderWindow)
	assert.Equal(t, 100, cfg.ReminderHorizon)
	assert.Equal(t, time.Duration(0), cfg.ReminderSweepInterval)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("REMINDER_WINDOW", "12h")
	t.Setenv("REMINDER_HORIZON", "50")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("ENVIRONMENT", "production")

	cfg := Load()

	assert.Equal(t, 12*time.Hour, cfg.ReminderWindow)
	assert.Equal(t, 50, cfg.ReminderHorizon)
	assert.True(t, cfg.MinIOUseSSL)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("REMINDER_HORIZON", "lots")
	t.Setenv("JWT_ACCESS_EXPIRY", "soon")

	cfg := Load()

	assert.Equal(t, 100, cfg.ReminderHorizon)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
}
