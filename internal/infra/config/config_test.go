package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "test-token")
	// Clear everything else so host env cannot leak into assertions.
	for _, key := range []string{
		"PORT", "PARTICIPANTS", "ANCHOR_DATE", "SLOT_SPAN_DAYS",
		"REMINDER_CRON", "POLL_INTERVAL", "LOG_LEVEL", "ENVIRONMENT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.TelegramToken)
	assert.Equal(t, 10000, cfg.Port)
	assert.Equal(t, []string{"Аня", "Ларик", "Маша"}, cfg.Participants)
	assert.Equal(t, time.Date(2025, time.June, 14, 0, 0, 0, 0, time.Local), cfg.AnchorDate)
	assert.Equal(t, 3, cfg.SlotSpanDays)
	assert.Equal(t, "0 12,18,21 * * *", cfg.ReminderCron)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoadMissingToken(t *testing.T) {
	setRequired(t)
	t.Setenv("TELEGRAM_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "8080")
	t.Setenv("PARTICIPANTS", "Alice, Bob")
	t.Setenv("ANCHOR_DATE", "2024-01-01")
	t.Setenv("SLOT_SPAN_DAYS", "2")
	t.Setenv("POLL_INTERVAL", "45s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, []string{"Alice", "Bob"}, cfg.Participants)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local), cfg.AnchorDate)
	assert.Equal(t, 2, cfg.SlotSpanDays)
	assert.Equal(t, 45*time.Second, cfg.PollInterval)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad port", "PORT", "nope"},
		{"port out of range", "PORT", "70000"},
		{"bad anchor date", "ANCHOR_DATE", "14.06.2025"},
		{"zero slot span", "SLOT_SPAN_DAYS", "0"},
		{"bad poll interval", "POLL_INTERVAL", "soon"},
		{"poll interval too slow", "POLL_INTERVAL", "5m"},
		{"empty participant", "PARTICIPANTS", "Аня,,Маша"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
