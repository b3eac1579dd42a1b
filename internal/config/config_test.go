package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "@every 1m", cfg.RemindSchedule)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 10*time.Second, cfg.Telegram.Timeout)
	assert.False(t, cfg.Telegram.Enabled())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("MESSAGE", "Account Suspended")
	t.Setenv("CUSTOMERS_FILE", "/tmp/customers.yaml")
	t.Setenv("REMIND_SCHEDULE", "0 9 * * MON")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-1001")
	t.Setenv("TELEGRAM_TIMEOUT", "3s")
	t.Setenv("TELEGRAM_DAILY_LIMIT", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "Account Suspended", cfg.Message)
	assert.Equal(t, "/tmp/customers.yaml", cfg.CustomersFile)
	assert.Equal(t, "0 9 * * MON", cfg.RemindSchedule)
	assert.True(t, cfg.Telegram.Enabled())
	assert.Equal(t, int64(-1001), cfg.Telegram.ChatID)
	assert.Equal(t, 3*time.Second, cfg.Telegram.Timeout)
	assert.Equal(t, 5, cfg.Telegram.DailyLimit)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}
