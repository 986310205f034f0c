package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "token-123")
	t.Setenv("DATABASE_URL", "postgres://localhost/giveaways")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "token-123", cfg.Discord.BotToken)
	require.Equal(t, "MyServer", cfg.Discord.ServerName)
	require.Equal(t, []string{"root", "mod"}, cfg.Discord.AllowedRoles)
	require.Equal(t, "Asia/Kolkata", cfg.Timezone)
	require.Equal(t, 30*time.Second, cfg.ScanInterval)
	require.Equal(t, 20*time.Second, cfg.HeartbeatInterval)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.False(t, cfg.Postgres.AutoMigrate)
}

func TestLoadMissingToken(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/giveaways")
	t.Setenv("BOT_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadMissingDatabaseURL(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token-123")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ALLOWED_ROLES", "Admin,Giveaway Team")
	t.Setenv("SCAN_INTERVAL", "45s")
	t.Setenv("STATUS_CHANNEL_ID", "123")
	t.Setenv("STATUS_MESSAGE_ID", "456")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"Admin", "Giveaway Team"}, cfg.Discord.AllowedRoles)
	require.Equal(t, 45*time.Second, cfg.ScanInterval)
	require.Equal(t, "123", cfg.Discord.StatusChannelID)
	require.Equal(t, "456", cfg.Discord.StatusMessageID)
}
