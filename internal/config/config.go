package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Discord struct {
		// Bot token; startup aborts before any network activity without it.
		BotToken string `env:"BOT_TOKEN,required,notEmpty"`

		ServerName string `env:"SERVER_NAME" envDefault:"MyServer"`
		Activity   string `env:"BOT_ACTIVITY" envDefault:"Coded by NotTheRealEpic"`

		// Status channel/message for the uptime heartbeat. When either is
		// empty the heartbeat is skipped silently.
		StatusChannelID string `env:"STATUS_CHANNEL_ID"`
		StatusMessageID string `env:"STATUS_MESSAGE_ID"`

		// Role names allowed to run staff commands, case-insensitive.
		AllowedRoles []string `env:"ALLOWED_ROLES" envSeparator:"," envDefault:"root,mod"`
	}

	Postgres struct {
		URL             string        `env:"DATABASE_URL,required,notEmpty"`
		AutoMigrate     bool          `env:"DB_AUTO_MIGRATE" envDefault:"false"`
		MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
		ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	}

	Redis struct {
		Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	// Display timezone for embeds (end times, uptime timestamps).
	Timezone string `env:"TIMEZONE" envDefault:"Asia/Kolkata"`

	ScanInterval      time.Duration `env:"SCAN_INTERVAL" envDefault:"30s"`
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL" envDefault:"20s"`

	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	// Missing .env is fine; in production variables are set directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
