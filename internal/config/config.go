package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment. A .env
// file in the working directory is loaded first when present.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,required"`
	StoragePath  string `env:"STORAGE_PATH" envDefault:"data/bot_data.json"`
	BackupCount  int    `env:"STORAGE_BACKUPS" envDefault:"3"`

	DashboardAddr string `env:"DASHBOARD_ADDR" envDefault:":3000"`

	// YouTube upload notifications. Both must be set for the poller to run.
	YouTubeChannelID      string `env:"YOUTUBE_CHANNEL_ID"`
	NotificationChannelID string `env:"NOTIFICATION_CHANNEL_ID"`

	// Channels the dashboard announce relay is allowed to post to.
	AnnounceChannelIDs []string `env:"ANNOUNCE_CHANNEL_IDS" envSeparator:","`

	DeveloperID string `env:"DEVELOPER_ID"`

	// Automod: blocked terms matched after text normalization, plus an
	// optional invite-link block.
	AutomodTerms        []string `env:"AUTOMOD_TERMS" envSeparator:","`
	AutomodBlockInvites bool     `env:"AUTOMOD_BLOCK_INVITES" envDefault:"true"`

	WelcomeMessage string `env:"WELCOME_MESSAGE" envDefault:"Welcome to the server! Say hi in the chat to start earning XP."`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
}

// New loads .env (if any) and parses the environment.
func New() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
