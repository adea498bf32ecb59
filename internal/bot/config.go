package bot

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
)

// Config holds the bot configuration loaded from environment variables.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,notEmpty"`

	// CommandGuildID registers slash commands in a single guild instead of globally.
	// Guild commands update immediately, which is handy while developing.
	CommandGuildID string `env:"DISCORD_COMMAND_GUILD_ID"`
}

// LoadConfig loads configuration from environment variables.
// Returns an error if required fields are missing or malformed.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse bot configuration: %w", err)
	}

	if cfg.CommandGuildID != "" {
		if _, err := snowflake.Parse(cfg.CommandGuildID); err != nil {
			return nil, fmt.Errorf("DISCORD_COMMAND_GUILD_ID must be a snowflake: %w", err)
		}
	}

	return cfg, nil
}
