package bot

import (
	"strings"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		token       string
		guildID     string
		wantGuildID string
		wantErr     string
	}{
		{
			name:  "global commands",
			token: "test-token-123",
		},
		{
			name:        "guild commands",
			token:       "test-token-123",
			guildID:     "123456789012345678",
			wantGuildID: "123456789012345678",
		},
		{
			name:    "missing token",
			wantErr: "DISCORD_TOKEN",
		},
		{
			name:    "malformed guild id",
			token:   "test-token-123",
			guildID: "my-server",
			wantErr: "DISCORD_COMMAND_GUILD_ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DISCORD_TOKEN", tt.token)
			t.Setenv("DISCORD_COMMAND_GUILD_ID", tt.guildID)

			cfg, err := LoadConfig()

			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error mentioning %s, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.DiscordToken != tt.token {
				t.Errorf("DiscordToken = %q, want %q", cfg.DiscordToken, tt.token)
			}
			if cfg.CommandGuildID != tt.wantGuildID {
				t.Errorf("CommandGuildID = %q, want %q", cfg.CommandGuildID, tt.wantGuildID)
			}
		})
	}
}
