package spotify_player

import (
	"time"

	"github.com/sglre6355/spotilink/internal/modules/spotify_player/domain"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/infrastructure"
)

// Config holds the spotify player module configuration.
type Config struct {
	LavalinkAddress  string `env:"LAVALINK_ADDRESS,notEmpty"`
	LavalinkPassword string `env:"LAVALINK_PASSWORD,notEmpty"`
	LavalinkSecure   bool   `env:"LAVALINK_SECURE"`

	// Without both the /spotify command reports itself as disabled.
	SpotifyClientID     string `env:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret string `env:"SPOTIFY_CLIENT_SECRET"`

	SpotifyTokenURL  string `env:"SPOTIFY_TOKEN_URL"`
	SpotifyAPIURL    string `env:"SPOTIFY_API_URL"`
	SpotifyURLDomain string `env:"SPOTIFY_URL_DOMAIN" envDefault:"open.spotify.com"`

	SearchSource      domain.SearchSource `env:"SEARCH_SOURCE" envDefault:"ytsearch"`
	MaxTrackDuration  time.Duration       `env:"MAX_TRACK_DURATION"`
	SearchConcurrency int                 `env:"SEARCH_CONCURRENCY"`
}

func (c *Config) credentialConfig() infrastructure.CredentialConfig {
	return infrastructure.CredentialConfig{
		ClientID:     c.SpotifyClientID,
		ClientSecret: c.SpotifyClientSecret,
		TokenURL:     c.SpotifyTokenURL,
	}
}
