package ports

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/domain"
)

// PlaybackQueue accepts resolved tracks for a guild.
type PlaybackQueue interface {
	// AddTrack appends the track and returns its position.
	// 0 means it started playing immediately.
	AddTrack(ctx context.Context, guildID snowflake.ID, track *domain.Track) (int, error)
}
