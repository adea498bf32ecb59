package ports

import (
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/domain"
)

// Notifier posts playback announcements to a guild's text channel.
type Notifier interface {
	SendNowPlaying(channelID snowflake.ID, track *domain.Track) error
}
