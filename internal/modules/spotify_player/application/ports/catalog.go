package ports

import (
	"context"

	"github.com/sglre6355/spotilink/internal/modules/spotify_player/domain"
)

// CredentialProvider supplies bearer tokens for the music catalog.
type CredentialProvider interface {
	// Credential returns a usable credential, refreshing it when needed.
	Credential(ctx context.Context) (domain.AccessCredential, error)

	// Enabled reports whether client credentials are configured.
	Enabled() bool

	// Invalidate discards the cached credential if it still holds token.
	Invalidate(token string)
}

// Catalog reads tracks and playlists from the music catalog.
type Catalog interface {
	// FetchTrack returns the title and primary artist of a track.
	FetchTrack(ctx context.Context, token, id string) (domain.CatalogItem, error)

	// FetchPlaylist returns the playlist header.
	FetchPlaylist(ctx context.Context, token, id string) (domain.PlaylistInfo, error)

	// FetchPlaylistItems pages through all playlist entries.
	// Any page error aborts the fetch and no items are returned.
	FetchPlaylistItems(ctx context.Context, token string, info domain.PlaylistInfo) ([]domain.CatalogItem, error)
}
