package ports

import (
	"context"
)

// TrackResolver defines the interface for loading/searching tracks.
type TrackResolver interface {
	// LoadTracks runs a backend query such as "ytsearch:<text>".
	LoadTracks(ctx context.Context, query string) (*LoadResult, error)
}
