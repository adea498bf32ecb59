package ports

import (
	"time"
)

// LoadResult represents the result of loading tracks.
type LoadResult struct {
	Type      LoadType
	Tracks    []*TrackInfo
	Exception *LoadException // Set when Type is LoadTypeError
}

// LoadType represents the type of load result.
type LoadType string

const (
	LoadTypeTrack    LoadType = "track"
	LoadTypePlaylist LoadType = "playlist"
	LoadTypeSearch   LoadType = "search"
	LoadTypeEmpty    LoadType = "empty"
	LoadTypeError    LoadType = "error"
)

// LoadException describes a failed load.
type LoadException struct {
	Message string
	// Common is true for expected failures whose message may be shown to users.
	Common bool
}

// TrackInfo contains information about a loaded track.
type TrackInfo struct {
	Identifier string // Unique identifier from Lavalink
	Encoded    string
	Title      string
	Artist     string
	Duration   time.Duration
	URI        string
	SourceName string // e.g., "youtube", "soundcloud"
	IsStream   bool
}
