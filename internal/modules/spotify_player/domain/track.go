package domain

import (
	"fmt"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/google/uuid"
)

// TrackID is a unique identifier for a track in a queue.
type TrackID string

// RequestMetadata records who asked for a track and with which query.
type RequestMetadata struct {
	Query       string // Search text the track was resolved from
	RequesterID snowflake.ID
	TrackURI    string
}

// Track represents a playable audio track.
type Track struct {
	ID         TrackID
	Identifier string // Source-specific identifier, e.g. a YouTube video ID
	Encoded    string // Lavalink encoded track data
	Title      string
	Artist     string
	Duration   time.Duration
	URI        string
	SourceName string // e.g., "youtube", "soundcloud"
	IsStream   bool
	Request    RequestMetadata
	EnqueuedAt time.Time
}

// NewQueuedTrack copies a resolved track and attaches request metadata and a fresh queue ID.
func NewQueuedTrack(resolved Track, query string, requesterID snowflake.ID) *Track {
	track := resolved
	track.ID = TrackID(uuid.NewString())
	track.Request = RequestMetadata{
		Query:       query,
		RequesterID: requesterID,
		TrackURI:    resolved.URI,
	}
	track.EnqueuedAt = time.Now().UTC()
	return &track
}

// FormattedDuration returns the duration as mm:ss or hh:mm:ss, or "LIVE" for streams.
func (t *Track) FormattedDuration() string {
	if t.IsStream {
		return "LIVE"
	}
	return FormatDuration(t.Duration)
}

// FormatDuration renders d as mm:ss, or hh:mm:ss when it is an hour or longer.
func FormatDuration(d time.Duration) string {
	totalSeconds := int(d.Round(time.Second).Seconds())
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
