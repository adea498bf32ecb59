package domain

import "time"

// DurationPolicy rejects tracks longer than a configured maximum.
// A zero Max disables the check.
type DurationPolicy struct {
	Max time.Duration
}

// Allows reports whether the track may be enqueued.
// Streams have no meaningful length and are always allowed.
func (p DurationPolicy) Allows(track *Track) bool {
	if p.Max <= 0 || track.IsStream {
		return true
	}
	// Compare whole seconds so a 4:00.4 track passes a 4:00 limit.
	return track.Duration.Round(time.Second) <= p.Max
}

// FormattedMax returns the limit formatted like track durations.
func (p DurationPolicy) FormattedMax() string {
	return FormatDuration(p.Max)
}
