package domain

// Queue holds the playing track and the tracks waiting behind it.
// Tracks are only appended; playback order is arrival order.
type Queue struct {
	current  *Track
	upcoming []*Track
}

// NewQueue creates a new empty Queue.
func NewQueue() Queue {
	return Queue{upcoming: make([]*Track, 0)}
}

// IsIdle returns true if nothing is playing.
func (q *Queue) IsIdle() bool {
	return q.current == nil
}

// Current returns the playing track, or nil when idle.
func (q *Queue) Current() *Track {
	return q.current
}

// Upcoming returns a copy of the tracks after the current one.
func (q *Queue) Upcoming() []*Track {
	result := make([]*Track, len(q.upcoming))
	copy(result, q.upcoming)
	return result
}

// Len returns the number of tracks including the current one.
func (q *Queue) Len() int {
	if q.current == nil {
		return len(q.upcoming)
	}
	return len(q.upcoming) + 1
}

// Append adds a track and returns its position.
// Position 0 means the queue was idle and the track became current;
// otherwise it is the 1-based position among upcoming tracks.
func (q *Queue) Append(track *Track) int {
	if q.current == nil {
		q.current = track
		return 0
	}
	q.upcoming = append(q.upcoming, track)
	return len(q.upcoming)
}

// Advance makes the next upcoming track current and returns it.
// Returns nil and goes idle when nothing is left.
func (q *Queue) Advance() *Track {
	if len(q.upcoming) == 0 {
		q.current = nil
		return nil
	}
	q.current = q.upcoming[0]
	q.upcoming = q.upcoming[1:]
	return q.current
}
