package domain

// OutcomeKind is the terminal state of resolving one search query.
type OutcomeKind int

const (
	// OutcomeAdded means the track was handed to the playback queue.
	OutcomeAdded OutcomeKind = iota
	// OutcomeRejected means the track exceeded the duration limit.
	OutcomeRejected
	// OutcomeNotFound means the backend returned no match.
	OutcomeNotFound
	// OutcomeLoadError means the backend (or the queue) failed.
	OutcomeLoadError
)

// String returns a human-readable representation of the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAdded:
		return "added"
	case OutcomeRejected:
		return "rejected"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeLoadError:
		return "load_error"
	default:
		return "unknown"
	}
}

// LoadOutcome is the result of resolving one query.
type LoadOutcome struct {
	Kind OutcomeKind

	// Track is the matched track for OutcomeAdded and OutcomeRejected.
	Track *Track

	// Position is the playback queue position for OutcomeAdded (0 = playing now).
	Position int

	// Message is the failure detail for OutcomeLoadError.
	Message string

	// Common is true when the backend classified the failure as an expected one
	// whose Message may be shown to users.
	Common bool
}

// Succeeded reports whether the outcome counts as a success in a batch.
func (o LoadOutcome) Succeeded() bool {
	return o.Kind == OutcomeAdded
}

// BatchSummary counts the outcomes of a batch resolution.
type BatchSummary struct {
	SuccessCount int
	FailCount    int
}

// Record adds one outcome to the summary.
func (s *BatchSummary) Record(outcome LoadOutcome) {
	if outcome.Succeeded() {
		s.SuccessCount++
	} else {
		s.FailCount++
	}
}

// Total returns the number of recorded outcomes.
func (s BatchSummary) Total() int {
	return s.SuccessCount + s.FailCount
}
