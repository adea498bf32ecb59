package ports

// NoticeLevel is the severity of a user-facing progress message.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeWarning
	NoticeError
)

// ProgressSink delivers progress messages for one command invocation.
type ProgressSink interface {
	// Update replaces the current status message.
	Update(level NoticeLevel, text string) error

	// Send posts an additional message.
	Send(level NoticeLevel, text string) error
}
