package bot

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

// Supported log formats.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// NewLogHandler builds the slog handler used as the process default.
// JSON is meant for deployments; text renders through charmbracelet/log for terminals.
func NewLogHandler(w io.Writer, format, level string) (slog.Handler, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	switch strings.ToLower(format) {
	case LogFormatJSON, "":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}), nil
	case LogFormatText:
		return log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			Level:           log.Level(lvl),
		}), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
