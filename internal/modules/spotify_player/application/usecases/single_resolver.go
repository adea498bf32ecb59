package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/application/ports"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/domain"
)

// SingleInput contains the input for the ResolveOne use case.
type SingleInput struct {
	GuildID     snowflake.ID
	RequesterID snowflake.ID
	Query       domain.SearchQuery
}

// SingleResolver resolves one search query and reports the outcome to the user.
type SingleResolver struct {
	loader *TrackLoaderService
}

// NewSingleResolver creates a new SingleResolver.
func NewSingleResolver(loader *TrackLoaderService) *SingleResolver {
	return &SingleResolver{loader: loader}
}

// ResolveOne posts a loading notice, resolves the query and posts exactly one result message.
func (r *SingleResolver) ResolveOne(
	ctx context.Context,
	input SingleInput,
	sink ports.ProgressSink,
) domain.LoadOutcome {
	notify(sink.Update, ports.NoticeInfo, "Loading: "+input.Query.Text)

	outcome := r.loader.LoadTrack(ctx, LoadTrackInput(input))

	level, text := r.describe(outcome)
	notify(sink.Update, level, text)

	return outcome
}

func (r *SingleResolver) describe(outcome domain.LoadOutcome) (ports.NoticeLevel, string) {
	switch outcome.Kind {
	case domain.OutcomeAdded:
		if outcome.Position == 0 {
			return ports.NoticeSuccess, fmt.Sprintf("**%s** (%s) has been added.",
				outcome.Track.Title, outcome.Track.FormattedDuration())
		}
		return ports.NoticeSuccess, fmt.Sprintf("**%s** (%s) has been added at position %d.",
			outcome.Track.Title, outcome.Track.FormattedDuration(), outcome.Position)
	case domain.OutcomeRejected:
		return ports.NoticeWarning, fmt.Sprintf(
			"**%s** is longer than the maximum allowed length: %s > %s",
			outcome.Track.Title,
			outcome.Track.FormattedDuration(),
			r.loader.Policy().FormattedMax(),
		)
	case domain.OutcomeNotFound:
		return ports.NoticeWarning, "No matches found."
	default:
		if outcome.Common && outcome.Message != "" {
			return ports.NoticeError, "Error loading track: " + outcome.Message
		}
		return ports.NoticeError, "Error loading track."
	}
}

// notify delivers a progress message; delivery failures are logged and otherwise ignored.
func notify(deliver func(ports.NoticeLevel, string) error, level ports.NoticeLevel, text string) {
	if err := deliver(level, text); err != nil {
		slog.Warn("failed to deliver progress message", "error", err)
	}
}
