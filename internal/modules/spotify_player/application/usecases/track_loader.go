package usecases

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/application/ports"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/domain"
)

// LoadTrackInput contains the input for loading one search query.
type LoadTrackInput struct {
	GuildID     snowflake.ID
	RequesterID snowflake.ID
	Query       domain.SearchQuery
}

// TrackLoaderService runs one search query against the backend and enqueues the match.
type TrackLoaderService struct {
	trackResolver ports.TrackResolver
	queue         ports.PlaybackQueue
	policy        domain.DurationPolicy
}

// NewTrackLoaderService creates a new TrackLoaderService.
func NewTrackLoaderService(
	trackResolver ports.TrackResolver,
	queue ports.PlaybackQueue,
	policy domain.DurationPolicy,
) *TrackLoaderService {
	return &TrackLoaderService{
		trackResolver: trackResolver,
		queue:         queue,
		policy:        policy,
	}
}

// Policy returns the duration policy applied to matches.
func (s *TrackLoaderService) Policy() domain.DurationPolicy {
	return s.policy
}

// LoadTrack resolves the query and hands an accepted match to the playback queue.
// It always returns exactly one terminal outcome.
func (s *TrackLoaderService) LoadTrack(ctx context.Context, input LoadTrackInput) domain.LoadOutcome {
	result, err := s.trackResolver.LoadTracks(ctx, input.Query.BackendQuery())
	if err != nil {
		return domain.LoadOutcome{Kind: domain.OutcomeLoadError, Message: err.Error()}
	}

	switch result.Type {
	case ports.LoadTypeEmpty:
		return domain.LoadOutcome{Kind: domain.OutcomeNotFound}
	case ports.LoadTypeError:
		outcome := domain.LoadOutcome{Kind: domain.OutcomeLoadError}
		if result.Exception != nil {
			outcome.Message = result.Exception.Message
			outcome.Common = result.Exception.Common
		}
		return outcome
	}

	// Search and playlist results are represented by their first track.
	if len(result.Tracks) == 0 {
		return domain.LoadOutcome{Kind: domain.OutcomeNotFound}
	}
	track := domain.NewQueuedTrack(
		trackFromInfo(result.Tracks[0]),
		input.Query.Text,
		input.RequesterID,
	)

	if !s.policy.Allows(track) {
		return domain.LoadOutcome{Kind: domain.OutcomeRejected, Track: track}
	}

	position, err := s.queue.AddTrack(ctx, input.GuildID, track)
	if err != nil {
		return domain.LoadOutcome{Kind: domain.OutcomeLoadError, Track: track, Message: err.Error()}
	}

	return domain.LoadOutcome{Kind: domain.OutcomeAdded, Track: track, Position: position}
}

func trackFromInfo(info *ports.TrackInfo) domain.Track {
	return domain.Track{
		Identifier: info.Identifier,
		Encoded:    info.Encoded,
		Title:      info.Title,
		Artist:     info.Artist,
		Duration:   info.Duration,
		URI:        info.URI,
		SourceName: info.SourceName,
		IsStream:   info.IsStream,
	}
}
