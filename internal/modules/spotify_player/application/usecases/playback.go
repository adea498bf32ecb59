package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/application/ports"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/domain"
)

// TrackEndInput contains the input for the HandleTrackEnd use case.
type TrackEndInput struct {
	GuildID snowflake.ID
	Reason  domain.TrackEndReason
}

// PlaybackService owns the per-guild queues and starts playback.
type PlaybackService struct {
	mu          sync.Mutex
	repo        domain.PlayerStateRepository
	audioPlayer ports.AudioPlayer
	notifier    ports.Notifier // may be nil
}

// nowPlaying is an announcement collected under the lock and sent after it.
type nowPlaying struct {
	guildID   snowflake.ID
	channelID snowflake.ID
	track     *domain.Track
}

// NewPlaybackService creates a new PlaybackService.
// A nil notifier disables "now playing" announcements.
func NewPlaybackService(
	repo domain.PlayerStateRepository,
	audioPlayer ports.AudioPlayer,
	notifier ports.Notifier,
) *PlaybackService {
	return &PlaybackService{
		repo:        repo,
		audioPlayer: audioPlayer,
		notifier:    notifier,
	}
}

// AddTrack appends a track to the guild's queue.
// Returns 0 when the player was idle and the track started playing,
// otherwise the track's 1-based position among upcoming tracks.
func (p *PlaybackService) AddTrack(
	ctx context.Context,
	guildID snowflake.ID,
	track *domain.Track,
) (int, error) {
	position, started, err := p.enqueue(ctx, guildID, track)
	p.announce(started)
	return position, err
}

func (p *PlaybackService) enqueue(
	ctx context.Context,
	guildID snowflake.ID,
	track *domain.Track,
) (int, *nowPlaying, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	state, err := p.getState(ctx, guildID)
	if err != nil {
		return 0, nil, err
	}

	position := state.Queue.Append(track)
	if position != 0 {
		return position, nil, nil
	}

	if err := p.audioPlayer.Play(ctx, guildID, track); err != nil {
		// Nothing else can be upcoming while this track was current, so this goes idle.
		state.Queue.Advance()
		return 0, nil, fmt.Errorf("failed to start playback: %w", err)
	}

	return 0, newNowPlaying(state, track), nil
}

// HandleTrackEnd advances the queue when a track finished on its own.
// Tracks that fail to start are skipped.
func (p *PlaybackService) HandleTrackEnd(ctx context.Context, input TrackEndInput) error {
	if !input.Reason.ShouldAdvanceQueue() {
		return nil
	}

	started, err := p.advance(ctx, input.GuildID)
	p.announce(started)
	return err
}

func (p *PlaybackService) advance(ctx context.Context, guildID snowflake.ID) (*nowPlaying, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	state, err := p.getState(ctx, guildID)
	if err != nil {
		if errors.Is(err, ErrNotConnected) {
			// The bot left voice before the end event arrived.
			return nil, nil
		}
		return nil, err
	}

	for next := state.Queue.Advance(); next != nil; next = state.Queue.Advance() {
		err := p.audioPlayer.Play(ctx, guildID, next)
		if err == nil {
			return newNowPlaying(state, next), nil
		}
		slog.Warn("failed to play next track, skipping",
			"guild", guildID,
			"track", next.Title,
			"error", err,
		)
	}

	return nil, nil
}

func newNowPlaying(state *domain.PlayerState, track *domain.Track) *nowPlaying {
	return &nowPlaying{
		guildID:   state.GuildID(),
		channelID: state.NotificationChannelID(),
		track:     track,
	}
}

// announce posts a "now playing" message. Failures are logged only.
func (p *PlaybackService) announce(started *nowPlaying) {
	if started == nil || p.notifier == nil || started.channelID == 0 {
		return
	}
	if err := p.notifier.SendNowPlaying(started.channelID, started.track); err != nil {
		slog.Warn("failed to send now playing notification",
			"guild", started.guildID,
			"channel", started.channelID,
			"error", err,
		)
	}
}

// Queue returns the tracks of the guild's queue, current track first.
func (p *PlaybackService) Queue(ctx context.Context, guildID snowflake.ID) ([]*domain.Track, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	state, err := p.getState(ctx, guildID)
	if err != nil {
		return nil, err
	}

	tracks := make([]*domain.Track, 0, state.Queue.Len())
	if current := state.Queue.Current(); current != nil {
		tracks = append(tracks, current)
	}
	return append(tracks, state.Queue.Upcoming()...), nil
}

func (p *PlaybackService) getState(
	ctx context.Context,
	guildID snowflake.ID,
) (*domain.PlayerState, error) {
	state, err := p.repo.Get(ctx, guildID)
	if errors.Is(err, domain.ErrPlayerStateNotFound) {
		return nil, ErrNotConnected
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

// Ensure PlaybackService implements ports.PlaybackQueue.
var _ ports.PlaybackQueue = (*PlaybackService)(nil)
