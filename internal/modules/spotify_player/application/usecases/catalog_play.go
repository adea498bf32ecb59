package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/disgoorg/snowflake/v2"
	"github.com/google/uuid"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/application/ports"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/domain"
)

// VoicePresence connects the bot before tracks are enqueued.
type VoicePresence interface {
	Ensure(ctx context.Context, input EnsureInput) error
}

// PlayInput contains the input for the Play use case.
type PlayInput struct {
	GuildID               snowflake.ID
	RequesterID           snowflake.ID
	NotificationChannelID snowflake.ID
	URL                   string
}

// PlayOutput contains the result of the Play use case.
type PlayOutput struct {
	Kind domain.CatalogKind

	// Outcome is set for a single track.
	Outcome *domain.LoadOutcome

	// Summary and Playlist are set for a playlist.
	Summary  *domain.BatchSummary
	Playlist *domain.PlaylistInfo
}

// CatalogPlayService turns a catalog URL into queued tracks.
type CatalogPlayService struct {
	credentials ports.CredentialProvider
	catalog     ports.Catalog
	parser      *domain.CatalogURLParser
	voice       VoicePresence
	single      *SingleResolver
	batch       *BatchResolver
	source      domain.SearchSource
}

// NewCatalogPlayService creates a new CatalogPlayService.
func NewCatalogPlayService(
	credentials ports.CredentialProvider,
	catalog ports.Catalog,
	parser *domain.CatalogURLParser,
	voice VoicePresence,
	single *SingleResolver,
	batch *BatchResolver,
	source domain.SearchSource,
) *CatalogPlayService {
	return &CatalogPlayService{
		credentials: credentials,
		catalog:     catalog,
		parser:      parser,
		voice:       voice,
		single:      single,
		batch:       batch,
		source:      source,
	}
}

// Play resolves the URL and enqueues what it points at.
// Progress and the final result are reported through sink.
func (s *CatalogPlayService) Play(
	ctx context.Context,
	input PlayInput,
	sink ports.ProgressSink,
) (*PlayOutput, error) {
	logger := slog.With(
		"request_id", uuid.NewString(),
		"guild", input.GuildID,
		"user", input.RequesterID,
	)

	if !s.credentials.Enabled() {
		return nil, domain.ErrCatalogDisabled
	}

	ref, err := s.parser.Parse(input.URL)
	if err != nil {
		return nil, err
	}

	if err := s.voice.Ensure(ctx, EnsureInput{
		GuildID:               input.GuildID,
		UserID:                input.RequesterID,
		NotificationChannelID: input.NotificationChannelID,
	}); err != nil {
		return nil, err
	}

	cred, err := s.credentials.Credential(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info("resolving catalog reference", "kind", ref.Kind.String(), "id", ref.ID)

	var output *PlayOutput
	switch ref.Kind {
	case domain.CatalogKindPlaylist:
		output, err = s.playPlaylist(ctx, cred.Token, ref, input, sink)
	default:
		output, err = s.playTrack(ctx, cred.Token, ref, input, sink)
	}

	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			s.credentials.Invalidate(cred.Token)
		}
		logger.Error("catalog request failed", "kind", ref.Kind.String(), "error", err)
		return nil, err
	}

	return output, nil
}

func (s *CatalogPlayService) playTrack(
	ctx context.Context,
	token string,
	ref domain.CatalogReference,
	input PlayInput,
	sink ports.ProgressSink,
) (*PlayOutput, error) {
	item, err := s.catalog.FetchTrack(ctx, token, ref.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch track %s: %w", ref.ID, err)
	}

	outcome := s.single.ResolveOne(ctx, SingleInput{
		GuildID:     input.GuildID,
		RequesterID: input.RequesterID,
		Query:       domain.NewSearchQuery(item, s.source),
	}, sink)

	return &PlayOutput{Kind: domain.CatalogKindTrack, Outcome: &outcome}, nil
}

func (s *CatalogPlayService) playPlaylist(
	ctx context.Context,
	token string,
	ref domain.CatalogReference,
	input PlayInput,
	sink ports.ProgressSink,
) (*PlayOutput, error) {
	info, err := s.catalog.FetchPlaylist(ctx, token, ref.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist %s: %w", ref.ID, err)
	}

	notify(sink.Update, ports.NoticeInfo,
		fmt.Sprintf("Loading playlist: %s (%d tracks)", info.Name, info.Total))

	items, err := s.catalog.FetchPlaylistItems(ctx, token, info)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist items %s: %w", ref.ID, err)
	}

	queries := make([]domain.SearchQuery, 0, len(items))
	for _, item := range items {
		queries = append(queries, domain.NewSearchQuery(item, s.source))
	}

	summary := s.batch.ResolveBatch(ctx, BatchInput{
		GuildID:     input.GuildID,
		RequesterID: input.RequesterID,
		Queries:     queries,
	})

	level := ports.NoticeSuccess
	if summary.FailCount > 0 {
		level = ports.NoticeWarning
	}
	notify(sink.Send, level, fmt.Sprintf(
		"Playlist loaded: %d tracks added successfully, %d failed to load.",
		summary.SuccessCount, summary.FailCount,
	))

	return &PlayOutput{
		Kind:     domain.CatalogKindPlaylist,
		Summary:  &summary,
		Playlist: &info,
	}, nil
}
