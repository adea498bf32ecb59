package usecases

import (
	"context"
	"log/slog"
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/domain"
	"golang.org/x/sync/errgroup"
)

// BatchInput contains the input for the ResolveBatch use case.
type BatchInput struct {
	GuildID     snowflake.ID
	RequesterID snowflake.ID
	Queries     []domain.SearchQuery
}

// BatchResolver resolves many search queries concurrently and reports only totals.
type BatchResolver struct {
	loader *TrackLoaderService

	// concurrency bounds in-flight searches; 0 dispatches all at once.
	concurrency int
}

// NewBatchResolver creates a new BatchResolver.
func NewBatchResolver(loader *TrackLoaderService, concurrency int) *BatchResolver {
	return &BatchResolver{
		loader:      loader,
		concurrency: concurrency,
	}
}

// ResolveBatch dispatches every query and waits for all of them.
// Tracks reach the queue in completion order, not input order.
// The returned counts always sum to len(input.Queries).
func (b *BatchResolver) ResolveBatch(ctx context.Context, input BatchInput) domain.BatchSummary {
	var (
		mu      sync.Mutex
		summary domain.BatchSummary
		g       errgroup.Group
	)
	if b.concurrency > 0 {
		g.SetLimit(b.concurrency)
	}

	for _, query := range input.Queries {
		g.Go(func() error {
			outcome := b.loader.LoadTrack(ctx, LoadTrackInput{
				GuildID:     input.GuildID,
				RequesterID: input.RequesterID,
				Query:       query,
			})

			slog.Debug("batch query resolved",
				"guild", input.GuildID,
				"query", query.Text,
				"outcome", outcome.Kind.String(),
			)

			mu.Lock()
			summary.Record(outcome)
			mu.Unlock()

			// Per-query failures are counted, never propagated.
			return nil
		})
	}
	_ = g.Wait()

	return summary
}
