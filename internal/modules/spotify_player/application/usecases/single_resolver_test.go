package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sglre6355/spotilink/internal/modules/spotify_player/application/ports"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/domain"
)

func TestSingleResolver_ResolveOne(t *testing.T) {
	tests := []struct {
		name        string
		resolver    *mockTrackResolver
		queue       *mockQueue
		policy      domain.DurationPolicy
		wantKind    domain.OutcomeKind
		wantMessage string
		wantLevel   ports.NoticeLevel
		wantQueued  int
	}{
		{
			name:        "added and playing",
			resolver:    &mockTrackResolver{loadResult: searchResult(mockTrackInfo("Song", 3*time.Minute+5*time.Second))},
			queue:       &mockQueue{},
			wantKind:    domain.OutcomeAdded,
			wantMessage: "**Song** (03:05) has been added.",
			wantLevel:   ports.NoticeSuccess,
			wantQueued:  1,
		},
		{
			name:     "added behind current track",
			resolver: &mockTrackResolver{loadResult: searchResult(mockTrackInfo("Song", time.Minute))},
			queue: &mockQueue{tracks: []*domain.Track{
				mockTrack("1"), mockTrack("2"), mockTrack("3"),
			}},
			wantKind:    domain.OutcomeAdded,
			wantMessage: "**Song** (01:00) has been added at position 3.",
			wantLevel:   ports.NoticeSuccess,
			wantQueued:  4,
		},
		{
			name:        "too long",
			resolver:    &mockTrackResolver{loadResult: searchResult(mockTrackInfo("Epic", 12*time.Minute))},
			queue:       &mockQueue{},
			policy:      domain.DurationPolicy{Max: 10 * time.Minute},
			wantKind:    domain.OutcomeRejected,
			wantMessage: "**Epic** is longer than the maximum allowed length: 12:00 > 10:00",
			wantLevel:   ports.NoticeWarning,
		},
		{
			name:        "no matches",
			resolver:    &mockTrackResolver{loadResult: &ports.LoadResult{Type: ports.LoadTypeEmpty}},
			queue:       &mockQueue{},
			wantKind:    domain.OutcomeNotFound,
			wantMessage: "No matches found.",
			wantLevel:   ports.NoticeWarning,
		},
		{
			name: "common error shows detail",
			resolver: &mockTrackResolver{loadResult: &ports.LoadResult{
				Type:      ports.LoadTypeError,
				Exception: &ports.LoadException{Message: "This video is unavailable", Common: true},
			}},
			queue:       &mockQueue{},
			wantKind:    domain.OutcomeLoadError,
			wantMessage: "Error loading track: This video is unavailable",
			wantLevel:   ports.NoticeError,
		},
		{
			name: "uncommon error hides detail",
			resolver: &mockTrackResolver{loadResult: &ports.LoadResult{
				Type:      ports.LoadTypeError,
				Exception: &ports.LoadException{Message: "java.lang.NullPointerException"},
			}},
			queue:       &mockQueue{},
			wantKind:    domain.OutcomeLoadError,
			wantMessage: "Error loading track.",
			wantLevel:   ports.NoticeError,
		},
		{
			name:        "transport error hides detail",
			resolver:    &mockTrackResolver{loadErr: errors.New("dial tcp: connection refused")},
			queue:       &mockQueue{},
			wantKind:    domain.OutcomeLoadError,
			wantMessage: "Error loading track.",
			wantLevel:   ports.NoticeError,
		},
		{
			name:        "queue failure",
			resolver:    &mockTrackResolver{loadResult: searchResult(mockTrackInfo("Song", time.Minute))},
			queue:       &mockQueue{addErr: ErrNotConnected},
			wantKind:    domain.OutcomeLoadError,
			wantMessage: "Error loading track.",
			wantLevel:   ports.NoticeError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := NewTrackLoaderService(tt.resolver, tt.queue, tt.policy)
			single := NewSingleResolver(loader)
			sink := &mockSink{}

			outcome := single.ResolveOne(context.Background(), SingleInput{
				GuildID:     1,
				RequesterID: 2,
				Query:       domain.SearchQuery{Text: "Song Band", Source: domain.SourceYouTube},
			}, sink)

			if outcome.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", outcome.Kind, tt.wantKind)
			}
			if len(sink.updates) != 2 {
				t.Fatalf("expected 2 progress updates, got %d", len(sink.updates))
			}
			if sink.updates[0].text != "Loading: Song Band" {
				t.Errorf("first update = %q, want %q", sink.updates[0].text, "Loading: Song Band")
			}
			last := sink.updates[1]
			if last.text != tt.wantMessage {
				t.Errorf("result message = %q, want %q", last.text, tt.wantMessage)
			}
			if last.level != tt.wantLevel {
				t.Errorf("result level = %v, want %v", last.level, tt.wantLevel)
			}
			if len(sink.sends) != 0 {
				t.Errorf("expected no follow-up messages, got %d", len(sink.sends))
			}
			if got := len(tt.queue.tracks); got != tt.wantQueued {
				t.Errorf("queued tracks = %d, want %d", got, tt.wantQueued)
			}
		})
	}
}

func TestSingleResolver_SinkErrorsDoNotChangeOutcome(t *testing.T) {
	loader := NewTrackLoaderService(
		&mockTrackResolver{loadResult: searchResult(mockTrackInfo("Song", time.Minute))},
		&mockQueue{},
		domain.DurationPolicy{},
	)
	sink := &mockSink{err: errors.New("unknown interaction")}

	outcome := NewSingleResolver(loader).ResolveOne(context.Background(), SingleInput{
		Query: domain.SearchQuery{Text: "Song", Source: domain.SourceYouTube},
	}, sink)

	if outcome.Kind != domain.OutcomeAdded {
		t.Errorf("Kind = %v, want %v", outcome.Kind, domain.OutcomeAdded)
	}
}
