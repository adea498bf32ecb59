package usecases

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/application/ports"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/domain"
)

var errPlayFailed = errors.New("play failed")

func mockTrack(id string) *domain.Track {
	return &domain.Track{
		ID:       domain.TrackID(id),
		Encoded:  "encoded-" + id,
		Title:    "Track " + id,
		Artist:   "Artist",
		Duration: 3 * time.Minute,
	}
}

func mockTrackInfo(title string, duration time.Duration) *ports.TrackInfo {
	return &ports.TrackInfo{
		Identifier: "id-" + title,
		Encoded:    "encoded-" + title,
		Title:      title,
		Artist:     "Artist",
		Duration:   duration,
		URI:        "https://example.com/" + title,
		SourceName: "youtube",
	}
}

func searchResult(tracks ...*ports.TrackInfo) *ports.LoadResult {
	return &ports.LoadResult{Type: ports.LoadTypeSearch, Tracks: tracks}
}

type mockRepository struct {
	mu      sync.Mutex
	states  map[snowflake.ID]*domain.PlayerState
	deleted []snowflake.ID
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		states: make(map[snowflake.ID]*domain.PlayerState),
	}
}

func (m *mockRepository) Get(_ context.Context, guildID snowflake.ID) (*domain.PlayerState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.states[guildID]
	if !ok {
		return nil, domain.ErrPlayerStateNotFound
	}
	return state, nil
}

func (m *mockRepository) Save(_ context.Context, state *domain.PlayerState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.states[state.GuildID()] = state
	return nil
}

func (m *mockRepository) Delete(_ context.Context, guildID snowflake.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deleted = append(m.deleted, guildID)
	delete(m.states, guildID)
	return nil
}

// createConnectedState creates a PlayerState with the given IDs and saves it to the mock repository.
func (m *mockRepository) createConnectedState(
	guildID, voiceChannelID, notificationChannelID snowflake.ID,
) *domain.PlayerState {
	state := domain.NewPlayerState(guildID, voiceChannelID, notificationChannelID)
	_ = m.Save(context.Background(), state)
	return state
}

type mockAudioPlayer struct {
	mu      sync.Mutex
	played  []*domain.Track
	playErr error
	// failTitles makes Play fail only for these titles.
	failTitles map[string]bool
}

func (m *mockAudioPlayer) Play(_ context.Context, _ snowflake.ID, track *domain.Track) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.playErr != nil {
		return m.playErr
	}
	if m.failTitles[track.Title] {
		return errPlayFailed
	}
	m.played = append(m.played, track)
	return nil
}

type mockVoiceConnection struct {
	joinErr error
	joined  []snowflake.ID
}

func (m *mockVoiceConnection) JoinChannel(_ context.Context, _, channelID snowflake.ID) error {
	if m.joinErr != nil {
		return m.joinErr
	}
	m.joined = append(m.joined, channelID)
	return nil
}

type mockVoiceStateProvider struct {
	channels map[snowflake.ID]snowflake.ID // userID -> channelID
	err      error
}

func (m *mockVoiceStateProvider) GetUserVoiceChannel(
	_, userID snowflake.ID,
) (snowflake.ID, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.channels[userID], nil
}

// mockTrackResolver answers backend queries through loadFunc, or with loadResult/loadErr.
type mockTrackResolver struct {
	mu         sync.Mutex
	queries    []string
	loadErr    error
	loadResult *ports.LoadResult
	loadFunc   func(ctx context.Context, query string) (*ports.LoadResult, error)
}

func (m *mockTrackResolver) LoadTracks(ctx context.Context, query string) (*ports.LoadResult, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()

	if m.loadFunc != nil {
		return m.loadFunc(ctx, query)
	}
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.loadResult, nil
}

func (m *mockTrackResolver) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queries)
}

// mockQueue records enqueued tracks in arrival order.
type mockQueue struct {
	mu     sync.Mutex
	tracks []*domain.Track
	addErr error
	onAdd  func(track *domain.Track)
}

func (m *mockQueue) AddTrack(_ context.Context, _ snowflake.ID, track *domain.Track) (int, error) {
	m.mu.Lock()
	if m.addErr != nil {
		m.mu.Unlock()
		return 0, m.addErr
	}
	m.tracks = append(m.tracks, track)
	position := len(m.tracks) - 1
	onAdd := m.onAdd
	m.mu.Unlock()

	if onAdd != nil {
		onAdd(track)
	}
	return position, nil
}

func (m *mockQueue) queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]string, len(m.tracks))
	for i, t := range m.tracks {
		result[i] = t.Request.Query
	}
	return result
}

type notice struct {
	level ports.NoticeLevel
	text  string
}

type mockNotifier struct {
	mu         sync.Mutex
	channels   []snowflake.ID
	nowPlaying []string
	err        error
}

func (m *mockNotifier) SendNowPlaying(channelID snowflake.ID, track *domain.Track) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels = append(m.channels, channelID)
	m.nowPlaying = append(m.nowPlaying, track.Title)
	return m.err
}

type mockSink struct {
	mu      sync.Mutex
	updates []notice
	sends   []notice
	err     error
}

func (m *mockSink) Update(level ports.NoticeLevel, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, notice{level, text})
	return m.err
}

func (m *mockSink) Send(level ports.NoticeLevel, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sends = append(m.sends, notice{level, text})
	return m.err
}

func (m *mockSink) lastUpdate() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.updates) == 0 {
		return ""
	}
	return m.updates[len(m.updates)-1].text
}

type mockCredentials struct {
	enabled     bool
	token       string
	err         error
	calls       int
	invalidated []string
}

func (m *mockCredentials) Credential(_ context.Context) (domain.AccessCredential, error) {
	m.calls++
	if m.err != nil {
		return domain.AccessCredential{}, m.err
	}
	return domain.AccessCredential{Token: m.token, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (m *mockCredentials) Enabled() bool {
	return m.enabled
}

func (m *mockCredentials) Invalidate(token string) {
	m.invalidated = append(m.invalidated, token)
}

type mockCatalog struct {
	track       domain.CatalogItem
	trackErr    error
	playlist    domain.PlaylistInfo
	playlistErr error
	items       []domain.CatalogItem
	itemsErr    error
	tokens      []string
}

func (m *mockCatalog) FetchTrack(_ context.Context, token, _ string) (domain.CatalogItem, error) {
	m.tokens = append(m.tokens, token)
	return m.track, m.trackErr
}

func (m *mockCatalog) FetchPlaylist(_ context.Context, token, _ string) (domain.PlaylistInfo, error) {
	m.tokens = append(m.tokens, token)
	return m.playlist, m.playlistErr
}

func (m *mockCatalog) FetchPlaylistItems(
	_ context.Context,
	token string,
	_ domain.PlaylistInfo,
) ([]domain.CatalogItem, error) {
	m.tokens = append(m.tokens, token)
	if m.itemsErr != nil {
		return nil, m.itemsErr
	}
	return m.items, nil
}

type mockVoicePresence struct {
	err   error
	calls []EnsureInput
}

func (m *mockVoicePresence) Ensure(_ context.Context, input EnsureInput) error {
	m.calls = append(m.calls, input)
	return m.err
}

// queryText strips the search source prefix from a backend query.
func queryText(backendQuery string) string {
	if _, text, ok := strings.Cut(backendQuery, ":"); ok {
		return text
	}
	return backendQuery
}

func item(title, artist string) domain.CatalogItem {
	return domain.CatalogItem{Title: title, PrimaryArtist: artist}
}

func queriesFor(titles ...string) []domain.SearchQuery {
	queries := make([]domain.SearchQuery, len(titles))
	for i, title := range titles {
		queries[i] = domain.SearchQuery{Text: title, Source: domain.SourceYouTube}
	}
	return queries
}
