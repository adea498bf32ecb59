package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/disgolink/v3/disgolink"
	"github.com/disgoorg/disgolink/v3/lavalink"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/application/ports"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/domain"
)

// voiceConnectionTimeout is the maximum time to wait for voice connection to be established.
const voiceConnectionTimeout = 10 * time.Second

// ErrNoLavalinkNode is returned when no Lavalink node is connected.
var ErrNoLavalinkNode = errors.New("no available Lavalink node")

// voiceHandshake collects the two gateway events Lavalink needs for a guild.
// Discord may deliver VoiceStateUpdate and VoiceServerUpdate in either order.
type voiceHandshake struct {
	mu sync.Mutex

	stateSeen bool
	channelID *snowflake.ID
	sessionID string

	serverSeen bool
	token      string
	endpoint   string

	// joined is closed once both events arrived; JoinChannel waits on it.
	joined chan struct{}
}

func newVoiceHandshake() *voiceHandshake {
	return &voiceHandshake{joined: make(chan struct{})}
}

// voiceUpdate is a complete handshake ready for Lavalink.
type voiceUpdate struct {
	channelID *snowflake.ID
	sessionID string
	token     string
	endpoint  string
}

// recordState stores the voice state half and returns the full update once both halves are present.
func (h *voiceHandshake) recordState(channelID *snowflake.ID, sessionID string) (voiceUpdate, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stateSeen = true
	h.channelID = channelID
	h.sessionID = sessionID
	return h.completeLocked()
}

// recordServer stores the voice server half and returns the full update once both halves are present.
func (h *voiceHandshake) recordServer(token, endpoint string) (voiceUpdate, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.serverSeen = true
	h.token = token
	h.endpoint = endpoint
	return h.completeLocked()
}

func (h *voiceHandshake) completeLocked() (voiceUpdate, bool) {
	if !h.stateSeen || !h.serverSeen {
		return voiceUpdate{}, false
	}

	update := voiceUpdate{
		channelID: h.channelID,
		sessionID: h.sessionID,
		token:     h.token,
		endpoint:  h.endpoint,
	}

	// Later region changes send a fresh pair of events.
	h.stateSeen = false
	h.serverSeen = false

	select {
	case <-h.joined:
	default:
		close(h.joined)
	}
	return update, true
}

// LavalinkConfig contains Lavalink connection configuration.
type LavalinkConfig struct {
	Address  string
	Password string
	Secure   bool
}

// TrackEndHandler is invoked when Lavalink reports the end of a track.
type TrackEndHandler func(ctx context.Context, guildID snowflake.ID, reason domain.TrackEndReason)

// LavalinkAdapter wraps DisGoLink to implement the port interfaces.
type LavalinkAdapter struct {
	link    disgolink.Client
	session *discordgo.Session
	botID   snowflake.ID

	handshakeMu sync.Mutex
	handshakes  map[snowflake.ID]*voiceHandshake

	trackEndMu sync.RWMutex
	onTrackEnd TrackEndHandler
}

// NewLavalinkAdapter creates a new LavalinkAdapter and connects to the node.
func NewLavalinkAdapter(
	ctx context.Context,
	session *discordgo.Session,
	config LavalinkConfig,
) (*LavalinkAdapter, error) {
	if session.State == nil || session.State.User == nil {
		return nil, errors.New("discord session is not open")
	}
	botID, err := snowflake.Parse(session.State.User.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bot ID: %w", err)
	}

	adapter := &LavalinkAdapter{
		session:    session,
		botID:      botID,
		handshakes: make(map[snowflake.ID]*voiceHandshake),
	}

	adapter.link = disgolink.New(botID,
		disgolink.WithListenerFunc(adapter.handleTrackStart),
		disgolink.WithListenerFunc(adapter.handleTrackEnd),
		disgolink.WithListenerFunc(adapter.handleTrackException),
		disgolink.WithListenerFunc(adapter.handleTrackStuck),
	)

	node, err := adapter.link.AddNode(ctx, disgolink.NodeConfig{
		Name:     "main",
		Address:  config.Address,
		Password: config.Password,
		Secure:   config.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add Lavalink node: %w", err)
	}

	slog.Info("connected to Lavalink", "node", node.Config().Name, "address", config.Address)

	return adapter, nil
}

// SetTrackEndHandler registers the callback for track end events.
func (c *LavalinkAdapter) SetTrackEndHandler(handler TrackEndHandler) {
	c.trackEndMu.Lock()
	defer c.trackEndMu.Unlock()
	c.onTrackEnd = handler
}

// Close disconnects from all Lavalink nodes.
func (c *LavalinkAdapter) Close() {
	c.link.Close()
}

// JoinChannel connects to a voice channel.
// It returns once Discord sent both voice events for the guild.
func (c *LavalinkAdapter) JoinChannel(ctx context.Context, guildID, channelID snowflake.ID) error {
	handshake := newVoiceHandshake()

	c.handshakeMu.Lock()
	c.handshakes[guildID] = handshake
	c.handshakeMu.Unlock()

	err := c.session.ChannelVoiceJoinManual(guildID.String(), channelID.String(), false, true)
	if err != nil {
		c.dropHandshake(guildID, handshake)
		return fmt.Errorf("failed to join voice channel: %w", err)
	}

	timer := time.NewTimer(voiceConnectionTimeout)
	defer timer.Stop()

	select {
	case <-handshake.joined:
		return nil
	case <-ctx.Done():
		c.dropHandshake(guildID, handshake)
		return fmt.Errorf("context cancelled while waiting for voice connection: %w", ctx.Err())
	case <-timer.C:
		c.dropHandshake(guildID, handshake)
		return errors.New("timeout waiting for voice connection")
	}
}

// Play plays a track.
func (c *LavalinkAdapter) Play(
	ctx context.Context,
	guildID snowflake.ID,
	track *domain.Track,
) error {
	player := c.link.Player(guildID)

	// Use WithEncodedTrack to avoid userData:null issue
	if err := player.Update(ctx, lavalink.WithEncodedTrack(track.Encoded)); err != nil {
		return fmt.Errorf("failed to play track: %w", err)
	}

	return nil
}

// LoadTracks runs a Lavalink loadtracks query.
func (c *LavalinkAdapter) LoadTracks(
	ctx context.Context,
	query string,
) (*ports.LoadResult, error) {
	node := c.link.BestNode()
	if node == nil {
		return nil, ErrNoLavalinkNode
	}

	result, err := node.LoadTracks(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load tracks: %w", err)
	}

	return convertLoadResult(result), nil
}

// convertLoadResult converts Lavalink result to ports result.
func convertLoadResult(result *lavalink.LoadResult) *ports.LoadResult {
	switch data := result.Data.(type) {
	case lavalink.Track:
		return &ports.LoadResult{
			Type:   ports.LoadTypeTrack,
			Tracks: []*ports.TrackInfo{convertTrack(data)},
		}

	case lavalink.Playlist:
		return &ports.LoadResult{
			Type:   ports.LoadTypePlaylist,
			Tracks: convertTracks(data.Tracks),
		}

	case lavalink.Search:
		return &ports.LoadResult{
			Type:   ports.LoadTypeSearch,
			Tracks: convertTracks(data),
		}

	case lavalink.Exception:
		return &ports.LoadResult{
			Type: ports.LoadTypeError,
			Exception: &ports.LoadException{
				Message: data.Message,
				Common:  data.Severity == lavalink.SeverityCommon,
			},
		}

	default:
		return &ports.LoadResult{
			Type: ports.LoadTypeEmpty,
		}
	}
}

func convertTracks(tracks []lavalink.Track) []*ports.TrackInfo {
	result := make([]*ports.TrackInfo, len(tracks))
	for i, track := range tracks {
		result[i] = convertTrack(track)
	}
	return result
}

// convertTrack converts a Lavalink track to TrackInfo.
func convertTrack(track lavalink.Track) *ports.TrackInfo {
	info := track.Info

	uri := ""
	if info.URI != nil {
		uri = *info.URI
	}

	var duration time.Duration
	if !info.IsStream {
		duration = time.Duration(info.Length) * time.Millisecond
	}

	return &ports.TrackInfo{
		Identifier: info.Identifier,
		Encoded:    track.Encoded,
		Title:      info.Title,
		Artist:     info.Author,
		Duration:   duration,
		URI:        uri,
		SourceName: info.SourceName,
		IsStream:   info.IsStream,
	}
}

// OnVoiceServerUpdate handles Discord voice server updates.
// This must be called from the Discord event handler.
func (c *LavalinkAdapter) OnVoiceServerUpdate(event *discordgo.VoiceServerUpdate) {
	guildID, err := snowflake.Parse(event.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID in voice server update", "error", err)
		return
	}

	if update, ok := c.handshake(guildID).recordServer(event.Token, event.Endpoint); ok {
		c.forward(guildID, update)
	}
}

// OnVoiceStateUpdate handles Discord voice state updates of the bot itself.
// This must be called from the Discord event handler.
func (c *LavalinkAdapter) OnVoiceStateUpdate(event *discordgo.VoiceStateUpdate) {
	if event.UserID != c.botID.String() {
		return
	}

	guildID, err := snowflake.Parse(event.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID in voice state update", "error", err)
		return
	}

	if event.ChannelID == "" {
		// Disconnects need no server half.
		c.link.OnVoiceStateUpdate(context.Background(), guildID, nil, event.SessionID)
		c.handshakeMu.Lock()
		delete(c.handshakes, guildID)
		c.handshakeMu.Unlock()
		return
	}

	channelID, err := snowflake.Parse(event.ChannelID)
	if err != nil {
		slog.Error("failed to parse channel ID in voice state update", "error", err)
		return
	}

	if update, ok := c.handshake(guildID).recordState(&channelID, event.SessionID); ok {
		c.forward(guildID, update)
	}
}

// handshake returns the guild's handshake, creating one for events not triggered by JoinChannel.
func (c *LavalinkAdapter) handshake(guildID snowflake.ID) *voiceHandshake {
	c.handshakeMu.Lock()
	defer c.handshakeMu.Unlock()

	h, ok := c.handshakes[guildID]
	if !ok {
		h = newVoiceHandshake()
		c.handshakes[guildID] = h
	}
	return h
}

func (c *LavalinkAdapter) dropHandshake(guildID snowflake.ID, h *voiceHandshake) {
	c.handshakeMu.Lock()
	defer c.handshakeMu.Unlock()

	if c.handshakes[guildID] == h {
		delete(c.handshakes, guildID)
	}
}

// forward sends a complete handshake to Lavalink, state first.
func (c *LavalinkAdapter) forward(guildID snowflake.ID, update voiceUpdate) {
	slog.Debug("forwarding voice handshake to Lavalink",
		"guild", guildID,
		"channel", update.channelID,
		"hasSessionID", update.sessionID != "",
	)

	c.link.OnVoiceStateUpdate(context.Background(), guildID, update.channelID, update.sessionID)
	c.link.OnVoiceServerUpdate(context.Background(), guildID, update.token, update.endpoint)
}

func (c *LavalinkAdapter) handleTrackStart(player disgolink.Player, event lavalink.TrackStartEvent) {
	slog.Debug("track started", "guild", player.GuildID(), "track", event.Track.Info.Title)
}

func (c *LavalinkAdapter) handleTrackEnd(player disgolink.Player, event lavalink.TrackEndEvent) {
	slog.Debug("track ended", "guild", player.GuildID(), "reason", event.Reason)

	c.trackEndMu.RLock()
	handler := c.onTrackEnd
	c.trackEndMu.RUnlock()

	if handler != nil {
		handler(context.Background(), player.GuildID(), convertEndReason(event.Reason))
	}
}

func (c *LavalinkAdapter) handleTrackException(
	player disgolink.Player,
	event lavalink.TrackExceptionEvent,
) {
	slog.Warn("track exception", "guild", player.GuildID(), "error", event.Exception.Message)
}

func (c *LavalinkAdapter) handleTrackStuck(player disgolink.Player, event lavalink.TrackStuckEvent) {
	slog.Warn("track stuck", "guild", player.GuildID(), "threshold", event.Threshold)
}

func convertEndReason(reason lavalink.TrackEndReason) domain.TrackEndReason {
	switch reason {
	case lavalink.TrackEndReasonFinished:
		return domain.TrackEndFinished
	case lavalink.TrackEndReasonLoadFailed:
		return domain.TrackEndLoadFailed
	case lavalink.TrackEndReasonReplaced:
		return domain.TrackEndReplaced
	case lavalink.TrackEndReasonCleanup:
		return domain.TrackEndCleanup
	default:
		return domain.TrackEndStopped
	}
}

// Ensure LavalinkAdapter implements port interfaces.
var (
	_ ports.AudioPlayer     = (*LavalinkAdapter)(nil)
	_ ports.VoiceConnection = (*LavalinkAdapter)(nil)
	_ ports.TrackResolver   = (*LavalinkAdapter)(nil)
)
