package spotify_player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/spotilink/internal/bot"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/application/usecases"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/domain"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/infrastructure"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/presentation/discord"
)

func init() {
	bot.Register(&SpotifyPlayerModule{})
}

// Compile-time interface checks.
var _ bot.ConfigurableModule = (*SpotifyPlayerModule)(nil)

// SpotifyPlayerModule queues Spotify tracks and playlists through Lavalink.
type SpotifyPlayerModule struct {
	config          *Config
	commandHandlers *discord.CommandHandlers
	eventHandlers   *discord.EventHandlers
	lavalinkAdapter *infrastructure.LavalinkAdapter

	ctx    context.Context
	cancel context.CancelFunc
}

// Name returns the module name.
func (m *SpotifyPlayerModule) Name() string {
	return "spotify_player"
}

// Commands returns the slash commands for this module.
func (m *SpotifyPlayerModule) Commands() []*discordgo.ApplicationCommand {
	return discord.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *SpotifyPlayerModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		discord.CommandSpotify: m.commandHandlers.HandleSpotify,
		discord.CommandQueue:   m.commandHandlers.HandleQueue,
	}
}

// EventHandlers returns the event handlers for this module.
func (m *SpotifyPlayerModule) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		func(s *discordgo.Session, event *discordgo.VoiceServerUpdate) {
			m.handleVoiceServerUpdate(s, event)
		},
		func(s *discordgo.Session, event *discordgo.VoiceStateUpdate) {
			m.handleVoiceStateUpdate(s, event)
		},
	}
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *SpotifyPlayerModule) LoadConfig() error {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return err
	}
	if cfg.MaxTrackDuration < 0 {
		return errors.New("MAX_TRACK_DURATION must not be negative")
	}
	if cfg.SearchConcurrency < 0 {
		return errors.New("SEARCH_CONCURRENCY must not be negative")
	}
	m.config = cfg
	return nil
}

// Init initializes the module.
func (m *SpotifyPlayerModule) Init(deps bot.ModuleDependencies) error {
	if deps.Session == nil {
		return errors.New("spotify_player module requires a Discord session")
	}
	if m.config == nil {
		if err := m.LoadConfig(); err != nil {
			return err
		}
	}

	m.ctx, m.cancel = context.WithCancel(context.Background())

	lavalinkAdapter, err := infrastructure.NewLavalinkAdapter(m.ctx, deps.Session,
		infrastructure.LavalinkConfig{
			Address:  m.config.LavalinkAddress,
			Password: m.config.LavalinkPassword,
			Secure:   m.config.LavalinkSecure,
		})
	if err != nil {
		return err
	}
	m.lavalinkAdapter = lavalinkAdapter

	// Create infrastructure
	repo := infrastructure.NewMemoryRepository()
	voiceState := infrastructure.NewVoiceStateProvider(deps.Session.State)
	credentials := infrastructure.NewCredentialManager(m.config.credentialConfig())
	catalog := infrastructure.NewSpotifyCatalog(m.config.SpotifyAPIURL, nil)
	notifier := infrastructure.NewNotifier(deps.Session)

	// Create services
	playback := usecases.NewPlaybackService(repo, lavalinkAdapter, notifier)
	voiceChannel := usecases.NewVoiceChannelService(repo, lavalinkAdapter, voiceState)
	trackLoader := usecases.NewTrackLoaderService(lavalinkAdapter, playback,
		domain.DurationPolicy{Max: m.config.MaxTrackDuration})
	catalogPlay := usecases.NewCatalogPlayService(
		credentials,
		catalog,
		domain.NewCatalogURLParser(m.config.SpotifyURLDomain),
		voiceChannel,
		usecases.NewSingleResolver(trackLoader),
		usecases.NewBatchResolver(trackLoader, m.config.SearchConcurrency),
		m.config.SearchSource,
	)

	lavalinkAdapter.SetTrackEndHandler(func(
		ctx context.Context,
		guildID snowflake.ID,
		reason domain.TrackEndReason,
	) {
		err := playback.HandleTrackEnd(ctx, usecases.TrackEndInput{GuildID: guildID, Reason: reason})
		if err != nil {
			slog.Error("failed to handle track end", "guild", guildID, "error", err)
		}
	})

	// Create presentation handlers
	botID, err := snowflake.Parse(deps.Session.State.User.ID)
	if err != nil {
		return fmt.Errorf("failed to parse bot ID: %w", err)
	}
	m.commandHandlers = discord.NewCommandHandlers(catalogPlay, playback)
	m.eventHandlers = discord.NewEventHandlers(botID, voiceChannel)

	if credentials.Enabled() {
		// Warm the token so the first command does not pay for the exchange.
		if _, err := credentials.Credential(m.ctx); err != nil {
			slog.Warn("failed to obtain initial catalog token", "error", err)
		}
	} else {
		slog.Warn("spotify credentials not configured, /spotify is disabled")
	}

	slog.Info("spotify_player module initialized",
		"search_source", string(m.config.SearchSource),
		"max_track_duration", m.config.MaxTrackDuration,
		"search_concurrency", m.config.SearchConcurrency,
	)

	return nil
}

// Shutdown cleans up module resources.
func (m *SpotifyPlayerModule) Shutdown() error {
	if m.cancel != nil {
		m.cancel()
	}

	if m.lavalinkAdapter != nil {
		m.lavalinkAdapter.Close()
	}

	return nil
}

// Event handlers.

func (m *SpotifyPlayerModule) handleVoiceServerUpdate(
	_ *discordgo.Session,
	event *discordgo.VoiceServerUpdate,
) {
	if m.lavalinkAdapter != nil {
		m.lavalinkAdapter.OnVoiceServerUpdate(event)
	}
}

func (m *SpotifyPlayerModule) handleVoiceStateUpdate(
	s *discordgo.Session,
	event *discordgo.VoiceStateUpdate,
) {
	if m.lavalinkAdapter != nil {
		m.lavalinkAdapter.OnVoiceStateUpdate(event)
	}
	if m.eventHandlers != nil {
		m.eventHandlers.HandleVoiceStateUpdate(s, event)
	}
}
