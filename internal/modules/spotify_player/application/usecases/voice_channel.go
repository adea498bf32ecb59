package usecases

import (
	"context"
	"errors"
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/application/ports"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/domain"
)

// EnsureInput contains the input for the Ensure use case.
type EnsureInput struct {
	GuildID               snowflake.ID
	UserID                snowflake.ID
	NotificationChannelID snowflake.ID
}

// BotVoiceStateChangeInput contains the input for handling bot voice state changes.
type BotVoiceStateChangeInput struct {
	GuildID      snowflake.ID
	NewChannelID *snowflake.ID // nil means disconnected
}

// VoiceChannelService handles voice channel operations.
type VoiceChannelService struct {
	mu              sync.Mutex
	repo            domain.PlayerStateRepository
	voiceConnection ports.VoiceConnection
	voiceState      ports.VoiceStateProvider
}

// NewVoiceChannelService creates a new VoiceChannelService.
func NewVoiceChannelService(
	repo domain.PlayerStateRepository,
	voiceConnection ports.VoiceConnection,
	voiceState ports.VoiceStateProvider,
) *VoiceChannelService {
	return &VoiceChannelService{
		repo:            repo,
		voiceConnection: voiceConnection,
		voiceState:      voiceState,
	}
}

// Ensure makes sure the bot is connected in the guild.
// An existing connection is kept as-is; otherwise the bot joins the user's channel.
func (v *VoiceChannelService) Ensure(ctx context.Context, input EnsureInput) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	state, err := v.repo.Get(ctx, input.GuildID)
	switch {
	case err == nil:
		if input.NotificationChannelID != 0 {
			state.SetNotificationChannelID(input.NotificationChannelID)
		}
		return nil
	case !errors.Is(err, domain.ErrPlayerStateNotFound):
		return err
	}

	voiceChannelID, err := v.voiceState.GetUserVoiceChannel(input.GuildID, input.UserID)
	if err != nil {
		return err
	}
	if voiceChannelID == 0 {
		return ErrUserNotInVoice
	}

	if err := v.voiceConnection.JoinChannel(ctx, input.GuildID, voiceChannelID); err != nil {
		return err
	}

	return v.repo.Save(
		ctx,
		domain.NewPlayerState(input.GuildID, voiceChannelID, input.NotificationChannelID),
	)
}

// HandleBotVoiceStateChange handles external voice state changes (bot moved or disconnected).
func (v *VoiceChannelService) HandleBotVoiceStateChange(
	ctx context.Context,
	input BotVoiceStateChangeInput,
) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	state, err := v.repo.Get(ctx, input.GuildID)
	if errors.Is(err, domain.ErrPlayerStateNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if input.NewChannelID == nil {
		return v.repo.Delete(ctx, input.GuildID)
	}

	if *input.NewChannelID != state.VoiceChannelID() {
		state.SetVoiceChannelID(*input.NewChannelID)
	}
	return nil
}
