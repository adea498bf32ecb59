package domain

import (
	"context"
	"sync"

	"github.com/disgoorg/snowflake/v2"
)

// TrackEndReason represents why a track ended.
type TrackEndReason string

const (
	TrackEndFinished   TrackEndReason = "finished"
	TrackEndLoadFailed TrackEndReason = "load_failed"
	TrackEndStopped    TrackEndReason = "stopped"
	TrackEndReplaced   TrackEndReason = "replaced"
	TrackEndCleanup    TrackEndReason = "cleanup"
)

// ShouldAdvanceQueue returns true if this end reason should advance the queue.
func (r TrackEndReason) ShouldAdvanceQueue() bool {
	return r == TrackEndFinished || r == TrackEndLoadFailed
}

// PlayerState is the music player of one guild.
// Channel IDs are safe for concurrent use; Queue is guarded by its owner.
type PlayerState struct {
	guildID snowflake.ID

	mu                    sync.RWMutex
	voiceChannelID        snowflake.ID
	notificationChannelID snowflake.ID

	Queue Queue
}

// NewPlayerState creates a new PlayerState for the given guild and channels.
func NewPlayerState(guildID, voiceChannelID, notificationChannelID snowflake.ID) *PlayerState {
	return &PlayerState{
		guildID:               guildID,
		voiceChannelID:        voiceChannelID,
		notificationChannelID: notificationChannelID,
		Queue:                 NewQueue(),
	}
}

// GuildID returns the guild ID. It never changes after construction.
func (p *PlayerState) GuildID() snowflake.ID {
	return p.guildID
}

// VoiceChannelID returns the voice channel the bot is connected to.
func (p *PlayerState) VoiceChannelID() snowflake.ID {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.voiceChannelID
}

// SetVoiceChannelID updates the voice channel after the bot was moved.
func (p *PlayerState) SetVoiceChannelID(channelID snowflake.ID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.voiceChannelID = channelID
}

// NotificationChannelID returns the text channel used for notifications.
func (p *PlayerState) NotificationChannelID() snowflake.ID {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.notificationChannelID
}

// SetNotificationChannelID updates the notification channel.
func (p *PlayerState) SetNotificationChannelID(channelID snowflake.ID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notificationChannelID = channelID
}

// PlayerStateRepository stores player states by guild.
type PlayerStateRepository interface {
	// Get returns the PlayerState for the given guild, or an error if none exists.
	Get(ctx context.Context, guildID snowflake.ID) (*PlayerState, error)

	// Save stores the PlayerState.
	Save(ctx context.Context, state *PlayerState) error

	// Delete removes the PlayerState for the given guild.
	Delete(ctx context.Context, guildID snowflake.ID) error
}
