package domain

import (
	"sync"
	"testing"

	"github.com/disgoorg/snowflake/v2"
)

func TestPlayerState_ChannelIDs(t *testing.T) {
	state := NewPlayerState(1, 10, 20)

	state.SetVoiceChannelID(11)
	state.SetNotificationChannelID(21)

	if got := state.VoiceChannelID(); got != 11 {
		t.Errorf("VoiceChannelID() = %d, want 11", got)
	}
	if got := state.NotificationChannelID(); got != 21 {
		t.Errorf("NotificationChannelID() = %d, want 21", got)
	}
	if got := state.GuildID(); got != 1 {
		t.Errorf("GuildID() = %d, want 1", got)
	}
}

// Run with -race.
func TestPlayerState_ConcurrentChannelAccess(t *testing.T) {
	state := NewPlayerState(1, 10, 20)

	const workers = 8
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(2)
		go func() {
			defer wg.Done()
			state.SetNotificationChannelID(snowflake.ID(100 + i))
			state.SetVoiceChannelID(snowflake.ID(200 + i))
		}()
		go func() {
			defer wg.Done()
			_ = state.NotificationChannelID()
			_ = state.VoiceChannelID()
		}()
	}
	wg.Wait()

	if got := state.NotificationChannelID(); got < 100 || got >= 100+workers {
		t.Errorf("NotificationChannelID() = %d, want one of the written values", got)
	}
}
