package infrastructure

import (
	"context"
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/domain"
)

// MemoryRepository is an in-memory implementation of PlayerStateRepository.
// States are held by pointer. Queue mutations are serialized by PlaybackService.
type MemoryRepository struct {
	mu     sync.RWMutex
	states map[snowflake.ID]*domain.PlayerState
}

// NewMemoryRepository creates a new MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		states: make(map[snowflake.ID]*domain.PlayerState),
	}
}

// Get returns the PlayerState for the given guild, or domain.ErrPlayerStateNotFound.
func (r *MemoryRepository) Get(
	_ context.Context,
	guildID snowflake.ID,
) (*domain.PlayerState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.states[guildID]
	if !ok {
		return nil, domain.ErrPlayerStateNotFound
	}
	return state, nil
}

// Save stores the PlayerState.
func (r *MemoryRepository) Save(_ context.Context, state *domain.PlayerState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.states[state.GuildID()] = state
	return nil
}

// Delete removes the PlayerState for the given guild.
func (r *MemoryRepository) Delete(_ context.Context, guildID snowflake.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.states, guildID)
	return nil
}

// Ensure MemoryRepository implements PlayerStateRepository.
var _ domain.PlayerStateRepository = (*MemoryRepository)(nil)
