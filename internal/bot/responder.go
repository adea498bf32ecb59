package bot

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Responder provides an abstraction for responding to Discord interactions.
// This interface enables testing handlers without a live Discord connection.
type Responder interface {
	// Respond sends the initial response to an interaction.
	Respond(response *discordgo.InteractionResponse) error

	// Edit replaces the initial (possibly deferred) response.
	Edit(edit *discordgo.WebhookEdit) error

	// Followup posts an additional message tied to the interaction.
	Followup(params *discordgo.WebhookParams) error
}

// DiscordResponder implements Responder using a live Discord session.
type DiscordResponder struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
}

// NewDiscordResponder creates a new DiscordResponder.
func NewDiscordResponder(s *discordgo.Session, i *discordgo.Interaction) *DiscordResponder {
	return &DiscordResponder{
		session:     s,
		interaction: i,
	}
}

// Respond sends a response to the interaction via Discord API.
func (r *DiscordResponder) Respond(response *discordgo.InteractionResponse) error {
	return r.session.InteractionRespond(r.interaction, response)
}

// Edit edits the original interaction response.
func (r *DiscordResponder) Edit(edit *discordgo.WebhookEdit) error {
	_, err := r.session.InteractionResponseEdit(r.interaction, edit)
	return err
}

// Followup creates a follow-up message for the interaction.
func (r *DiscordResponder) Followup(params *discordgo.WebhookParams) error {
	_, err := r.session.FollowupMessageCreate(r.interaction, true, params)
	return err
}

// MockResponder is a test double for Responder.
// It is safe for concurrent use.
type MockResponder struct {
	mu sync.Mutex

	LastResponse *discordgo.InteractionResponse
	Edits        []*discordgo.WebhookEdit
	Followups    []*discordgo.WebhookParams
	Err          error
}

// Respond records the response for testing.
func (m *MockResponder) Respond(response *discordgo.InteractionResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastResponse = response
	return m.Err
}

// Edit records the edit for testing.
func (m *MockResponder) Edit(edit *discordgo.WebhookEdit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Edits = append(m.Edits, edit)
	return m.Err
}

// Followup records the follow-up for testing.
func (m *MockResponder) Followup(params *discordgo.WebhookParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Followups = append(m.Followups, params)
	return m.Err
}
