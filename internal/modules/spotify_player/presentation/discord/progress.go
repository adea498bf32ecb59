package discord

import (
	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/spotilink/internal/bot"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/application/ports"
)

// Embed colors.
const (
	colorInfo    = 0x3498DB
	colorSuccess = 0x08c404
	colorWarning = 0xF1C40F
	colorError   = 0xE74C3C
)

// interactionProgress reports progress on a deferred interaction.
// Update edits the deferred response, Send posts a follow-up.
type interactionProgress struct {
	r bot.Responder
}

func (p *interactionProgress) Update(level ports.NoticeLevel, text string) error {
	return p.r.Edit(&discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{noticeEmbed(level, text)},
	})
}

func (p *interactionProgress) Send(level ports.NoticeLevel, text string) error {
	return p.r.Followup(&discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{noticeEmbed(level, text)},
	})
}

func noticeEmbed(level ports.NoticeLevel, text string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{Description: text}

	switch level {
	case ports.NoticeSuccess:
		embed.Color = colorSuccess
	case ports.NoticeWarning:
		embed.Color = colorWarning
	case ports.NoticeError:
		embed.Title = "Error"
		embed.Color = colorError
	default:
		embed.Color = colorInfo
	}

	return embed
}

var _ ports.ProgressSink = (*interactionProgress)(nil)
