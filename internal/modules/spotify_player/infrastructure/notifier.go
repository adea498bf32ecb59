package infrastructure

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/application/ports"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/domain"
)

// Embed colors per audio source.
const (
	colorYouTube    = 0xFF0000
	colorSoundCloud = 0xFF5500
	colorDefault    = 0x3498DB
)

// messageSender is the subset of *discordgo.Session the notifier needs.
type messageSender interface {
	ChannelMessageSendEmbed(
		channelID string,
		embed *discordgo.MessageEmbed,
		options ...discordgo.RequestOption,
	) (*discordgo.Message, error)
}

// Notifier sends playback announcements to Discord channels.
type Notifier struct {
	sender messageSender
}

// NewNotifier creates a new Notifier.
func NewNotifier(sender messageSender) *Notifier {
	return &Notifier{sender: sender}
}

// SendNowPlaying sends a "Now Playing" embed to the channel.
func (n *Notifier) SendNowPlaying(channelID snowflake.ID, track *domain.Track) error {
	_, err := n.sender.ChannelMessageSendEmbed(channelID.String(), nowPlayingEmbed(track))
	return err
}

func nowPlayingEmbed(track *domain.Track) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{Name: "Now Playing"},
		Title:  track.Title,
		URL:    track.URI,
		Color:  sourceColor(track.SourceName),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Artist",
				Value:  track.Artist,
				Inline: true,
			},
			{
				Name:   "Duration",
				Value:  track.FormattedDuration(),
				Inline: true,
			},
		},
	}

	if track.Request.RequesterID != 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Requested by",
			Value:  fmt.Sprintf("<@%d>", track.Request.RequesterID),
			Inline: true,
		})
	}
	if track.Request.Query != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Matched from: " + track.Request.Query}
	}
	if !track.EnqueuedAt.IsZero() {
		embed.Timestamp = track.EnqueuedAt.UTC().Format(time.RFC3339)
	}
	if track.SourceName == "youtube" && track.Identifier != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{
			URL: fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", track.Identifier),
		}
	}

	return embed
}

func sourceColor(sourceName string) int {
	switch sourceName {
	case "youtube":
		return colorYouTube
	case "soundcloud":
		return colorSoundCloud
	default:
		return colorDefault
	}
}

// Ensure Notifier implements ports.Notifier.
var _ ports.Notifier = (*Notifier)(nil)
