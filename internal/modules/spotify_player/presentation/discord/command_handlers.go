package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/spotilink/internal/bot"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/application/ports"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/application/usecases"
)

// interactionTimeout stays below the lifetime of an interaction token.
const interactionTimeout = 14 * time.Minute

// CatalogPlayer resolves a catalog URL into queued tracks.
type CatalogPlayer interface {
	Play(ctx context.Context, input usecases.PlayInput, sink ports.ProgressSink) (*usecases.PlayOutput, error)
}

// QueueLister returns a guild's queue, current track first.
type QueueLister interface {
	Queue(ctx context.Context, guildID snowflake.ID) ([]*usecases.Track, error)
}

// queueDisplayLimit caps the number of tracks listed by /queue.
const queueDisplayLimit = 10

// CommandHandlers holds all the command handlers.
type CommandHandlers struct {
	catalogPlay CatalogPlayer
	queue       QueueLister
}

// NewCommandHandlers creates new CommandHandlers.
func NewCommandHandlers(catalogPlay CatalogPlayer, queue QueueLister) *CommandHandlers {
	return &CommandHandlers{
		catalogPlay: catalogPlay,
		queue:       queue,
	}
}

// HandleSpotify handles the /spotify command.
func (h *CommandHandlers) HandleSpotify(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	var url string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "url" {
			url = strings.TrimSpace(opt.StringValue())
		}
	}
	if url == "" {
		return respondError(r, "Please include a Spotify URL.")
	}

	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "This command can only be used in a server.")
	}

	if i.Member == nil || i.Member.User == nil {
		return respondError(r, "Invalid user")
	}
	userID, err := snowflake.Parse(i.Member.User.ID)
	if err != nil {
		return respondError(r, "Invalid user")
	}

	notificationChannelID, err := snowflake.Parse(i.ChannelID)
	if err != nil {
		return respondError(r, "Invalid notification channel")
	}

	// Playlists take longer than the initial response window.
	if err := r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	progress := &interactionProgress{r: r}
	_, err = h.catalogPlay.Play(ctx, usecases.PlayInput{
		GuildID:               guildID,
		RequesterID:           userID,
		NotificationChannelID: notificationChannelID,
		URL:                   url,
	}, progress)
	if err != nil {
		if editErr := progress.Update(ports.NoticeError, errorMessage(err)); editErr != nil {
			slog.Warn("failed to report command error", "error", editErr)
		}
	}

	return nil
}

// HandleQueue handles the /queue command.
func (h *CommandHandlers) HandleQueue(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "This command can only be used in a server.")
	}

	tracks, err := h.queue.Queue(context.Background(), guildID)
	if errors.Is(err, usecases.ErrNotConnected) {
		return respondError(r, "Not connected to a voice channel.")
	}
	if err != nil {
		return err
	}

	embed := &discordgo.MessageEmbed{
		Title: "Queue",
		Color: colorInfo,
	}

	if len(tracks) == 0 {
		embed.Description = "Queue is empty."
	} else {
		var sb strings.Builder
		for idx, track := range tracks[:min(len(tracks), queueDisplayLimit)] {
			switch idx {
			case 0:
				sb.WriteString("### Now Playing\n")
				fmt.Fprintf(&sb, "%s (%s)\n", formatTrackTitle(track), track.FormattedDuration())
				continue
			case 1:
				sb.WriteString("### Up Next\n")
			}
			fmt.Fprintf(&sb, "%d. %s (%s)\n", idx, formatTrackTitle(track), track.FormattedDuration())
		}
		embed.Description = sb.String()
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d tracks in queue", len(tracks)),
		}
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

func formatTrackTitle(track *usecases.Track) string {
	if track.URI != "" {
		return fmt.Sprintf("[%s](%s)", track.Title, track.URI)
	}
	return fmt.Sprintf("**%s**", track.Title)
}

// errorMessage returns the user-facing text for a failed /spotify request.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, usecases.ErrCatalogDisabled):
		return "This command is disabled and must be enabled by the bot owner."
	case errors.Is(err, usecases.ErrInvalidCatalogURL):
		return "The specified URL is not a valid Spotify track or playlist URL."
	case errors.Is(err, usecases.ErrCredentialUnavailable):
		return "Could not authenticate with Spotify. Please try again later."
	case errors.Is(err, usecases.ErrUnauthorized):
		return "Spotify rejected the request. Please try again."
	case errors.Is(err, usecases.ErrMalformedCatalogResponse):
		return "Spotify returned an unexpected response."
	case errors.Is(err, usecases.ErrCatalogRequest):
		return "Failed to reach Spotify."
	case errors.Is(err, usecases.ErrUserNotInVoice):
		return usecases.ErrUserNotInVoice.Error()
	default:
		return "An error occurred while processing your command."
	}
}

func respondError(r bot.Responder, message string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       "Error",
					Description: message,
					Color:       colorError,
				},
			},
		},
	})
}
