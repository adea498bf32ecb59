package discord

import "github.com/bwmarrin/discordgo"

// Command names.
const (
	CommandSpotify = "spotify"
	CommandQueue   = "queue"
)

// Commands returns all slash commands for the spotify player module.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandSpotify,
			Description: "Queue a Spotify track or playlist",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "url",
					Description: "Spotify track or playlist URL",
					Required:    true,
				},
			},
		},
		{
			Name:        CommandQueue,
			Description: "Show the current queue",
		},
	}
}
