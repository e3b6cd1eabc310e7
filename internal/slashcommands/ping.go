package slashcommands

import (
	"github.com/bwmarrin/discordgo"
	"github.com/pajbot/helperbot/internal/commands/ping"
)

func init() {
	cmd := &SlashCommand{
		name:    "ping",
		command: newCommand("ping", "Ping Pong"),

		handler: func(s Session, i *discordgo.InteractionCreate) {
			respond(s, i, ping.GetPingResponse())
		},
	}

	register(cmd)
}
