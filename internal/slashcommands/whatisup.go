package slashcommands

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/pajbot/helperbot/internal/commands/whatisup"
	"github.com/pajbot/helperbot/internal/cooldown"
)

const whatisupServerOption = "server"

func whatisupOptions(guildID string) []*discordgo.ApplicationCommandOption {
	servers := whatisup.Servers(guildID)

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(servers))
	for _, server := range servers {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  server.Name,
			Value: server.Host,
		})
	}

	cmd := &discordgo.ApplicationCommand{}
	addStringOptionWithChoices(cmd, "Server", "Select the server you want to check", choices, true)
	return cmd.Options
}

func init() {
	cmd := &SlashCommand{
		name:    "whatisup",
		command: newCommand("whatisup", "This command will tell you what server is up right now"),
		options: whatisupOptions,

		handler: func(s Session, i *discordgo.InteractionCreate) {
			host, ok := stringOption(i.ApplicationCommandData().Options, whatisupServerOption)
			if !ok || host == "" {
				respond(s, i, cooldown.GenericErrorText)
				return
			}

			// The lookup may take longer than Discord waits for a response
			err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
			})
			if err != nil {
				slog.Error("whatisup_defer_failed", "error", err)
				return
			}

			content := whatisup.Answer(context.Background(), host)
			if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
				Content: &content,
			}); err != nil {
				slog.Error("whatisup_edit_failed", "error", err)
			}
		},
	}

	register(cmd)
}
