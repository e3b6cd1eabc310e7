package slashcommands

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/pajbot/helperbot/internal/embed"
)

func init() {
	cmd := &SlashCommand{
		name:    "help",
		command: newCommandWithOption("help", "Lists the commands you can run", "command", "Only show this command", false),

		handler: func(s Session, i *discordgo.InteractionCreate) {
			var author *discordgo.MessageEmbedAuthor
			if user := executingUser(i); user != nil {
				author = &discordgo.MessageEmbedAuthor{
					Name:    user.Username,
					IconURL: user.AvatarURL(""),
				}
			}

			infos := Info()
			if name, ok := stringOption(i.ApplicationCommandData().Options, "command"); ok {
				infos = slices.DeleteFunc(infos, func(info embed.Info) bool {
					return !strings.EqualFold(info.Name, strings.TrimPrefix(name, "/"))
				})
			}

			err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Embeds: []*discordgo.MessageEmbed{
						embed.Help(infos, author, "/", botImage),
					},
				},
			})
			if err != nil {
				slog.Error("help_respond_failed", "error", err)
			}
		},
	}

	register(cmd)
}
