package help

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/pajbot/basecommand"
	"github.com/pajbot/helperbot/internal/config"
	"github.com/pajbot/helperbot/internal/embed"
	"github.com/pajbot/helperbot/pkg"
	"github.com/pajbot/helperbot/pkg/commands"
)

var _ pkg.Command = &Command{}

func init() {
	commands.Register("help", New())
}

type Command struct {
	basecommand.Command
}

func New() *Command {
	c := &Command{
		Command: basecommand.New(),
	}
	c.Command.Description = "Lists the commands you can run"
	return c
}

func (c *Command) Run(s pkg.Session, m *discordgo.MessageCreate, parts []string) {
	author := &discordgo.MessageEmbedAuthor{
		Name:    m.Author.Username,
		IconURL: m.Author.AvatarURL(""),
	}

	e := embed.Help(commands.List(), author, commands.Prefix(), config.BotImage)

	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, e); err != nil {
		slog.Error("help_send_failed", "channel_id", m.ChannelID, "error", err)
	}
}

func (c *Command) Description() string {
	return c.Command.Description
}
