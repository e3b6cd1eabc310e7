package ping

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/bwmarrin/discordgo"
	"github.com/pajbot/basecommand"
	"github.com/pajbot/helperbot/pkg"
	"github.com/pajbot/helperbot/pkg/commands"
)

var _ pkg.Command = &Command{}

func init() {
	commands.Register("ping", New())
}

type Command struct {
	basecommand.Command
}

func New() *Command {
	c := &Command{
		Command: basecommand.New(),
	}
	c.Command.Description = "Ping Pong"
	return c
}

var vowels = []rune{
	'a', 'e', 'i', 'o', 'u',
}

// GetPingResponse returns p?ng with a random vowel
func GetPingResponse() string {
	return fmt.Sprintf("p%cng", vowels[rand.Intn(len(vowels))])
}

func (c *Command) Run(s pkg.Session, m *discordgo.MessageCreate, parts []string) {
	response := fmt.Sprintf("%s, %s", m.Author.Mention(), GetPingResponse())
	if _, err := s.ChannelMessageSend(m.ChannelID, response); err != nil {
		slog.Error("ping_send_failed", "channel_id", m.ChannelID, "error", err)
	}
}

func (c *Command) Description() string {
	return c.Command.Description
}
