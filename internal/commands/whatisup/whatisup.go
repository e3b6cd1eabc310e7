package whatisup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/pajbot/basecommand"
	"github.com/pajbot/helperbot/internal/serverconfig"
	"github.com/pajbot/helperbot/internal/serverstatus"
	"github.com/pajbot/helperbot/pkg"
	"github.com/pajbot/helperbot/pkg/commands"
	"github.com/pajbot/helperbot/pkg/utils"
)

const lookupTimeout = 20 * time.Second

// Lookup fetches the status of a Minecraft server
type Lookup interface {
	Lookup(ctx context.Context, host string) (*serverstatus.Status, error)
}

var (
	client         Lookup
	defaultServers []serverconfig.GameServer
)

// Initialize sets the status client and the servers offered in guilds without their own list
func Initialize(client_ Lookup, defaultServers_ []serverconfig.GameServer) {
	client = client_
	defaultServers = defaultServers_
}

// Servers returns the servers offered in the given guild
func Servers(guildID string) []serverconfig.GameServer {
	if servers := serverconfig.GetGameServers(guildID); len(servers) > 0 {
		return servers
	}

	return defaultServers
}

// Find returns the server whose name or host matches query, ignoring case
func Find(servers []serverconfig.GameServer, query string) (serverconfig.GameServer, bool) {
	query = strings.TrimSpace(query)

	for _, server := range servers {
		if strings.EqualFold(server.Name, query) || strings.EqualFold(server.Host, query) {
			return server, true
		}
	}

	return serverconfig.GameServer{}, false
}

// Answer looks up host and formats the reply
func Answer(ctx context.Context, host string) string {
	if client == nil {
		return "Error Occurred"
	}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	status, err := client.Lookup(ctx, host)
	if err != nil {
		slog.Error("server_status_lookup_failed", "host", host, "error", err)
	}

	return serverstatus.Reply(host, status, err)
}

func serverNames(servers []serverconfig.GameServer) string {
	names := make([]string, len(servers))
	for i, server := range servers {
		names[i] = "`" + utils.EscapeCodeBlock(server.Name) + "`"
	}
	return strings.Join(names, ", ")
}

var _ pkg.Command = &Command{}

func init() {
	commands.Register("whatisup", New())
}

type Command struct {
	basecommand.Command
}

func New() *Command {
	c := &Command{
		Command: basecommand.New(),
	}
	c.Command.Description = "This command will tell you what server is up right now"
	return c
}

func (c *Command) Run(s pkg.Session, m *discordgo.MessageCreate, parts []string) {
	servers := Servers(m.GuildID)

	var response string
	if len(parts) < 2 {
		response = fmt.Sprintf("%s, usage: %s <server>. Servers: %s", m.Author.Mention(), parts[0], serverNames(servers))
	} else if server, ok := Find(servers, strings.Join(parts[1:], " ")); !ok {
		response = fmt.Sprintf("%s, unknown server. Servers: %s", m.Author.Mention(), serverNames(servers))
	} else {
		response = Answer(context.Background(), server.Host)
	}

	if _, err := s.ChannelMessageSend(m.ChannelID, response); err != nil {
		slog.Error("whatisup_send_failed", "channel_id", m.ChannelID, "error", err)
	}
}

func (c *Command) Description() string {
	return c.Command.Description
}
