package slashcommands

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"maps"
	"slices"

	"github.com/bwmarrin/discordgo"
	"github.com/pajbot/helperbot/internal/cooldown"
	"github.com/pajbot/helperbot/internal/embed"
)

// Session is the part of *discordgo.Session that slash commands use
type Session interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

var (
	sqlClient *sql.DB
	gate      *cooldown.Gate
	botImage  string
)

func Initialize(sqlClient_ *sql.DB, gate_ *cooldown.Gate, botImage_ string) {
	sqlClient = sqlClient_
	gate = gate_
	botImage = botImage_
}

type SlashCommand struct {
	name    string
	command *discordgo.ApplicationCommand

	// options, if set, builds the options of the command when it's registered.
	// guildID is empty for global registration.
	options func(guildID string) []*discordgo.ApplicationCommandOption

	handler func(Session, *discordgo.InteractionCreate)
}

var commands = map[string]*SlashCommand{}

// register registers a slash command to be created on Discord
// read the code or the /ping command to see how the command should be created
// we will exit if something is misconfigured
func register(cmd *SlashCommand) {
	if cmd.name == "" {
		log.Fatal("Command must have a name")
	}

	if cmd.command == nil {
		log.Fatalf("[%s] Command must have `command` set", cmd.name)
	}

	if cmd.handler == nil {
		log.Fatalf("[%s] Command must have `handler` set", cmd.name)
	}

	if cmd.command.Name != "" && cmd.command.Name != cmd.name {
		log.Fatalf("[%s] `command.Name` must be empty or match the command name", cmd.name)
	}
	cmd.command.Name = cmd.name

	if _, ok := commands[cmd.name]; ok {
		log.Fatalf("[%s] Command with the name '%s' has already been registered", cmd.name, cmd.name)
	}

	commands[cmd.name] = cmd
}

func sortedCommands() []*SlashCommand {
	sorted := make([]*SlashCommand, 0, len(commands))
	for _, name := range slices.Sorted(maps.Keys(commands)) {
		sorted = append(sorted, commands[name])
	}
	return sorted
}

func (cmd *SlashCommand) definition(guildID string) *discordgo.ApplicationCommand {
	def := *cmd.command
	if cmd.options != nil {
		def.Options = cmd.options(guildID)
	}
	return &def
}

// Definitions returns the application commands to push to Discord for the given guild
func Definitions(guildID string) []*discordgo.ApplicationCommand {
	var defs []*discordgo.ApplicationCommand
	for _, cmd := range sortedCommands() {
		defs = append(defs, cmd.definition(guildID))
	}
	return defs
}

// Info lists name and description of every slash command
func Info() []embed.Info {
	var infos []embed.Info
	for _, cmd := range sortedCommands() {
		infos = append(infos, embed.Info{
			Name:        cmd.name,
			Description: cmd.command.Description,
		})
	}
	return infos
}

func onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	dispatch(s, i)
}

func dispatch(s Session, i *discordgo.InteractionCreate) bool {
	if i.Type != discordgo.InteractionApplicationCommand {
		return false
	}

	cmd, ok := commands[i.ApplicationCommandData().Name]
	if !ok {
		return false
	}

	if !guard(s, i, cmd.name) {
		return false
	}

	cmd.handler(s, i)

	return true
}

func executingUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}

	return i.User
}

// guard runs the cooldown gate for the user invoking the interaction
func guard(s Session, i *discordgo.InteractionCreate, commandName string) bool {
	if gate == nil {
		return true
	}

	var userID string
	if user := executingUser(i); user != nil {
		userID = user.ID
	}

	notify := func(content string) {
		if _, err := s.ChannelMessageSend(i.ChannelID, content); err != nil {
			slog.Error("cooldown_notify_failed", "command", commandName, "error", err)
		}
	}

	return gate.Admit(context.Background(), commandName, userID, func(content string) {
		respond(s, i, content)
	}, notify)
}

func respond(s Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
	if err != nil {
		slog.Error("interaction_respond_failed", "interaction", i.ID, "error", err)
	}
}
