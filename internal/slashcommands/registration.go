package slashcommands

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
)

// guildRegistration is set once commands are registered per guild,
// so commands that change a guild's options can push them again.
var guildRegistration atomic.Bool

type SlashCommands struct {
	appID    string
	guildIDs []string
}

// New creates a SlashCommands struct registering commands under appID, in the given guilds
func New(appID string, guildIDs []string) *SlashCommands {
	return &SlashCommands{
		appID:    appID,
		guildIDs: guildIDs,
	}
}

// AddHandler makes the session dispatch interactions to the slash commands
func (c *SlashCommands) AddHandler(session *discordgo.Session) {
	session.AddHandler(onInteractionCreate)
}

// UpdateGlobal replaces the globally scoped commands of the application with all slash commands
func (c *SlashCommands) UpdateGlobal(s Session) error {
	slog.Info("refreshing_global_commands", "app_id", c.appID)

	if _, err := s.ApplicationCommandBulkOverwrite(c.appID, "", []*discordgo.ApplicationCommand{}); err != nil {
		return fmt.Errorf("clearing global commands: %w", err)
	}

	if _, err := s.ApplicationCommandBulkOverwrite(c.appID, "", Definitions("")); err != nil {
		return fmt.Errorf("creating global commands: %w", err)
	}

	current, err := s.ApplicationCommands(c.appID, "")
	if err != nil {
		return fmt.Errorf("listing global commands: %w", err)
	}

	for _, cmd := range current {
		slog.Info("global_command", "name", cmd.Name, "id", cmd.ID)
	}

	slog.Info("refreshed_global_commands", "commands", len(current))

	return nil
}

// ClearGlobal removes all globally scoped commands of the application, if there are any
func (c *SlashCommands) ClearGlobal(s Session) error {
	current, err := s.ApplicationCommands(c.appID, "")
	if err != nil {
		return fmt.Errorf("listing global commands: %w", err)
	}

	if len(current) == 0 {
		return nil
	}

	slog.Info("clearing_global_commands", "commands", len(current))
	if _, err := s.ApplicationCommandBulkOverwrite(c.appID, "", []*discordgo.ApplicationCommand{}); err != nil {
		return fmt.Errorf("clearing global commands: %w", err)
	}
	slog.Info("cleared_global_commands")

	return nil
}

// UpdateGuilds replaces the commands of every configured guild
func (c *SlashCommands) UpdateGuilds(s Session) error {
	guildRegistration.Store(true)

	for _, guildID := range c.guildIDs {
		if err := UpdateGuild(s, c.appID, guildID); err != nil {
			return err
		}
	}

	return nil
}

// ClearGuilds removes the commands of every configured guild
func (c *SlashCommands) ClearGuilds(s Session) error {
	for _, guildID := range c.guildIDs {
		if _, err := s.ApplicationCommandBulkOverwrite(c.appID, guildID, []*discordgo.ApplicationCommand{}); err != nil {
			slog.Error("clearing_guild_commands_failed", "guild_id", guildID, "error", err)
		}
	}

	return nil
}

// UpdateGuild replaces the commands of a single guild
func UpdateGuild(s Session, appID, guildID string) error {
	slog.Info("refreshing_guild_commands", "guild_id", guildID)

	if _, err := s.ApplicationCommandBulkOverwrite(appID, guildID, []*discordgo.ApplicationCommand{}); err != nil {
		return fmt.Errorf("clearing commands of guild %s: %w", guildID, err)
	}

	defs := Definitions(guildID)
	if len(defs) > 0 {
		if _, err := s.ApplicationCommandBulkOverwrite(appID, guildID, defs); err != nil {
			return fmt.Errorf("creating commands of guild %s: %w", guildID, err)
		}
	}

	slog.Info("refreshed_guild_commands", "guild_id", guildID, "commands", len(defs))

	return nil
}
