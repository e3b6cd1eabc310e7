package commands

import (
	"context"
	"log"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/pajbot/commandmatcher"
	"github.com/pajbot/helperbot/internal/cooldown"
	"github.com/pajbot/helperbot/internal/embed"
	"github.com/pajbot/helperbot/pkg"
)

type entry struct {
	name    string
	command pkg.Command
}

var (
	mutex   sync.RWMutex
	c       = commandmatcher.New()
	prefix  string
	entries []*entry
)

// Register adds a command under the given name. The command is matchable once Load has been called.
func Register(name string, command pkg.Command) {
	mutex.Lock()
	defer mutex.Unlock()

	if name == "" {
		log.Fatal("Command must have a name")
	}

	for _, e := range entries {
		if e.name == name {
			log.Fatalf("[%s] Command with the name '%s' has already been registered", name, name)
		}
	}

	entries = append(entries, &entry{
		name:    name,
		command: command,
	})
}

// Load makes every registered command matchable with the given prefix
func Load(commandPrefix string) {
	mutex.Lock()
	defer mutex.Unlock()

	slog.Info("setting_prefix_commands", "prefix", commandPrefix, "commands", len(entries))

	prefix = commandPrefix
	c = commandmatcher.New()
	for _, e := range entries {
		c.Register([]string{prefix + e.name}, e)
	}
}

// Prefix returns the prefix commands were loaded with
func Prefix() string {
	mutex.RLock()
	defer mutex.RUnlock()

	return prefix
}

// Match returns the name and command the given message text invokes, or nil if it doesn't invoke any
func Match(text string) (string, pkg.Command, []string) {
	mutex.RLock()
	defer mutex.RUnlock()

	v, parts := c.Match(text)
	if e, ok := v.(*entry); ok {
		return e.name, e.command, parts
	}

	return "", nil, nil
}

// IsCommand returns true if the given message text invokes a command
func IsCommand(text string) bool {
	_, command, _ := Match(text)
	return command != nil
}

// List returns name and description of every registered command, in registration order
func List() []embed.Info {
	mutex.RLock()
	defer mutex.RUnlock()

	infos := make([]embed.Info, len(entries))
	for i, e := range entries {
		infos[i] = embed.Info{
			Name:        e.name,
			Description: e.command.Description(),
		}
	}

	return infos
}

// Dispatch runs the command the message invokes, if the cooldown gate lets the author through.
// A nil gate lets everyone through. It returns true if a command was run.
func Dispatch(ctx context.Context, s pkg.Session, gate *cooldown.Gate, m *discordgo.MessageCreate) bool {
	name, command, parts := Match(m.Content)
	if command == nil {
		return false
	}

	var userID string
	if m.Author != nil {
		userID = m.Author.ID
	}

	reply := func(content string) {
		if _, err := s.ChannelMessageSendReply(m.ChannelID, content, m.Reference()); err != nil {
			slog.Error("cooldown_reply_failed", "command", name, "error", err)
		}
	}
	notify := func(content string) {
		if _, err := s.ChannelMessageSend(m.ChannelID, content); err != nil {
			slog.Error("cooldown_notify_failed", "command", name, "error", err)
		}
	}

	if gate != nil && !gate.Admit(ctx, name, userID, reply, notify) {
		return false
	}

	command.Run(s, m, parts)

	return true
}
