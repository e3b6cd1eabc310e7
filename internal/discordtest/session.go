// Package discordtest records what command handlers send to Discord
package discordtest

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
)

// Sent is a single message or interaction response
type Sent struct {
	ChannelID string
	Content   string
	Reference *discordgo.MessageReference
	Embed     *discordgo.MessageEmbed

	Response *discordgo.InteractionResponse
	Edit     *discordgo.WebhookEdit
}

// Overwrite is a single bulk overwrite of application commands
type Overwrite struct {
	AppID    string
	GuildID  string
	Commands []*discordgo.ApplicationCommand
}

type Session struct {
	mutex sync.Mutex

	Sent       []Sent
	Overwrites []Overwrite

	// Commands is returned by ApplicationCommands, and replaced by every bulk overwrite
	Commands map[string][]*discordgo.ApplicationCommand

	Err error
}

func New() *Session {
	return &Session{
		Commands: map[string][]*discordgo.ApplicationCommand{},
	}
}

func (s *Session) record(sent Sent) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.Sent = append(s.Sent, sent)
	return s.Err
}

// Contents returns the text content of everything sent so far
func (s *Session) Contents() (contents []string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, sent := range s.Sent {
		switch {
		case sent.Response != nil && sent.Response.Data != nil:
			contents = append(contents, sent.Response.Data.Content)
		case sent.Edit != nil && sent.Edit.Content != nil:
			contents = append(contents, *sent.Edit.Content)
		case sent.Embed == nil:
			contents = append(contents, sent.Content)
		}
	}

	return
}

func (s *Session) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	return &discordgo.Message{ChannelID: channelID, Content: content}, s.record(Sent{ChannelID: channelID, Content: content})
}

func (s *Session) ChannelMessageSendReply(channelID string, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	return &discordgo.Message{ChannelID: channelID, Content: content}, s.record(Sent{ChannelID: channelID, Content: content, Reference: reference})
}

func (s *Session) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	return &discordgo.Message{ChannelID: channelID}, s.record(Sent{ChannelID: channelID, Embed: embed})
}

func (s *Session) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	return s.record(Sent{ChannelID: interaction.ChannelID, Response: resp})
}

func (s *Session) InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	return &discordgo.Message{ChannelID: interaction.ChannelID}, s.record(Sent{ChannelID: interaction.ChannelID, Edit: newresp})
}

func (s *Session) ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	s.Overwrites = append(s.Overwrites, Overwrite{AppID: appID, GuildID: guildID, Commands: commands})
	s.Commands[guildID] = commands

	return commands, nil
}

func (s *Session) ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	return s.Commands[guildID], nil
}

// Message creates a message event sent by userID
func Message(channelID, userID, content string) *discordgo.MessageCreate {
	m := &discordgo.Message{
		ID:        "m-" + userID,
		ChannelID: channelID,
		Content:   content,
	}
	if userID != "" {
		m.Author = &discordgo.User{ID: userID, Username: "user-" + userID}
	}

	return &discordgo.MessageCreate{Message: m}
}

// Interaction creates an application command interaction invoked by userID in a guild
func Interaction(guildID, channelID, userID string, data discordgo.ApplicationCommandInteractionData) *discordgo.InteractionCreate {
	i := &discordgo.Interaction{
		ID:        "i-" + userID,
		AppID:     "app",
		Type:      discordgo.InteractionApplicationCommand,
		GuildID:   guildID,
		ChannelID: channelID,
		Data:      data,
	}
	if userID != "" {
		i.Member = &discordgo.Member{User: &discordgo.User{ID: userID, Username: "user-" + userID}}
	}

	return &discordgo.InteractionCreate{Interaction: i}
}

// CaptureLogs sends the default slog logger to the returned buffer until the test ends
func CaptureLogs(tb testing.TB) *bytes.Buffer {
	tb.Helper()

	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	tb.Cleanup(func() {
		slog.SetDefault(previous)
	})

	return &buf
}
