package pkg

import "github.com/bwmarrin/discordgo"

// Session is the part of *discordgo.Session that prefix commands use
type Session interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendReply(channelID string, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Command is a prefix command
type Command interface {
	Run(s Session, m *discordgo.MessageCreate, parts []string)
	Description() string
}
