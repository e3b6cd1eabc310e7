package embed

import (
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Options describes an embed. Empty values are left out of the resulting embed.
type Options struct {
	Color       int
	Title       string
	URL         string
	Author      *discordgo.MessageEmbedAuthor
	Description string
	Thumbnail   string
	Fields      []*discordgo.MessageEmbedField
	Image       string
	Footer      string

	// Timestamp defaults to the time the embed is built
	Timestamp time.Time
}

// Info is what a help message shows about a single command
type Info struct {
	Name        string
	Description string
}

const (
	helpColor       = 0x0099ff
	helpTitle       = "Help Message!"
	helpDescription = "This is a list of commands that you can run"
)

var now = time.Now

// New builds a rich embed from the given options
func New(options Options) *discordgo.MessageEmbed {
	slog.Debug("creating_embed", "title", options.Title, "fields", len(options.Fields))

	e := &discordgo.MessageEmbed{
		Type:        discordgo.EmbedTypeRich,
		Color:       options.Color,
		Title:       options.Title,
		URL:         options.URL,
		Description: options.Description,
	}

	if options.Author != nil && options.Author.Name != "" {
		e.Author = options.Author
	}

	if options.Thumbnail != "" {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{
			URL: options.Thumbnail,
		}
	}

	for _, field := range options.Fields {
		if field == nil || field.Name == "" || field.Value == "" {
			continue
		}
		e.Fields = append(e.Fields, field)
	}

	if options.Image != "" {
		e.Image = &discordgo.MessageEmbedImage{
			URL: options.Image,
		}
	}

	if options.Footer != "" {
		e.Footer = &discordgo.MessageEmbedFooter{
			Text: options.Footer,
		}
	}

	timestamp := options.Timestamp
	if timestamp.IsZero() {
		timestamp = now()
	}
	e.Timestamp = timestamp.Format(time.RFC3339)

	return e
}

// Help builds the help message listing every command in commands, each name prefixed with prefix
func Help(commands []Info, author *discordgo.MessageEmbedAuthor, prefix, botImage string) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(commands))

	for _, command := range commands {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   prefix + command.Name,
			Value:  command.Description,
			Inline: false,
		})
	}

	return New(Options{
		Color:       helpColor,
		Title:       helpTitle,
		URL:         botImage,
		Author:      author,
		Description: helpDescription,
		Thumbnail:   botImage,
		Fields:      fields,
	})
}
