package slashcommands

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Discord does not accept more choices than this on a single option
const maxChoices = 25

// newCommand creates a command. Name and description are lowercased.
func newCommand(name, description string) *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        strings.ToLower(name),
		Description: strings.ToLower(description),
	}
}

// newCommandWithOption creates a command with a single string option
func newCommandWithOption(name, description, optionName, optionDescription string, required bool) *discordgo.ApplicationCommand {
	cmd := newCommand(name, description)
	addStringOption(cmd, optionName, optionDescription, required)
	return cmd
}

func addStringOption(cmd *discordgo.ApplicationCommand, name, description string, required bool) {
	cmd.Options = append(cmd.Options, &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        strings.ToLower(name),
		Description: strings.ToLower(description),
		Required:    required,
	})
}

func addStringOptionWithChoices(cmd *discordgo.ApplicationCommand, name, description string, choices []*discordgo.ApplicationCommandOptionChoice, required bool) {
	if len(choices) > maxChoices {
		choices = choices[:maxChoices]
	}

	addStringOption(cmd, name, description, required)
	cmd.Options[len(cmd.Options)-1].Choices = choices
}

// stringOption returns the value of the string option with the given name
func stringOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) (string, bool) {
	for _, option := range options {
		if strings.EqualFold(option.Name, name) && option.Type == discordgo.ApplicationCommandOptionString {
			return option.StringValue(), true
		}
	}

	return "", false
}
