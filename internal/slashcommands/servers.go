package slashcommands

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/pajbot/helperbot/internal/commands/whatisup"
	"github.com/pajbot/helperbot/internal/embed"
	"github.com/pajbot/helperbot/internal/serverconfig"
)

func init() {
	var perms int64 = discordgo.PermissionAdministrator
	cmd := &SlashCommand{
		name: "servers",
		command: &discordgo.ApplicationCommand{
			Description: "Configure the servers whatisup can check",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List servers",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Add a server, or change the host of an existing one",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "name",
							Description: "e.g. Forge",
							Type:        discordgo.ApplicationCommandOptionString,
							Required:    true,
						},
						{
							Name:        "host",
							Description: "e.g. forge.play.thesqu1ggang.com",
							Type:        discordgo.ApplicationCommandOptionString,
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove a server",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "name",
							Description: "e.g. Forge",
							Type:        discordgo.ApplicationCommandOptionString,
							Required:    true,
						},
					},
				},
			},
			DefaultMemberPermissions: &perms,
		},
		handler: func(s Session, i *discordgo.InteractionCreate) {
			options := i.ApplicationCommandData().Options
			if len(options) == 0 {
				return
			}
			subcommand := options[0]
			switch subcommand.Name {
			case "list":
				serversList(s, i)
			case "add":
				serversAdd(s, i, subcommand.Options)
			case "remove":
				serversRemove(s, i, subcommand.Options)
			}
		},
	}

	register(cmd)
}

func serversList(s Session, i *discordgo.InteractionCreate) {
	servers := serverconfig.GetGameServers(i.GuildID)
	footer := ""
	if len(servers) == 0 {
		servers = whatisup.Servers(i.GuildID)
		footer = "Defaults"
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(servers))
	for _, server := range servers {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   server.Name,
			Value:  server.Host,
			Inline: false,
		})
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				embed.New(embed.Options{
					Title:  "Servers",
					Fields: fields,
					Footer: footer,
				}),
			},
		},
	})
	if err != nil {
		slog.Error("servers_list_respond_failed", "error", err)
	}
}

func serversAdd(s Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	name, _ := stringOption(options, "name")
	host, _ := stringOption(options, "host")
	name = strings.TrimSpace(name)
	host = strings.TrimSpace(host)
	if name == "" || host == "" {
		respond(s, i, "Error: name and host must not be empty")
		return
	}

	servers := slices.Clone(whatisup.Servers(i.GuildID))
	replaced := false
	for n, server := range servers {
		if strings.EqualFold(server.Name, name) {
			servers[n].Host = host
			replaced = true
		}
	}
	if !replaced {
		servers = append(servers, serverconfig.GameServer{
			Name: name,
			Host: host,
		})
	}

	saveServers(s, i, servers)
}

func serversRemove(s Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	name, _ := stringOption(options, "name")

	current := whatisup.Servers(i.GuildID)
	servers := make([]serverconfig.GameServer, 0, len(current))
	for _, server := range current {
		if !strings.EqualFold(server.Name, strings.TrimSpace(name)) {
			servers = append(servers, server)
		}
	}

	if len(servers) == len(current) {
		respond(s, i, fmt.Sprintf("Error: no server named %s", name))
		return
	}

	saveServers(s, i, servers)
}

func saveServers(s Session, i *discordgo.InteractionCreate, servers []serverconfig.GameServer) {
	if err := serverconfig.SetGameServers(sqlClient, i.GuildID, servers); err != nil {
		respond(s, i, fmt.Sprintf("Error: %s", err))
		return
	}

	if guildRegistration.Load() {
		if err := UpdateGuild(s, i.AppID, i.GuildID); err != nil {
			slog.Error("servers_refresh_guild_failed", "guild_id", i.GuildID, "error", err)
		}
	}

	names := make([]string, len(servers))
	for n, server := range servers {
		names[n] = server.Name
	}

	if len(names) == 0 {
		respond(s, i, "Removed, using the default servers")
		return
	}

	respond(s, i, fmt.Sprintf("Updated to %s", strings.Join(names, ", ")))
}
