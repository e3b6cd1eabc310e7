package serverconfig

import (
	"database/sql"
	"fmt"
	"strings"
)

const gameServersKey = "gameservers"

// GameServer is a Minecraft server the whatisup command can look up
type GameServer struct {
	Name string
	Host string
}

// ParseGameServers parses a list of servers in the form `Name=host,Name=host`
func ParseGameServers(v string) ([]GameServer, error) {
	var servers []GameServer

	for _, pair := range strings.Split(v, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		name, host, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		host = strings.TrimSpace(host)
		if !ok || name == "" || host == "" {
			return nil, fmt.Errorf("invalid game server %q, must be in the form Name=host", pair)
		}

		servers = append(servers, GameServer{
			Name: name,
			Host: host,
		})
	}

	return servers, nil
}

// EncodeGameServers is the inverse of ParseGameServers
func EncodeGameServers(servers []GameServer) string {
	pairs := make([]string, len(servers))

	for i, server := range servers {
		pairs[i] = server.Name + "=" + server.Host
	}

	return strings.Join(pairs, ",")
}

// GetGameServers returns the servers configured for the given guild, or nil if none are configured
func GetGameServers(guildID string) []GameServer {
	v := Get(guildID, gameServersKey)
	if v == "" {
		return nil
	}

	servers, err := ParseGameServers(v)
	if err != nil {
		return nil
	}

	return servers
}

// SetGameServers stores the list of servers for the given guild. An empty list removes the value.
func SetGameServers(sqlClient *sql.DB, guildID string, servers []GameServer) error {
	if len(servers) == 0 {
		return Remove(sqlClient, guildID, gameServersKey)
	}

	for _, server := range servers {
		if strings.ContainsAny(server.Name, ",=") || strings.ContainsAny(server.Host, ",=") {
			return fmt.Errorf("game server %s must not contain ',' or '='", server.Name)
		}
	}

	return Save(sqlClient, guildID, gameServersKey, EncodeGameServers(servers))
}
