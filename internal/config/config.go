package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
)

const (
	envPrefix = "HELPERBOT_"
)

func envName(v string) string {
	return envPrefix + v
}

var (
	Token string

	// Application ID the commands are registered under. Defaults to the user ID of the bot session
	BotID string

	// Guild IDs in which to register guild slash commands
	ServerIDs []string

	CommandPrefix string

	// Cooldown window shared by every command
	GlobalCooldown time.Duration

	// Image used as thumbnail and link in embeds
	BotImage string

	DSN string

	ValkeyURL string

	StatusAPIURL string

	// Servers offered by /whatisup in guilds that have not configured their own
	GameServers string

	LogLevel string
	LogFile  string
)

// Load reads the configuration from the environment.
// Variables from envFiles are loaded first and never override variables that are already set.
func Load(envFiles ...string) (err error) {
	if err = godotenv.Load(envFiles...); err != nil && len(envFiles) > 0 {
		return fmt.Errorf("loading env file: %w", err)
	}

	if Token, err = mustStringEnv(envName("TOKEN")); err != nil {
		return
	}

	BotID = stringEnv(envName("BOT_ID"), "")

	ServerIDs = cleanList(stringListEnv(envName("SERVER_IDS"), []string{}))

	CommandPrefix = stringEnv(envName("COMMAND_PREFIX"), "!")

	if GlobalCooldown, err = durationEnv(envName("GLOBAL_COOLDOWN"), 5*time.Second); err != nil {
		return
	}

	BotImage = stringEnv(envName("BOT_IMAGE"), "")

	DSN = stringEnv(envName("SQL_DSN"), "")

	ValkeyURL = stringEnv(envName("VALKEY_URL"), "")

	StatusAPIURL = stringEnv(envName("STATUS_API_URL"), "https://api.mcsrvstat.us")

	GameServers = stringEnv(envName("GAME_SERVERS"), "Forge=forge.play.thesqu1ggang.com,Vanilla=play.thesqu1ggang.com")

	LogLevel = stringEnv(envName("LOG_LEVEL"), "info")
	LogFile = stringEnv(envName("LOG_FILE"), "")

	return nil
}
