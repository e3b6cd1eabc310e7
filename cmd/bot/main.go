package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/jessevdk/go-flags"
	"github.com/pajbot/helperbot/internal/commands/whatisup"
	"github.com/pajbot/helperbot/internal/config"
	"github.com/pajbot/helperbot/internal/cooldown"
	"github.com/pajbot/helperbot/internal/logging"
	"github.com/pajbot/helperbot/internal/serverconfig"
	"github.com/pajbot/helperbot/internal/serverstatus"
	"github.com/pajbot/helperbot/internal/slashcommands"
	"github.com/pajbot/helperbot/pkg/commands"
	"github.com/pajlada/stupidmigration"
	"github.com/valkey-io/valkey-go"
	"golang.org/x/sync/errgroup"

	_ "github.com/lib/pq"

	_ "github.com/pajbot/helperbot/internal/commands/help"
	_ "github.com/pajbot/helperbot/internal/commands/ping"
)

type options struct {
	Register    string   `long:"register" choice:"none" choice:"guild" choice:"global" default:"guild" description:"Where to register slash commands"`
	ClearGlobal bool     `long:"clear-global" description:"Remove all globally registered slash commands and exit"`
	EnvFiles    []string `long:"env-file" description:"Env file to load before reading the configuration (can be repeated)"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	if err := config.Load(opts.EnvFiles...); err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger, err := logging.New(config.LogLevel, config.LogFile)
	if err != nil {
		fmt.Println("Error setting up logging:", err)
		os.Exit(1)
	}

	if err := run(opts, logger); err != nil {
		logger.Error("bot_failed", "error", err)
		os.Exit(1)
	}
}

func openDatabase() (*sql.DB, error) {
	if config.DSN == "" {
		slog.Warn("no_sql_dsn", "detail", "server config will not be persisted")
		return nil, nil
	}

	sqlClient, err := sql.Open("postgres", config.DSN)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to postgres: %w", err)
	}

	if err = sqlClient.Ping(); err != nil {
		return nil, fmt.Errorf("unable to ping postgres: %w", err)
	}

	if err = stupidmigration.Migrate("migrations", sqlClient); err != nil {
		return nil, fmt.Errorf("unable to run SQL migrations: %w", err)
	}

	if err = serverconfig.Load(sqlClient); err != nil {
		return nil, err
	}

	return sqlClient, nil
}

func newCooldownStore() (cooldown.Store, func(), error) {
	if config.ValkeyURL == "" {
		return cooldown.NewMemoryStore(), func() {}, nil
	}

	clientOption, err := valkey.ParseURL(config.ValkeyURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing valkey url: %w", err)
	}

	client, err := valkey.NewClient(clientOption)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to valkey: %w", err)
	}

	slog.Info("cooldown_store", "store", "valkey")

	return cooldown.NewValkeyStore(client), client.Close, nil
}

func onMessage(gate *cooldown.Gate) func(*discordgo.Session, *discordgo.MessageCreate) {
	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.Bot || m.Author.ID == s.State.User.ID {
			return
		}

		commands.Dispatch(context.Background(), s, gate, m)
	}
}

func run(opts options, logger *slog.Logger) error {
	sqlClient, err := openDatabase()
	if err != nil {
		return err
	}
	if sqlClient != nil {
		defer sqlClient.Close()
	}

	store, closeStore, err := newCooldownStore()
	if err != nil {
		return err
	}
	defer closeStore()

	gate := cooldown.New(store, config.GlobalCooldown, logger)

	defaultServers, err := serverconfig.ParseGameServers(config.GameServers)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", "HELPERBOT_GAME_SERVERS", err)
	}

	whatisup.Initialize(serverstatus.New(config.StatusAPIURL), defaultServers)
	commands.Load(config.CommandPrefix)
	slashcommands.Initialize(sqlClient, gate, config.BotImage)

	bot, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return fmt.Errorf("error creating Discord session: %w", err)
	}
	bot.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentMessageContent

	bot.AddHandler(onMessage(gate))

	// Open a websocket connection to Discord and begin listening.
	if err = bot.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}
	closeBot := sync.OnceValue(bot.Close)
	defer closeBot()

	appID := config.BotID
	if appID == "" {
		appID = bot.State.User.ID
	}

	sc := slashcommands.New(appID, config.ServerIDs)

	if opts.ClearGlobal {
		return sc.ClearGlobal(bot)
	}

	sc.AddHandler(bot)

	switch opts.Register {
	case "global":
		err = sc.UpdateGlobal(bot)
	case "guild":
		err = sc.UpdateGuilds(bot)
		defer sc.ClearGuilds(bot)
	}
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		startCooldownSweepRunner(gctx, gate, sweepInterval(gate.Window()))
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("bot_stopping")
		if err := closeBot(); err != nil {
			return fmt.Errorf("closing discord session: %w", err)
		}
		return nil
	})

	logger.Info("bot_running", "app_id", appID, "register", opts.Register, "cooldown", config.GlobalCooldown)
	fmt.Println("Bot is now running.  Press CTRL-C to exit.")

	return g.Wait()
}
