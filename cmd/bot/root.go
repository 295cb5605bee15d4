package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"

	"bluebrain/internal/adapters/discord"
	"bluebrain/internal/application"
	"bluebrain/internal/config"
	"bluebrain/internal/infrastructure/database"
	"bluebrain/internal/infrastructure/i18n"
	"bluebrain/internal/logging"
	"bluebrain/internal/ready"
	"bluebrain/internal/status"
)

const shutdownTimeout = 10 * time.Second

type options struct {
	configFile string
	noColor    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "bluebrain",
		Short:         "Blue Brain, a Discord moderation and utility bot",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file to use (toml, yaml or json)")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable coloured log output")

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Connects to Discord and serves commands",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd.Context(), opts)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Applies pending database migrations and exits",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, log, err := setup(opts)
				if err != nil {
					return err
				}
				return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log)
			},
		},
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "version=%s commit=%s built=%s\n", version, commit, buildTime)
		},
	}
}

// setup loads the configuration and builds the root logger.
func setup(opts *options) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		return nil, nil, err
	}
	log, err := logging.New(os.Stderr, cfg.LogLevel, opts.noColor)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func run(ctx context.Context, opts *options) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return err
	}
	level, _ := logging.ParseLevel(cfg.LogLevel)
	discordgo.Logger = logging.DiscordgoLogger(ctx, log.Handler())

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("❌ database initialisation failed", logging.Err(err))
		return err
	}
	defer pool.Close()

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
		log.Error("❌ migrations failed", logging.Err(err))
		return err
	}

	store := database.NewStore(pool)
	guildRepo := database.NewGuildRepository(store)
	warnRepo := database.NewWarnRepository(store)
	gatewayRepo := database.NewGatewayRepository(store)

	svc := discord.Services{
		Guilds:  application.NewGuildService(guildRepo, cfg.DefaultPrefix, cfg.DefaultLocale, log),
		Config:  application.NewConfigService(guildRepo, warnRepo, gatewayRepo),
		Errors:  application.NewErrorService(database.NewErrorRepository(store)),
		Tags:    application.NewTagService(database.NewTagRepository(store)),
		Warns:   application.NewWarnService(warnRepo),
		Gateway: application.NewGatewayService(gatewayRepo),
	}

	tr, err := i18n.NewTranslator(cfg.DefaultLocale, log)
	if err != nil {
		log.Error("❌ locale files could not be loaded", logging.Err(err))
		return err
	}

	readiness := ready.New(discord.Extensions()...)

	if cfg.StatusAddr != "" {
		srv := status.NewServer(cfg.StatusAddr, readiness, version, log)
		srv.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Warn("status server shutdown", logging.Err(err))
			}
		}()
	}

	bot, err := discord.NewBot(cfg, svc, tr, readiness, version, logging.DiscordgoLogLevel(level), log)
	if err != nil {
		log.Error("❌ bot initialisation failed", logging.Err(err))
		return err
	}
	if err := bot.Start(ctx); err != nil {
		log.Error("❌ bot stopped with an error", logging.Err(err))
		return err
	}
	return nil
}
