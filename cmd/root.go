package cmd

import (
	"bluebgg/internal/bggapi"
	"bluebgg/internal/bot"
	"bluebgg/internal/config"
	"bluebgg/internal/health"
	"bluebgg/internal/version"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:           "bluebgg",
	Short:         "Discord bot that answers questions about BoardGameGeek users and games",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		setupLogging(cfg.Log)
		return run(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("env file to load (default %s, if present)", config.DefaultEnvFile))
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Run the bot, and the health server if it has an address, until ctx is done
// or one of them fails
func run(ctx context.Context, cfg config.Config) error {

	log.Info().Msg(fmt.Sprintf("Starting %s", version.String()))

	client, err := bggapi.NewBggApi(cfg.BggSettings())
	if err != nil {
		return fmt.Errorf("could not create BGG client: %w", err)
	}

	discordBot, err := bot.CreateBot(cfg.Discord.Token, cfg.Discord.ApplicationId, cfg.Discord.GuildId, client)
	if err != nil {
		return err
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return discordBot.Run(ctx)
	})
	if cfg.Health.Listen != "" {
		server := health.NewServer(cfg.Health.Listen, discordBot)
		group.Go(func() error {
			return server.Run(ctx)
		})
	} else {
		log.Info().Msg("Health server disabled")
	}

	err = group.Wait()
	log.Info().Msg("Bye")
	return err
}
