package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sglre6355/spotilink/internal/bot"
	_ "github.com/sglre6355/spotilink/internal/modules/spotify_player"
	"github.com/urfave/cli/v3"
)

// version is set at build time via ldflags:
// go build -ldflags "-X main.version=1.0.0" ./cmd/spotilink
var version = "dev"

const defaultEnvFile = ".env"

func main() {
	app := &cli.Command{
		Name:    "spotilink",
		Usage:   "Discord bot that queues Spotify tracks and playlists through Lavalink",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to a .env file loaded before reading the environment",
				Value: defaultEnvFile,
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "Log format (json or text)",
				Value:   bot.LogFormatJSON,
				Sources: cli.EnvVars("LOG_FORMAT"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Minimum log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		slog.Error("exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if err := loadEnvFile(cmd.String("env-file"), cmd.IsSet("env-file")); err != nil {
		return err
	}

	handler, err := bot.NewLogHandler(os.Stdout, cmd.String("log-format"), cmd.String("log-level"))
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("starting spotilink", "version", version)

	cfg, err := bot.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	b := bot.NewBot(cfg)
	b.LoadModules()

	if err := b.Start(); err != nil {
		// Modules may have connected before the failure.
		if stopErr := b.Stop(); stopErr != nil {
			slog.Warn("failed to clean up after start failure", "error", stopErr)
		}
		return fmt.Errorf("failed to start bot: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	slog.Info("received termination signal, shutting down")
	if err := b.Stop(); err != nil {
		slog.Error("failed to shutdown", "error", err)
	}

	slog.Info("completed bot shutdown")
	return nil
}

// loadEnvFile loads path into the environment without overriding variables
// already set. A missing default file is not an error.
func loadEnvFile(path string, explicit bool) error {
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load env file %s: %w", path, err)
}
