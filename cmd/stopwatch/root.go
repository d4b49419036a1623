package main

import (
	"io"
	"log/slog"

	"github.com/dariasmyr/stopwatch/config"
	"github.com/dariasmyr/stopwatch/internal/app"
	"github.com/spf13/cobra"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

type rootOptions struct {
	configPath  string
	storagePath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "stopwatch",
		Short: "Time workloads and report elapsed times in readable units",
		Long: `stopwatch runs small workloads on a worker pool, stores every measured
elapsed time and prints summaries in the most readable unit (s, ms or µs).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&opts.storagePath, "storage-path", "", "Path to the storage directory")

	rootCmd.AddCommand(
		newRunCmd(opts),
		newHistoryCmd(opts),
		newClearCmd(opts),
	)

	return rootCmd
}

// load reads the config and opens the application. Callers stop the
// returned app's storage.
func (o *rootOptions) load(cmd *cobra.Command) (*app.App, *config.Config, *slog.Logger, error) {
	cfg, err := config.Load(config.Path(o.configPath), config.WithStoragePath(o.storagePath))
	if err != nil {
		return nil, nil, nil, err
	}

	log := setupLogger(cfg.Env, cmd.ErrOrStderr())
	log.Debug("stopwatch", slog.String("env", cfg.Env), slog.String("storage_path", cfg.StoragePath))

	application, err := app.New(log, cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	return application, cfg, log, nil
}

func setupLogger(env string, w io.Writer) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
