package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bacman-dev/bacman/internal/config"
	"github.com/bacman-dev/bacman/internal/models"
	"github.com/bacman-dev/bacman/internal/services/watcher"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load the configuration and watch the backup paths",
	Long: `Load, validate and resolve the configuration, then watch every
resolved backup path for filesystem changes until interrupted.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	// Load configuration
	loader := config.NewLoader(log.Logger)

	var resolved []models.ResolvedBackupPath
	var err error
	if configFile != "" {
		resolved, err = loader.LoadFile(configFile)
	} else {
		resolved, err = loader.Load()
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
		return err
	}

	paths := models.ExtractPaths(resolved)
	if len(paths) == 0 {
		log.Warn().Msg("no backup paths configured, nothing to watch")
		return nil
	}

	// Set up context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Warn().Str("signal", sig.String()).Msg("received signal, shutting down")
		cancel()
	}()

	events := make(chan models.WatchEvent, 16)
	go func() {
		for ev := range events {
			log.Info().Str("path", ev.Path).Str("op", ev.Op).Msg("change detected")
		}
	}()

	// Watch paths
	watcherSvc := watcher.New(log.Logger)
	result, err := watcherSvc.Watch(ctx, paths, events)
	close(events)
	if err != nil {
		log.Error().Err(err).Msg("watch failed")
		return err
	}
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("watch failed")
		return result.Error
	}

	log.Info().Int("events", result.EventsSeen).Msg("watch finished")
	return nil
}
