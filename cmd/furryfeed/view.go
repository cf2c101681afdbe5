package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/odvcencio/furry-feed/fetch"
	"github.com/odvcencio/furry-feed/render"
	"github.com/odvcencio/furry-feed/source"
	"github.com/odvcencio/furry-feed/store"
	"github.com/odvcencio/furry-feed/tui"
)

const tickRate = 100 * time.Millisecond

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "view",
		Short:       "Open the feed in the terminal",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{ownsTerminal: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			cfg := settingsFrom(ctx)
			defer cfg.closeLog()
			logger := cfg.Logger
			container, err := store.FromContext(ctx)
			if err != nil {
				return err
			}

			src, closeSrc, err := openSource(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeSrc()

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("open terminal: %w", err)
			}
			return runView(ctx, screen, container, src, cfg, logger)
		},
	}
}

// runView starts the loader, the optional fixture watcher and the UI, and
// returns when the UI quits or ctx ends.
func runView(ctx context.Context, screen tui.Screen, container store.Container, src source.Source, cfg settings, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reloads := make(chan struct{}, 1)
	reload := func() {
		select {
		case reloads <- struct{}{}:
		default:
		}
	}
	reload()

	loader := fetch.NewLoader(src, container, fetch.WithLogger(logger))
	go func() {
		_ = loader.Follow(ctx, reloads)
	}()

	if fixtures, ok := src.(*source.FixtureSource); ok && cfg.Watch {
		changes, err := source.NewWatcher(fixtures, source.DefaultDebounce, source.WithLogger(logger)).Watch(ctx)
		if err != nil {
			logger.Warn("fixture watch disabled", "error", err)
		} else {
			go func() {
				for range changes {
					reload()
				}
			}()
		}
	}

	view := tui.NewFeedView(container,
		tui.WithViewLogger(logger),
		tui.WithRenderer(render.NewRenderer(cfg.CodeStyle)),
	)
	app := tui.NewApp(tui.AppConfig{
		Screen:    screen,
		Container: container,
		View:      view,
		Reload:    reload,
		TickRate:  tickRate,
		Logger:    logger,
	})
	return app.Run(ctx)
}
