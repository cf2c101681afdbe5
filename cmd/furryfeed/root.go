package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/odvcencio/furry-feed/source"
	"github.com/odvcencio/furry-feed/store"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

type settingsKey struct{}

// ownsTerminal marks commands that draw a full-screen UI. Their logs go to
// the configured log file or nowhere.
const ownsTerminal = "furryfeed/owns-terminal"

// newRootCmd builds the command tree. Each subcommand runs with the
// resolved settings and a container provided on its context.
func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "furryfeed",
		Short:         "Browse users and posts from fixtures or a SQLite snapshot",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		v, err := loadConfig(root.PersistentFlags(), configPath)
		if err != nil {
			return err
		}
		cfg, err := resolve(v)
		if err != nil {
			return err
		}
		logger, closeLog, err := commandLogger(cmd, cfg)
		if err != nil {
			return err
		}
		cfg.Logger, cfg.closeLog = logger, closeLog
		container, err := store.New(store.Config{Backend: cfg.Backend, Logger: logger})
		if err != nil {
			_ = closeLog()
			return err
		}
		logger.Debug("container ready", "backend", cfg.Backend)

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx = context.WithValue(ctx, settingsKey{}, cfg)
		cmd.SetContext(store.Provide(ctx, container))
		return nil
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default ./furryfeed.yaml)")
	flags.String("backend", string(store.BackendReducer), "state container: reducer or observable")
	flags.String("fixtures", defaultFixtures, "glob of YAML fixture files")
	flags.String("database", "", "SQLite snapshot to read instead of fixtures")
	flags.String("log-level", "info", "debug, info, warn or error")
	flags.Bool("watch", true, "reload when fixture files change")

	root.AddCommand(newViewCmd(), newDumpCmd(), newSeedCmd(), newVersionCmd())
	return root
}

func settingsFrom(ctx context.Context) settings {
	cfg, _ := ctx.Value(settingsKey{}).(settings)
	if cfg.closeLog == nil {
		cfg.closeLog = func() error { return nil }
	}
	return cfg
}

// commandLogger picks the log destination for cmd. The close func is never nil.
func commandLogger(cmd *cobra.Command, cfg settings) (*slog.Logger, func() error, error) {
	if cmd.Annotations[ownsTerminal] == "" {
		return newLogger(cmd.ErrOrStderr(), cfg.LogLevel), func() error { return nil }, nil
	}
	if cfg.LogFile == "" {
		return slog.New(slog.DiscardHandler), func() error { return nil }, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newLogger(f, cfg.LogLevel), f.Close, nil
}

// openSource picks the SQLite snapshot when configured, else fixtures.
// The returned close func is never nil.
func openSource(ctx context.Context, cfg settings, logger *slog.Logger) (source.Source, func() error, error) {
	if cfg.Database != "" {
		db, err := source.OpenSQLite(ctx, cfg.Database, source.WithLogger(logger))
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		return db, db.Close, nil
	}
	return source.NewFixtureSource(cfg.Fixtures, source.WithLogger(logger)), func() error { return nil }, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of furryfeed",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "furryfeed version %s\n", version)
		},
	}
}
