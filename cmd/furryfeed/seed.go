package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/furry-feed/source"
)

func newSeedCmd() *cobra.Command {
	var (
		out    string
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Copy fixture users and posts into a SQLite snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := settingsFrom(ctx)
			if out == "" {
				out = cfg.Database
			}
			if out == "" {
				return errors.New("seed: no output database (use --out or --database)")
			}

			fixtures, err := source.NewFixtureSource(cfg.Fixtures, source.WithLogger(cfg.Logger), source.WithStrictIDs(strict)).Load(ctx)
			if err != nil {
				return fmt.Errorf("load fixtures: %w", err)
			}
			db, err := source.OpenSQLite(ctx, out, source.WithLogger(cfg.Logger), source.WithStrictIDs(strict))
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()
			if err := db.Save(ctx, fixtures.Users, fixtures.Posts); err != nil {
				return fmt.Errorf("save snapshot: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users and %d posts into %s\n",
				len(fixtures.Users), len(fixtures.Posts), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "database file to write (default: --database)")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject records whose IDs are not ULIDs")
	return cmd
}
