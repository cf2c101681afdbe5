package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/odvcencio/furry-feed/fetch"
	"github.com/odvcencio/furry-feed/store"
)

func newDumpCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Load the feed once and print the container state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := settingsFrom(ctx)
			container, err := store.FromContext(ctx)
			if err != nil {
				return err
			}

			src, closeSrc, err := openSource(ctx, cfg, cfg.Logger)
			if err != nil {
				return err
			}
			defer closeSrc()

			if err := fetch.NewLoader(src, container, fetch.WithLogger(cfg.Logger)).Load(ctx); err != nil {
				return fmt.Errorf("load feed: %w", err)
			}

			state := container.Snapshot()
			out := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(state)
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(state); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q (want yaml or json)", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	return cmd
}
