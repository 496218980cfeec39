package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rclayer/rclayer/pkg/overlay"
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-resolve and print whenever a layer changes",
		Long: `Watch the profile and overlay files and re-run resolution whenever
one of them changes, printing the freshly resolved configuration.

A change that makes the configuration invalid is logged; the command
keeps watching so the next save can fix it.`,
		Example: `  # Live-resolve while editing overlays
  rclayer watch -p profile.yaml --system ./system.rc --user ./user.rc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			paths := []string{profilePath}
			if systemFile != "" {
				paths = append(paths, systemFile)
			}
			if userFile != "" {
				paths = append(paths, userFile)
			}

			out := cmd.OutOrStdout()
			reload := func() {
				cfg, err := buildConfig()
				if err != nil {
					log.Error().Err(err).Msg("Configuration resolution failed")
					return
				}
				for _, key := range cfg.Keys() {
					fmt.Fprintf(out, "%s='%s'\n", key, cfg.Get(key))
				}
				fmt.Fprintln(out)
			}

			// Print the initial state before waiting for changes.
			reload()

			if err := overlay.Watch(ctx, paths, log.Logger, reload); err != nil {
				return err
			}

			<-ctx.Done()
			return nil
		},
	}

	return cmd
}
