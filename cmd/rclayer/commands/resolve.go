package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newResolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [KEY...]",
		Short: "Resolve the configuration and print it",
		Long: `Resolve the layered configuration and print KEY='value' lines.

With no arguments every known key is printed in sorted order; with
arguments only the named keys are printed.`,
		Example: `  # Resolve everything against a profile and overlays
  rclayer resolve -p profile.yaml --system /etc/apprc --user-dotfile .apprc

  # Print two specific keys
  rclayer resolve PAGER EDITOR`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig()
			if err != nil {
				return err
			}

			keys := args
			if len(keys) == 0 {
				keys = cfg.Keys()
			}
			for _, key := range keys {
				value, ok := cfg.Lookup(key)
				if !ok {
					return fmt.Errorf("unknown configuration key %q", key)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s='%s'\n", key, value)
			}

			log.Debug().Int("keys", len(keys)).Msg("Configuration resolved")
			return nil
		},
	}

	return cmd
}
