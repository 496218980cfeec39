package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rclayer/rclayer/pkg/rcstore"
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the profile and resolve the configuration",
		Long: `Validate the profile file and run a full resolution pass.

This command checks:
  - profile syntax and entry declarations
  - overlay file syntax
  - directive structure (conditionals, terminators)
  - reference cycles`,
		Example: `  # Validate a profile with its overlays
  rclayer validate -p profile.yaml --system /etc/apprc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig()
			if err != nil {
				if e, ok := rcstore.AsResolveError(err); ok {
					log.Error().
						Str("code", string(e.Code)).
						Str("key", e.Key).
						Msg("Configuration is invalid")
				}
				return err
			}

			log.Info().
				Int("entries", len(cfg.Entries())).
				Msg("Configuration is valid")
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}

	return cmd
}
