package commands

import (
	"github.com/spf13/cobra"
)

func newDumpCommand() *cobra.Command {
	var useDefaults bool

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print every entry as commented shell text",
		Long: `Print every configuration entry with its type, description and value
as commented shell text, the way a template rc file would look.

Values are printed as configured, before directive expansion. Entries
whose layered value differs from the default show both; locally added
keys (overlay-introduced or discovered through indirection) are marked
as such. With --defaults the compiled-in default is the active line
and the local change the comment.`,
		Example: `  # Dump the effective configuration
  rclayer dump -p profile.yaml --system /etc/apprc

  # Dump a template with the defaults active
  rclayer dump --defaults`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig()
			if err != nil {
				return err
			}
			return cfg.DumpDefaults(cmd.OutOrStdout(), useDefaults)
		},
	}

	cmd.Flags().BoolVar(&useDefaults, "defaults", false, "print defaults as the active lines")

	return cmd
}
