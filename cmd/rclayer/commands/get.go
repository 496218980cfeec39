package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCommand() *cobra.Command {
	var (
		asBool bool
		asInt  bool
	)

	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Resolve the configuration and print one value",
		Long: `Resolve the layered configuration and print the value of KEY.

With --bool the value is run through the same truth predicate the
%{?...} conditionals use; with --int it is read like atoi.`,
		Example: `  # Plain value
  rclayer get PAGER

  # Typed reads
  rclayer get --bool COLOR_OUTPUT
  rclayer get --int CACHE_LIMIT`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig()
			if err != nil {
				return err
			}

			key := args[0]
			if _, ok := cfg.Lookup(key); !ok {
				return fmt.Errorf("unknown configuration key %q", key)
			}
			switch {
			case asBool:
				fmt.Fprintln(cmd.OutOrStdout(), cfg.GetBool(key))
			case asInt:
				fmt.Fprintln(cmd.OutOrStdout(), cfg.GetInt(key))
			default:
				fmt.Fprintln(cmd.OutOrStdout(), cfg.Get(key))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asBool, "bool", false, "interpret the value as a boolean")
	cmd.Flags().BoolVar(&asInt, "int", false, "interpret the value as an integer")
	cmd.MarkFlagsMutuallyExclusive("bool", "int")

	return cmd
}
