package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rclayer/rclayer/pkg/rcstore"
)

var (
	// Global flags
	profilePath  string
	systemFile   string
	userFile     string
	userDotfile  string
	prefixKey    string
	altPrefixKey string
	verbose      bool
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rclayer",
		Short: "rclayer - layered rc configuration resolver",
		Long: `rclayer resolves layered rc-style configuration: profile defaults,
a system overlay file, a user overlay file and environment overrides
are merged, and every %{...} directive embedded in the values
(substitution, conditionals, indirection) is expanded to plain text.

Overlay files may be shell-style rc, YAML or TOML, picked by
extension.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&profilePath, "profile", "p", "rclayer.yaml", "profile file declaring the default entries")
	rootCmd.PersistentFlags().StringVar(&systemFile, "system", "", "system overlay file")
	rootCmd.PersistentFlags().StringVar(&userFile, "user", "", "user overlay file")
	rootCmd.PersistentFlags().StringVar(&userDotfile, "user-dotfile", "", "user overlay dotfile looked up under $HOME when --user is unset")
	rootCmd.PersistentFlags().StringVar(&prefixKey, "prefix-key", rcstore.DefaultPrefixKey, "entry whose resolved value prefixes indirect references")
	rootCmd.PersistentFlags().StringVar(&altPrefixKey, "alt-prefix-key", rcstore.DefaultAltPrefixKey, "second conventional prefix entry for auto-registration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(newResolveCommand())
	rootCmd.AddCommand(newGetCommand())
	rootCmd.AddCommand(newDumpCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newWatchCommand())

	return rootCmd
}

// buildConfig loads the profile and runs the build lifecycle with the
// global flags.
func buildConfig() (*rcstore.Config, error) {
	profile, err := rcstore.LoadProfile(profilePath)
	if err != nil {
		return nil, err
	}
	store := rcstore.New(rcstore.Options{
		SystemFile:   systemFile,
		UserFile:     userFile,
		UserDotfile:  userDotfile,
		PrefixKey:    prefixKey,
		AltPrefixKey: altPrefixKey,
	})
	if err := store.AddDefaults(profile.Entries); err != nil {
		return nil, err
	}
	return store.Build()
}
