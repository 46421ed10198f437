package app

import (
	"github.com/spf13/cobra"

	"github.com/rwmods/rwsort/internal/logging"
	"github.com/rwmods/rwsort/internal/version"
)

var (
	cfgFile   string
	cachePath string
	verbosity int

	// RootCmd is the root command for rwsort.
	RootCmd = &cobra.Command{
		Use:   "rwsort",
		Short: "Sort RimWorld's mod load order using the community score database",
		Long: `rwsort reorders the active mod list in RimWorld's ModsConfig.xml using
the RWMSDB category score database. Mods with lower scores load earlier;
mods the database does not know yet are reported for manual triage.

The original file is always copied to a timestamped backup before anything
is written.

Quick start:
  1. rwsort doctor          # verify the detected game directories
  2. rwsort sort --dry-run  # preview the new load order
  3. rwsort sort            # write it (asks for confirmation)

Examples:
  # Preview without writing anything
  rwsort sort --dry-run

  # Sort, keeping unknown mods at the end of the load order
  rwsort sort --keep-unknown

  # Sort using the last downloaded database, no network access
  rwsort sort --offline

  # Watch the mod directories for changes
  rwsort watch`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(verbosity)
		},
	}
)

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"configuration file (default: $XDG_CONFIG_HOME/rwsort/rwsort.toml, then ./rwsort.toml)")
	RootCmd.PersistentFlags().StringVar(&cachePath, "cache", "",
		"database cache path (default: ~/.rwsort/cache.db)")
	RootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase diagnostic output (repeatable)")

	// Enable cobra's built-in suggestion feature for unknown subcommands.
	RootCmd.SuggestionsMinimumDistance = 2

	RootCmd.AddCommand(sortCmd)
	RootCmd.AddCommand(contributorsCmd)
	RootCmd.AddCommand(doctorCmd)
	RootCmd.AddCommand(watchCmd)
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}
