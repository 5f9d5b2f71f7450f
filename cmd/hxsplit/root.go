package main

import (
	"github.com/spf13/cobra"

	"github.com/pthm/hxsplit/lib/config"
	"github.com/pthm/hxsplit/lib/logging"
)

var (
	// Global flags
	flagConfig  string
	flagVerbose bool

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

// rootCmd is the base command for the hxsplit CLI.
var rootCmd = &cobra.Command{
	Use:   "hxsplit",
	Short: "Code splitting for server-rendered pages",
	Long: `hxsplit bundles applications with deferred imports split into their own
chunks, rewrites each deferred import to fetch the chunk's dependencies in
parallel, and answers which assets a rendered page needs.`,
	PersistentPreRunE: initializeGlobals,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to config file (default hxsplit.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "increase output verbosity")
	rootCmd.PersistentFlags().String("root", "", "project root (env: HXSPLIT_ROOT)")
	rootCmd.PersistentFlags().String("manifest", "", "asset manifest path (env: HXSPLIT_MANIFEST)")

	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newRewriteCmd())
	rootCmd.AddCommand(newAssetsCmd())
	rootCmd.AddCommand(newIDCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// initializeGlobals sets up logging and loads configuration, with the
// invoked command's flags taking precedence.
func initializeGlobals(cmd *cobra.Command, _ []string) error {
	logging.Setup(flagVerbose)

	loader := config.NewLoader()
	if err := loader.BindFlags(cmd.Flags()); err != nil {
		return err
	}
	c, err := loader.Load(flagConfig)
	if err != nil {
		return err
	}
	cfg = c

	logging.Logger.Debug("hxsplit started", "version", version, "root", cfg.Root, "outdir", cfg.Outdir)
	return nil
}
