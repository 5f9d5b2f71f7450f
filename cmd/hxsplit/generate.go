package main

import (
	"github.com/spf13/cobra"

	"github.com/pthm/hxsplit/lib/generator"
	"github.com/pthm/hxsplit/lib/logging"
	"github.com/pthm/hxsplit/lib/manifest"
)

func newGenerateCmd() *cobra.Command {
	var (
		dryRun      bool
		useManifest bool
	)

	cmd := &cobra.Command{
		Use:   "generate [packages]",
		Short: "Generate module references for annotated Go loaders",
		Long: `Generate hxsplit.ModuleRef variables for package-level functions marked
with //hxsplit:module <path>. Output goes to *_split.go next to the source.`,
		Example: `  hxsplit generate ./...
  hxsplit generate --dry-run ./web/...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var manifests *manifest.Manifests
			if useManifest {
				m, err := manifest.LoadAll(cfg.Manifest)
				if err != nil {
					return err
				}
				manifests = m
			}

			gen := generator.New(generator.Options{
				DryRun:    dryRun,
				Root:      cfg.Root,
				Manifests: manifests,
				Logger:    logging.Logger,
			})
			return gen.Generate(patterns(args)...)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be generated without writing files")
	cmd.Flags().BoolVar(&useManifest, "from-manifest", false, "take ids from the manifest")
	return cmd
}

func newCleanCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "clean [packages]",
		Short: "Remove generated files (*_split.go)",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := generator.New(generator.Options{DryRun: dryRun, Root: cfg.Root, Logger: logging.Logger})
			return gen.Clean(patterns(args)...)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be removed")
	return cmd
}

func patterns(args []string) []string {
	if len(args) == 0 {
		return []string{"./..."}
	}
	return args
}
