package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pthm/hxsplit/lib/bundle"
	"github.com/pthm/hxsplit/lib/logging"
)

func newBuildCmd() *cobra.Command {
	var entries []string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Bundle entry points with deferred imports split out",
		Long: `Bundle the configured entry points. Imports written as "./x?deferred" or
"deferred:./x" become handles whose chunks load on demand. The asset manifest
is written next to the output.`,
		Example: `  hxsplit build --entry main=src/main.ts
  hxsplit build --outdir public/build --minify`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, e := range entries {
				name, path, ok := strings.Cut(e, "=")
				if !ok {
					name, path = "main", e
				}
				cfg.Entries[name] = path
			}
			if len(cfg.Entries) == 0 {
				return fmt.Errorf("no entry points: pass --entry or set entries in the config file")
			}

			res, err := bundle.Build(bundle.Options{
				Root:      cfg.Root,
				Entries:   cfg.Entries,
				Outdir:    cfg.Outdir,
				Manifest:  cfg.Manifest,
				Minify:    cfg.Minify,
				Sourcemap: cfg.Sourcemap,
				Metadata:  cfg.Metadata,
				Default:   cfg.Default,
				Write:     true,
				Logger:    logging.Logger,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "built %d chunks, %d deferred modules, %d call sites rewritten\n",
				len(res.Bundle.Chunks), len(res.Manifest.Modules), res.Stats.Rewritten)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&entries, "entry", "e", nil, "entry point as name=path (repeatable)")
	cmd.Flags().String("outdir", "", "output directory (env: HXSPLIT_OUTDIR)")
	cmd.Flags().Bool("minify", false, "minify output")
	cmd.Flags().Bool("sourcemap", false, "emit linked source maps")
	return cmd
}
