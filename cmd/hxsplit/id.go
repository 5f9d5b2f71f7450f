package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pthm/hxsplit"
	"github.com/pthm/hxsplit/lib/manifest"
)

func newIDCmd() *cobra.Command {
	var useManifest bool

	cmd := &cobra.Command{
		Use:   "id <path>...",
		Short: "Print the module id of source files",
		Long: `Print the id each source path gets as a deferred module. Paths are
relative to the project root. With --from-manifest the ids recorded by the
last build take precedence.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(cfg.Root)
			if err != nil {
				return err
			}

			var manifests *manifest.Manifests
			if useManifest {
				manifests, err = manifest.LoadAll(cfg.Manifest)
				if err != nil {
					return err
				}
			}

			r := hxsplit.NewResolver(root, manifests)
			for _, p := range args {
				if !filepath.IsAbs(p) {
					p = filepath.Join(root, p)
				}
				d := r.Describe(p)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", d.ID, d.Path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&useManifest, "from-manifest", false, "prefer ids recorded in the manifest")
	return cmd
}
