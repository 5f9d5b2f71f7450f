package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pthm/hxsplit/lib/ident"
	"github.com/pthm/hxsplit/lib/logging"
	"github.com/pthm/hxsplit/lib/manifest"
)

func newAssetsCmd() *cobra.Command {
	var (
		entry     string
		async     []string
		match     []string
		asyncOnly bool
		skipEntry bool
		preload   bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "assets [manifest...]",
		Short: "Print the assets a page needs",
		Long: `Print the script and style tags for an entry point plus the deferred
modules used while rendering. Shared assets appear once. Several manifests
may be given; --match selects one by metadata, otherwise the default is used.`,
		Example: `  hxsplit assets --async chart_1a2b3c4d --async table_9f8e7d6c
  hxsplit assets dist/modern.json dist/legacy.json --match tier=legacy --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = []string{cfg.Manifest}
			}
			manifests, err := manifest.LoadAll(paths...)
			if err != nil {
				return err
			}

			used := make([]ident.ID, 0, len(async))
			for _, id := range async {
				used = append(used, ident.ID(id))
			}
			opts := manifest.Options{
				Entry:     entry,
				Async:     manifest.Use(used...),
				SkipEntry: skipEntry,
				Match:     metadataMatcher(match),
			}

			q := manifest.NewQuery(manifests, logging.Logger, nil)
			var assets manifest.AssetsEntry
			if asyncOnly {
				assets, err = q.AsyncAssets(opts.Async, opts)
			} else {
				assets, err = q.Assets(opts)
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(assets)
			}
			if preload {
				err = manifest.PreloadTags(assets, cfg.Base).Render(cmd.Context(), w)
			} else {
				err = manifest.Tags(assets, cfg.Base).Render(cmd.Context(), w)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(w)
			return nil
		},
	}

	cmd.Flags().StringVar(&entry, "entry", "", "entry point name (default main)")
	cmd.Flags().StringArrayVar(&async, "async", nil, "deferred module id used by the page (repeatable)")
	cmd.Flags().StringArrayVar(&match, "match", nil, "select the manifest whose metadata has key=value (repeatable)")
	cmd.Flags().BoolVar(&asyncOnly, "async-only", false, "print only assets the entry does not provide")
	cmd.Flags().BoolVar(&skipEntry, "skip-entry", false, "ignore entry assets entirely")
	cmd.Flags().BoolVar(&preload, "preload", false, "print preload links instead of tags")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the asset lists as JSON")
	cmd.Flags().String("base", "", "URL prefix of the assets (env: HXSPLIT_BASE)")
	return cmd
}

// metadataMatcher matches manifests whose metadata has every key=value pair.
// No pairs selects the default manifest.
func metadataMatcher(pairs []string) manifest.Matcher {
	if len(pairs) == 0 {
		return nil
	}
	return func(b *manifest.AssetBuild) bool {
		for _, p := range pairs {
			k, v, _ := strings.Cut(p, "=")
			got, ok := b.Metadata[k]
			if !ok || fmt.Sprint(got) != v {
				return false
			}
		}
		return true
	}
}
