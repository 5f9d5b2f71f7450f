package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pthm/hxsplit/lib/bundle"
	"github.com/pthm/hxsplit/lib/logging"
	"github.com/pthm/hxsplit/lib/rewrite"
)

func newRewriteCmd() *cobra.Command {
	var (
		metafile string
		imports  string
		dir      string
	)

	cmd := &cobra.Command{
		Use:   "rewrite",
		Short: "Rewrite deferred imports in an existing build",
		Long: `Rewrite the deferred import call sites of chunks produced by another
bundler. The static import graph comes from an esbuild metafile (--metafile)
or from a JSON object mapping each chunk to the chunks it imports (--imports).
Rewriting an already rewritten build changes nothing.`,
		Example: `  hxsplit rewrite --metafile meta.json
  hxsplit rewrite --imports graph.json --dir dist --format system`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := rewrite.ParseFormat(cfg.Format)
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.Outdir
			}
			outdir, err := filepath.Abs(filepath.Join(cfg.Root, dir))
			if err != nil {
				return err
			}

			var b *rewrite.Bundle
			switch {
			case metafile != "":
				meta, err := bundle.ReadMetafile(metafile)
				if err != nil {
					return err
				}
				root, err := filepath.Abs(cfg.Root)
				if err != nil {
					return err
				}
				b, err = bundle.ReadOutput(root, outdir, meta, format)
				if err != nil {
					return err
				}
			case imports != "":
				b, err = readImportGraph(imports, outdir, format)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("one of --metafile or --imports is required")
			}

			out, stats, err := rewrite.New(logging.Logger, nil).Rewrite(b)
			if err != nil {
				return err
			}
			if err := bundle.WriteOutput(outdir, out); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d call sites, %d rewritten, %d external\n", stats.Sites, stats.Rewritten, stats.External)
			return nil
		},
	}

	cmd.Flags().StringVar(&metafile, "metafile", "", "esbuild metafile of the build")
	cmd.Flags().StringVar(&imports, "imports", "", "JSON file mapping chunk file names to their static imports")
	cmd.Flags().StringVar(&dir, "dir", "", "directory holding the chunks (default outdir)")
	cmd.Flags().String("format", "", "chunk format: esm or system (env: HXSPLIT_FORMAT)")
	cmd.MarkFlagsMutuallyExclusive("metafile", "imports")
	return cmd
}

// readImportGraph loads the chunks named in a {"chunk.js": ["dep.js"]}
// import graph from dir.
func readImportGraph(path, dir string, format rewrite.Format) (*rewrite.Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import graph: %w", err)
	}
	var graph map[string][]string
	if err := json.Unmarshal(data, &graph); err != nil {
		return nil, fmt.Errorf("parsing import graph: %w", err)
	}

	names := make([]string, 0, len(graph))
	for name := range graph {
		names = append(names, name)
	}
	sort.Strings(names)

	b := &rewrite.Bundle{Format: format}
	for _, name := range names {
		file := filepath.Join(dir, filepath.FromSlash(name))
		code, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", rewrite.ErrMalformedOutput, err)
		}
		chunk := &rewrite.Chunk{FileName: name, Code: code, StaticImports: graph[name]}
		if m, err := os.ReadFile(file + ".map"); err == nil {
			chunk.Map = m
		}
		b.Chunks = append(b.Chunks, chunk)
	}
	return b, nil
}
