package cli

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/otobench/otobench/pkg/cache"
	"github.com/otobench/otobench/pkg/errors"
	"github.com/otobench/otobench/pkg/gen"
	"github.com/otobench/otobench/pkg/graphio"
)

// genOpts holds the command-line flags for the gen command.
type genOpts struct {
	nodes     string // V range
	edges     string // E range (absolute)
	outdegree string // E range via expected outdegree
	density   string // E range via edge density
	ngraphs   int    // graphs per file
	acyclic   bool   // DAG sampling
	text      bool   // text output instead of binary
	file      string // output file template
	seed      uint64 // rng seed
	cacheDir  string // edge-list cache location ("" disables)
	refresh   bool   // bypass the cache
}

// newGenCmd creates the gen command. It samples random edge lists
// (acyclic or general), writes one file per (V, E) combination, and
// reuses cached lists when the generation parameters match a
// previous run.
func newGenCmd() *cobra.Command {
	opts := genOpts{ngraphs: 1, seed: 1, file: "graphs-%V-%E-%N.dat"}

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate random graph edge-list files",
		Long: `Generate random graph edge-list files for experiments.

The edge axis can be given three ways: --edges (absolute count),
--outdegree (expected initial outdegree, E = o*V), or --density
(fraction of the acyclic edge universe, E = d*V*(V-1)/2). Each axis
flag accepts a single value or a start:end:step sweep.

Examples:
  otobench gen --nodes 1000 --edges 5000 --acyclic
  otobench gen --nodes 100:1000:100 --density 0.02 --ngraphs 5 --acyclic
  otobench gen --nodes 50 --edges 200 --text --file graph-%V-%E-%N.txt`,
		RunE: func(c *cobra.Command, args []string) error {
			return runGen(c, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.nodes, "nodes", "n", "50", "vertex count (range)")
	cmd.Flags().StringVarP(&opts.edges, "edges", "e", "", "edge count (range)")
	cmd.Flags().StringVarP(&opts.outdegree, "outdegree", "o", "", "expected outdegree (range)")
	cmd.Flags().StringVarP(&opts.density, "density", "d", "", "edge density (range)")
	cmd.Flags().IntVar(&opts.ngraphs, "ngraphs", opts.ngraphs, "graphs per output file")
	cmd.Flags().BoolVar(&opts.acyclic, "acyclic", false, "generate acyclic graphs only")
	cmd.Flags().BoolVar(&opts.text, "text", false, "write text format instead of binary")
	cmd.Flags().StringVarP(&opts.file, "file", "f", opts.file, "output file template (%V, %E, %N)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", opts.seed, "random seed")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", defaultCacheDir(), "edge-list cache directory (empty disables)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "regenerate even on a cache hit")

	return cmd
}

func runGen(cmd *cobra.Command, opts *genOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	vRange, err := parseRange(opts.nodes)
	if err != nil {
		return err
	}
	eRange, conversion, err := edgeAxis(opts.edges, opts.outdegree, opts.density)
	if err != nil {
		return err
	}
	if opts.ngraphs <= 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "ngraphs must be positive, got %d", opts.ngraphs)
	}

	store := cache.NewNullCache()
	if opts.cacheDir != "" {
		if store, err = cache.NewFileCache(opts.cacheDir); err != nil {
			return err
		}
		defer store.Close()
	}

	files := 0
	for _, v := range vRange.IntValues() {
		for _, eValue := range eRange.Values() {
			e := edgeCount(eValue, v, conversion)
			path := expandTemplate(opts.file, v, edgeLabel(conversion), eValue, opts.ngraphs)

			data, err := genFile(cmd, opts, store, v, e)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return err
			}
			logger.Debugf("wrote %s: V=%d E=%d graphs=%d bytes=%d", path, v, e, opts.ngraphs, len(data))
			files++
		}
	}
	prog.done(fmt.Sprintf("Generated %d graph files", files))
	return nil
}

// genFile produces the encoded file content for one (V, E)
// combination, consulting the cache first.
func genFile(cmd *cobra.Command, opts *genOpts, store cache.Cache, v, e int) ([]byte, error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	key := cache.EdgeListKey(v, e, opts.ngraphs, opts.acyclic, opts.seed)
	if !opts.refresh && !opts.text {
		if data, ok, err := store.Get(ctx, key); err == nil && ok {
			logger.Debugf("cache hit for V=%d E=%d", v, e)
			return data, nil
		}
	}

	rng := rand.New(rand.NewPCG(opts.seed, uint64(v)<<32|uint64(e)))
	var buf bytes.Buffer
	for i := 0; i < opts.ngraphs; i++ {
		var err error
		g := graphio.Graph{V: v}
		if opts.acyclic {
			g.Edges, err = gen.Acyclic(v, e, rng)
		} else {
			g.Edges, err = gen.Digraph(v, e, rng)
		}
		if err != nil {
			return nil, err
		}
		if opts.text {
			err = graphio.WriteText(&buf, g)
		} else {
			err = graphio.WriteBinary(&buf, g)
		}
		if err != nil {
			return nil, err
		}
	}

	if !opts.text {
		if err := store.Set(ctx, key, buf.Bytes(), 0); err != nil {
			logger.Warnf("cache write failed: %v", err)
		}
	}
	return buf.Bytes(), nil
}

// edgeAxis resolves the three mutually exclusive edge flags into
// one range plus its conversion.
func edgeAxis(edges, outdegree, density string) (Range, int, error) {
	set := 0
	for _, s := range []string{edges, outdegree, density} {
		if s != "" {
			set++
		}
	}
	if set > 1 {
		return Range{}, 0, errors.New(errors.ErrCodeInvalidArgument,
			"--edges, --outdegree and --density are mutually exclusive")
	}
	switch {
	case outdegree != "":
		r, err := parseRange(outdegree)
		return r, convOutdegree, err
	case density != "":
		r, err := parseRange(density)
		return r, convDensity, err
	case edges != "":
		r, err := parseRange(edges)
		return r, convEdges, err
	default:
		r, err := parseRange("50")
		return r, convEdges, err
	}
}

// defaultCacheDir places the edge-list cache under the user cache
// directory, or disables caching when none is available.
func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "otobench")
}
