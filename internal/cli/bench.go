package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/otobench/otobench/pkg/bench"
	"github.com/otobench/otobench/pkg/digraph"
	"github.com/otobench/otobench/pkg/errors"
	"github.com/otobench/otobench/pkg/gen"
	"github.com/otobench/otobench/pkg/graphio"
)

// benchOpts holds the command-line flags for the bench command.
type benchOpts struct {
	nodes       string  // V range
	edges       string  // E range (absolute)
	outdegree   string  // E range via expected outdegree
	density     string  // E range via edge density
	batch       string  // B range
	algorithm   string  // algorithm under test
	checking    bool    // run the validator per batch
	sample      float64 // online fraction of the acyclic universe
	sampleFixed int     // fixed online edge count (overrides sample)
	ngraphs     int     // graphs per data point
	input       string  // input file template ("" generates in-process)
	seed        uint64  // rng seed for in-process generation
	config      string  // TOML suite file
}

// newBenchCmd creates the bench command: run experiments over
// generated or pre-generated graphs and report per-algorithm work
// metrics.
func newBenchCmd() *cobra.Command {
	opts := benchOpts{
		algorithm: bench.AlgorithmPK,
		sample:    0.0005,
		ngraphs:   1,
		batch:     "1",
		seed:      1,
	}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run online topological order experiments",
		Long: `Run online topological order experiments.

Each data point builds an initial DAG from a prefix of a random
edge list, then feeds the remaining edges to the chosen algorithm
in batches, timing every insertion and sampling work counters.
Edge lists come from --input files (written by otobench gen) or
are generated in process from --seed.

Examples:
  otobench bench --nodes 1000 --density 0.01 --algorithm pk
  otobench bench --nodes 100:1000:100 --outdegree 2 --algorithm ahrsz --checking
  otobench bench --config suite.toml`,
		RunE: func(c *cobra.Command, args []string) error {
			if opts.config != "" {
				return runSuite(c, &opts)
			}
			return runBench(c, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.nodes, "nodes", "n", "50", "vertex count (range)")
	cmd.Flags().StringVarP(&opts.edges, "edges", "e", "", "edge count (range)")
	cmd.Flags().StringVarP(&opts.outdegree, "outdegree", "o", "", "expected outdegree (range)")
	cmd.Flags().StringVarP(&opts.density, "density", "d", "", "edge density (range)")
	cmd.Flags().StringVarP(&opts.batch, "batch", "b", opts.batch, "online batch size (range)")
	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", opts.algorithm,
		"algorithm: mnr|pk|ahrsz|ahrszb|ahrsz-simple|simple|dummy")
	cmd.Flags().BoolVar(&opts.checking, "checking", false, "validate the order after every batch")
	cmd.Flags().Float64VarP(&opts.sample, "sample", "s", opts.sample, "online fraction of the edge universe")
	cmd.Flags().IntVar(&opts.sampleFixed, "sample-fixed", 0, "fixed online edge count (overrides --sample)")
	cmd.Flags().IntVar(&opts.ngraphs, "num-graphs", opts.ngraphs, "graphs averaged per data point")
	cmd.Flags().StringVarP(&opts.input, "input", "f", "", "input file template (%V, %E, %N); empty generates in process")
	cmd.Flags().Uint64Var(&opts.seed, "seed", opts.seed, "random seed for in-process generation")
	cmd.Flags().StringVar(&opts.config, "config", "", "TOML experiment suite file")

	return cmd
}

func runBench(cmd *cobra.Command, opts *benchOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	if !bench.ValidAlgorithms[opts.algorithm] {
		return errors.New(errors.ErrCodeInvalidAlgorithm, "unknown algorithm %q", opts.algorithm)
	}
	vRange, err := parseRange(opts.nodes)
	if err != nil {
		return err
	}
	eRange, conversion, err := edgeAxis(opts.edges, opts.outdegree, opts.density)
	if err != nil {
		return err
	}
	bRange, err := parseRange(opts.batch)
	if err != nil {
		return err
	}

	runner := bench.NewRunner(logger)
	var rows [][]string
	points := 0

	for _, b := range bRange.IntValues() {
		for _, v := range vRange.IntValues() {
			for _, eValue := range eRange.Values() {
				e := edgeCount(eValue, v, conversion)
				online := opts.sampleFixed
				if online == 0 {
					online = int(opts.sample * 0.5 * float64(v) * float64(v-1))
				}
				if online > e {
					online = e
				}
				row, err := benchPoint(ctx, runner, opts, pointParams{
					v: v, e: e, eValue: eValue, eLabel: edgeLabel(conversion),
					online: online, batch: b,
				})
				if err != nil {
					return err
				}
				rows = append(rows, row)
				points++
			}
		}
	}

	headers := []string{"V", "E", "B", "ACPI", deltaHeader(opts.algorithm), "INVAL"}
	if opts.algorithm == bench.AlgorithmMNR {
		headers = append(headers, "ARxy")
	}
	if opts.algorithm == bench.AlgorithmAHRSZ || opts.algorithm == bench.AlgorithmAHRSZB {
		headers = append(headers, "NCREATED", "NRELABELS")
	}
	if opts.checking {
		headers = append(headers, "ERRORS")
	}
	fmt.Fprint(cmd.OutOrStdout(), renderTable(headers, rows))
	prog.done(fmt.Sprintf("Ran %d data points (%s)", points, opts.algorithm))
	return nil
}

// pointParams carries one data point's parameters.
type pointParams struct {
	v, e    int
	eValue  float64
	eLabel  string
	online  int
	batch   int
}

// benchPoint runs ngraphs experiments for one data point and
// returns the averaged table row.
func benchPoint(ctx context.Context, runner *bench.Runner, opts *benchOpts, p pointParams) ([]string, error) {
	var acpi, delta, inval, arxy, created, relabels bench.Average
	checkErrs := 0

	edgeLists, err := pointEdgeLists(ctx, opts, p)
	if err != nil {
		return nil, err
	}
	for _, edges := range edgeLists {
		res, err := runner.Execute(ctx, bench.Options{
			Vertices:  p.v,
			Edges:     p.e,
			Online:    p.online,
			Batch:     p.batch,
			Algorithm: opts.algorithm,
			Checking:  opts.checking,
			Logger:    loggerFromContext(ctx),
		}, edges)
		if err != nil {
			return nil, err
		}
		total := float64(res.Accepted + res.Rejected)
		if total == 0 {
			total = 1
		}
		acpi.Add(res.Elapsed.Seconds() / total)
		delta.Add(float64(res.Work.Search) / total)
		inval.Add(float64(res.Work.Invalidations) / total)
		arxy.Add(float64(res.Work.Affected) / total)
		created.Add(float64(res.Work.Created))
		relabels.Add(float64(res.Work.Relabels + res.Work.Renumbers))
		checkErrs += res.CheckErrs
	}

	row := []string{
		fmt.Sprintf("%d", p.v),
		trimFloat(p.eValue),
		fmt.Sprintf("%d", p.batch),
		fmt.Sprintf("%.3g", acpi.Value()),
		fmt.Sprintf("%.4g", delta.Value()),
		fmt.Sprintf("%.4g", inval.Value()),
	}
	if opts.algorithm == bench.AlgorithmMNR {
		row = append(row, fmt.Sprintf("%.4g", arxy.Value()))
	}
	if opts.algorithm == bench.AlgorithmAHRSZ || opts.algorithm == bench.AlgorithmAHRSZB {
		row = append(row, fmt.Sprintf("%.4g", created.Value()), fmt.Sprintf("%.4g", relabels.Value()))
	}
	if opts.checking {
		row = append(row, fmt.Sprintf("%d", checkErrs))
	}
	return row, nil
}

// pointEdgeLists loads or generates the edge lists for one data
// point: ngraphs lists of at least e edges each.
func pointEdgeLists(ctx context.Context, opts *benchOpts, p pointParams) ([][]digraph.Edge, error) {
	if opts.input != "" {
		path := expandTemplate(opts.input, p.v, p.eLabel, p.eValue, opts.ngraphs)
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input %s", path)
		}
		defer f.Close()
		loggerFromContext(ctx).Debugf("input file: %s", path)

		lists := make([][]digraph.Edge, 0, opts.ngraphs)
		for i := 0; i < opts.ngraphs; i++ {
			g, err := graphio.ReadBinary(f)
			if err != nil {
				return nil, err
			}
			if g.V != p.v {
				return nil, errors.New(errors.ErrCodeCorruptInput,
					"input declares %d vertices, experiment needs %d", g.V, p.v)
			}
			if len(g.Edges) < p.e {
				return nil, errors.New(errors.ErrCodeCorruptInput,
					"input holds %d edges, experiment needs %d", len(g.Edges), p.e)
			}
			lists = append(lists, g.Edges)
		}
		return lists, nil
	}

	rng := rand.New(rand.NewPCG(opts.seed, uint64(p.v)<<32|uint64(p.e)))
	lists := make([][]digraph.Edge, 0, opts.ngraphs)
	for i := 0; i < opts.ngraphs; i++ {
		edges, err := gen.Acyclic(p.v, p.e, rng)
		if err != nil {
			return nil, err
		}
		lists = append(lists, edges)
	}
	return lists, nil
}

// deltaHeader names the search-work column the way each algorithm's
// literature does.
func deltaHeader(algorithm string) string {
	switch algorithm {
	case bench.AlgorithmMNR:
		return "|>dxy|"
	case bench.AlgorithmPK:
		return "|>dxy<|"
	case bench.AlgorithmAHRSZ, bench.AlgorithmAHRSZB, bench.AlgorithmAHRSZSimple:
		return "|>K<|"
	default:
		return "WORK"
	}
}

// runSuite executes a TOML experiment suite: every experiment row
// runs each of its algorithms over the same generated graphs.
func runSuite(cmd *cobra.Command, opts *benchOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	suite, err := bench.LoadSuite(opts.config)
	if err != nil {
		return err
	}
	runner := bench.NewRunner(logger)

	fmt.Fprintln(cmd.OutOrStdout(), styleTitle.Render("experiment suite: "+opts.config))
	runs := 0
	for i, exp := range suite.Experiments {
		rng := rand.New(rand.NewPCG(exp.Seed, exp.Seed^0xbeef))
		lists := make([][]digraph.Edge, exp.Graphs)
		for j := range lists {
			if lists[j], err = gen.Acyclic(exp.Vertices, exp.Edges, rng); err != nil {
				return err
			}
		}

		var rows [][]string
		for _, runOpts := range exp.RunOptions(opts.checking) {
			var acpi, inval bench.Average
			var elapsed time.Duration
			accepted, rejected, checkErrs := 0, 0, 0
			for _, edges := range lists {
				ro := runOpts
				ro.Logger = logger
				res, err := runner.Execute(ctx, ro, edges)
				if err != nil {
					return err
				}
				total := float64(res.Accepted + res.Rejected)
				if total == 0 {
					total = 1
				}
				acpi.Add(res.Elapsed.Seconds() / total)
				inval.Add(float64(res.Work.Invalidations) / total)
				accepted += res.Accepted
				rejected += res.Rejected
				checkErrs += res.CheckErrs
				elapsed += res.Elapsed
				runs++
			}
			row := []string{
				runOpts.Algorithm,
				fmt.Sprintf("%d", accepted),
				fmt.Sprintf("%d", rejected),
				fmt.Sprintf("%.3g", acpi.Value()),
				fmt.Sprintf("%.4g", inval.Value()),
				elapsed.Round(time.Microsecond).String(),
			}
			if runOpts.Checking {
				row = append(row, checkLine(checkErrs))
			}
			rows = append(rows, row)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n",
			styleDim.Render(fmt.Sprintf("experiment %d: V=%d E=%d O=%d B=%d graphs=%d",
				i, exp.Vertices, exp.Edges, exp.Online, max(exp.Batch, 1), exp.Graphs)))
		headers := []string{"ALGORITHM", "ACCEPTED", "REJECTED", "ACPI", "INVAL", "ELAPSED"}
		if opts.checking || exp.Checking {
			headers = append(headers, "CHECK")
		}
		fmt.Fprint(cmd.OutOrStdout(), renderTable(headers, rows))
	}
	prog.done(fmt.Sprintf("Ran %d experiment runs", runs))
	return nil
}
