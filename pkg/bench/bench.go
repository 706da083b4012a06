// Package bench drives online topological order experiments: it
// builds an initial DAG from a prefix of an edge list, constructs
// the algorithm under test over it, feeds the remaining edges in
// batches, and collects per-batch work metrics and timings.
//
// # Usage
//
//	runner := bench.NewRunner(logger)
//	opts := bench.Options{
//	    Vertices:  1000,
//	    Edges:     5000,
//	    Online:    500,
//	    Batch:     1,
//	    Algorithm: bench.AlgorithmPK,
//	}
//	result, err := runner.Execute(ctx, opts, edges)
package bench

import (
	"context"
	stderrors "errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/otobench/otobench/pkg/digraph"
	"github.com/otobench/otobench/pkg/errors"
	"github.com/otobench/otobench/pkg/observability"
	"github.com/otobench/otobench/pkg/oto"
)

// Algorithm names accepted by Options.Algorithm.
const (
	AlgorithmMNR         = "mnr"
	AlgorithmPK          = "pk"
	AlgorithmAHRSZ       = "ahrsz"
	AlgorithmAHRSZB      = "ahrszb"
	AlgorithmAHRSZSimple = "ahrsz-simple"
	AlgorithmSimple      = "simple"
	AlgorithmDummy       = "dummy"
)

// ValidAlgorithms is the set of supported algorithm names.
var ValidAlgorithms = map[string]bool{
	AlgorithmMNR:         true,
	AlgorithmPK:          true,
	AlgorithmAHRSZ:       true,
	AlgorithmAHRSZB:      true,
	AlgorithmAHRSZSimple: true,
	AlgorithmSimple:      true,
	AlgorithmDummy:       true,
}

// DefaultBatch is the batch size used when none is given: unit
// batches, the pure online regime.
const DefaultBatch = 1

// NewMaintainer constructs the named algorithm over an existing
// graph, running its initial sort. The graph must be acyclic.
func NewMaintainer(algorithm string, g *digraph.Digraph) (oto.Maintainer, error) {
	switch algorithm {
	case AlgorithmMNR:
		return oto.NewMNRFromGraph(g)
	case AlgorithmPK:
		return oto.NewPKFromGraph(g)
	case AlgorithmAHRSZ:
		return oto.NewAHRSZFromGraph(g)
	case AlgorithmAHRSZSimple:
		return oto.NewAHRSZSimpleFromGraph(g)
	case AlgorithmAHRSZB:
		return oto.NewAHRSZBFromGraph(g)
	case AlgorithmSimple:
		return oto.NewSimpleFromGraph(g)
	case AlgorithmDummy:
		return oto.NewDummyFromGraph(g)
	default:
		return nil, errors.New(errors.ErrCodeInvalidAlgorithm, "unknown algorithm %q", algorithm)
	}
}

// Options configures one experiment run.
type Options struct {
	// Vertices is the graph size V.
	Vertices int
	// Edges is the total number of edges E drawn from the input
	// edge list; the first E-Online build the initial DAG.
	Edges int
	// Online is the number of edges fed to the algorithm online.
	Online int
	// Batch is the chunk size for online insertion.
	Batch int
	// Algorithm selects the maintainer under test.
	Algorithm string
	// Checking enables the exhaustive validator after every batch.
	Checking bool
	// Logger receives progress output; defaults to a discard
	// logger.
	Logger *log.Logger

	validated bool
}

// ValidateAndSetDefaults checks required fields and applies
// defaults. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Vertices <= 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "vertices must be positive, got %d", o.Vertices)
	}
	if o.Edges < 0 || o.Online < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "edge counts must be non-negative")
	}
	if o.Online > o.Edges {
		return errors.New(errors.ErrCodeInvalidArgument,
			"online edges (%d) exceed total edges (%d)", o.Online, o.Edges)
	}
	if o.Batch <= 0 {
		o.Batch = DefaultBatch
	}
	if o.Batch > o.Online && o.Online > 0 {
		o.Batch = o.Online
	}
	if o.Algorithm == "" {
		o.Algorithm = AlgorithmPK
	}
	if !ValidAlgorithms[o.Algorithm] {
		return errors.New(errors.ErrCodeInvalidAlgorithm, "unknown algorithm %q", o.Algorithm)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// BatchSample records one online batch.
type BatchSample struct {
	Index    int
	Size     int
	Rejected int
	Elapsed  time.Duration
	Work     oto.Metrics
}

// Result holds the outcome of one experiment run.
type Result struct {
	RunID     string
	Algorithm string
	Vertices  int
	Edges     int
	Online    int
	Batch     int

	Accepted  int
	Rejected  int
	CheckErrs int

	Elapsed time.Duration
	PerEdge time.Duration
	Work    oto.Metrics

	Batches []BatchSample
}

// Runner executes experiments.
type Runner struct {
	logger *log.Logger
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{logger: logger}
}

// Execute runs one experiment over the given edge list, which must
// hold at least opts.Edges edges. The run is synchronous;
// cancellation is coarse-grained between batches.
func (r *Runner) Execute(ctx context.Context, opts Options, edges []digraph.Edge) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if len(edges) < opts.Edges {
		return nil, errors.New(errors.ErrCodeCorruptInput,
			"edge list holds %d edges, experiment needs %d", len(edges), opts.Edges)
	}
	for _, e := range edges[:opts.Edges] {
		if e.From < 0 || e.From >= opts.Vertices || e.To < 0 || e.To >= opts.Vertices {
			return nil, errors.New(errors.ErrCodeCorruptInput,
				"edge %d->%d outside the declared %d vertices", e.From, e.To, opts.Vertices)
		}
	}

	res := &Result{
		RunID:     uuid.NewString(),
		Algorithm: opts.Algorithm,
		Vertices:  opts.Vertices,
		Edges:     opts.Edges,
		Online:    opts.Online,
		Batch:     opts.Batch,
	}
	logger := opts.Logger
	observability.Bench().OnRunStart(ctx, res.RunID, opts.Algorithm, opts.Vertices, opts.Edges, opts.Online)

	// the first E-O edges form the initial DAG, inserted through
	// the raw store so the initial sort sees them all at once
	initial := edges[:opts.Edges-opts.Online]
	online := edges[opts.Edges-opts.Online : opts.Edges]

	g := digraph.New(opts.Vertices)
	for _, e := range initial {
		g.AddEdge(e.From, e.To)
	}
	m, err := NewMaintainer(opts.Algorithm, g)
	if err != nil {
		if stderrors.Is(err, oto.ErrNotAcyclic) {
			err = errors.Wrap(errors.ErrCodeInvalidArgument, err, "initial graph is not a DAG")
		}
		observability.Bench().OnRunComplete(ctx, res.RunID, 0, 0, 0, err)
		return nil, err
	}
	logger.Debugf("initial sort done: V=%d initial=%d online=%d algorithm=%s",
		opts.Vertices, len(initial), len(online), opts.Algorithm)

	if opts.Checking {
		if cerr := oto.Check(m.Graph(), m.Less); cerr != nil {
			res.CheckErrs++
			logger.Errorf("initial order invalid: %v", cerr)
		}
	}

	// warm-up: pre-size the adjacency vectors with the online edges
	// so allocation noise stays out of the timed phase
	for _, e := range online {
		g.AddEdge(e.From, e.To)
	}
	for _, e := range online {
		g.RemoveEdge(e.From, e.To)
	}

	// counters reset: everything before this snapshot is setup
	base := m.Metrics()

	start := time.Now()
	for at, index := 0, 0; at < len(online); index++ {
		if err := ctx.Err(); err != nil {
			observability.Bench().OnRunComplete(ctx, res.RunID, res.Accepted, res.Rejected, time.Since(start), err)
			return nil, err
		}
		end := min(at+opts.Batch, len(online))
		batch := online[at:end]
		before := m.Metrics()

		observability.Bench().OnBatchStart(ctx, res.RunID, index, len(batch))
		batchStart := time.Now()
		outcomes := oto.AddEdges(m, batch)
		batchElapsed := time.Since(batchStart)

		sample := BatchSample{
			Index:   index,
			Size:    len(batch),
			Elapsed: batchElapsed,
			Work:    m.Metrics().Sub(before),
		}
		for _, ok := range outcomes {
			if ok {
				res.Accepted++
			} else {
				res.Rejected++
				sample.Rejected++
			}
		}
		res.Batches = append(res.Batches, sample)
		observability.Bench().OnBatchComplete(ctx, res.RunID, index, sample.Rejected, batchElapsed)

		if opts.Checking {
			cerr := oto.Check(m.Graph(), m.Less)
			observability.Bench().OnValidate(ctx, res.RunID, index, cerr)
			if cerr != nil {
				res.CheckErrs++
				logger.Errorf("batch %d: order invalid: %v", index, cerr)
			}
		}
		at = end
	}
	res.Elapsed = time.Since(start)
	res.Work = m.Metrics().Sub(base)
	if len(online) > 0 {
		res.PerEdge = res.Elapsed / time.Duration(len(online))
	}

	observability.Bench().OnRunComplete(ctx, res.RunID, res.Accepted, res.Rejected, res.Elapsed, nil)
	logger.Debugf("run %s done: accepted=%d rejected=%d elapsed=%s",
		res.RunID, res.Accepted, res.Rejected, res.Elapsed)
	return res, nil
}
