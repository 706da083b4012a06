package oto

import "github.com/otobench/otobench/pkg/digraph"

// Simple is the offline baseline: it accepts edges without any
// incremental repair and recomputes the whole order with a
// depth-first sort once a batch has invalidated it. Useful as the
// yardstick the online algorithms are compared against.
//
// Cycle handling is batch-grained: a cycle-closing edge is caught
// by the reachability test like everywhere else, but the re-sort
// itself only runs per batch.
type Simple struct {
	g   *digraph.Digraph
	ord []int
	// dirty is set while the order is stale within a batch; the
	// cheap order-based cycle gate is unsound then, so the full
	// reachability test runs on every insertion until the re-sort.
	dirty   bool
	metrics Metrics
}

// NewSimple creates a Simple maintainer over n vertices with no
// edges and the identity order.
func NewSimple(n int) *Simple {
	s := &Simple{
		g:   digraph.New(n),
		ord: make([]int, n),
	}
	for i := 0; i < n; i++ {
		s.ord[i] = i
	}
	return s
}

// NewSimpleFromGraph creates a Simple maintainer over an existing
// graph. Returns ErrNotAcyclic if g contains a cycle.
func NewSimpleFromGraph(g *digraph.Digraph) (*Simple, error) {
	s := &Simple{
		g:   g,
		ord: make([]int, g.NumVertices()),
	}
	if err := s.resort(); err != nil {
		return nil, err
	}
	return s, nil
}

// Graph returns the underlying graph store.
func (s *Simple) Graph() *digraph.Digraph { return s.g }

// Less reports whether u precedes v in the maintained order.
func (s *Simple) Less(u, v int) bool { return s.ord[u] < s.ord[v] }

// Metrics returns a snapshot of the work counters.
func (s *Simple) Metrics() Metrics { return s.metrics }

// AddEdge inserts a single edge and re-sorts immediately if the
// order was invalidated. Batch feeding through AddEdgeBatch defers
// the re-sort to the end of the batch instead.
func (s *Simple) AddEdge(from, to int) error {
	accepted := s.addOne(from, to)
	switch {
	case accepted == addRejected:
		return ErrCycle
	case accepted == addInvalidated:
		// a cycle is excluded at this point, resort cannot fail
		_ = s.resort()
	}
	return nil
}

// AddEdgeBatch inserts a whole batch, re-sorting once at the end if
// any accepted edge invalidated the order.
func (s *Simple) AddEdgeBatch(batch []digraph.Edge) []bool {
	out := make([]bool, len(batch))
	dirty := false
	for i, e := range batch {
		r := s.addOne(e.From, e.To)
		out[i] = r != addRejected
		if r == addInvalidated {
			dirty = true
		}
	}
	if dirty {
		_ = s.resort()
	}
	return out
}

const (
	addOK = iota
	addInvalidated
	addRejected
)

func (s *Simple) addOne(from, to int) int {
	if from == to {
		return addRejected
	}
	if s.g.HasEdge(from, to) {
		return addOK
	}
	if (s.dirty || s.ord[to] < s.ord[from]) && Path(s.g, to, from) {
		return addRejected
	}
	s.g.AddEdge(from, to)
	if s.ord[to] < s.ord[from] {
		s.metrics.Invalidations++
		s.dirty = true
		return addInvalidated
	}
	return addOK
}

// resort recomputes the order from scratch.
func (s *Simple) resort() error {
	order, err := Toposort(s.g)
	if err != nil {
		return err
	}
	for i, v := range order {
		s.ord[v] = i
	}
	s.dirty = false
	s.metrics.Search += uint64(s.g.NumVertices() + s.g.NumEdges())
	s.metrics.Affected += uint64(s.g.NumVertices())
	return nil
}

// Dummy maintains no order at all: every edge is accepted into the
// store and Less compares raw vertex ids. It measures the cost of
// bare edge insertion, as a control for the online algorithms.
type Dummy struct {
	g       *digraph.Digraph
	metrics Metrics
}

// NewDummy creates a Dummy maintainer over n vertices.
func NewDummy(n int) *Dummy {
	return &Dummy{g: digraph.New(n)}
}

// NewDummyFromGraph creates a Dummy maintainer over an existing
// graph. It never fails; the control has no order to invalidate.
func NewDummyFromGraph(g *digraph.Digraph) (*Dummy, error) {
	return &Dummy{g: g}, nil
}

// Graph returns the underlying graph store.
func (d *Dummy) Graph() *digraph.Digraph { return d.g }

// Less compares raw vertex ids; the result is not a topological
// order.
func (d *Dummy) Less(u, v int) bool { return u < v }

// Metrics returns a snapshot of the work counters.
func (d *Dummy) Metrics() Metrics { return d.metrics }

// AddEdge inserts the edge unconditionally.
func (d *Dummy) AddEdge(from, to int) error {
	if d.g.HasEdge(from, to) {
		return nil
	}
	d.g.AddEdge(from, to)
	return nil
}
