package oto

import "github.com/otobench/otobench/pkg/digraph"

// MNR maintains an online topological order with dense integer
// priorities and an explicit inverse map, after Marchetti-Spaccamela,
// Nanni and Rohnert (Information Processing Letters, 1996).
//
// An invalidating insertion (from, to) triggers a forward search
// from the head bounded by the tail's priority, then a single shift
// pass over the affected priority window that moves the reachable
// vertices after the rest while preserving relative order on both
// sides.
type MNR struct {
	g   *digraph.Digraph
	ord []int // vertex -> priority index
	pos []int // priority index -> vertex (inverse of ord)
	// visited is indexed by priority, not by vertex: the shift pass
	// walks the window by position and clears the marks it finds.
	visited []bool
	metrics Metrics
}

// NewMNR creates an MNR maintainer over n vertices with no edges
// and the identity order.
func NewMNR(n int) *MNR {
	m := &MNR{
		g:       digraph.New(n),
		ord:     make([]int, n),
		pos:     make([]int, n),
		visited: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		m.ord[i] = i
		m.pos[i] = i
	}
	return m
}

// NewMNRFromGraph creates an MNR maintainer over an existing graph,
// computing the initial order with a depth-first topological sort.
// Returns ErrNotAcyclic if g contains a cycle.
func NewMNRFromGraph(g *digraph.Digraph) (*MNR, error) {
	order, err := Toposort(g)
	if err != nil {
		return nil, err
	}
	n := g.NumVertices()
	m := &MNR{
		g:       g,
		ord:     make([]int, n),
		pos:     order,
		visited: make([]bool, n),
	}
	for i, v := range order {
		m.ord[v] = i
	}
	return m, nil
}

// Graph returns the underlying graph store.
func (m *MNR) Graph() *digraph.Digraph { return m.g }

// Less reports whether u precedes v in the maintained order.
func (m *MNR) Less(u, v int) bool { return m.ord[u] < m.ord[v] }

// Metrics returns a snapshot of the work counters.
func (m *MNR) Metrics() Metrics { return m.metrics }

// AddEdge inserts from->to, shifting the affected region when the
// order is invalidated. Returns ErrCycle, with graph and order
// unchanged, if to already reaches from.
func (m *MNR) AddEdge(from, to int) error {
	if from == to {
		return ErrCycle
	}
	if m.g.HasEdge(from, to) {
		return nil
	}
	m.g.AddEdge(from, to)

	lb, ub := m.ord[to], m.ord[from]
	if lb >= ub {
		return nil
	}
	if m.dfs(to, lb, ub) {
		// cycle: clear the window's marks and revert the insertion
		for i := lb; i <= ub; i++ {
			m.visited[i] = false
		}
		m.g.RemoveEdge(from, to)
		return ErrCycle
	}
	m.shift(lb, ub)
	m.metrics.Invalidations++
	m.metrics.Affected += uint64(ub - lb + 1)
	return nil
}

// dfs searches forward from head, visiting only vertices whose
// priority lies below ub and marking them by position. It reports
// true when a vertex at priority ub is reached, which means the new
// edge would close a cycle.
func (m *MNR) dfs(head, lb, ub int) bool {
	worklist := make([]int, 0, ub-lb+1)
	m.visited[lb] = true
	worklist = append(worklist, head)

	for len(worklist) > 0 {
		n := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		m.metrics.Search++
		for _, w := range m.g.Out(n) {
			m.metrics.Search++
			wi := m.ord[w]
			if wi == ub {
				return true
			}
			if wi < ub && !m.visited[wi] {
				m.visited[wi] = true
				worklist = append(worklist, w)
			}
		}
	}
	return false
}

// shift rewrites the priority window [lb, ub]: unvisited vertices
// slide down, preserving their relative order, and the visited set
// follows them in its own order. No edge can run from the unvisited
// group into the visited group inside the window, because the
// visited set is exactly what the head reaches there.
func (m *MNR) shift(lb, ub int) {
	shift := 0
	var tmp []int
	i := lb
	for ; i <= ub; i++ {
		w := m.pos[i]
		if m.visited[i] {
			tmp = append(tmp, w)
			shift++
			m.visited[i] = false
		} else {
			m.pos[i-shift] = w
			m.ord[w] = i - shift
		}
	}
	i -= shift
	for j, w := range tmp {
		m.pos[i+j] = w
		m.ord[w] = i + j
	}
}
