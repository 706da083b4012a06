package oto

import (
	"slices"

	"github.com/otobench/otobench/pkg/digraph"
)

// PK maintains an online topological order with dense integer
// priorities, after Pearce and Kelly (WEA'04 / JEA 2006). An
// invalidating insertion triggers a forward search from the head
// and a backward search from the tail, both bounded by the affected
// priority window; the discovered sets then exchange priorities
// through a single sorted merge, leaving every priority outside the
// window untouched.
type PK struct {
	g       *digraph.Digraph
	ord     []int  // vertex -> priority index
	visited []bool // vertex marks, cleared after every repair
	metrics Metrics
}

// NewPK creates a PK maintainer over n vertices with no edges and
// the identity order.
func NewPK(n int) *PK {
	p := &PK{
		g:       digraph.New(n),
		ord:     make([]int, n),
		visited: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		p.ord[i] = i
	}
	return p
}

// NewPKFromGraph creates a PK maintainer over an existing graph,
// computing the initial order with a depth-first topological sort.
// Returns ErrNotAcyclic if g contains a cycle.
func NewPKFromGraph(g *digraph.Digraph) (*PK, error) {
	order, err := Toposort(g)
	if err != nil {
		return nil, err
	}
	p := &PK{
		g:       g,
		ord:     make([]int, g.NumVertices()),
		visited: make([]bool, g.NumVertices()),
	}
	for i, v := range order {
		p.ord[v] = i
	}
	return p, nil
}

// Graph returns the underlying graph store.
func (p *PK) Graph() *digraph.Digraph { return p.g }

// Less reports whether u precedes v in the maintained order.
func (p *PK) Less(u, v int) bool { return p.ord[u] < p.ord[v] }

// Metrics returns a snapshot of the work counters.
func (p *PK) Metrics() Metrics { return p.metrics }

// AddEdge inserts from->to, reordering the discovered sets when the
// order is invalidated. Returns ErrCycle, with graph and order
// unchanged, if to already reaches from.
func (p *PK) AddEdge(from, to int) error {
	if from == to {
		return ErrCycle
	}
	if p.g.HasEdge(from, to) {
		return nil
	}
	p.g.AddEdge(from, to)

	lb, ub := p.ord[to], p.ord[from]
	if lb >= ub {
		return nil
	}

	reachable, cycle := p.forward(to, ub)
	if cycle {
		for _, v := range reachable {
			p.visited[v] = false
		}
		p.g.RemoveEdge(from, to)
		return ErrCycle
	}
	reaching := p.backward(from, lb)

	byOrd := func(a, b int) int { return p.ord[a] - p.ord[b] }
	slices.SortFunc(reachable, byOrd)
	slices.SortFunc(reaching, byOrd)
	p.reorder(reachable, reaching)

	p.metrics.Invalidations++
	p.metrics.Affected += uint64(len(reachable) + len(reaching))
	return nil
}

// forward collects the vertices reachable from head with priority
// below ub. It reports a cycle as soon as a vertex at priority ub
// is seen. Collected vertices stay marked; the caller clears them.
func (p *PK) forward(head, ub int) (reachable []int, cycle bool) {
	p.visited[head] = true
	worklist := []int{head}
	for len(worklist) > 0 {
		n := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		reachable = append(reachable, n)
		p.metrics.Search++
		for _, w := range p.g.Out(n) {
			p.metrics.Search++
			wi := p.ord[w]
			if wi == ub {
				// vertices still queued are marked too; hand them
				// back so the caller's cleanup sees every mark
				return append(reachable, worklist...), true
			}
			if wi < ub && !p.visited[w] {
				p.visited[w] = true
				worklist = append(worklist, w)
			}
		}
	}
	return reachable, false
}

// backward collects the vertices that reach tail with priority
// above lb. No cycle can be found here; the forward pass already
// ruled it out.
func (p *PK) backward(tail, lb int) []int {
	p.visited[tail] = true
	worklist := []int{tail}
	var reaching []int
	for len(worklist) > 0 {
		n := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		reaching = append(reaching, n)
		p.metrics.Search++
		for _, w := range p.g.In(n) {
			p.metrics.Search++
			if p.ord[w] > lb && !p.visited[w] {
				p.visited[w] = true
				worklist = append(worklist, w)
			}
		}
	}
	return reaching
}

// reorder gives the union of both sets a permutation of its own
// priorities: the reaching set takes the smallest slots in its
// existing relative order, the reachable set the largest in its
// own. Both inputs must be sorted by current priority.
func (p *PK) reorder(reachable, reaching []int) {
	seq := make([]int, 0, len(reaching)+len(reachable))
	seq = append(seq, reaching...)
	seq = append(seq, reachable...)

	// merge the two sorted priority sequences into the slot pool
	pool := make([]int, 0, len(seq))
	i, j := 0, 0
	for i < len(reachable) || j < len(reaching) {
		if j == len(reaching) || (i < len(reachable) && p.ord[reachable[i]] < p.ord[reaching[j]]) {
			pool = append(pool, p.ord[reachable[i]])
			i++
		} else {
			pool = append(pool, p.ord[reaching[j]])
			j++
		}
	}

	for k, v := range seq {
		p.ord[v] = pool[k]
		p.visited[v] = false
	}
}
