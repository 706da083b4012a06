package oto

import (
	"container/heap"

	"github.com/otobench/otobench/pkg/digraph"
	"github.com/otobench/otobench/pkg/ordlist"
)

// AHRSZ maintains an online topological order with priorities drawn
// from an ordered list, after Alpern, Hoover, Rosen, Sweeney and
// Zadeck (SODA'90). An invalidating insertion triggers a symmetric
// forward/backward discovery pass that collects a minimal set K of
// vertices whose priorities must change, followed by a reassignment
// pass that gives each member of K a priority strictly between the
// floor imposed by its predecessors and the ceiling imposed by its
// successors.
//
// The wave reassignment groups vertices with equal floors so that a
// whole group shares one new priority, bounding the number of
// priorities created per repair. The simple variant assigns each
// vertex independently in reverse-topological order; it creates
// more priorities but does less bookkeeping.
type AHRSZ struct {
	g     *digraph.Digraph
	space PrioritySpace
	ord   []ordlist.Handle

	// scratch, sized |V| at construction and cleared by every path
	// that touches it
	ceiling []extPriority
	visited []bool
	inK     []bool
	indegK  []int

	simple  bool
	metrics Metrics
}

// NewAHRSZ creates an AHRSZ maintainer over n vertices with no
// edges, using the two-level priority space (O(1) amortized
// priority creation) and wave reassignment.
func NewAHRSZ(n int) *AHRSZ {
	return newAHRSZ(digraph.New(n), ordlist.NewTwoLevelSpace(1), false)
}

// NewAHRSZB creates an AHRSZ maintainer over n vertices with no
// edges, using the single-level priority space (O(log N) insertion)
// and wave reassignment.
func NewAHRSZB(n int) *AHRSZ {
	return newAHRSZ(digraph.New(n), ordlist.NewSpace(1), false)
}

// NewAHRSZSimple is like NewAHRSZ but selects the simple
// reassignment variant.
func NewAHRSZSimple(n int) *AHRSZ {
	return newAHRSZ(digraph.New(n), ordlist.NewTwoLevelSpace(1), true)
}

// NewAHRSZFromGraph creates an AHRSZ maintainer over an existing
// graph with the two-level priority space, computing the initial
// order by running reassignment over every vertex. Returns
// ErrNotAcyclic if g contains a cycle.
func NewAHRSZFromGraph(g *digraph.Digraph) (*AHRSZ, error) {
	return newAHRSZFromGraph(g, ordlist.NewTwoLevelSpace(1), false)
}

// NewAHRSZBFromGraph is NewAHRSZFromGraph with the single-level
// priority space.
func NewAHRSZBFromGraph(g *digraph.Digraph) (*AHRSZ, error) {
	return newAHRSZFromGraph(g, ordlist.NewSpace(1), false)
}

// NewAHRSZSimpleFromGraph is NewAHRSZFromGraph with the simple
// reassignment variant.
func NewAHRSZSimpleFromGraph(g *digraph.Digraph) (*AHRSZ, error) {
	return newAHRSZFromGraph(g, ordlist.NewTwoLevelSpace(1), true)
}

func newAHRSZ(g *digraph.Digraph, space PrioritySpace, simple bool) *AHRSZ {
	n := g.NumVertices()
	a := &AHRSZ{
		g:       g,
		space:   space,
		ord:     make([]ordlist.Handle, n),
		ceiling: make([]extPriority, n),
		visited: make([]bool, n),
		inK:     make([]bool, n),
		indegK:  make([]int, n),
		simple:  simple,
	}
	front := space.Front()
	for v := range a.ord {
		a.ord[v] = front
	}
	return a
}

func newAHRSZFromGraph(g *digraph.Digraph, space PrioritySpace, simple bool) (*AHRSZ, error) {
	a := newAHRSZ(g, space, simple)
	if a.simple {
		// the simple pass cannot notice a cycle by itself
		if _, err := Toposort(g); err != nil {
			return nil, err
		}
	}
	all := make([]int, g.NumVertices())
	for v := range all {
		all[v] = v
	}
	if !a.reassign(all) {
		return nil, ErrNotAcyclic
	}
	return a, nil
}

// Graph returns the underlying graph store.
func (a *AHRSZ) Graph() *digraph.Digraph { return a.g }

// Less reports whether u precedes v in the maintained order.
func (a *AHRSZ) Less(u, v int) bool { return a.space.Less(a.ord[u], a.ord[v]) }

// Priority returns the ordered-list handle currently assigned to v.
func (a *AHRSZ) Priority(v int) ordlist.Handle { return a.ord[v] }

// Metrics returns a snapshot of the work counters, folding in the
// priority space's allocation and relabel counts.
func (a *AHRSZ) Metrics() Metrics {
	m := a.metrics
	st := a.space.Stats()
	m.Created = st.Created
	m.Relabels = st.Relabels
	m.Renumbers = st.Renumbers
	return m
}

// AddEdge inserts from->to, rediscovering and reassigning
// priorities when the order is invalidated. Returns ErrCycle, with
// graph and order unchanged, if to already reaches from.
func (a *AHRSZ) AddEdge(from, to int) error {
	if from == to {
		return ErrCycle
	}
	if a.g.HasEdge(from, to) {
		return nil
	}
	if a.space.Less(a.ord[from], a.ord[to]) {
		a.g.AddEdge(from, to)
		return nil
	}
	// The order is invalidated, so a cycle is possible: any path
	// to -> ... -> from runs through vertices whose priorities lie
	// strictly below from's, which bounds the check.
	if a.reaches(to, from) {
		return ErrCycle
	}
	a.g.AddEdge(from, to)
	K := a.discovery(from, to)
	a.reassign(K)
	a.metrics.Invalidations++
	a.metrics.Affected += uint64(len(K))
	return nil
}

// reaches reports whether target is reachable from start along
// edges whose endpoints order strictly below target. In a state
// where only the pending edge is invalid, this is exactly the
// cycle test.
func (a *AHRSZ) reaches(start, target int) bool {
	var touched []int
	found := false
	a.visited[start] = true
	touched = append(touched, start)
	worklist := []int{start}
	for len(worklist) > 0 && !found {
		v := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		a.metrics.Search++
		for _, w := range a.g.Out(v) {
			a.metrics.Search++
			if w == target {
				found = true
				break
			}
			if !a.visited[w] && a.space.Less(a.ord[w], a.ord[target]) {
				a.visited[w] = true
				touched = append(touched, w)
				worklist = append(worklist, w)
			}
		}
	}
	for _, v := range touched {
		a.visited[v] = false
	}
	return found
}

// discovery walks forward from head and backward from tail in
// priority order, committing vertices into K until the two
// frontiers pass each other. ForwEdges/BackEdges count down the
// remaining edges of the current frontier heads so that the two
// searches advance at matched cost.
func (a *AHRSZ) discovery(tail, head int) []int {
	var K []int
	forward := newVertexQueue(func(u, v int) bool { return a.space.Less(a.ord[u], a.ord[v]) })
	backward := newVertexQueue(func(u, v int) bool { return a.space.Less(a.ord[v], a.ord[u]) })

	f, b := head, tail
	forwEdges := a.g.OutDegree(head)
	backEdges := a.g.InDegree(tail)
	forward.push(head)
	backward.push(tail)
	// visited marks queue membership here, not search completion
	a.visited[head] = true
	a.visited[tail] = true

	for !a.space.Less(a.ord[b], a.ord[f]) && forward.len() > 0 && backward.len() > 0 {
		u := min(forwEdges, backEdges)
		forwEdges -= u
		backEdges -= u

		if forwEdges == 0 {
			forward.pop()
			a.visited[f] = false
			a.metrics.Search++
			if !a.inK[f] {
				a.inK[f] = true
				K = append(K, f)
				for _, w := range a.g.Out(f) {
					a.metrics.Search++
					if !a.visited[w] && !a.inK[w] {
						forward.push(w)
						a.visited[w] = true
					}
				}
			}
			if forward.len() == 0 {
				f = tail
			} else {
				f = forward.top()
			}
			forwEdges = a.g.OutDegree(f)
		}
		if backEdges == 0 {
			backward.pop()
			a.visited[b] = false
			a.metrics.Search++
			if !a.inK[b] {
				a.inK[b] = true
				K = append(K, b)
				for _, w := range a.g.In(b) {
					a.metrics.Search++
					if !a.visited[w] && !a.inK[w] {
						backward.push(w)
						a.visited[w] = true
					}
				}
			}
			if backward.len() == 0 {
				b = head
			} else {
				b = backward.top()
			}
			backEdges = a.g.InDegree(b)
		}
	}

	// unmark whatever is still queued
	for forward.len() > 0 {
		a.visited[forward.pop()] = false
	}
	for backward.len() > 0 {
		a.visited[backward.pop()] = false
	}
	return K
}

// reassign gives every vertex in K a fresh priority and reports
// whether all of K was assigned. A false return is only possible
// when the subgraph induced by K is cyclic, which AddEdge rules out
// beforehand; the FromGraph constructors use it to reject cyclic
// initial graphs.
func (a *AHRSZ) reassign(K []int) bool {
	for _, x := range K {
		a.ceiling[x] = plusInfinity
		a.inK[x] = true
	}

	var rto []int
	if a.simple {
		rto = make([]int, 0, len(K))
	}
	for _, x := range K {
		if !a.visited[x] {
			a.computeCeiling(x, &rto)
		}
	}

	assigned := 0
	if a.simple {
		// reverse-topological traversal: predecessors first
		for i := len(rto) - 1; i >= 0; i-- {
			v := rto[i]
			p := a.computePriority(a.computeFloor(v), a.ceiling[v])
			a.ord[v] = p
			assigned++
		}
	} else {
		assigned = a.reassignWaves(K)
	}

	for _, x := range K {
		a.visited[x] = false
		a.inK[x] = false
		a.indegK[x] = 0
	}
	return assigned == len(K)
}

// reassignWaves performs the Kahn-style relaxation: vertices become
// ready when all their K-predecessors are assigned, ready vertices
// with equal floors form a wave, and a whole wave shares one new
// priority chosen between the wave's floor and the smallest ceiling
// in it.
func (a *AHRSZ) reassignWaves(K []int) int {
	q := &floorQueue{space: a.space}

	for _, x := range K {
		floor := minusInfinity
		kid := 0
		for _, s := range a.g.In(x) {
			if a.inK[s] {
				kid++
			}
			floor = extMax(a.space, floor, ext(a.ord[s]))
		}
		a.indegK[x] = kid
		if kid == 0 {
			heap.Push(q, floorEntry{v: x, floor: floor})
		}
	}

	assigned := 0
	var wave []int
	for q.Len() > 0 {
		wave = wave[:0]
		waveFloor := q.entries[0].floor
		waveCeil := plusInfinity
		for q.Len() > 0 && extEq(q.entries[0].floor, waveFloor) {
			e := heap.Pop(q).(floorEntry)
			waveCeil = extMin(a.space, waveCeil, a.ceiling[e.v])
			wave = append(wave, e.v)
		}

		p := a.computePriority(waveFloor, waveCeil)
		for _, z := range wave {
			a.ord[z] = p
			assigned++
			for _, y := range a.g.Out(z) {
				if a.inK[y] {
					a.indegK[y]--
					if a.indegK[y] == 0 {
						heap.Push(q, floorEntry{v: y, floor: a.computeFloor(y)})
					}
				}
			}
		}
	}
	return assigned
}

// computeCeiling folds the minimum successor priority down through
// the subgraph induced by K, depth first. The stack is explicit: K
// can be as large as the whole graph and the fold must not be
// limited by goroutine stack depth. When rto is non-nil the
// traversal also records its post-order for the simple variant.
func (a *AHRSZ) computeCeiling(root int, rto *[]int) {
	type frame struct {
		v int
		i int
	}
	a.visited[root] = true
	stack := []frame{{v: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		out := a.g.Out(top.v)
		if top.i < len(out) {
			y := out[top.i]
			top.i++
			switch {
			case !a.inK[y]:
				a.ceiling[top.v] = extMin(a.space, a.ceiling[top.v], ext(a.ord[y]))
			case !a.visited[y]:
				a.visited[y] = true
				stack = append(stack, frame{v: y})
			default:
				a.ceiling[top.v] = extMin(a.space, a.ceiling[top.v], a.ceiling[y])
			}
			continue
		}
		v := top.v
		stack = stack[:len(stack)-1]
		if a.simple && rto != nil {
			*rto = append(*rto, v)
		}
		if len(stack) > 0 {
			parent := &stack[len(stack)-1]
			a.ceiling[parent.v] = extMin(a.space, a.ceiling[parent.v], a.ceiling[v])
		}
	}
}

// computeFloor returns the greatest priority among v's
// predecessors, or -inf when it has none.
func (a *AHRSZ) computeFloor(v int) extPriority {
	floor := minusInfinity
	for _, s := range a.g.In(v) {
		floor = extMax(a.space, floor, ext(a.ord[s]))
	}
	return floor
}

// computePriority returns a priority strictly between floor and
// ceiling, creating a new one in the space only when no existing
// priority fits.
func (a *AHRSZ) computePriority(floor, ceiling extPriority) ordlist.Handle {
	if floor.minusInf {
		cand := a.space.Front()
		if !extLess(a.space, ext(cand), ceiling) {
			a.space.PushFront()
			cand = a.space.Front()
		}
		return cand
	}
	next := a.space.Next(floor.h)
	if next == ordlist.None || !extLess(a.space, ext(next), ceiling) {
		return a.space.InsertAfter(floor.h)
	}
	return next
}

// vertexQueue is a binary heap of vertices with a pluggable
// priority comparison; discovery uses one min- and one max-variant
// keyed by the current order.
type vertexQueue struct {
	verts []int
	less  func(u, v int) bool
}

func newVertexQueue(less func(u, v int) bool) *vertexQueue {
	return &vertexQueue{less: less}
}

func (q *vertexQueue) Len() int            { return len(q.verts) }
func (q *vertexQueue) Less(i, j int) bool  { return q.less(q.verts[i], q.verts[j]) }
func (q *vertexQueue) Swap(i, j int)       { q.verts[i], q.verts[j] = q.verts[j], q.verts[i] }
func (q *vertexQueue) Push(x any)          { q.verts = append(q.verts, x.(int)) }
func (q *vertexQueue) Pop() any {
	n := len(q.verts)
	v := q.verts[n-1]
	q.verts = q.verts[:n-1]
	return v
}

func (q *vertexQueue) len() int   { return len(q.verts) }
func (q *vertexQueue) top() int   { return q.verts[0] }
func (q *vertexQueue) push(v int) { heap.Push(q, v) }
func (q *vertexQueue) pop() int   { return heap.Pop(q).(int) }

// floorQueue is a min-heap of (vertex, floor) pairs keyed by floor,
// driving the wave relaxation.
type floorEntry struct {
	v     int
	floor extPriority
}

type floorQueue struct {
	space   PrioritySpace
	entries []floorEntry
}

func (q *floorQueue) Len() int { return len(q.entries) }
func (q *floorQueue) Less(i, j int) bool {
	return extLess(q.space, q.entries[i].floor, q.entries[j].floor)
}
func (q *floorQueue) Swap(i, j int) { q.entries[i], q.entries[j] = q.entries[j], q.entries[i] }
func (q *floorQueue) Push(x any)    { q.entries = append(q.entries, x.(floorEntry)) }
func (q *floorQueue) Pop() any {
	n := len(q.entries)
	e := q.entries[n-1]
	q.entries = q.entries[:n-1]
	return e
}
