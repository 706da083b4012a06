package oto

import (
	"fmt"

	"github.com/otobench/otobench/pkg/digraph"
)

// Path reports whether to is reachable from from in g by a directed
// path (including the empty path when from == to). It is a plain
// worklist search, used by the exhaustive validator and by tests.
func Path(g *digraph.Digraph, from, to int) bool {
	if from == to {
		return true
	}
	visited := make([]bool, g.NumVertices())
	visited[from] = true
	worklist := []int{from}
	for len(worklist) > 0 {
		v := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for _, w := range g.Out(v) {
			if w == to {
				return true
			}
			if !visited[w] {
				visited[w] = true
				worklist = append(worklist, w)
			}
		}
	}
	return false
}

// Check validates an order against its graph exhaustively: for every
// vertex pair (u, v), if u precedes v there must be no path v to u,
// and vertices sharing a priority must be unrelated in both
// directions. Returns nil when the order is a valid topological
// order over g.
//
// The check is quadratic in the vertex count with a reachability
// search per pair; it is the harness's ground truth, not something
// to run on large graphs in a hot loop.
func Check(g *digraph.Digraph, less func(u, v int) bool) error {
	n := g.NumVertices()
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			uv, vu := less(u, v), less(v, u)
			switch {
			case uv && Path(g, v, u):
				return fmt.Errorf("order has %d before %d but a path %d -> %d exists", u, v, v, u)
			case vu && Path(g, u, v):
				return fmt.Errorf("order has %d before %d but a path %d -> %d exists", v, u, u, v)
			case !uv && !vu && (Path(g, u, v) || Path(g, v, u)):
				return fmt.Errorf("vertices %d and %d share a priority but are connected", u, v)
			}
		}
	}
	return nil
}
