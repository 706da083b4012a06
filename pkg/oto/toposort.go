package oto

import "github.com/otobench/otobench/pkg/digraph"

// dfs colors for cycle detection.
const (
	white = iota
	gray
	black
)

// Toposort computes a topological order of g, returning the
// vertices in an order such that every edge points forward.
// Returns ErrNotAcyclic if g contains a cycle.
//
// The traversal is an iterative depth-first search producing a
// reverse post-order; the explicit stack keeps deep graphs from
// overflowing the goroutine stack.
func Toposort(g *digraph.Digraph) ([]int, error) {
	n := g.NumVertices()
	color := make([]int, n)
	order := make([]int, 0, n)

	type frame struct {
		v int
		i int // next out-edge to explore
	}
	var stack []frame

	for root := 0; root < n; root++ {
		if color[root] != white {
			continue
		}
		color[root] = gray
		stack = append(stack, frame{v: root})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			out := g.Out(top.v)
			if top.i < len(out) {
				w := out[top.i]
				top.i++
				switch color[w] {
				case white:
					color[w] = gray
					stack = append(stack, frame{v: w})
				case gray:
					return nil, ErrNotAcyclic
				}
				continue
			}
			color[top.v] = black
			order = append(order, top.v)
			stack = stack[:len(stack)-1]
		}
	}

	// order currently holds the post-order; reverse for the
	// topological order.
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order, nil
}
