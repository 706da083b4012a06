// Package gen samples random graph edge lists for the benchmark
// harness: uniform selection without replacement over the legal
// edge universe, acyclic or not.
//
// Acyclic generation draws a hidden random topological order first,
// samples edges from the triangular universe of forward pairs, and
// maps them through the order; the result is a DAG whose edge list
// carries no positional bias. Generation is deterministic for a
// given rand source, so experiments are reproducible from a seed.
package gen

import (
	"math"
	"math/rand/v2"

	"github.com/otobench/otobench/pkg/digraph"
	"github.com/otobench/otobench/pkg/errors"
)

// Acyclic returns e distinct edges forming a DAG over v vertices,
// uniformly sampled and shuffled. The edge universe is the
// v*(v-1)/2 unordered pairs directed by a hidden random topological
// order.
func Acyclic(v, e int, rng *rand.Rand) ([]digraph.Edge, error) {
	if v <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "vertex count must be positive, got %d", v)
	}
	universe := v * (v - 1) / 2
	if e >= universe && e > 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"cannot sample %d acyclic edges over %d vertices (universe %d)", e, v, universe)
	}

	// hidden topological order
	order := rng.Perm(v)

	edges := make([]digraph.Edge, 0, e)
	for _, k := range sample(universe, e, rng) {
		i, j := unrank(k)
		edges = append(edges, digraph.Edge{From: order[i], To: order[j]})
	}
	rng.Shuffle(len(edges), func(i, j int) {
		edges[i], edges[j] = edges[j], edges[i]
	})
	return edges, nil
}

// Digraph returns e distinct directed edges over v vertices,
// uniformly sampled from the v*(v-1) ordered pairs (self-loops
// excluded) and shuffled. The result may contain cycles.
func Digraph(v, e int, rng *rand.Rand) ([]digraph.Edge, error) {
	if v <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "vertex count must be positive, got %d", v)
	}
	universe := v * (v - 1)
	if e >= universe && e > 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"cannot sample %d edges over %d vertices (universe %d)", e, v, universe)
	}

	edges := make([]digraph.Edge, 0, e)
	for _, k := range sample(universe, e, rng) {
		from := k / (v - 1)
		to := k % (v - 1)
		if to >= from {
			to++ // skip the self-loop slot
		}
		edges = append(edges, digraph.Edge{From: from, To: to})
	}
	rng.Shuffle(len(edges), func(i, j int) {
		edges[i], edges[j] = edges[j], edges[i]
	})
	return edges, nil
}

// sample returns e distinct integers from [0, universe), uniformly,
// by Floyd's algorithm: O(e) draws regardless of universe size.
func sample(universe, e int, rng *rand.Rand) []int {
	picked := make(map[int]struct{}, e)
	out := make([]int, 0, e)
	for k := universe - e; k < universe; k++ {
		x := rng.IntN(k + 1)
		if _, taken := picked[x]; taken {
			x = k
		}
		picked[x] = struct{}{}
		out = append(out, x)
	}
	return out
}

// unrank maps an index in [0, v*(v-1)/2) to the pair (i, j) with
// i < j, under the enumeration (0,1), (0,2), (1,2), (0,3), ... where
// pair (i, j) has index j*(j-1)/2 + i.
func unrank(k int) (int, int) {
	j := int((1 + math.Sqrt(float64(1+8*k))) / 2)
	// the float root can be off by one in either direction
	for j*(j+1)/2 <= k {
		j++
	}
	for j*(j-1)/2 > k {
		j--
	}
	return k - j*(j-1)/2, j
}
