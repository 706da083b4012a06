// Package digraph provides the directed graph store shared by all
// online topological order algorithms.
//
// Vertices are dense integer ids fixed at construction; edges are
// directed pairs kept in per-vertex adjacency lists for fast in- and
// out-neighbor iteration. The store owns edge storage and nothing
// else: it has no notion of vertex ordering, and the maintenance
// algorithms in [github.com/otobench/otobench/pkg/oto] consult it
// read-only during their searches.
//
// Parallel edges are permitted by the store. The maintenance layer
// never inserts the same edge twice, but callers that bypass it
// (e.g. the benchmark warm-up pass) may rely on AddEdge followed by
// RemoveEdge restoring the previous state.
package digraph
