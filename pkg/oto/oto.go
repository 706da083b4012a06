package oto

import (
	"errors"

	"github.com/otobench/otobench/pkg/digraph"
)

var (
	// ErrCycle is returned by AddEdge when the new edge would close
	// a cycle. The insertion is rolled back before the error
	// surfaces: the graph store and the order are unchanged.
	ErrCycle = errors.New("edge would close a cycle")

	// ErrNotAcyclic is returned by the FromGraph constructors when
	// the initial graph already contains a cycle.
	ErrNotAcyclic = errors.New("graph contains a cycle")
)

// Maintainer is an online topological order over a graph. A
// maintainer owns its graph store and order map together: every
// mutation goes through AddEdge, which either extends both
// consistently or rejects the insertion without touching either.
//
// Maintainers are not safe for concurrent use.
type Maintainer interface {
	// AddEdge inserts the directed edge from->to and repairs the
	// order if the insertion invalidates it. Duplicate edges are a
	// no-op. Returns ErrCycle, leaving graph and order unchanged,
	// when the edge would close a cycle.
	AddEdge(from, to int) error

	// Less reports whether u precedes v in the maintained order.
	// For every edge (u, v) in the graph, Less(u, v) holds.
	Less(u, v int) bool

	// Graph exposes the underlying store. Callers must treat it as
	// read-only; inserting edges directly bypasses the order.
	Graph() *digraph.Digraph

	// Metrics returns a snapshot of the maintainer's work counters.
	Metrics() Metrics
}

// BatchMaintainer is implemented by maintainers that process whole
// batches natively instead of edge by edge. The offline baseline
// uses this to defer its re-sort to the end of a batch.
type BatchMaintainer interface {
	Maintainer

	// AddEdgeBatch behaves like AddEdges.
	AddEdgeBatch(batch []digraph.Edge) []bool
}

// Metrics counts the work done by a maintainer since construction
// (or since the caller's last baseline snapshot; counters only ever
// increase, so deltas are meaningful). The counters mirror the
// quantities the algorithms are usually compared on.
type Metrics struct {
	// Invalidations is the number of accepted edges that required
	// an order repair.
	Invalidations uint64

	// Affected accumulates the size of the affected region per
	// repair: the priority window for MNR, the discovered set sizes
	// for PK, |K| for AHRSZ.
	Affected uint64

	// Search accumulates traversal work (vertices and edges
	// touched) during discovery and repair.
	Search uint64

	// Created, Relabels and Renumbers mirror the priority-space
	// counters for AHRSZ; zero for the integer-priority algorithms.
	Created   uint64
	Relabels  uint64
	Renumbers uint64
}

// Sub returns the per-interval delta between two snapshots.
func (m Metrics) Sub(base Metrics) Metrics {
	return Metrics{
		Invalidations: m.Invalidations - base.Invalidations,
		Affected:      m.Affected - base.Affected,
		Search:        m.Search - base.Search,
		Created:       m.Created - base.Created,
		Relabels:      m.Relabels - base.Relabels,
		Renumbers:     m.Renumbers - base.Renumbers,
	}
}

// AddEdges feeds a batch of edges to m sequentially and reports the
// per-edge outcome: true for accepted, false for a rejected
// (cycle-closing) edge. Rejections are recoverable per edge, so the
// batch always runs to completion.
func AddEdges(m Maintainer, batch []digraph.Edge) []bool {
	if bm, ok := m.(BatchMaintainer); ok {
		return bm.AddEdgeBatch(batch)
	}
	out := make([]bool, len(batch))
	for i, e := range batch {
		out[i] = m.AddEdge(e.From, e.To) == nil
	}
	return out
}
