// Package oto implements online topological order maintenance: each
// algorithm keeps a total order over the vertices of a DAG that
// stays topological as edges stream in, repairing the order only
// when an insertion invalidates it and rejecting insertions that
// would close a cycle.
//
// Three online algorithms are provided, plus two baselines:
//
//   - [MNR] (Marchetti-Spaccamela, Nanni, Rohnert): dense integer
//     priorities with an inverse position map; repairs by shifting
//     the affected region.
//   - [PK] (Pearce, Kelly): dense integer priorities; repairs by a
//     two-way bounded search and an index merge over the discovered
//     sets.
//   - [AHRSZ] (Alpern, Hoover, Rosen, Sweeney, Zadeck): priorities
//     drawn from an ordered list; repairs by a symmetric discovery
//     pass and ceiling/floor priority reassignment.
//   - [Simple]: offline baseline that re-sorts from scratch when a
//     batch invalidates the order.
//   - [Dummy]: control that maintains no order at all, for
//     measuring raw edge-insertion cost.
//
// All maintainers share the [Maintainer] interface. All but [Dummy]
// also share the same AddEdge contract: duplicate edges are a no-op,
// and an insertion that would close a cycle returns [ErrCycle] with
// the graph store and the order left exactly as they were. Dummy
// accepts every edge, cycles included, and its Less is not a
// topological order.
package oto
