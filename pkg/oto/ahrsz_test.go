package oto

import (
	"errors"
	"testing"

	"github.com/otobench/otobench/pkg/digraph"
)

// ahrszVariants enumerates the priority-space / reassignment
// combinations under test.
var ahrszVariants = []struct {
	name string
	make func(n int) *AHRSZ
}{
	{"TwoLevel", NewAHRSZ},
	{"SingleLevel", NewAHRSZB},
	{"Simple", NewAHRSZSimple},
}

func TestAHRSZTrivialChain(t *testing.T) {
	for _, variant := range ahrszVariants {
		t.Run(variant.name, func(t *testing.T) {
			a := variant.make(3)
			for _, e := range []digraph.Edge{{From: 0, To: 1}, {From: 1, To: 2}} {
				if err := a.AddEdge(e.From, e.To); err != nil {
					t.Fatalf("AddEdge(%d,%d): %v", e.From, e.To, err)
				}
			}
			if !a.Less(0, 1) || !a.Less(1, 2) {
				t.Error("chain order not established")
			}
			if err := Check(a.Graph(), a.Less); err != nil {
				t.Errorf("Check: %v", err)
			}
		})
	}
}

func TestAHRSZImmediateCycle(t *testing.T) {
	for _, variant := range ahrszVariants {
		t.Run(variant.name, func(t *testing.T) {
			a := variant.make(2)
			if err := a.AddEdge(0, 1); err != nil {
				t.Fatalf("AddEdge(0,1): %v", err)
			}
			p0, p1 := a.Priority(0), a.Priority(1)

			if err := a.AddEdge(1, 0); !errors.Is(err, ErrCycle) {
				t.Fatalf("AddEdge(1,0) error = %v, want ErrCycle", err)
			}
			if a.Graph().HasEdge(1, 0) {
				t.Error("rejected edge still present in graph store")
			}
			if a.Priority(0) != p0 || a.Priority(1) != p1 {
				t.Error("rejection changed priorities")
			}
			for i, v := range a.visited {
				if v {
					t.Errorf("visited[%d] not cleared after rejection", i)
				}
			}
		})
	}
}

// TestAHRSZTwoWaves drives the seed scenario: two sources feeding
// vertex 2, which feeds two sinks, built edge by edge from the all-equal initial state, validating the
// universal invariant after every insertion.
func TestAHRSZTwoWaves(t *testing.T) {
	for _, variant := range ahrszVariants {
		t.Run(variant.name, func(t *testing.T) {
			a := variant.make(5)
			for _, e := range []digraph.Edge{{From: 0, To: 2}, {From: 1, To: 2}, {From: 2, To: 3}, {From: 2, To: 4}} {
				if err := a.AddEdge(e.From, e.To); err != nil {
					t.Fatalf("AddEdge(%d,%d): %v", e.From, e.To, err)
				}
				if err := Check(a.Graph(), a.Less); err != nil {
					t.Errorf("Check after (%d,%d): %v", e.From, e.To, err)
				}
			}
			// the wave refinement may share priorities between the
			// independent sources 0 and 1, but never across an edge
			for _, e := range a.waveEdges() {
				if !a.Less(e.From, e.To) {
					t.Errorf("edge %d->%d not respected", e.From, e.To)
				}
			}
		})
	}
}

// waveEdges lists the current graph's edges for assertions.
func (a *AHRSZ) waveEdges() []digraph.Edge {
	var out []digraph.Edge
	for v := 0; v < a.g.NumVertices(); v++ {
		for _, w := range a.g.Out(v) {
			out = append(out, digraph.Edge{From: v, To: w})
		}
	}
	return out
}

func TestAHRSZScratchCleared(t *testing.T) {
	a := NewAHRSZ(6)
	for _, e := range []digraph.Edge{{From: 3, To: 4}, {From: 4, To: 5}, {From: 0, To: 1}, {From: 1, To: 2}, {From: 5, To: 0}, {From: 2, To: 5}} {
		err := a.AddEdge(e.From, e.To)
		if e.From == 2 && e.To == 5 {
			// 2->5 closes 5->0->1->2 into a cycle
			if !errors.Is(err, ErrCycle) {
				t.Fatalf("AddEdge(2,5) error = %v, want ErrCycle", err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("AddEdge(%d,%d): %v", e.From, e.To, err)
		}
	}
	for i := range a.visited {
		if a.visited[i] {
			t.Errorf("visited[%d] left set", i)
		}
		if a.inK[i] {
			t.Errorf("inK[%d] left set", i)
		}
		if a.indegK[i] != 0 {
			t.Errorf("indegK[%d] = %d, want 0", i, a.indegK[i])
		}
	}
	if err := Check(a.Graph(), a.Less); err != nil {
		t.Errorf("Check: %v", err)
	}
}

func TestAHRSZFromGraph(t *testing.T) {
	build := func() *digraph.Digraph {
		return buildGraph(5, []digraph.Edge{{From: 4, To: 3}, {From: 3, To: 1}, {From: 1, To: 0}, {From: 4, To: 0}, {From: 2, To: 3}})
	}

	for _, tt := range []struct {
		name string
		make func(g *digraph.Digraph) (*AHRSZ, error)
	}{
		{"TwoLevel", NewAHRSZFromGraph},
		{"SingleLevel", NewAHRSZBFromGraph},
	} {
		t.Run(tt.name, func(t *testing.T) {
			a, err := tt.make(build())
			if err != nil {
				t.Fatalf("FromGraph: %v", err)
			}
			if err := Check(a.Graph(), a.Less); err != nil {
				t.Errorf("Check after initial reassignment: %v", err)
			}

			g := build()
			g.AddEdge(0, 4)
			if _, err := tt.make(g); !errors.Is(err, ErrNotAcyclic) {
				t.Errorf("FromGraph on cyclic graph: %v, want ErrNotAcyclic", err)
			}
		})
	}
}

// TestAHRSZPriorityReuse checks that an insertion the order already
// satisfies creates no new priorities.
func TestAHRSZPriorityReuse(t *testing.T) {
	a := NewAHRSZ(4)
	for _, e := range []digraph.Edge{{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 3}} {
		if err := a.AddEdge(e.From, e.To); err != nil {
			t.Fatalf("AddEdge(%d,%d): %v", e.From, e.To, err)
		}
	}
	created := a.Metrics().Created
	// an already-ordered edge must not touch the space
	if err := a.AddEdge(0, 3); err != nil {
		t.Fatalf("AddEdge(0,3): %v", err)
	}
	if got := a.Metrics().Created; got != created {
		t.Errorf("valid insertion created %d priorities", got-created)
	}
}
