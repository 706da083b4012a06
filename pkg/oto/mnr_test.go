package oto

import (
	"errors"
	"slices"
	"testing"
)

func TestMNRTrivialChain(t *testing.T) {
	m := NewMNR(3)
	if err := m.AddEdge(0, 1); err != nil {
		t.Fatalf("AddEdge(0,1): %v", err)
	}
	if err := m.AddEdge(1, 2); err != nil {
		t.Fatalf("AddEdge(1,2): %v", err)
	}
	if !slices.Equal(m.ord, []int{0, 1, 2}) {
		t.Errorf("ord = %v, want [0 1 2]", m.ord)
	}
	if err := Check(m.Graph(), m.Less); err != nil {
		t.Errorf("Check: %v", err)
	}
	if got := m.Metrics().Invalidations; got != 0 {
		t.Errorf("Invalidations = %d, want 0 for already-ordered edges", got)
	}
}

func TestMNRImmediateCycle(t *testing.T) {
	m := NewMNR(2)
	if err := m.AddEdge(0, 1); err != nil {
		t.Fatalf("AddEdge(0,1): %v", err)
	}
	err := m.AddEdge(1, 0)
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("AddEdge(1,0) error = %v, want ErrCycle", err)
	}
	// rejection must leave graph and order untouched
	if m.Graph().HasEdge(1, 0) {
		t.Error("rejected edge still present in graph store")
	}
	if !slices.Equal(m.ord, []int{0, 1}) {
		t.Errorf("ord = %v, want [0 1] after rejection", m.ord)
	}
	for i, v := range m.visited {
		if v {
			t.Errorf("visited[%d] not cleared after rejection", i)
		}
	}
}

func TestMNRForcesReorder(t *testing.T) {
	m := NewMNR(4)
	if err := m.AddEdge(3, 1); err != nil {
		t.Fatalf("AddEdge(3,1): %v", err)
	}
	// the affected window is positions [1, 3]; the unvisited
	// vertices 2 and 3 slide down and the reached vertex 1 moves
	// after them
	if !slices.Equal(m.pos, []int{0, 2, 3, 1}) {
		t.Errorf("pos = %v, want [0 2 3 1]", m.pos)
	}
	if !slices.Equal(m.ord, []int{0, 3, 1, 2}) {
		t.Errorf("ord = %v, want [0 3 1 2]", m.ord)
	}
	if err := Check(m.Graph(), m.Less); err != nil {
		t.Errorf("Check: %v", err)
	}
	mt := m.Metrics()
	if mt.Invalidations != 1 {
		t.Errorf("Invalidations = %d, want 1", mt.Invalidations)
	}
	if mt.Affected != 3 {
		// affected region is positions [ord(1), ord(3)] = [1, 3]
		t.Errorf("Affected = %d, want 3", mt.Affected)
	}
}

func TestMNRDuplicateEdgeNoOp(t *testing.T) {
	m := NewMNR(3)
	if err := m.AddEdge(2, 0); err != nil {
		t.Fatalf("AddEdge(2,0): %v", err)
	}
	before := slices.Clone(m.ord)
	edges := m.Graph().NumEdges()
	if err := m.AddEdge(2, 0); err != nil {
		t.Fatalf("duplicate AddEdge(2,0): %v", err)
	}
	if !slices.Equal(m.ord, before) {
		t.Error("duplicate edge modified the order")
	}
	if got := m.Graph().NumEdges(); got != edges {
		t.Errorf("duplicate edge changed NumEdges: %d, want %d", got, edges)
	}
}

func TestMNRSelfLoop(t *testing.T) {
	m := NewMNR(2)
	if err := m.AddEdge(1, 1); !errors.Is(err, ErrCycle) {
		t.Errorf("AddEdge(1,1) error = %v, want ErrCycle", err)
	}
	if got := m.Graph().NumEdges(); got != 0 {
		t.Errorf("NumEdges = %d, want 0", got)
	}
}

func TestMNRFromGraph(t *testing.T) {
	g := buildGraph(4, nil)
	g.AddEdge(2, 0)
	g.AddEdge(0, 3)
	g.AddEdge(3, 1)

	m, err := NewMNRFromGraph(g)
	if err != nil {
		t.Fatalf("NewMNRFromGraph: %v", err)
	}
	if err := Check(m.Graph(), m.Less); err != nil {
		t.Errorf("Check after initial sort: %v", err)
	}
	// pos must invert ord
	for v, i := range m.ord {
		if m.pos[i] != v {
			t.Errorf("pos[ord[%d]] = %d, want %d", v, m.pos[i], v)
		}
	}

	g.AddEdge(1, 2)
	if _, err := NewMNRFromGraph(g); !errors.Is(err, ErrNotAcyclic) {
		t.Errorf("NewMNRFromGraph on cyclic graph: %v, want ErrNotAcyclic", err)
	}
}
