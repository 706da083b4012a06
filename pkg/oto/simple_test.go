package oto

import (
	"errors"
	"testing"

	"github.com/otobench/otobench/pkg/digraph"
)

func TestSimpleBatch(t *testing.T) {
	s := NewSimple(4)
	out := s.AddEdgeBatch([]digraph.Edge{{From: 3, To: 1}, {From: 1, To: 0}, {From: 0, To: 2}})
	for i, ok := range out {
		if !ok {
			t.Errorf("edge %d rejected, want accepted", i)
		}
	}
	if err := Check(s.Graph(), s.Less); err != nil {
		t.Errorf("Check after batch re-sort: %v", err)
	}
	if got := s.Metrics().Invalidations; got == 0 {
		t.Error("expected invalidations from out-of-order edges")
	}
}

func TestSimpleCycleWithinBatch(t *testing.T) {
	// the second edge invalidates, the third closes a cycle before
	// the deferred re-sort runs; it must still be rejected
	s := NewSimple(3)
	out := s.AddEdgeBatch([]digraph.Edge{{From: 0, To: 1}, {From: 2, To: 0}, {From: 1, To: 2}})
	want := []bool{true, true, false}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("outcome[%d] = %v, want %v", i, out[i], want[i])
		}
	}
	if err := Check(s.Graph(), s.Less); err != nil {
		t.Errorf("Check: %v", err)
	}
}

func TestSimpleSingleEdge(t *testing.T) {
	s := NewSimple(3)
	if err := s.AddEdge(2, 0); err != nil {
		t.Fatalf("AddEdge(2,0): %v", err)
	}
	if err := Check(s.Graph(), s.Less); err != nil {
		t.Errorf("Check: %v", err)
	}
	if err := s.AddEdge(0, 2); !errors.Is(err, ErrCycle) {
		t.Errorf("AddEdge(0,2) error = %v, want ErrCycle", err)
	}
}

func TestSimpleFromGraph(t *testing.T) {
	g := buildGraph(3, []digraph.Edge{{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 0}})
	if _, err := NewSimpleFromGraph(g); !errors.Is(err, ErrNotAcyclic) {
		t.Errorf("NewSimpleFromGraph on cyclic graph: %v, want ErrNotAcyclic", err)
	}
}

func TestDummy(t *testing.T) {
	d := NewDummy(3)
	// the control accepts everything, cycles included
	for _, e := range []digraph.Edge{{From: 0, To: 1}, {From: 1, To: 0}} {
		if err := d.AddEdge(e.From, e.To); err != nil {
			t.Fatalf("AddEdge(%d,%d): %v", e.From, e.To, err)
		}
	}
	if got := d.Graph().NumEdges(); got != 2 {
		t.Errorf("NumEdges = %d, want 2", got)
	}
}
