package ordlist

import (
	"math/rand/v2"
	"testing"
)

// traverse returns the handles of l in list order.
func traverse[V any](l *List[V]) []Handle {
	var hs []Handle
	for h := l.Front(); h != None; h = l.Next(h) {
		hs = append(hs, h)
	}
	return hs
}

// checkMonotone asserts that Order increases strictly along the
// traversal and agrees with Less.
func checkMonotone(t *testing.T, order func(Handle) uint64, less func(a, b Handle) bool, hs []Handle) {
	t.Helper()
	for i := 1; i < len(hs); i++ {
		a, b := hs[i-1], hs[i]
		if order(a) >= order(b) {
			t.Fatalf("Order not strictly increasing at position %d: %d >= %d", i, order(a), order(b))
		}
		if !less(a, b) {
			t.Fatalf("Less(%v, %v) = false for consecutive items", a, b)
		}
		if less(b, a) {
			t.Fatalf("Less(%v, %v) = true against list order", b, a)
		}
	}
}

func TestListSized(t *testing.T) {
	for _, n := range []int{1, 2, 5, 100} {
		l := NewListSized[int](n)
		if got := l.Len(); got != n {
			t.Fatalf("Len() = %d, want %d", got, n)
		}
		hs := traverse(l)
		if len(hs) != n {
			t.Fatalf("traversal yields %d items, want %d", len(hs), n)
		}
		checkMonotone(t, l.Order, l.Less, hs)
	}
}

func TestListInsertAfter(t *testing.T) {
	l := NewList[string]()
	a := l.PushFront("a")
	c := l.InsertAfter(a, "c")
	b := l.InsertAfter(a, "b")

	hs := traverse(l)
	if len(hs) != 3 {
		t.Fatalf("Len = %d, want 3", len(hs))
	}
	want := []string{"a", "b", "c"}
	for i, h := range hs {
		if got := *l.Value(h); got != want[i] {
			t.Errorf("position %d = %q, want %q", i, got, want[i])
		}
	}
	checkMonotone(t, l.Order, l.Less, hs)
	if !l.Less(a, b) || !l.Less(b, c) {
		t.Error("Less disagrees with insertion order")
	}
}

func TestListPushFront(t *testing.T) {
	l := NewList[int]()
	for i := 0; i < 50; i++ {
		l.PushFront(i)
	}
	hs := traverse(l)
	if len(hs) != 50 {
		t.Fatalf("Len = %d, want 50", len(hs))
	}
	checkMonotone(t, l.Order, l.Less, hs)
	// the last push is the front item
	if got := *l.Value(hs[0]); got != 49 {
		t.Errorf("front = %d, want 49", got)
	}
}

func TestListEraseAfter(t *testing.T) {
	l := NewListSized[int](5)
	hs := traverse(l)

	l.EraseAfter(hs[1]) // drop third item
	if got := l.Len(); got != 4 {
		t.Fatalf("Len = %d, want 4", got)
	}
	rest := traverse(l)
	checkMonotone(t, l.Order, l.Less, rest)

	// erasing the last item must keep InsertAfter on the new tail
	// working (the internal tail pointer moves back)
	l.EraseAfter(rest[2])
	tail := traverse(l)[2]
	l.InsertAfter(tail, 99)
	checkMonotone(t, l.Order, l.Less, traverse(l))

	// erase past the end is a no-op
	n := l.Len()
	l.EraseAfter(traverse(l)[l.Len()-1])
	if got := l.Len(); got != n {
		t.Errorf("Len = %d, want %d", got, n)
	}
}

func TestListHandleStability(t *testing.T) {
	// Handles must survive relabels: hammer one gap until relabels
	// trigger, then check that old handles still order correctly.
	l := NewList[int]()
	first := l.PushFront(0)
	last := l.InsertAfter(first, 1)

	at := first
	for i := 0; i < 200; i++ {
		at = l.InsertAfter(at, i+2)
	}
	if l.Stats().Relabels == 0 {
		t.Fatal("expected at least one relabel after 200 same-spot insertions")
	}
	if !l.Less(first, last) {
		t.Error("Less(first, last) = false after relabels")
	}
	if l.Front() != first {
		t.Error("front handle changed across relabels")
	}
	checkMonotone(t, l.Order, l.Less, traverse(l))
}

// TestListStress performs 10k random operations and asserts strict
// monotonicity after each batch of insertions.
func TestListStress(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	l := NewList[int]()
	var live []Handle

	for i := 0; i < 10000; i++ {
		if len(live) == 0 || rng.IntN(10) == 0 {
			live = append(live, l.PushFront(i))
		} else {
			at := live[rng.IntN(len(live))]
			live = append(live, l.InsertAfter(at, i))
		}
		if i%1000 == 999 {
			checkMonotone(t, l.Order, l.Less, traverse(l))
		}
	}
	if got := l.Len(); got != 10000 {
		t.Fatalf("Len = %d, want 10000", got)
	}
	checkMonotone(t, l.Order, l.Less, traverse(l))
	if c := l.Stats().Created; c != 10000 {
		t.Errorf("Stats().Created = %d, want 10000", c)
	}
}

func TestSpace(t *testing.T) {
	s := NewSpace(1)
	front := s.Front()
	if front == None {
		t.Fatal("Front() = None on sized space")
	}
	p := s.InsertAfter(front)
	q := s.PushFront()
	if !s.Less(q, front) || !s.Less(front, p) {
		t.Error("priority order wrong after PushFront/InsertAfter")
	}
	if got := s.Len(); got != 3 {
		t.Errorf("Len = %d, want 3", got)
	}
	if got := s.Stats().Created; got != 3 {
		t.Errorf("Stats().Created = %d, want 3", got)
	}
}
