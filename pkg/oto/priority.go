package oto

import "github.com/otobench/otobench/pkg/ordlist"

// PrioritySpace is the ordered-list contract AHRSZ maintains its
// priorities in. Priorities are opaque handles; the only operations
// are comparison and the creation of a new priority strictly
// between two existing ones or at either end.
//
// [ordlist.Space] (O(log N) insertion) and [ordlist.TwoLevelSpace]
// (O(1) amortized insertion) both satisfy it.
type PrioritySpace interface {
	PushFront() ordlist.Handle
	InsertAfter(pos ordlist.Handle) ordlist.Handle
	Front() ordlist.Handle
	Next(pos ordlist.Handle) ordlist.Handle
	Less(a, b ordlist.Handle) bool
	Order(h ordlist.Handle) uint64
	Len() int
	Stats() ordlist.Stats
}

// extPriority extends a priority handle with the two infinities, so
// that floors and ceilings of boundary vertices have a value.
type extPriority struct {
	h        ordlist.Handle
	minusInf bool
	plusInf  bool
}

var (
	minusInfinity = extPriority{minusInf: true}
	plusInfinity  = extPriority{plusInf: true}
)

func ext(h ordlist.Handle) extPriority { return extPriority{h: h} }

// extLess orders extended priorities: -inf below every handle,
// +inf above.
func extLess(ps PrioritySpace, x, y extPriority) bool {
	if x.minusInf || y.minusInf {
		return x.minusInf && !y.minusInf
	}
	if x.plusInf || y.plusInf {
		return y.plusInf && !x.plusInf
	}
	return ps.Less(x.h, y.h)
}

func extEq(x, y extPriority) bool {
	if x.minusInf || y.minusInf {
		return x.minusInf == y.minusInf
	}
	if x.plusInf || y.plusInf {
		return x.plusInf == y.plusInf
	}
	return x.h == y.h
}

func extMin(ps PrioritySpace, x, y extPriority) extPriority {
	if extLess(ps, y, x) {
		return y
	}
	return x
}

func extMax(ps PrioritySpace, x, y extPriority) extPriority {
	if extLess(ps, x, y) {
		return y
	}
	return x
}
