package ordlist

// Space is a single-level ordered list carrying no element values:
// a pure priority space. Only the structural operations remain,
// which is all an order-maintenance client needs.
type Space struct {
	list *List[struct{}]
}

// NewSpace creates a priority space with n initial priorities.
func NewSpace(n int) *Space {
	return &Space{list: NewListSized[struct{}](n)}
}

// PushFront creates a new priority before all existing ones.
func (s *Space) PushFront() Handle { return s.list.PushFront(struct{}{}) }

// InsertAfter creates a new priority immediately after pos.
func (s *Space) InsertAfter(pos Handle) Handle { return s.list.InsertAfter(pos, struct{}{}) }

// Front returns the smallest priority, or None if the space is empty.
func (s *Space) Front() Handle { return s.list.Front() }

// Next returns the priority following h, or None if h is largest.
func (s *Space) Next(h Handle) Handle { return s.list.Next(h) }

// Less reports whether a is a smaller priority than b.
func (s *Space) Less(a, b Handle) bool { return s.list.Less(a, b) }

// Order returns the position value of h.
func (s *Space) Order(h Handle) uint64 { return s.list.Order(h) }

// Len returns the number of priorities.
func (s *Space) Len() int { return s.list.Len() }

// Stats returns a snapshot of the space's work counters.
func (s *Space) Stats() Stats { return s.list.Stats() }

// TwoLevelSpace is a two-level ordered list carrying no element
// values, giving O(1) amortized priority creation.
type TwoLevelSpace struct {
	list *TwoLevel[struct{}]
}

// NewTwoLevelSpace creates a two-level priority space with n
// initial priorities.
func NewTwoLevelSpace(n int) *TwoLevelSpace {
	return &TwoLevelSpace{list: NewTwoLevelSized[struct{}](n)}
}

// PushFront creates a new priority before all existing ones.
func (s *TwoLevelSpace) PushFront() Handle { return s.list.PushFront(struct{}{}) }

// InsertAfter creates a new priority immediately after pos.
func (s *TwoLevelSpace) InsertAfter(pos Handle) Handle { return s.list.InsertAfter(pos, struct{}{}) }

// Front returns the smallest priority, or None if the space is empty.
func (s *TwoLevelSpace) Front() Handle { return s.list.Front() }

// Next returns the priority following h, or None if h is largest.
func (s *TwoLevelSpace) Next(h Handle) Handle { return s.list.Next(h) }

// Less reports whether a is a smaller priority than b.
func (s *TwoLevelSpace) Less(a, b Handle) bool { return s.list.Less(a, b) }

// Order returns the position value of h.
func (s *TwoLevelSpace) Order(h Handle) uint64 { return s.list.Order(h) }

// Len returns the number of priorities.
func (s *TwoLevelSpace) Len() int { return s.list.Len() }

// Stats returns a snapshot of the space's work counters.
func (s *TwoLevelSpace) Stats() Stats { return s.list.Stats() }
