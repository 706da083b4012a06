package bench

// Average is an incremental running mean: adding a value folds it
// in without keeping the series. The zero value is ready to use.
type Average struct {
	val   float64
	count int
}

// Add folds a value into the mean.
func (a *Average) Add(v float64) {
	a.val = (a.val * float64(a.count)) / float64(a.count+1)
	a.val += v / float64(a.count+1)
	a.count++
}

// Value returns the current mean, zero when nothing was added.
func (a *Average) Value() float64 { return a.val }

// Count returns the number of values folded in.
func (a *Average) Count() int { return a.count }
