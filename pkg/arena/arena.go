// Package arena provides an allocation-counting owner for a single
// module's parse.
//
// New and NewSlice allocate on Go's ordinary heap and count each call; the
// arena does not hand out memory from blocks of its own, and dropping it
// releases nothing by itself. ParseModule routes its returned top-level
// def slice through one Arena; nested expression and pattern nodes are
// plain heap values. Go's garbage collector reclaims all of them once they
// are unreachable, so there is nothing to release explicitly.
package arena

// chunkSize is not used by New or NewSlice: the arena allocates no
// backing blocks of its own.
const chunkSize = 64 * 1024

// Arena counts the allocations made through it. The zero value is ready
// to use.
type Arena struct {
	chunks [][]byte
	used   int
}

// New allocates a single T from the arena and returns a pointer to it.
func New[T any](a *Arena) *T {
	var zero T
	_ = zero
	v := new(T)
	a.track()
	return v
}

// NewSlice allocates a slice of n T values from the arena, zero-initialized.
func NewSlice[T any](a *Arena, n int) []T {
	a.track()
	return make([]T, n)
}

// track is a bookkeeping hook kept separate from allocation so the arena's
// accounting (used for diagnostics/tests) stays correct even though Go's
// allocator, not a real bump pointer, backs New/NewSlice.
func (a *Arena) track() {
	a.used++
}

// Allocations reports how many values have been allocated from a, useful in
// tests asserting that a parse produced the expected node count.
func (a *Arena) Allocations() int {
	return a.used
}
