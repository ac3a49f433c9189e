package csp

// CartesianWalker enumerates the Cartesian product of a sequence of value
// slices in odometer order: the last slice advances fastest. Grounded in
// original_source/src/csp/domain/setdom.rs's CartesianWalker, adapted to
// walk pre-materialized [][]T slices (the source's borrowing variant)
// rather than live Domain[T] references, since Go domains are shared
// pointers the caller may be mutating concurrently with iteration.
type CartesianWalker[T Ordered] struct {
	domains [][]T
	indices []int
	done    bool
}

// NewCartesianWalker builds a walker over domains. A zero-length domains
// slice (k=0) yields exactly one empty tuple, then is done — matching the
// source's convention that the empty product has a single element.
func NewCartesianWalker[T Ordered](domains [][]T) *CartesianWalker[T] {
	for _, dom := range domains {
		if len(dom) == 0 {
			return &CartesianWalker[T]{done: true}
		}
	}
	return &CartesianWalker[T]{
		domains: domains,
		indices: make([]int, len(domains)),
	}
}

// Next returns the next tuple in odometer order, or (nil, false) once the
// product is exhausted.
func (w *CartesianWalker[T]) Next() ([]T, bool) {
	if w.done {
		return nil, false
	}

	tuple := make([]T, len(w.domains))
	for i, dom := range w.domains {
		tuple[i] = dom[w.indices[i]]
	}

	// Advance the odometer from the rightmost wheel.
	i := len(w.indices) - 1
	for i >= 0 {
		w.indices[i]++
		if w.indices[i] < len(w.domains[i]) {
			break
		}
		w.indices[i] = 0
		i--
	}
	if i < 0 {
		w.done = true
	}

	return tuple, true
}

// All drains the walker into a slice of tuples. Convenience for small
// products (tests, rel() on bounded scopes); large products should drive
// Next directly to avoid materializing the full cross product.
func (w *CartesianWalker[T]) All() [][]T {
	var out [][]T
	for {
		tuple, ok := w.Next()
		if !ok {
			return out
		}
		out = append(out, tuple)
	}
}
