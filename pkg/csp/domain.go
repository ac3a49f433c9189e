package csp

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Domain is an ordered finite set of distinct values of T with trailed
// (level-stamped) removal and restoration. It is the
// "Trailed Domain" of spec §3/§4.1, a direct port of
// original_source/src/csp/domain/setdom.rs's SetDom: a fixed catalog
// vector plus a doubly-linked active chain and a singly-linked absent
// stack, both addressed by 1-based index with 0 as the null sentinel.
// Relinking a value is O(1), but locating a value scans the catalog and
// every mutation re-runs the O(d) size check, so removing or restoring a
// single value costs O(d).
//
// Domain is mutable and shared: every Variable holding it, and every
// Constraint whose scope contains that Variable, observes the same
// active set. Callers coordinate single-threaded access (§5).
type Domain[T Ordered] struct {
	values []T // initial catalog, order preserved, 1-indexed by idx+1

	next       []int // active-chain forward links
	prev       []int // active-chain backward links
	absent     []int // per-position absent stamp; 0 = active, else removal level + 1
	prevAbsent []int // absent-stack backward links

	head       int
	tail       int
	tailAbsent int
	size       int
}

// NewDomain constructs a domain over the given initial values. Values
// must be distinct; duplicates are rejected per the data-model contract.
func NewDomain[T Ordered](values []T) (*Domain[T], error) {
	seen := make(map[T]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return nil, errors.Wrapf(ErrScopeMismatch, "duplicate value %v in initial domain", v)
		}
		seen[v] = struct{}{}
	}

	d := len(values)
	vals := make([]T, d)
	copy(vals, values)

	// next/prev hold 1-based neighbor indices (0 = none). Position i
	// (0-based) is catalog index i+1; its successor is i+2 unless it is
	// the last position, its predecessor is i unless it is the first.
	next := make([]int, d)
	prev := make([]int, d)
	for i := 0; i < d; i++ {
		if i < d-1 {
			next[i] = i + 2
		}
		if i > 0 {
			prev[i] = i
		}
	}

	dom := &Domain[T]{
		values:     vals,
		next:       next,
		prev:       prev,
		absent:     make([]int, d),
		prevAbsent: make([]int, d),
		head:       boolToHead(d),
		tail:       d,
		tailAbsent: 0,
		size:       d,
	}
	return dom, nil
}

func boolToHead(d int) int {
	if d == 0 {
		return 0
	}
	return 1
}

// indexOf returns the 1-based initial-catalog index of v, or 0 if v is
// not in the initial catalog.
func (d *Domain[T]) indexOf(v T) int {
	for i, val := range d.values {
		if val == v {
			return i + 1
		}
	}
	return 0
}

func (d *Domain[T]) isActive(idx int) bool {
	return d.absent[idx-1] == 0
}

// Count returns the number of values currently active.
func (d *Domain[T]) Count() int { return d.size }

// IsEmpty reports whether the active set is empty.
func (d *Domain[T]) IsEmpty() bool { return d.size == 0 }

// Has reports whether v is currently active.
func (d *Domain[T]) Has(v T) bool {
	idx := d.indexOf(v)
	return idx != 0 && d.isActive(idx)
}

// InitialValues returns the full, immutable catalog in construction order.
func (d *Domain[T]) InitialValues() []T {
	out := make([]T, len(d.values))
	copy(out, d.values)
	return out
}

// Head returns the first active value, if any.
func (d *Domain[T]) Head() (T, bool) {
	var zero T
	if d.head == 0 {
		return zero, false
	}
	return d.values[d.head-1], true
}

// Tail returns the last active value, if any.
func (d *Domain[T]) Tail() (T, bool) {
	var zero T
	if d.tail == 0 {
		return zero, false
	}
	return d.values[d.tail-1], true
}

// Min and Max return the smallest/largest active value in catalog-defined
// order is not assumed; these scan the active set for the true ordered
// extremum using T's natural ordering, per spec §4.1 ("ordered finite
// set").
func (d *Domain[T]) Min() (T, bool) {
	var zero T
	found := false
	for i := d.head; i != 0; i = d.next[i-1] {
		v := d.values[i-1]
		if !found || v < zero {
			zero = v
			found = true
		}
	}
	return zero, found
}

func (d *Domain[T]) Max() (T, bool) {
	var zero T
	found := false
	for i := d.head; i != 0; i = d.next[i-1] {
		v := d.values[i-1]
		if !found || v > zero {
			zero = v
			found = true
		}
	}
	return zero, found
}

// IterActive calls f for each active value in stable initial-catalog
// order (§4.1, §5 ordering guarantees). f must not mutate the domain.
func (d *Domain[T]) IterActive(f func(v T)) {
	for i := d.head; i != 0; i = d.next[i-1] {
		f(d.values[i-1])
	}
}

// ActiveValues materializes the active set as a slice, in catalog order.
func (d *Domain[T]) ActiveValues() []T {
	out := make([]T, 0, d.size)
	d.IterActive(func(v T) { out = append(out, v) })
	return out
}

// RemoveValue removes v from the active set, stamping the removal with
// lvl. Idempotent on an already-absent value. Returns ErrUnknownValue if
// v is not part of the initial catalog.
func (d *Domain[T]) RemoveValue(v T, lvl int) error {
	idx := d.indexOf(v)
	if idx == 0 {
		return errors.Wrapf(ErrUnknownValue, "value %v not in domain", v)
	}
	if !d.isActive(idx) {
		d.checkSizeInvariant()
		return nil
	}

	d.absent[idx-1] = lvl + 1
	d.prevAbsent[idx-1] = d.tailAbsent
	d.tailAbsent = idx

	if d.prev[idx-1] == 0 {
		d.head = d.next[idx-1]
	} else {
		d.next[d.prev[idx-1]-1] = d.next[idx-1]
	}

	if d.next[idx-1] == 0 {
		d.tail = d.prev[idx-1]
	} else {
		d.prev[d.next[idx-1]-1] = d.prev[idx-1]
	}

	d.size--
	d.checkSizeInvariant()
	return nil
}

// ReduceTo removes every active value other than v, all stamped at lvl.
// v must currently be active.
func (d *Domain[T]) ReduceTo(v T, lvl int) error {
	idx := d.indexOf(v)
	if idx == 0 || !d.isActive(idx) {
		return errors.Wrapf(ErrUnknownValue, "value %v not active in domain", v)
	}
	b := d.head
	for b != 0 {
		val := d.values[b-1]
		next := d.next[b-1]
		if val != v {
			if err := d.RemoveValue(val, lvl); err != nil {
				return err
			}
		}
		b = next
	}
	return nil
}

// AddValue re-links v into the active chain. Legal only as part of
// restoration (RestoreUpTo); callers outside the trail mechanism must not
// synthesize values (§4.1).
func (d *Domain[T]) AddValue(v T) error {
	idx := d.indexOf(v)
	if idx == 0 {
		return errors.Wrapf(ErrUnknownValue, "value %v not in domain", v)
	}
	if d.isActive(idx) {
		return nil
	}
	return d.addValueAt(idx)
}

func (d *Domain[T]) addValueAt(idx int) error {
	d.absent[idx-1] = 0
	d.tailAbsent = d.prevAbsent[idx-1]

	if d.prev[idx-1] == 0 {
		d.head = idx
	} else {
		d.next[d.prev[idx-1]-1] = idx
	}

	if d.next[idx-1] == 0 {
		d.tail = idx
	} else {
		d.prev[d.next[idx-1]-1] = idx
	}

	d.size++
	d.checkSizeInvariant()
	return nil
}

// RestoreUpTo re-activates every value removed at a level >= lvl, undoing
// removals most-recent-first. After the call the domain matches the
// state that existed when the search entered level lvl.
func (d *Domain[T]) RestoreUpTo(lvl int) {
	b := d.tailAbsent
	for b != 0 && d.absent[b-1] > lvl {
		next := d.prevAbsent[b-1]
		_ = d.addValueAt(b)
		b = next
	}
}

// Clone returns a structurally independent copy of the domain, trail
// state included. Grounded in setdom.rs's `snapshot`/derive(Clone). The
// graph builders do not use it; they read the live domain directly.
func (d *Domain[T]) Clone() *Domain[T] {
	cp := &Domain[T]{
		values:     append([]T(nil), d.values...),
		next:       append([]int(nil), d.next...),
		prev:       append([]int(nil), d.prev...),
		absent:     append([]int(nil), d.absent...),
		prevAbsent: append([]int(nil), d.prevAbsent...),
		head:       d.head,
		tail:       d.tail,
		tailAbsent: d.tailAbsent,
		size:       d.size,
	}
	return cp
}

func (d *Domain[T]) String() string {
	var b strings.Builder
	b.WriteString("{")
	first := true
	d.IterActive(func(v T) {
		if !first {
			b.WriteString(",")
		}
		first = false
		fmt.Fprintf(&b, "%v", v)
	})
	b.WriteString("}")
	return b.String()
}

// checkSizeInvariant is the debug invariant of §4.1: size must equal the
// count of actually-active values. Cheap enough (O(d)) to run
// unconditionally; a systems-language port would gate this behind a
// debug build tag the way the Rust source gates it behind
// cfg(debug_assertions), but Go has no equivalent compile-time toggle
// without a build tag per file, so it stays inline and O(d) per mutation
// — ReduceTo runs it once for every value it removes.
func (d *Domain[T]) checkSizeInvariant() {
	count := 0
	for i := d.head; i != 0; i = d.next[i-1] {
		count++
	}
	if count != d.size {
		panic(fmt.Sprintf("domain invariant violated: size=%d active=%d", d.size, count))
	}
}
