package csp

import "fmt"

// Variable is a named handle onto a shared Domain. Grounded in
// original_source/src/csp/variable/extvar.rs (ExVar: label + Rc<RefCell<D>>)
// and styled after gitrdm-gokando's pkg/minikanren/variable.go's
// Value()/TryValue() panic-vs-safe pairing. Two variables are equal iff
// their labels are equal — the shared Domain pointer is incidental wiring,
// not identity (§4.2).
type Variable[T Ordered] struct {
	label  string
	domain *Domain[T]
}

// NewVariable binds label to domain. The domain is not copied: every
// constraint scoping this variable observes the same mutations.
func NewVariable[T Ordered](label string, domain *Domain[T]) *Variable[T] {
	return &Variable[T]{label: label, domain: domain}
}

// Label returns the variable's name.
func (v *Variable[T]) Label() string { return v.label }

// Domain returns the shared domain backing this variable.
func (v *Variable[T]) Domain() *Domain[T] { return v.domain }

// IsBound reports whether exactly one value remains active.
func (v *Variable[T]) IsBound() bool { return v.domain.Count() == 1 }

// Value returns the single active value. Panics if the variable is not
// bound — mirrors the source's unchecked accessor for callers that have
// already established boundedness via IsBound.
func (v *Variable[T]) Value() T {
	val, ok := v.TryValue()
	if !ok {
		panic(fmt.Sprintf("variable %q is not bound (domain has %d active values)", v.label, v.domain.Count()))
	}
	return val
}

// TryValue returns the single active value and true if the variable is
// bound, or the zero value and false otherwise. Prefer this over Value in
// any path that cannot first check IsBound.
func (v *Variable[T]) TryValue() (T, bool) {
	var zero T
	if v.domain.Count() != 1 {
		return zero, false
	}
	val, ok := v.domain.Head()
	if !ok {
		return zero, false
	}
	return val, true
}

func (v *Variable[T]) String() string {
	return fmt.Sprintf("%s=%s", v.label, v.domain.String())
}
