package csp

import (
	"fmt"

	"github.com/pkg/errors"
)

// Extensional is a constraint defined by an explicit list of allowed
// tuples over its scope. Grounded in
// original_source/src/csp/constraint/extensional.rs's ExtConstraint<T>.
//
// Unlike the Rust source, IsEntailed/IsDisentailed here are NOT
// overridden: the source's override treats an empty tuple list as
// "entailed" (vacuously true), which is backwards — a constraint with no
// allowed tuples can never be satisfied, so it is disentailed, not
// entailed. This package uses base[T]'s generalized, arity-correct
// definition uniformly for both constraint kinds (§9's flagged
// correction).
type Extensional[T Ordered] struct {
	base[T]
	allowed Assignment2D[T]
}

// NewExtensional builds a tuple-list constraint. Every tuple must bind
// exactly the scope's labels; a mismatched tuple is a construction error.
func NewExtensional[T Ordered](label string, scope []*Variable[T], tuples Assignment2D[T]) (*Extensional[T], error) {
	for _, tuple := range tuples {
		if len(tuple) != len(scope) {
			return nil, errors.Wrapf(ErrScopeMismatch, "constraint %q: tuple arity %d does not match scope arity %d", label, len(tuple), len(scope))
		}
		for _, v := range scope {
			if _, ok := tuple.ValueOf(v.Label()); !ok {
				return nil, errors.Wrapf(ErrScopeMismatch, "constraint %q: tuple missing scope variable %q", label, v.Label())
			}
		}
	}
	c := &Extensional[T]{base: newBase(label, scope), allowed: tuples}
	c.self = c
	return c, nil
}

// IsAllowed reports whether asn (a complete assignment over the scope)
// appears among the allowed tuples. Each tuple's values are looked up in
// asn by label, not by position, so callers may pass asn in any order.
func (c *Extensional[T]) IsAllowed(asn Assignment[T]) bool {
	for _, tuple := range c.allowed {
		if tupleMatches(tuple, asn) {
			return true
		}
	}
	return false
}

func tupleMatches[T Ordered](tuple, asn Assignment[T]) bool {
	if len(tuple) != len(asn) {
		return false
	}
	for _, vv := range tuple {
		val, ok := asn.ValueOf(vv.Label)
		if !ok || val != vv.Value {
			return false
		}
	}
	return true
}

// AllowedTuples returns the constraint's declared extension.
func (c *Extensional[T]) AllowedTuples() Assignment2D[T] { return c.allowed }

func (c *Extensional[T]) String() string {
	return fmt.Sprintf("%s: %d allowed tuple(s) over (%s)", c.label, len(c.allowed), c.scopeString())
}
