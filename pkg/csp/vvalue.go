package csp

import (
	"fmt"
	"sort"

	"golang.org/x/exp/constraints"
)

// Ordered is the value-type constraint for the whole package: totally
// ordered and comparable, which for any concrete instantiation also makes
// it trivially clonable (values are copied, not aliased) and displayable
// via fmt's %v. Arithmetic expressions additionally require Number.
type Ordered = constraints.Ordered

// Number restricts arithmetic expressions (Add/Sub/Mul) to types that
// actually support +, -, * — strings satisfy Ordered but not Number, so a
// CSP[string] can use predicates but never AExpr, matching the source's
// partition between base and arithmetic expressions.
type Number interface {
	constraints.Integer | constraints.Float
}

// VValue is a (label, value) pair: the atomic unit of search and
// propagation. Equality and hashing use both fields.
type VValue[T Ordered] struct {
	Label string
	Value T
}

// VV constructs a VValue. Named after the source's `vv` factory.
func VV[T Ordered](label string, value T) VValue[T] {
	return VValue[T]{Label: label, Value: value}
}

// Equal compares two v-values by label and value.
func (v VValue[T]) Equal(other VValue[T]) bool {
	return v.Label == other.Label && v.Value == other.Value
}

func (v VValue[T]) String() string {
	return fmt.Sprintf("(%s, %v)", v.Label, v.Value)
}

// Assignment is an ordered sequence of v-values with distinct labels.
type Assignment[T Ordered] []VValue[T]

// ValueOf returns the value bound to label within the assignment, if any.
func (a Assignment[T]) ValueOf(label string) (T, bool) {
	for _, vv := range a {
		if vv.Label == label {
			return vv.Value, true
		}
	}
	var zero T
	return zero, false
}

// Labels returns the set of labels present in the assignment.
func (a Assignment[T]) Labels() map[string]struct{} {
	set := make(map[string]struct{}, len(a))
	for _, vv := range a {
		set[vv.Label] = struct{}{}
	}
	return set
}

// With returns a new assignment extended with the given v-value.
func (a Assignment[T]) With(vv VValue[T]) Assignment[T] {
	out := make(Assignment[T], len(a), len(a)+1)
	copy(out, a)
	return append(out, vv)
}

// Equal compares two assignments element-wise (order-sensitive, matching
// the source's derive(PartialEq) on Vec<VValue<T>>).
func (a Assignment[T]) Equal(other Assignment[T]) bool {
	if len(a) != len(other) {
		return false
	}
	for i := range a {
		if !a[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// SortedLabels returns the scope's labels in ascending order — used to
// canonicalize constraint scopes and as the normalization key (§4.5).
func SortedLabels[T Ordered](vars []*Variable[T]) []string {
	labels := make([]string, len(vars))
	for i, v := range vars {
		labels[i] = v.Label()
	}
	sort.Strings(labels)
	return labels
}
