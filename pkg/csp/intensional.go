package csp

import "fmt"

// Intensional is a constraint defined by a formula over its scope's
// variables: allowedness is whatever the formula evaluates to. Grounded
// in original_source/src/csp/constraint/intensional.rs's EqConstraint/
// LtConstraint/NeqConstraint, generalized from hand-written binary structs
// to a single k-ary type parameterized by an arbitrary Formula[T] — the
// formula already carries Eq/Neq/Lt/Le/Gt/Ge and boolean composition, so
// one Intensional type covers every concrete constraint the source
// hand-rolled individually.
type Intensional[T Ordered] struct {
	base[T]
	formula *Formula[T]
}

// NewIntensional builds a formula-backed constraint over scope. The
// formula's own CollectVars must be a subset of scope's labels — callers
// that built the scope mechanically (via ScopeFromFormula) get this for
// free.
func NewIntensional[T Ordered](label string, scope []*Variable[T], formula *Formula[T]) *Intensional[T] {
	c := &Intensional[T]{base: newBase(label, scope), formula: formula}
	c.self = c
	return c
}

// ScopeFromFormula derives a constraint's scope mechanically from the
// formula's referenced labels, resolving each against the supplied
// variable pool (§4.4: scope is never hand-maintained separately from the
// expression tree).
func ScopeFromFormula[T Ordered](formula *Formula[T], pool map[string]*Variable[T]) ([]*Variable[T], error) {
	seen := make(map[string]struct{})
	var scope []*Variable[T]
	for _, label := range formula.CollectVars(nil) {
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		v, ok := pool[label]
		if !ok {
			return nil, fmt.Errorf("%w: formula references undeclared variable %q", ErrScopeMismatch, label)
		}
		scope = append(scope, v)
	}
	return scope, nil
}

// IsAllowed evaluates the formula against a complete assignment over the
// scope. A formula that still evaluates to Unknown on a complete
// assignment is an evaluator bug (§7's ErrUndefinedEvaluation), since
// every operand should be resolvable once every scope variable is bound;
// IsAllowed panics with an error wrapping ErrUndefinedEvaluation then.
func (c *Intensional[T]) IsAllowed(asn Assignment[T]) bool {
	verdict := c.formula.Eval(asn)
	if verdict.IsUnknown() {
		panic(fmt.Errorf("%w: constraint %q: %s undecided on %v", ErrUndefinedEvaluation, c.label, c.formula, asn))
	}
	return verdict.IsTrue()
}

func (c *Intensional[T]) String() string {
	return fmt.Sprintf("%s: %s", c.label, c.formula)
}
