package csp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// CSP bundles a set of named variables with a set of constraints over
// them, plus the trail machinery (past, level) a GAC propagator or search
// procedure needs. Grounded in original_source/src/csp/csp.rs's Csp<T>.
type CSP[T Ordered] struct {
	vars        map[string]*Variable[T]
	order       []string // declaration order, for stable Display/iteration
	constraints []Constraint[T]
	past        []string // labels assigned so far, in assignment order
	level       int
}

// NewCSP builds an empty container. Variables and constraints are added
// with AddVariable/AddConstraint so construction-time validation errors
// can be aggregated rather than failing on the first bad entry.
func NewCSP[T Ordered]() *CSP[T] {
	return &CSP[T]{vars: make(map[string]*Variable[T])}
}

// AddVariable registers v. Returns ErrScopeMismatch if the label is
// already taken.
func (c *CSP[T]) AddVariable(v *Variable[T]) error {
	if _, exists := c.vars[v.Label()]; exists {
		return errors.Wrapf(ErrScopeMismatch, "duplicate variable label %q", v.Label())
	}
	c.vars[v.Label()] = v
	c.order = append(c.order, v.Label())
	return nil
}

// AddVariables registers several variables at once, aggregating every
// failure via go-multierror rather than stopping at the first one — the
// same "report everything wrong with this build" posture the teacher's
// validation helpers use.
func (c *CSP[T]) AddVariables(vars ...*Variable[T]) error {
	var result *multierror.Error
	for _, v := range vars {
		if err := c.AddVariable(v); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// AddConstraint registers a constraint whose scope must reference only
// already-declared variables.
func (c *CSP[T]) AddConstraint(con Constraint[T]) error {
	for _, v := range con.Scope() {
		if existing, ok := c.vars[v.Label()]; !ok || existing != v {
			return errors.Wrapf(ErrScopeMismatch, "constraint %q references unregistered variable %q", con.Label(), v.Label())
		}
	}
	c.constraints = append(c.constraints, con)
	return nil
}

// Variable looks up a registered variable by label.
func (c *CSP[T]) Variable(label string) (*Variable[T], bool) {
	v, ok := c.vars[label]
	return v, ok
}

// Variables returns every registered variable in declaration order.
func (c *CSP[T]) Variables() []*Variable[T] {
	out := make([]*Variable[T], len(c.order))
	for i, label := range c.order {
		out[i] = c.vars[label]
	}
	return out
}

// Constraints returns every registered constraint, in registration order.
func (c *CSP[T]) Constraints() []Constraint[T] {
	out := make([]Constraint[T], len(c.constraints))
	copy(out, c.constraints)
	return out
}

// Past returns the labels assigned so far, oldest first.
func (c *CSP[T]) Past() []string {
	out := make([]string, len(c.past))
	copy(out, c.past)
	return out
}

// Level returns the current search/trail depth.
func (c *CSP[T]) Level() int { return c.level }

// Push records that label was just assigned (bound to a single value) and
// advances the level, returning the new level — the level a subsequent
// Domain.RemoveValue call should stamp its removals with.
func (c *CSP[T]) Push(label string) int {
	c.past = append(c.past, label)
	c.level++
	return c.level
}

// Pop undoes the most recent Push, restoring every domain's trail back to
// the popped level and returning the label that was unassigned.
func (c *CSP[T]) Pop() (string, bool) {
	if len(c.past) == 0 {
		return "", false
	}
	label := c.past[len(c.past)-1]
	c.past = c.past[:len(c.past)-1]
	for _, v := range c.vars {
		v.Domain().RestoreUpTo(c.level)
	}
	c.level--
	return label, true
}

// Cover returns the subset of constraints whose full scope is covered by
// asn — i.e. every variable the constraint mentions has a binding in asn.
// Grounded in csp.rs's cover().
func (c *CSP[T]) Cover(asn Assignment[T]) []Constraint[T] {
	var out []Constraint[T]
	for _, con := range c.constraints {
		if con.IsCovered(asn) {
			out = append(out, con)
		}
	}
	return out
}

// IsLocallyConsistent reports that every constraint covered by asn is
// satisfied by it (no covered constraint's CheckAssignment is False).
// Mirrors is_locally_consistent in original_source/src/csp/csp.rs:36-44.
func (c *CSP[T]) IsLocallyConsistent(asn Assignment[T]) bool {
	for _, con := range c.Cover(asn) {
		if con.CheckAssignment(asn).IsFalse() {
			return false
		}
	}
	return true
}

// IsSolution reports that asn covers every constraint's scope and is
// locally consistent — a complete, satisfying assignment. Mirrors
// is_solution (csp.rs:68-73).
func (c *CSP[T]) IsSolution(asn Assignment[T]) bool {
	for _, con := range c.constraints {
		if !con.IsCovered(asn) {
			return false
		}
	}
	return c.IsLocallyConsistent(asn)
}

// IsGloballyConsistent reports that asn is locally consistent AND either
// already a solution, or can be extended over its unassigned variables'
// active domains to satisfy every constraint (§4.5 branch (ii)). Mirrors
// is_globally_consistent (csp.rs:46-65): an incomplete but locally
// consistent assignment is globally consistent as long as some
// completion exists, not only when it is itself complete.
func (c *CSP[T]) IsGloballyConsistent(asn Assignment[T]) bool {
	if !c.IsLocallyConsistent(asn) {
		return false
	}
	if c.IsSolution(asn) {
		return true
	}

	assigned := asn.Labels()
	var missing []*Variable[T]
	for _, label := range c.order {
		if _, ok := assigned[label]; !ok {
			missing = append(missing, c.vars[label])
		}
	}
	return c.existsConsistentExtension(asn, missing)
}

// existsConsistentExtension walks the cartesian product of missing's
// active domains looking for a completion of asn under which no
// constraint's CheckAssignment is False. Mirrors the free function
// exists_extension (csp.rs:224-238).
func (c *CSP[T]) existsConsistentExtension(asn Assignment[T], missing []*Variable[T]) bool {
	domains := make([][]T, len(missing))
	for i, v := range missing {
		domains[i] = v.Domain().ActiveValues()
	}

	walker := NewCartesianWalker[T](domains)
	for {
		tuple, ok := walker.Next()
		if !ok {
			return false
		}
		extended := make(Assignment[T], len(asn), len(asn)+len(missing))
		copy(extended, asn)
		extended = append(extended, tupleToAssignment(missing, tuple)...)

		consistent := true
		for _, con := range c.constraints {
			if con.CheckAssignment(extended).IsFalse() {
				consistent = false
				break
			}
		}
		if consistent {
			return true
		}
	}
}

// N is the number of variables.
func (c *CSP[T]) N() int { return len(c.vars) }

// E is the number of constraints.
func (c *CSP[T]) E() int { return len(c.constraints) }

// D is the largest initial domain size across all variables (0 if none).
func (c *CSP[T]) D() int {
	max := 0
	for _, v := range c.vars {
		if n := len(v.Domain().InitialValues()); n > max {
			max = n
		}
	}
	return max
}

// R is the largest constraint arity across all constraints (0 if none).
func (c *CSP[T]) R() int {
	max := 0
	for _, con := range c.constraints {
		if n := len(con.Scope()); n > max {
			max = n
		}
	}
	return max
}

// Density is e / C(n, r): the fraction of possible r-ary constraints over
// n variables that are actually present. Grounded in csp.rs's density(),
// which used the statrs crate's binomial(); no pack example imports a Go
// combinatorics library, so this computes the binomial coefficient with a
// small stdlib helper (DESIGN.md records this as a justified stdlib
// fallback).
func (c *CSP[T]) Density() float64 {
	n, r := c.N(), c.R()
	if r == 0 || r > n {
		return 0
	}
	denom := binomial(n, r)
	if denom == 0 {
		return 0
	}
	return float64(c.E()) / float64(denom)
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1
	for i := 0; i < k; i++ {
		result = result * (n - i) / (i + 1)
	}
	return result
}

// IsNormalized reports that no two constraints share an identical scope
// (as a set of labels) — the normal form csp.rs's is_normalized checks via
// a HashSet of sorted scope keys.
func (c *CSP[T]) IsNormalized() bool {
	seen := make(map[string]struct{}, len(c.constraints))
	for _, con := range c.constraints {
		key := strings.Join(SortedLabels(con.Scope()), ",")
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
	}
	return true
}

func (c *CSP[T]) String() string {
	var b strings.Builder
	labels := append([]string(nil), c.order...)
	sort.Strings(labels)
	fmt.Fprintf(&b, "CSP(n=%d, e=%d, d=%d, r=%d)\n", c.N(), c.E(), c.D(), c.R())
	for _, label := range labels {
		fmt.Fprintf(&b, "  %s\n", c.vars[label])
	}
	for _, con := range c.constraints {
		fmt.Fprintf(&b, "  %s\n", con)
	}
	return b.String()
}
