package csp

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Constraint is the common contract shared by Intensional and Extensional
// constraints (§6): a scope of variables plus a primitive allowedness
// test. Everything else — validity, support, conflict, entailment,
// tightness — is a derived operation computed once from IsAllowed, the
// way original_source/src/csp/constraint/constraint.rs's Constraint<T>
// trait provides default-implemented methods over a single `apply`
// primitive. Go has no default trait methods, so the derived operations
// live on base[T] and every concrete constraint embeds it.
type Constraint[T Ordered] interface {
	ID() uuid.UUID
	Label() string
	Scope() []*Variable[T]

	// IsAllowed is the one primitive each concrete constraint supplies:
	// whether a COMPLETE assignment over Scope() satisfies it.
	IsAllowed(asn Assignment[T]) bool

	CheckAssignment(asn Assignment[T]) Truth
	IsValid(vv VValue[T]) Truth
	IsSupport(vv VValue[T]) Truth
	IsConflict(vv VValue[T]) Truth
	IsCovered(asn Assignment[T]) bool

	Rel() Assignment2D[T]
	Tightness() float64
	Looseness() float64
	IsEntailed() bool
	IsDisentailed() bool

	String() string
}

// Assignment2D is a list of full-scope assignments, e.g. the extension of
// a constraint's relation (§6's rel()).
type Assignment2D[T Ordered] []Assignment[T]

// base provides the derived operations of Constraint[T] shared by every
// concrete constraint kind. self must be set to the embedding concrete
// value by its constructor so the derived methods can call back into the
// overridden IsAllowed — Go's answer to a trait's default methods calling
// an abstract one.
type base[T Ordered] struct {
	id    uuid.UUID
	label string
	scope []*Variable[T]
	self  Constraint[T]
}

func newBase[T Ordered](label string, scope []*Variable[T]) base[T] {
	return base[T]{id: uuid.New(), label: label, scope: scope}
}

func (b *base[T]) ID() uuid.UUID          { return b.id }
func (b *base[T]) Label() string          { return b.label }
func (b *base[T]) Scope() []*Variable[T]  { return b.scope }

// scopeKey returns the scope's labels, sorted — the normalization key of
// §4.5, also used to detect duplicate scope declarations.
func (b *base[T]) scopeKey() []string {
	return SortedLabels(b.scope)
}

// Size returns the constraint's arity.
func (b *base[T]) Size() int { return len(b.scope) }

// MatchVar returns the scope variable with the given label, if any.
func (b *base[T]) MatchVar(label string) (*Variable[T], bool) {
	for _, v := range b.scope {
		if v.Label() == label {
			return v, true
		}
	}
	return nil, false
}

// OtherVar returns the scope variable that is NOT the given label. Defined
// for binary constraints (Size()==2); for wider scopes it returns the
// first non-matching variable, matching the source's convenience helper
// used only by the legacy binary constraint callers.
func (b *base[T]) OtherVar(label string) (*Variable[T], bool) {
	for _, v := range b.scope {
		if v.Label() != label {
			return v, true
		}
	}
	return nil, false
}

// ValueOf looks up label's bound value within asn.
func (b *base[T]) ValueOf(asn Assignment[T], label string) (T, bool) {
	return asn.ValueOf(label)
}

// IsCovered reports whether every scope variable has a binding in asn.
func (b *base[T]) IsCovered(asn Assignment[T]) bool {
	for _, v := range b.scope {
		if _, ok := asn.ValueOf(v.Label()); !ok {
			return false
		}
	}
	return true
}

// scopedSubset returns asn restricted to labels present in the scope, in
// scope order, and reports whether every scope label was present.
func (b *base[T]) scopedSubset(asn Assignment[T]) (Assignment[T], bool) {
	out := make(Assignment[T], 0, len(b.scope))
	for _, v := range b.scope {
		val, ok := asn.ValueOf(v.Label())
		if !ok {
			return nil, false
		}
		out = append(out, VV(v.Label(), val))
	}
	return out, true
}

// CheckAssignment evaluates the constraint against asn: Unknown if asn
// does not bind every scope variable (an incomplete assignment can't
// decide allowedness yet), otherwise the boolean result of IsAllowed
// lifted into Truth. Mirrors check_assignment in
// original_source/src/csp/constraint/constraint.rs.
func (b *base[T]) CheckAssignment(asn Assignment[T]) Truth {
	full, ok := b.scopedSubset(asn)
	if !ok {
		return Unknown
	}
	return FromBool(b.self.IsAllowed(full))
}

// IsValid is the v-value contract of §4.4: for (x, a), True if a is
// currently a member of x's active domain, False if x is in scope but a
// is not, Unknown if x is not in the constraint's scope at all. Mirrors
// is_valid in
// original_source/src/csp/constraint/constraint.rs:67-78.
func (b *base[T]) IsValid(vv VValue[T]) Truth {
	v, ok := b.MatchVar(vv.Label)
	if !ok {
		return Unknown
	}
	return FromBool(v.Domain().Has(vv.Value))
}

// IsSupport reports whether (x, a) can be extended to a full satisfying
// assignment over the rest of the scope: Unknown/False pass straight
// through from IsValid, and only a valid v-value is actually probed for
// a supporting extension. Mirrors is_support
// (constraint.rs:80-89), with is_allowed's extension search played by
// ExistsExtension.
func (b *base[T]) IsSupport(vv VValue[T]) Truth {
	switch b.IsValid(vv) {
	case True:
		return FromBool(b.ExistsExtension(vv.Label, vv.Value))
	case False:
		return False
	default:
		return Unknown
	}
}

// IsConflict is IsSupport's three-valued negation, preserving Unknown.
// Mirrors is_conflicts (constraint.rs:91-101).
func (b *base[T]) IsConflict(vv VValue[T]) Truth {
	return b.IsSupport(vv).Not()
}

// domainProduct materializes the active-value cartesian product of the
// constraint's scope, in scope order.
func (b *base[T]) domainProduct() [][]T {
	domains := make([][]T, len(b.scope))
	for i, v := range b.scope {
		domains[i] = v.Domain().ActiveValues()
	}
	return domains
}

// Rel returns every currently-active tuple over the scope that satisfies
// the constraint — its full relation under the domains' present state.
// Grounded in constraint.rs's rel(), via the CartesianWalker.
func (b *base[T]) Rel() Assignment2D[T] {
	walker := NewCartesianWalker[T](b.domainProduct())
	var out Assignment2D[T]
	for {
		tuple, ok := walker.Next()
		if !ok {
			break
		}
		asn := tupleToAssignment(b.scope, tuple)
		if b.self.IsAllowed(asn) {
			out = append(out, asn)
		}
	}
	return out
}

func tupleToAssignment[T Ordered](scope []*Variable[T], tuple []T) Assignment[T] {
	asn := make(Assignment[T], len(scope))
	for i, v := range scope {
		asn[i] = VV(v.Label(), tuple[i])
	}
	return asn
}

// Tightness is the fraction of the full cartesian product of the
// scope's active domains that the constraint DISALLOWS: 0 means every
// combination currently satisfies it (maximally loose), 1 means none do
// (maximally tight — the constraint is then disentailed).
// Generalized to full k-ary scopes, where constraint.rs's looseness/
// tightness iterated only scp()[0] x scp()[1] (§9 flags this as needing
// generalization).
func (b *base[T]) Tightness() float64 {
	total := productSize(b.domainProduct())
	if total == 0 {
		return 0
	}
	allowed := len(b.self.Rel())
	return 1 - float64(allowed)/float64(total)
}

// Looseness is the complement of Tightness.
func (b *base[T]) Looseness() float64 {
	return 1 - b.self.Tightness()
}

func productSize[T Ordered](domains [][]T) int {
	total := 1
	for _, dom := range domains {
		total *= len(dom)
	}
	return total
}

// IsEntailed reports that every currently-active combination over the
// scope satisfies the constraint — it can never fail again given the
// current domains, so propagation may safely stop revising it.
func (b *base[T]) IsEntailed() bool {
	total := productSize(b.domainProduct())
	return total > 0 && len(b.self.Rel()) == total
}

// IsDisentailed reports that no currently-active combination over the
// scope satisfies the constraint — the CSP is already inconsistent.
func (b *base[T]) IsDisentailed() bool {
	total := productSize(b.domainProduct())
	return total > 0 && len(b.self.Rel()) == 0
}

// ExistsExtension reports whether fixing scope variable label to value
// can be extended to a full, satisfying assignment over the rest of the
// scope using each remaining variable's active domain. This is the seek-
// support primitive GAC's Revise calls for every (variable, value) pair.
// Grounded in constraint.rs's free function exists_extension.
func (b *base[T]) ExistsExtension(label string, value T) bool {
	fixedIdx := -1
	for i, v := range b.scope {
		if v.Label() == label {
			fixedIdx = i
			break
		}
	}
	if fixedIdx == -1 {
		return false
	}

	domains := b.domainProduct()
	domains[fixedIdx] = []T{value}

	walker := NewCartesianWalker[T](domains)
	for {
		tuple, ok := walker.Next()
		if !ok {
			return false
		}
		if b.self.IsAllowed(tupleToAssignment(b.scope, tuple)) {
			return true
		}
	}
}

func (b *base[T]) scopeString() string {
	labels := make([]string, len(b.scope))
	for i, v := range b.scope {
		labels[i] = v.Label()
	}
	return strings.Join(labels, ", ")
}

func (b *base[T]) defaultString(kind string) string {
	return fmt.Sprintf("%s(%s)", kind, b.scopeString())
}
