package csp

import "fmt"

// Evaluator is anything that resolves to a T under an assignment: the
// common contract shared by Expr[T] and AExpr[T], mirroring
// original_source/src/csp/ast/eval.rs's Eval trait that unifies Expr and
// AExpr. Pred and Formula are built against this interface so predicates
// work uniformly whether T supports arithmetic or not.
type Evaluator[T Ordered] interface {
	Eval(asn Assignment[T]) (T, error)
	CollectVars(out []string) []string
	String() string
}

// Expr is the non-arithmetic expression base: a constant or a variable
// reference. Grounded in original_source/src/csp/ast/expr.rs's Expr<T>
// enum. Use this for value types (e.g. strings) that satisfy Ordered but
// not Number; use AExpr when arithmetic is needed.
type Expr[T Ordered] struct {
	isVar    bool
	constant T
	label    string
}

// EConst and EVar build the two Expr leaves.
func EConst[T Ordered](v T) *Expr[T]    { return &Expr[T]{constant: v} }
func EVar[T Ordered](label string) *Expr[T] { return &Expr[T]{isVar: true, label: label} }

func (e *Expr[T]) Eval(asn Assignment[T]) (T, error) {
	if !e.isVar {
		return e.constant, nil
	}
	v, ok := asn.ValueOf(e.label)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: variable %q not bound in assignment", ErrScopeMismatch, e.label)
	}
	return v, nil
}

func (e *Expr[T]) CollectVars(out []string) []string {
	if e.isVar {
		return append(out, e.label)
	}
	return out
}

func (e *Expr[T]) String() string {
	if e.isVar {
		return e.label
	}
	return fmt.Sprintf("%v", e.constant)
}

// predKind tags the comparison performed by a Pred node. Grounded in
// original_source/src/csp/ast/pred.rs's Pred<E> enum.
type predKind int

const (
	predEq predKind = iota
	predNeq
	predLt
	predLe
	predGt
	predGe
)

var predSymbols = map[predKind]string{
	predEq: "=", predNeq: "!=", predLt: "<", predLe: "<=", predGt: ">", predGe: ">=",
}

// Pred is a binary comparison between two evaluable expressions,
// evaluating to a Truth rather than a bool: an unresolvable operand
// (unbound variable) yields Unknown instead of an error, matching the
// three-valued semantics a partial assignment requires (§3).
type Pred[T Ordered] struct {
	kind        predKind
	left, right Evaluator[T]
}

func Eq[T Ordered](l, r Evaluator[T]) *Pred[T]  { return &Pred[T]{kind: predEq, left: l, right: r} }
func Neq[T Ordered](l, r Evaluator[T]) *Pred[T] { return &Pred[T]{kind: predNeq, left: l, right: r} }
func Lt[T Ordered](l, r Evaluator[T]) *Pred[T]  { return &Pred[T]{kind: predLt, left: l, right: r} }
func Le[T Ordered](l, r Evaluator[T]) *Pred[T]  { return &Pred[T]{kind: predLe, left: l, right: r} }
func Gt[T Ordered](l, r Evaluator[T]) *Pred[T]  { return &Pred[T]{kind: predGt, left: l, right: r} }
func Ge[T Ordered](l, r Evaluator[T]) *Pred[T]  { return &Pred[T]{kind: predGe, left: l, right: r} }

// Eval evaluates the predicate under asn. Unbound operands produce
// Unknown rather than an error.
func (p *Pred[T]) Eval(asn Assignment[T]) Truth {
	l, errL := p.left.Eval(asn)
	r, errR := p.right.Eval(asn)
	if errL != nil || errR != nil {
		return Unknown
	}
	switch p.kind {
	case predEq:
		return FromBool(l == r)
	case predNeq:
		return FromBool(l != r)
	case predLt:
		return FromBool(l < r)
	case predLe:
		return FromBool(l <= r)
	case predGt:
		return FromBool(l > r)
	case predGe:
		return FromBool(l >= r)
	}
	return Unknown
}

// CollectVars returns every variable label referenced by either operand.
func (p *Pred[T]) CollectVars(out []string) []string {
	out = p.left.CollectVars(out)
	out = p.right.CollectVars(out)
	return out
}

func (p *Pred[T]) String() string {
	return fmt.Sprintf("%s %s %s", p.left, predSymbols[p.kind], p.right)
}
