package csp

import (
	"fmt"

	"github.com/pkg/errors"
)

// exprKind tags the variant of an AExpr node. Grounded in
// original_source/src/csp/ast/expr.rs's AExpr<T> enum (Base/Add/Sub/Mul),
// ported to Go as a tagged struct since Go has no sum types.
type exprKind int

const (
	exprConst exprKind = iota
	exprVar
	exprAdd
	exprSub
	exprMul
)

// AExpr is an arithmetic expression tree over a Number-constrained value
// type: a constant, a variable reference, or a binary +, -, * node.
type AExpr[T Number] struct {
	kind        exprKind
	constant    T
	label       string
	left, right *AExpr[T]
}

// Const builds a constant leaf.
func Const[T Number](v T) *AExpr[T] {
	return &AExpr[T]{kind: exprConst, constant: v}
}

// Var builds a variable-reference leaf, naming a label to be resolved
// against an Assignment at evaluation time.
func Var[T Number](label string) *AExpr[T] {
	return &AExpr[T]{kind: exprVar, label: label}
}

// Add, Sub, Mul build binary arithmetic nodes.
func Add[T Number](l, r *AExpr[T]) *AExpr[T] { return &AExpr[T]{kind: exprAdd, left: l, right: r} }
func Sub[T Number](l, r *AExpr[T]) *AExpr[T] { return &AExpr[T]{kind: exprSub, left: l, right: r} }
func Mul[T Number](l, r *AExpr[T]) *AExpr[T] { return &AExpr[T]{kind: exprMul, left: l, right: r} }

// Eval evaluates the expression under an assignment. Returns
// ErrScopeMismatch if a referenced label is unbound in asn.
func (e *AExpr[T]) Eval(asn Assignment[T]) (T, error) {
	var zero T
	switch e.kind {
	case exprConst:
		return e.constant, nil
	case exprVar:
		v, ok := asn.ValueOf(e.label)
		if !ok {
			return zero, errors.Wrapf(ErrScopeMismatch, "variable %q not bound in assignment", e.label)
		}
		return v, nil
	case exprAdd, exprSub, exprMul:
		l, err := e.left.Eval(asn)
		if err != nil {
			return zero, err
		}
		r, err := e.right.Eval(asn)
		if err != nil {
			return zero, err
		}
		switch e.kind {
		case exprAdd:
			return l + r, nil
		case exprSub:
			return l - r, nil
		case exprMul:
			return l * r, nil
		}
	}
	panic("unreachable expression kind")
}

// CollectVars appends every variable label referenced by the expression
// into out, in left-to-right traversal order (duplicates included; callers
// that need a scope dedupe via a set).
func (e *AExpr[T]) CollectVars(out []string) []string {
	switch e.kind {
	case exprConst:
		return out
	case exprVar:
		return append(out, e.label)
	default:
		out = e.left.CollectVars(out)
		out = e.right.CollectVars(out)
		return out
	}
}

func (e *AExpr[T]) String() string {
	switch e.kind {
	case exprConst:
		return fmt.Sprintf("%v", e.constant)
	case exprVar:
		return e.label
	case exprAdd:
		return fmt.Sprintf("(%s + %s)", e.left, e.right)
	case exprSub:
		return fmt.Sprintf("(%s - %s)", e.left, e.right)
	case exprMul:
		return fmt.Sprintf("(%s * %s)", e.left, e.right)
	}
	return "?"
}
