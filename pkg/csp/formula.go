package csp

import (
	"fmt"
	"strings"
)

// formulaKind tags a Formula[T] node. Grounded in
// original_source/src/csp/ast/formula.rs's Formula<E> enum (Atom/Not/And/Or).
type formulaKind int

const (
	formulaAtom formulaKind = iota
	formulaNot
	formulaAnd
	formulaOr
)

// Formula is a propositional tree over Pred[T] atoms, evaluating to Truth
// under Kleene's three-valued logic.
type Formula[T Ordered] struct {
	kind     formulaKind
	atom     *Pred[T]
	operand  *Formula[T]   // Not
	operands []*Formula[T] // And/Or
}

// Atom wraps a predicate as a formula leaf.
func Atom[T Ordered](p *Pred[T]) *Formula[T] { return &Formula[T]{kind: formulaAtom, atom: p} }

// FNot negates a formula.
func FNot[T Ordered](f *Formula[T]) *Formula[T] { return &Formula[T]{kind: formulaNot, operand: f} }

// FAnd conjoins a sequence of formulas. An empty conjunction evaluates to
// True (the identity for And), diverging from the source's
// `.reduce(...).unwrap()` which would panic on an empty Vec — Go's
// evaluator is total, so this package picks the identity element instead
// of propagating a panic for a case spec.md never exercises directly.
func FAnd[T Ordered](fs ...*Formula[T]) *Formula[T] {
	return &Formula[T]{kind: formulaAnd, operands: fs}
}

// FOr disjoins a sequence of formulas. An empty disjunction evaluates to
// False (the identity for Or), for the same reason as FAnd.
func FOr[T Ordered](fs ...*Formula[T]) *Formula[T] {
	return &Formula[T]{kind: formulaOr, operands: fs}
}

// Eval folds the formula to a single Truth value under asn, using Truth's
// monotone And/Or so partial assignments yield Unknown rather than an
// error wherever an atom's operand is unresolved.
func (f *Formula[T]) Eval(asn Assignment[T]) Truth {
	switch f.kind {
	case formulaAtom:
		return f.atom.Eval(asn)
	case formulaNot:
		return f.operand.Eval(asn).Not()
	case formulaAnd:
		acc := True
		for _, sub := range f.operands {
			acc = acc.And(sub.Eval(asn))
		}
		return acc
	case formulaOr:
		acc := False
		for _, sub := range f.operands {
			acc = acc.Or(sub.Eval(asn))
		}
		return acc
	}
	return Unknown
}

// CollectVars returns the formula's full scope, labels possibly repeated.
func (f *Formula[T]) CollectVars(out []string) []string {
	switch f.kind {
	case formulaAtom:
		return f.atom.CollectVars(out)
	case formulaNot:
		return f.operand.CollectVars(out)
	default:
		for _, sub := range f.operands {
			out = sub.CollectVars(out)
		}
		return out
	}
}

func (f *Formula[T]) String() string {
	switch f.kind {
	case formulaAtom:
		return f.atom.String()
	case formulaNot:
		return fmt.Sprintf("!(%s)", f.operand)
	case formulaAnd:
		return joinFormulas(f.operands, "&&")
	case formulaOr:
		return joinFormulas(f.operands, "||")
	}
	return "?"
}

func joinFormulas[T Ordered](fs []*Formula[T], sep string) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = f.String()
	}
	return "(" + strings.Join(parts, " "+sep+" ") + ")"
}
