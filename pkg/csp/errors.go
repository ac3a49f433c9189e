package csp

import "errors"

// Sentinel error kinds (§7). Raise sites wrap these with
// github.com/pkg/errors to attach context and a stack trace while
// keeping them comparable via errors.Is.
var (
	// ErrUnknownValue: a domain operation referenced a value outside the
	// initial catalog. Fatal to the caller.
	ErrUnknownValue = errors.New("unknown value")

	// ErrScopeMismatch: construction attempted with an expression
	// referencing a variable not in the declared scope, a duplicate
	// variable label, or an extensional tuple whose labels don't match
	// the scope. Fatal at construction.
	ErrScopeMismatch = errors.New("scope mismatch")

	// ErrUndefinedEvaluation: a covering assignment produced
	// Truth::Unknown — an invariant violation, since a fully covering
	// assignment must evaluate to True or False.
	ErrUndefinedEvaluation = errors.New("undefined evaluation on covering assignment")

	// ErrDomainWipeout: a propagation revise emptied a variable's
	// domain. Recoverable: the trail is left intact so callers can
	// restore to the previous level.
	ErrDomainWipeout = errors.New("domain wipeout")
)
