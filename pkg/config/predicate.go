package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gitrdm/gokando-csp/pkg/csp"
)

// predicateRE recognizes the single binary-comparison predicates a
// problem file may express declaratively: "<left> <op> <right>", operands
// being either a bare variable label or a quoted string constant. This is
// deliberately a small surface — a full expression/formula language is a
// library concern (pkg/csp's Expr/Formula types), not a file-format one;
// SPEC_FULL.md's cspcli is a thin consumer, not a parser project.
var predicateRE = regexp.MustCompile(`^\s*(\S+)\s*(==|!=|<=|>=|<|>)\s*(\S+)\s*$`)

// ParsePredicate compiles a single comparison expression, e.g. "x != y"
// or `color == "red"`, into a one-atom Formula[string] ready to back an
// Intensional constraint.
func ParsePredicate(src string) (*csp.Formula[string], error) {
	m := predicateRE.FindStringSubmatch(src)
	if m == nil {
		return nil, fmt.Errorf("%w: malformed predicate expression %q", csp.ErrScopeMismatch, src)
	}
	left := parseOperand(m[1])
	op := m[2]
	right := parseOperand(m[3])

	var pred *csp.Pred[string]
	switch op {
	case "==":
		pred = csp.Eq(left, right)
	case "!=":
		pred = csp.Neq(left, right)
	case "<":
		pred = csp.Lt(left, right)
	case "<=":
		pred = csp.Le(left, right)
	case ">":
		pred = csp.Gt(left, right)
	case ">=":
		pred = csp.Ge(left, right)
	default:
		return nil, fmt.Errorf("%w: unsupported operator %q in predicate %q", csp.ErrScopeMismatch, op, src)
	}
	return csp.Atom(pred), nil
}

func parseOperand(token string) csp.Evaluator[string] {
	if len(token) >= 2 && strings.HasPrefix(token, `"`) && strings.HasSuffix(token, `"`) {
		return csp.EConst(strings.Trim(token, `"`))
	}
	return csp.EVar[string](token)
}
