package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/gokando-csp/pkg/csp"
)

const triangleYAML = `
variables:
  x: [red, green, blue]
  y: [red, green, blue]
  z: [red, green, blue]
constraints:
  - label: x!=y
    scope: [x, y]
    predicate: "x != y"
  - label: y!=z
    scope: [y, z]
    predicate: "y != z"
`

func TestLoadCSPFromPredicates(t *testing.T) {
	c, err := LoadCSP(strings.NewReader(triangleYAML))
	require.NoError(t, err)
	require.Equal(t, 3, c.N())
	require.Equal(t, 2, c.E())

	good := csp.Assignment[string]{csp.VV("x", "red"), csp.VV("y", "green"), csp.VV("z", "blue")}
	require.True(t, c.IsSolution(good))

	bad := csp.Assignment[string]{csp.VV("x", "red"), csp.VV("y", "red"), csp.VV("z", "blue")}
	require.False(t, c.IsSolution(bad))
}

const tupleYAML = `
variables:
  x: ["1", "2"]
  y: ["1", "2"]
constraints:
  - label: rel
    scope: [x, y]
    tuples:
      - ["1", "2"]
      - ["2", "1"]
`

func TestLoadCSPFromTuples(t *testing.T) {
	c, err := LoadCSP(strings.NewReader(tupleYAML))
	require.NoError(t, err)

	require.True(t, c.IsSolution(csp.Assignment[string]{csp.VV("x", "1"), csp.VV("y", "2")}))
	require.False(t, c.IsSolution(csp.Assignment[string]{csp.VV("x", "1"), csp.VV("y", "1")}))
}

func TestLoadCSPRejectsUndeclaredScopeVariable(t *testing.T) {
	const bad = `
variables:
  x: [a, b]
constraints:
  - label: bad
    scope: [x, y]
    predicate: "x != y"
`
	_, err := LoadCSP(strings.NewReader(bad))
	require.Error(t, err)
	require.ErrorIs(t, err, csp.ErrScopeMismatch)
}

func TestLoadCSPRejectsConstraintWithoutBody(t *testing.T) {
	const bad = `
variables:
  x: [a, b]
  y: [a, b]
constraints:
  - label: empty
    scope: [x, y]
`
	_, err := LoadCSP(strings.NewReader(bad))
	require.Error(t, err)
}

func TestParsePredicateQuotedConstant(t *testing.T) {
	f, err := ParsePredicate(`x == "red"`)
	require.NoError(t, err)
	asn := csp.Assignment[string]{csp.VV("x", "red")}
	require.Equal(t, csp.True, f.Eval(asn))
}

func TestParsePredicateMalformed(t *testing.T) {
	_, err := ParsePredicate("not a predicate")
	require.ErrorIs(t, err, csp.ErrScopeMismatch)
}
