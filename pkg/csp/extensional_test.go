package csp

import (
	"fmt"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

// TestExtensionalRelMatchesDeclaredTuplesAsASet uses go-cmp to compare
// Rel()'s output against the declared tuples as an unordered set — Rel()
// walks the Cartesian product in odometer order, which need not match the
// tuple list's declaration order, so a positional require.Equal would be
// too strict.
func TestExtensionalRelMatchesDeclaredTuplesAsASet(t *testing.T) {
	x, y := newXY(t, []int{1, 2}, []int{1, 2})
	declared := Assignment2D[int]{
		{VV("x", 2), VV("y", 1)},
		{VV("x", 1), VV("y", 2)},
	}
	c, err := NewExtensional("rel", []*Variable[int]{x, y}, declared)
	require.NoError(t, err)

	got := c.Rel()
	sortAssignment2D(got)
	sortAssignment2D(declared)

	if diff := cmp.Diff(declared, got, cmpopts.EquateComparable()); diff != "" {
		t.Fatalf("Rel() mismatch (-want +got):\n%s", diff)
	}
}

func sortAssignment2D(tuples Assignment2D[int]) {
	sort.Slice(tuples, func(i, j int) bool {
		return fmt.Sprintf("%v", tuples[i]) < fmt.Sprintf("%v", tuples[j])
	})
}

func TestExtensionalConstructionRejectsArityMismatch(t *testing.T) {
	x, y := newXY(t, []int{1, 2}, []int{1, 2})
	_, err := NewExtensional("bad", []*Variable[int]{x, y}, Assignment2D[int]{
		{VV("x", 1)},
	})
	require.ErrorIs(t, err, ErrScopeMismatch)
}

func TestExtensionalConstructionRejectsWrongLabels(t *testing.T) {
	x, y := newXY(t, []int{1, 2}, []int{1, 2})
	_, err := NewExtensional("bad", []*Variable[int]{x, y}, Assignment2D[int]{
		{VV("x", 1), VV("z", 2)},
	})
	require.ErrorIs(t, err, ErrScopeMismatch)
}

func TestExtensionalIsAllowedOrderIndependent(t *testing.T) {
	x, y := newXY(t, []int{1, 2}, []int{1, 2})
	c, err := NewExtensional("rel", []*Variable[int]{x, y}, Assignment2D[int]{
		{VV("x", 1), VV("y", 2)},
	})
	require.NoError(t, err)

	require.True(t, c.IsAllowed(Assignment[int]{VV("y", 2), VV("x", 1)}))
	require.False(t, c.IsAllowed(Assignment[int]{VV("x", 2), VV("y", 1)}))
}

func TestExtensionalRelAndTightness(t *testing.T) {
	x, y := newXY(t, []int{1, 2}, []int{1, 2})
	c, err := NewExtensional("rel", []*Variable[int]{x, y}, Assignment2D[int]{
		{VV("x", 1), VV("y", 2)},
		{VV("x", 2), VV("y", 1)},
	})
	require.NoError(t, err)

	require.Len(t, c.Rel(), 2)
	require.InDelta(t, 2.0/4.0, c.Looseness(), 1e-9)
}

// TestExtensionalEmptyTuplesAreDisentailedNotEntailed verifies the §9
// correction: an empty allowed-tuple list must be disentailed (it can
// never be satisfied), not entailed as the source's overridden
// is_entailed would have it.
func TestExtensionalEmptyTuplesAreDisentailedNotEntailed(t *testing.T) {
	x, y := newXY(t, []int{1, 2}, []int{1, 2})
	c, err := NewExtensional("empty", []*Variable[int]{x, y}, nil)
	require.NoError(t, err)

	require.True(t, c.IsDisentailed())
	require.False(t, c.IsEntailed())
}

func TestExtensionalFullTuplesAreEntailed(t *testing.T) {
	x, y := newXY(t, []int{1, 2}, []int{1, 2})
	c, err := NewExtensional("all", []*Variable[int]{x, y}, Assignment2D[int]{
		{VV("x", 1), VV("y", 1)},
		{VV("x", 1), VV("y", 2)},
		{VV("x", 2), VV("y", 1)},
		{VV("x", 2), VV("y", 2)},
	})
	require.NoError(t, err)
	require.True(t, c.IsEntailed())
}
