package csp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildChainCSP(t *testing.T, xs, ys, zs []int) (*CSP[int], *Variable[int], *Variable[int], *Variable[int]) {
	t.Helper()
	dx, err := NewDomain(xs)
	require.NoError(t, err)
	dy, err := NewDomain(ys)
	require.NoError(t, err)
	dz, err := NewDomain(zs)
	require.NoError(t, err)

	x := NewVariable("x", dx)
	y := NewVariable("y", dy)
	z := NewVariable("z", dz)

	c := NewCSP[int]()
	require.NoError(t, c.AddVariables(x, y, z))
	require.NoError(t, c.AddConstraint(NewIntensional("x<y", []*Variable[int]{x, y}, Atom(Lt(EVar[int]("x"), EVar[int]("y"))))))
	require.NoError(t, c.AddConstraint(NewIntensional("y<z", []*Variable[int]{y, z}, Atom(Lt(EVar[int]("y"), EVar[int]("z"))))))

	return c, x, y, z
}

func TestEnforceGACPrunesUnsupportedValues(t *testing.T) {
	// x in {1,2,3}, y in {1,2,3}, z in {1}: y<z forces y<1, impossible for
	// any y in {1,2,3}, which should wipe y's domain before z's.
	c, _, y, _ := buildChainCSP(t, []int{1, 2, 3}, []int{1, 2, 3}, []int{1})
	err := EnforceGACAll(c, 1)
	require.ErrorIs(t, err, ErrDomainWipeout)
	require.True(t, y.Domain().IsEmpty())
}

func TestEnforceGACReducesChainDomains(t *testing.T) {
	// x<y<z over {1,2,3} each: only x=1,y=2,z=3 survives full pruning.
	c, x, y, z := buildChainCSP(t, []int{1, 2, 3}, []int{1, 2, 3}, []int{1, 2, 3})
	require.NoError(t, EnforceGACAll(c, 1))

	require.Equal(t, []int{1}, x.Domain().ActiveValues())
	require.Equal(t, []int{2}, y.Domain().ActiveValues())
	require.Equal(t, []int{3}, z.Domain().ActiveValues())
}

func TestEnforceGACIsIdempotentOnConsistentDomains(t *testing.T) {
	c, x, y, z := buildChainCSP(t, []int{1, 2}, []int{2, 3}, []int{3, 4})
	require.NoError(t, EnforceGACAll(c, 1))

	beforeX := x.Domain().ActiveValues()
	beforeY := y.Domain().ActiveValues()
	beforeZ := z.Domain().ActiveValues()

	require.NoError(t, EnforceGACAll(c, 2))

	require.Equal(t, beforeX, x.Domain().ActiveValues())
	require.Equal(t, beforeY, y.Domain().ActiveValues())
	require.Equal(t, beforeZ, z.Domain().ActiveValues())
}

// TestEnforceGACSeedsOnlyFromEventsAndSkipsPast exercises EnforceGAC's
// events parameter directly: seeding from "x" alone revises y against
// x<y and cascades into z via y<z, but never reconsiders y against z
// until z itself is named in a later events-scoped pass. A variable
// already in CSP.Past() (here x, pushed before either pass) is never
// itself queued for revision.
func TestEnforceGACSeedsOnlyFromEventsAndSkipsPast(t *testing.T) {
	c, x, y, z := buildChainCSP(t, []int{1, 2, 3}, []int{1, 2, 3}, []int{1, 2, 3})
	lvl := c.Push("x")
	require.NoError(t, x.Domain().ReduceTo(1, lvl))

	require.NoError(t, EnforceGAC(c, lvl, []string{"x"}))
	require.Equal(t, []int{1}, x.Domain().ActiveValues())
	require.Equal(t, []int{2, 3}, y.Domain().ActiveValues())
	require.Equal(t, []int{3}, z.Domain().ActiveValues())

	require.NoError(t, EnforceGAC(c, lvl, []string{"z"}))
	require.Equal(t, []int{2}, y.Domain().ActiveValues())
}

func TestEnforceGACRestoresViaPop(t *testing.T) {
	c, x, y, z := buildChainCSP(t, []int{1, 2, 3}, []int{1, 2, 3}, []int{1, 2, 3})
	lvl := c.Push("gac-pass")
	require.NoError(t, EnforceGACAll(c, lvl))
	require.Equal(t, 1, x.Domain().Count())

	_, ok := c.Pop()
	require.True(t, ok)
	require.Equal(t, 3, x.Domain().Count())
	require.Equal(t, 3, y.Domain().Count())
	require.Equal(t, 3, z.Domain().Count())
}
