package csp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newDom(t *testing.T, values ...int) *Domain[int] {
	t.Helper()
	d, err := NewDomain(values)
	require.NoError(t, err)
	return d
}

func TestDomainSizeAfterRemove(t *testing.T) {
	d := newDom(t, 1, 2, 3)
	require.NoError(t, d.RemoveValue(2, 0))
	require.Equal(t, 2, d.Count())
}

func TestDomainSizeRemoveTwice(t *testing.T) {
	d := newDom(t, 1, 2, 3)
	require.NoError(t, d.RemoveValue(2, 0))
	require.NoError(t, d.RemoveValue(2, 1)) // must not decrement twice
	require.Equal(t, 2, d.Count())
}

func TestDomainSizeEmpty(t *testing.T) {
	d := newDom(t, 1)
	require.NoError(t, d.RemoveValue(1, 0))
	require.Equal(t, 0, d.Count())
	require.True(t, d.IsEmpty())
}

func TestDomainUnknownValue(t *testing.T) {
	d := newDom(t, 1, 2, 3)
	err := d.RemoveValue(99, 0)
	require.ErrorIs(t, err, ErrUnknownValue)
}

func TestDomainDuplicateRejected(t *testing.T) {
	_, err := NewDomain([]int{1, 2, 2})
	require.ErrorIs(t, err, ErrScopeMismatch)
}

func TestDomainMinMax(t *testing.T) {
	d := newDom(t, 3, 1, 2)
	min, ok := d.Min()
	require.True(t, ok)
	require.Equal(t, 1, min)
	max, ok := d.Max()
	require.True(t, ok)
	require.Equal(t, 3, max)
}

func TestDomainMinAfterRemove(t *testing.T) {
	d := newDom(t, 1, 2, 3)
	require.NoError(t, d.RemoveValue(1, 0))
	min, ok := d.Min()
	require.True(t, ok)
	require.Equal(t, 2, min)
}

func TestDomainMaxAfterRemove(t *testing.T) {
	d := newDom(t, 1, 2, 3)
	require.NoError(t, d.RemoveValue(3, 0))
	max, ok := d.Max()
	require.True(t, ok)
	require.Equal(t, 2, max)
}

func TestDomainMinMaxEmpty(t *testing.T) {
	d := newDom(t, 1)
	require.NoError(t, d.RemoveValue(1, 0))
	_, ok := d.Min()
	require.False(t, ok)
	_, ok = d.Max()
	require.False(t, ok)
}

func TestDomainMinMaxBacktrack(t *testing.T) {
	d := newDom(t, 1, 2, 3)
	require.NoError(t, d.RemoveValue(1, 1))
	min, _ := d.Min()
	require.Equal(t, 2, min)
	d.RestoreUpTo(0)
	min, _ = d.Min()
	require.Equal(t, 1, min)
}

func TestDomainIterActive(t *testing.T) {
	d := newDom(t, 1, 2, 3)
	require.NoError(t, d.RemoveValue(2, 0))
	require.Equal(t, []int{1, 3}, d.ActiveValues())
}

func TestDomainIterAll(t *testing.T) {
	d := newDom(t, 1, 2, 3)
	require.NoError(t, d.RemoveValue(2, 0))
	require.Equal(t, []int{1, 2, 3}, d.InitialValues())
}

func TestDomainTrailingRemoveAdd(t *testing.T) {
	d := newDom(t, 0, 2, 3, 4, 5, 7, 8, 9)
	require.NoError(t, d.RemoveValue(3, 2))
	require.Equal(t, []int{0, 2, 4, 5, 7, 8, 9}, d.ActiveValues())
	d.RestoreUpTo(2)
	require.Equal(t, []int{0, 2, 3, 4, 5, 7, 8, 9}, d.ActiveValues())
}

func TestDomainTrailingRemoveAddHead(t *testing.T) {
	d := newDom(t, 0, 2, 3, 4, 5, 7, 8, 9)
	require.NoError(t, d.RemoveValue(0, 2))
	require.Equal(t, []int{2, 3, 4, 5, 7, 8, 9}, d.ActiveValues())
	d.RestoreUpTo(2)
	require.Equal(t, []int{0, 2, 3, 4, 5, 7, 8, 9}, d.ActiveValues())
}

func TestDomainTrailingRemoveAddTail(t *testing.T) {
	d := newDom(t, 0, 2, 3, 4, 5, 7, 8, 9)
	require.NoError(t, d.RemoveValue(9, 2))
	require.Equal(t, []int{0, 2, 3, 4, 5, 7, 8}, d.ActiveValues())
	d.RestoreUpTo(2)
	require.Equal(t, []int{0, 2, 3, 4, 5, 7, 8, 9}, d.ActiveValues())
}

func TestDomainTrailingRemoveMultiple(t *testing.T) {
	d := newDom(t, 0, 2, 3, 4, 5, 7, 8, 9)
	require.NoError(t, d.RemoveValue(2, 1))
	require.NoError(t, d.RemoveValue(4, 1))
	require.NoError(t, d.RemoveValue(3, 2))
	require.Equal(t, []int{0, 5, 7, 8, 9}, d.ActiveValues())
	require.Equal(t, []int{0, 2, 3, 4, 5, 7, 8, 9}, d.InitialValues())

	d.RestoreUpTo(2)
	require.Equal(t, []int{0, 3, 5, 7, 8, 9}, d.ActiveValues())

	d.RestoreUpTo(1)
	require.Equal(t, []int{0, 2, 3, 4, 5, 7, 8, 9}, d.ActiveValues())
}

// TestDomainTrailingConsistency is scenario S1 of spec.md §8 verbatim.
func TestDomainTrailingConsistency(t *testing.T) {
	d := newDom(t, 0, 2, 3, 4, 5, 7, 8, 9)

	require.Equal(t, 8, d.Count())
	head, _ := d.Head()
	require.Equal(t, 0, head)
	tail, _ := d.Tail()
	require.Equal(t, 9, tail)
	require.Equal(t, []int{0, 2, 3, 4, 5, 7, 8, 9}, d.ActiveValues())

	require.NoError(t, d.RemoveValue(3, 2))
	require.NoError(t, d.RemoveValue(7, 2))
	require.Equal(t, []int{0, 2, 4, 5, 8, 9}, d.ActiveValues())

	require.NoError(t, d.ReduceTo(5, 3))
	require.Equal(t, []int{5}, d.ActiveValues())

	d.RestoreUpTo(3)
	require.Equal(t, []int{0, 2, 4, 5, 8, 9}, d.ActiveValues())

	d.RestoreUpTo(0)
	require.Equal(t, []int{0, 2, 3, 4, 5, 7, 8, 9}, d.ActiveValues())
}

func TestDomainReduceToRequiresActive(t *testing.T) {
	d := newDom(t, 1, 2, 3)
	require.NoError(t, d.RemoveValue(2, 0))
	err := d.ReduceTo(2, 1)
	require.ErrorIs(t, err, ErrUnknownValue)
}

func TestDomainOrderedStrings(t *testing.T) {
	d, err := NewDomain([]string{"dg", "mg", "lg", "w"})
	require.NoError(t, err)
	require.Equal(t, 4, d.Count())
	min, _ := d.Min()
	max, _ := d.Max()
	require.Equal(t, "dg", min)
	require.Equal(t, "w", max)
	require.True(t, d.Has("mg"))
	require.False(t, d.Has("z"))
}

func TestDomainClone(t *testing.T) {
	d := newDom(t, 1, 2, 3)
	require.NoError(t, d.RemoveValue(2, 1))

	cp := d.Clone()
	require.Equal(t, d.ActiveValues(), cp.ActiveValues())

	require.NoError(t, cp.RemoveValue(1, 2))
	require.NotEqual(t, d.ActiveValues(), cp.ActiveValues())
}

func TestDomainString(t *testing.T) {
	d := newDom(t, 1, 2, 3)
	require.Equal(t, "{1,2,3}", d.String())
	require.NoError(t, d.RemoveValue(2, 0))
	require.Equal(t, "{1,3}", d.String())
}
