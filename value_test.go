package xtype

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDictOrderingAndOverwrite(t *testing.T) {
	d := NewDict()
	d.Set("b", Int(32, 2))
	d.Set("a", Int(32, 1))
	d.Set("b", Int(32, 20)) // overwrite keeps position

	require.Equal(t, []string{"b", "a"}, d.Keys())
	v, ok := d.Get("b")
	require.True(t, ok)
	got, _ := v.AsInt()
	require.EqualValues(t, 20, got)

	require.False(t, d.Has("c"))
	require.Equal(t, 2, d.Len())
}

func TestArrayShapeValidation(t *testing.T) {
	_, err := NewArray(ElemInt32, []int{2, 3}, make([]byte, 4*2*3))
	require.NoError(t, err)

	_, err = NewArray(ElemInt32, []int{2, 3}, make([]byte, 4*2*2))
	require.Error(t, err)

	_, err = NewArray(ElemInt32, []int{2, 0}, make([]byte, 0))
	require.Error(t, err)

	_, err = NewArray(ElemInt32, nil, nil)
	require.Error(t, err)
}

func TestArrayOffsetOf(t *testing.T) {
	a, err := NewArray(ElemUint8, []int{2, 3}, make([]byte, 6))
	require.NoError(t, err)

	require.Equal(t, 0, a.offsetOf([]int{0, 0}))
	require.Equal(t, 3, a.offsetOf([]int{1, 0}))
	require.Equal(t, 5, a.offsetOf([]int{1, 2}))
	require.Equal(t, 6, a.Count())
	require.Equal(t, 2, a.Rank())
}

func TestValueAccessorKindMismatch(t *testing.T) {
	v := Int(32, 7)
	_, ok := v.AsString()
	require.False(t, ok)

	s, ok := v.AsInt()
	require.True(t, ok)
	require.EqualValues(t, 7, s)
}
