package xtype

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/creachadair/xtype/errs"
)

func TestComputeSliceIndicesDefaults(t *testing.T) {
	indices, err := computeSliceIndices(SliceSelector{}, 5)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2, 3, 4}, indices)
}

func TestComputeSliceIndicesNegativeStep(t *testing.T) {
	indices, err := computeSliceIndices(SliceSelector{Step: intp(-1)}, 5)
	require.NoError(t, err)
	require.Equal(t, []int{4, 3, 2, 1, 0}, indices)
}

func TestComputeSliceIndicesBoundedRange(t *testing.T) {
	indices, err := computeSliceIndices(SliceSelector{Start: intp(1), Stop: intp(4)}, 6)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, indices)
}

func TestComputeSliceIndicesZeroStep(t *testing.T) {
	_, err := computeSliceIndices(SliceSelector{Step: intp(0)}, 5)
	require.ErrorIs(t, err, errs.ErrInvalidSlice)
}

func buildMatrixArray(t *testing.T) *Navigator {
	t.Helper()
	// 3x4 row-major int32 matrix: element (r, c) = r*4 + c.
	data := make([]byte, 3*4*4)
	for r := 0; r < 3; r++ {
		for c := 0; c < 4; c++ {
			i := r*4 + c
			v := int32(i)
			data[i*4] = byte(v)
			data[i*4+1] = byte(v >> 8)
			data[i*4+2] = byte(v >> 16)
			data[i*4+3] = byte(v >> 24)
		}
	}
	a, err := NewArray(ElemInt32, []int{3, 4}, data)
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := Open(&buf, WithByteOrder(LittleEndian))
	require.NoError(t, err)
	require.NoError(t, w.WriteValue(FromArray(a)))
	require.NoError(t, w.Close())

	nav, err := OpenNavigator(bytes.NewReader(buf.Bytes()), WithNavByteOrder(LittleEndian))
	require.NoError(t, err)
	return nav
}

func TestArrayRowSelection(t *testing.T) {
	nav := buildMatrixArray(t)
	v, err := nav.Get(IntSelector(1))
	require.NoError(t, err)
	a, ok := v.AsArray()
	require.True(t, ok)
	require.Equal(t, []int{4}, a.Shape)
	require.Equal(t, []byte{4, 0, 0, 0, 5, 0, 0, 0, 6, 0, 0, 0, 7, 0, 0, 0}, a.Data)
}

func TestArrayElementSelection(t *testing.T) {
	nav := buildMatrixArray(t)
	v, err := nav.Get(IntSelector(2), IntSelector(3))
	require.NoError(t, err)
	got, ok := v.AsInt()
	require.True(t, ok)
	require.EqualValues(t, 11, got)
}

func TestArrayColumnSlice(t *testing.T) {
	nav := buildMatrixArray(t)
	v, err := nav.Get(SliceSelector{}, SliceSelector{Start: intp(1), Stop: intp(3)})
	require.NoError(t, err)
	a, ok := v.AsArray()
	require.True(t, ok)
	require.Equal(t, []int{3, 2}, a.Shape)

	want := []int32{1, 2, 5, 6, 9, 10}
	for i, w := range want {
		got := int32(a.Data[i*4]) | int32(a.Data[i*4+1])<<8 | int32(a.Data[i*4+2])<<16 | int32(a.Data[i*4+3])<<24
		require.Equal(t, w, got)
	}
}

func TestArrayAxisOutOfRange(t *testing.T) {
	nav := buildMatrixArray(t)
	_, err := nav.Get(IntSelector(99))
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

func TestArrayTooManySelectors(t *testing.T) {
	nav := buildMatrixArray(t)
	_, err := nav.Get(IntSelector(0), IntSelector(0), IntSelector(0))
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}
