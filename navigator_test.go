package xtype

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/creachadair/xtype/byteorder"
	"github.com/creachadair/xtype/errs"
)

func encodeForTest(t *testing.T, v Value) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := Open(&buf)
	require.NoError(t, err)
	require.NoError(t, w.WriteValue(v))
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestNavigatorLookupKeyFirstMatchWins(t *testing.T) {
	d := NewDict()
	d.Set("a", Int(8, 1))
	data := encodeForTest(t, FromDict(d))

	// Hand-construct a duplicate key by appending a second "a" pair before
	// the Dict's close tag, to exercise first-match-wins on lookup versus
	// last-match-wins on Read.
	raw := append([]byte{}, data[:len(data)-1]...)
	raw = appendBlob(raw, byteorder.Host(), tagString, []byte("a"))
	second, err := appendScalar(nil, byteorder.Host(), Int(8, 9))
	require.NoError(t, err)
	raw = append(raw, second...)
	raw = append(raw, byte(tagDictClose))

	nav, err := OpenNavigator(bytes.NewReader(raw))
	require.NoError(t, err)

	sub, err := nav.LookupKey("a")
	require.NoError(t, err)
	v, err := sub.Read()
	require.NoError(t, err)
	got, _ := v.AsInt()
	require.EqualValues(t, 1, got, "lookup must return the first occurrence")

	full, err := nav.Read()
	require.NoError(t, err)
	fd, _ := full.AsDict()
	fv, _ := fd.Get("a")
	fgot, _ := fv.AsInt()
	require.EqualValues(t, 9, fgot, "materializing must keep the last occurrence")
}

func TestNavigatorLookupIndexNegative(t *testing.T) {
	data := encodeForTest(t, List(Int(8, 1), Int(8, 2), Int(8, 3)))
	nav, err := OpenNavigator(bytes.NewReader(data))
	require.NoError(t, err)

	sub, err := nav.LookupIndex(-1)
	require.NoError(t, err)
	v, err := sub.Read()
	require.NoError(t, err)
	got, _ := v.AsInt()
	require.EqualValues(t, 3, got)

	_, err = nav.LookupIndex(-10)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)

	_, err = nav.LookupIndex(10)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

func TestNavigatorKeyNotFound(t *testing.T) {
	d := NewDict()
	d.Set("x", Int(8, 1))
	data := encodeForTest(t, FromDict(d))
	nav, err := OpenNavigator(bytes.NewReader(data))
	require.NoError(t, err)

	_, err = nav.LookupKey("y")
	require.ErrorIs(t, err, errs.ErrKeyNotFound)
}

func TestNavigatorSkipWithoutMaterializing(t *testing.T) {
	big := make([]Value, 0, 1000)
	for i := 0; i < 1000; i++ {
		big = append(big, Int(32, int64(i)))
	}
	data := encodeForTest(t, List(
		FromDict(func() *Dict { d := NewDict(); d.Set("skip", List(big...)); d.Set("keep", Int(8, 42)); return d }()),
	))
	nav, err := OpenNavigator(bytes.NewReader(data))
	require.NoError(t, err)

	item, err := nav.LookupIndex(0)
	require.NoError(t, err)
	keep, err := item.LookupKey("keep")
	require.NoError(t, err)
	v, err := keep.Read()
	require.NoError(t, err)
	got, _ := v.AsInt()
	require.EqualValues(t, 42, got)
}

func TestNavigatorTypeMismatch(t *testing.T) {
	data := encodeForTest(t, Int(8, 1))
	nav, err := OpenNavigator(bytes.NewReader(data))
	require.NoError(t, err)

	_, err = nav.LookupKey("a")
	require.ErrorIs(t, err, errs.ErrTypeMismatch)

	_, err = nav.Len()
	require.ErrorIs(t, err, errs.ErrTypeMismatch)
}
