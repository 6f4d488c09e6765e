package xtype

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// valueCmp compares two Values structurally for tests, looking only at the
// fields exposed through the As* accessors rather than at unexported state.
func valueCmp(t *testing.T, got, want Value) {
	t.Helper()
	require.Equal(t, want.Kind, got.Kind)
	switch want.Kind {
	case KindNull:
	case KindBool:
		g, _ := got.AsBool()
		w, _ := want.AsBool()
		require.Equal(t, w, g)
	case KindInt:
		g, _ := got.AsInt()
		w, _ := want.AsInt()
		require.Equal(t, w, g)
	case KindUint:
		g, _ := got.AsUint()
		w, _ := want.AsUint()
		require.Equal(t, w, g)
	case KindFloat:
		g, _ := got.AsFloat()
		w, _ := want.AsFloat()
		require.Equal(t, w, g)
	case KindString:
		g, _ := got.AsString()
		w, _ := want.AsString()
		require.Equal(t, w, g)
	case KindBytes:
		g, _ := got.AsBytes()
		w, _ := want.AsBytes()
		require.True(t, bytes.Equal(w, g))
	case KindList:
		g, _ := got.AsList()
		w, _ := want.AsList()
		require.Len(t, g, len(w))
		for i := range w {
			valueCmp(t, g[i], w[i])
		}
	case KindDict:
		g, _ := got.AsDict()
		w, _ := want.AsDict()
		require.Equal(t, w.Keys(), g.Keys())
		for _, k := range w.Keys() {
			wv, _ := w.Get(k)
			gv, _ := g.Get(k)
			valueCmp(t, gv, wv)
		}
	case KindArray:
		g, _ := got.AsArray()
		w, _ := want.AsArray()
		if diff := cmp.Diff(w.Shape, g.Shape); diff != "" {
			t.Errorf("array shape mismatch (-want +got):\n%s", diff)
		}
		require.Equal(t, w.Kind, g.Kind)
		require.True(t, bytes.Equal(w.Data, g.Data))
	}
}

func TestRoundTripWholeDomain(t *testing.T) {
	metrics := NewDict()
	metrics.Set("name", String("latency_ms"))
	metrics.Set("active", Bool(true))
	metrics.Set("tags", List(String("prod"), String("us-east")))
	metrics.Set("payload", Bytes([]byte{0xDE, 0xAD, 0xBE, 0xEF}))

	arrData := make([]byte, 2*2*8)
	for i := range arrData {
		arrData[i] = byte(i)
	}
	arr, err := NewArray(ElemFloat64, []int{2, 2}, arrData)
	require.NoError(t, err)
	metrics.Set("samples", FromArray(arr))

	root := List(
		Null(),
		Int(64, -12345),
		Uint(16, 4000),
		Float(32, 3.5),
		FromDict(metrics),
	)

	var buf bytes.Buffer
	w, err := Open(&buf, WithByteOrder(LittleEndian))
	require.NoError(t, err)
	require.NoError(t, w.WriteValue(root))
	require.NoError(t, w.Close())

	nav, err := OpenNavigator(bytes.NewReader(buf.Bytes()), WithNavByteOrder(LittleEndian))
	require.NoError(t, err)
	got, err := nav.Read()
	require.NoError(t, err)

	valueCmp(t, got, root)
}

func TestRoundTripViaSequentialHandles(t *testing.T) {
	var buf bytes.Buffer
	w, err := Open(&buf, WithByteOrder(BigEndian))
	require.NoError(t, err)

	root, err := w.OpenDict()
	require.NoError(t, err)
	require.NoError(t, root.Key("count"))
	require.NoError(t, root.Add(Int(32, 3)))
	require.NoError(t, root.Key("items"))
	items, err := root.OpenList()
	require.NoError(t, err)
	require.NoError(t, items.Add(String("one")))
	require.NoError(t, items.Add(String("two")))
	require.NoError(t, items.Add(String("three")))
	require.NoError(t, items.Close())
	require.NoError(t, w.Close())

	nav, err := OpenNavigator(bytes.NewReader(buf.Bytes()), WithNavByteOrder(BigEndian))
	require.NoError(t, err)

	length, err := nav.Get(KeySelector("items"))
	require.NoError(t, err)
	list, _ := length.AsList()
	require.Len(t, list, 3)

	count, err := nav.Get(KeySelector("count"))
	require.NoError(t, err)
	n, _ := count.AsInt()
	require.EqualValues(t, 3, n)
}

func TestSkipEquivalentToReadOnTruncation(t *testing.T) {
	data := encodeForTest(t, List(Int(8, 1), Int(8, 2)))
	truncated := data[:len(data)-1]

	nav, err := OpenNavigator(bytes.NewReader(truncated))
	require.NoError(t, err)
	_, err = nav.Read()
	require.Error(t, err)

	_, err = nav.Len()
	require.Error(t, err)
}
