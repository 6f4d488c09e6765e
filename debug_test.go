package xtype

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadDebugTokenStream(t *testing.T) {
	d := NewDict()
	d.Set("name", String("cpu"))
	d.Set("values", List(Int(8, 1), Int(8, 2)))
	data := encodeForTest(t, FromDict(d))

	nav, err := OpenNavigator(bytes.NewReader(data))
	require.NoError(t, err)

	var tokens []string
	for tok := range nav.ReadDebug() {
		tokens = append(tokens, tok)
	}

	require.Contains(t, tokens[0], "dict {")
	require.True(t, strings.Contains(tokens[len(tokens)-1], "}"))

	joined := strings.Join(tokens, "\n")
	require.Contains(t, joined, `key "name"`)
	require.Contains(t, joined, "cpu")
}

func TestReadDebugStopsEarly(t *testing.T) {
	d := NewDict()
	d.Set("a", Int(8, 1))
	d.Set("b", Int(8, 2))
	d.Set("c", Int(8, 3))
	data := encodeForTest(t, FromDict(d))

	nav, err := OpenNavigator(bytes.NewReader(data))
	require.NoError(t, err)

	count := 0
	for range nav.ReadDebug() {
		count++
		if count == 2 {
			break
		}
	}
	require.Equal(t, 2, count)
}
