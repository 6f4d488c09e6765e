package xtype

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/creachadair/xtype/byteorder"
	"github.com/creachadair/xtype/errs"
)

func TestLengthRoundTrip(t *testing.T) {
	engine := byteorder.Little()
	cases := []uint64{0, 1, 255, 256, 65535, 65536, 1 << 32, 1<<32 + 1}
	for _, n := range cases {
		buf := appendLength(nil, engine, n)
		require.Equal(t, lengthSize(n), len(buf))

		got, err := readLength(bytes.NewReader(buf), engine)
		require.NoError(t, err)
		require.Equal(t, n, got)
	}
}

func TestLengthPicksSmallestTier(t *testing.T) {
	require.Equal(t, lenTier8, lengthTier(255))
	require.Equal(t, lenTier16, lengthTier(256))
	require.Equal(t, lenTier16, lengthTier(65535))
	require.Equal(t, lenTier32, lengthTier(65536))
	require.Equal(t, lenTier64, lengthTier(1<<32))
}

func TestReadLengthBadDiscriminator(t *testing.T) {
	_, err := readLength(bytes.NewReader([]byte{0x09}), byteorder.Little())
	require.ErrorIs(t, err, errs.ErrInvalidLength)
}

func TestReadLengthTruncated(t *testing.T) {
	_, err := readLength(bytes.NewReader([]byte{lenTier32, 0x01, 0x02}), byteorder.Little())
	require.ErrorIs(t, err, errs.ErrTruncatedPayload)
}
