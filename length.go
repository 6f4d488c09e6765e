package xtype

import (
	"fmt"
	"io"
	"math"

	"github.com/creachadair/xtype/byteorder"
	"github.com/creachadair/xtype/errs"
)

// Lengths (for strings, byte blobs, array ranks, and array dimensions) use a
// tiered width encoding (spec.md §4.2): a one-byte discriminator selects one
// of {8,16,32,64}-bit unsigned length, then that many length bytes follow in
// the file's byte order. The writer always picks the smallest tier that
// fits; zero length uses the smallest tier.
const (
	lenTier8 byte = iota
	lenTier16
	lenTier32
	lenTier64
)

// lengthTier returns the smallest tier that can represent n.
func lengthTier(n uint64) byte {
	switch {
	case n <= math.MaxUint8:
		return lenTier8
	case n <= math.MaxUint16:
		return lenTier16
	case n <= math.MaxUint32:
		return lenTier32
	default:
		return lenTier64
	}
}

// appendLength appends the tiered encoding of n to buf and returns the
// extended slice.
func appendLength(buf []byte, engine byteorder.Engine, n uint64) []byte {
	switch lengthTier(n) {
	case lenTier8:
		return append(buf, lenTier8, byte(n))
	case lenTier16:
		buf = append(buf, lenTier16)
		return engine.AppendUint16(buf, uint16(n))
	case lenTier32:
		buf = append(buf, lenTier32)
		return engine.AppendUint32(buf, uint32(n))
	default:
		buf = append(buf, lenTier64)
		return engine.AppendUint64(buf, n)
	}
}

// lengthSize returns the number of bytes appendLength would append for n,
// including the discriminator byte.
func lengthSize(n uint64) int {
	switch lengthTier(n) {
	case lenTier8:
		return 2
	case lenTier16:
		return 3
	case lenTier32:
		return 5
	default:
		return 9
	}
}

// readLength reads a tiered length prefix from r.
func readLength(r io.Reader, engine byteorder.Engine) (uint64, error) {
	var disc [1]byte
	if _, err := io.ReadFull(r, disc[:]); err != nil {
		return 0, fmt.Errorf("%w: length discriminator: %v", errs.ErrTruncatedPayload, err)
	}
	switch disc[0] {
	case lenTier8:
		var b [1]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, fmt.Errorf("%w: %v", errs.ErrTruncatedPayload, err)
		}
		return uint64(b[0]), nil
	case lenTier16:
		var b [2]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, fmt.Errorf("%w: %v", errs.ErrTruncatedPayload, err)
		}
		return uint64(engine.Uint16(b[:])), nil
	case lenTier32:
		var b [4]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, fmt.Errorf("%w: %v", errs.ErrTruncatedPayload, err)
		}
		return uint64(engine.Uint32(b[:])), nil
	case lenTier64:
		var b [8]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, fmt.Errorf("%w: %v", errs.ErrTruncatedPayload, err)
		}
		return engine.Uint64(b[:]), nil
	default:
		return 0, fmt.Errorf("%w: bad length discriminator %d", errs.ErrInvalidLength, disc[0])
	}
}

// readLengthSize reports how many bytes readLength would consume for a
// prefix whose discriminator byte is disc (discriminator plus width field),
// and false if disc is not a valid discriminator.
func readLengthSize(disc byte) (int, bool) {
	switch disc {
	case lenTier8:
		return 2, true
	case lenTier16:
		return 3, true
	case lenTier32:
		return 5, true
	case lenTier64:
		return 9, true
	default:
		return 0, false
	}
}
