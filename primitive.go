package xtype

import (
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/creachadair/xtype/byteorder"
	"github.com/creachadair/xtype/errs"
)

// appendScalar appends the tag and payload for a Null, Bool, Int, Uint or
// Float value.
func appendScalar(buf []byte, engine byteorder.Engine, v Value) ([]byte, error) {
	switch v.Kind {
	case KindNull:
		return append(buf, byte(tagNull)), nil
	case KindBool:
		if v.boolVal {
			return append(buf, byte(tagBoolTrue)), nil
		}
		return append(buf, byte(tagBoolFalse)), nil
	case KindInt:
		return appendInt(buf, engine, v.Width, v.intVal)
	case KindUint:
		return appendUint(buf, engine, v.Width, v.uintVal)
	case KindFloat:
		return appendFloat(buf, engine, v.Width, v.floatVal)
	default:
		return nil, fmt.Errorf("appendScalar: %s is not a scalar kind", v.Kind)
	}
}

func appendInt(buf []byte, engine byteorder.Engine, width int, v int64) ([]byte, error) {
	switch width {
	case 8:
		return append(buf, byte(tagInt8), byte(int8(v))), nil
	case 16:
		buf = append(buf, byte(tagInt16))
		return engine.AppendUint16(buf, uint16(int16(v))), nil
	case 32:
		buf = append(buf, byte(tagInt32))
		return engine.AppendUint32(buf, uint32(int32(v))), nil
	case 64:
		buf = append(buf, byte(tagInt64))
		return engine.AppendUint64(buf, uint64(v)), nil
	default:
		return nil, fmt.Errorf("appendInt: invalid width %d", width)
	}
}

func appendUint(buf []byte, engine byteorder.Engine, width int, v uint64) ([]byte, error) {
	switch width {
	case 8:
		return append(buf, byte(tagUint8), byte(v)), nil
	case 16:
		buf = append(buf, byte(tagUint16))
		return engine.AppendUint16(buf, uint16(v)), nil
	case 32:
		buf = append(buf, byte(tagUint32))
		return engine.AppendUint32(buf, uint32(v)), nil
	case 64:
		buf = append(buf, byte(tagUint64))
		return engine.AppendUint64(buf, v), nil
	default:
		return nil, fmt.Errorf("appendUint: invalid width %d", width)
	}
}

func appendFloat(buf []byte, engine byteorder.Engine, width int, v float64) ([]byte, error) {
	switch width {
	case 32:
		buf = append(buf, byte(tagFloat32))
		return engine.AppendUint32(buf, math.Float32bits(float32(v))), nil
	case 64:
		buf = append(buf, byte(tagFloat64))
		return engine.AppendUint64(buf, math.Float64bits(v)), nil
	default:
		return nil, fmt.Errorf("appendFloat: invalid width %d", width)
	}
}

// appendBlob appends a String or Bytes tag, its compact length prefix, and
// its payload bytes.
func appendBlob(buf []byte, engine byteorder.Engine, t tag, data []byte) []byte {
	buf = append(buf, byte(t))
	buf = appendLength(buf, engine, uint64(len(data)))
	return append(buf, data...)
}

// decodeScalarPayload parses the payload for scalar tag t, which has
// already been consumed from r.
func decodeScalarPayload(r io.Reader, engine byteorder.Engine, t tag) (Value, error) {
	switch t {
	case tagNull:
		return Null(), nil
	case tagBoolFalse:
		return Bool(false), nil
	case tagBoolTrue:
		return Bool(true), nil
	case tagInt8:
		var b [1]byte
		if err := readFull(r, b[:]); err != nil {
			return Value{}, err
		}
		return Int(8, int64(int8(b[0]))), nil
	case tagInt16:
		var b [2]byte
		if err := readFull(r, b[:]); err != nil {
			return Value{}, err
		}
		return Int(16, int64(int16(engine.Uint16(b[:])))), nil
	case tagInt32:
		var b [4]byte
		if err := readFull(r, b[:]); err != nil {
			return Value{}, err
		}
		return Int(32, int64(int32(engine.Uint32(b[:])))), nil
	case tagInt64:
		var b [8]byte
		if err := readFull(r, b[:]); err != nil {
			return Value{}, err
		}
		return Int(64, int64(engine.Uint64(b[:]))), nil
	case tagUint8:
		var b [1]byte
		if err := readFull(r, b[:]); err != nil {
			return Value{}, err
		}
		return Uint(8, uint64(b[0])), nil
	case tagUint16:
		var b [2]byte
		if err := readFull(r, b[:]); err != nil {
			return Value{}, err
		}
		return Uint(16, uint64(engine.Uint16(b[:]))), nil
	case tagUint32:
		var b [4]byte
		if err := readFull(r, b[:]); err != nil {
			return Value{}, err
		}
		return Uint(32, uint64(engine.Uint32(b[:]))), nil
	case tagUint64:
		var b [8]byte
		if err := readFull(r, b[:]); err != nil {
			return Value{}, err
		}
		return Uint(64, engine.Uint64(b[:])), nil
	case tagFloat32:
		var b [4]byte
		if err := readFull(r, b[:]); err != nil {
			return Value{}, err
		}
		return Float(32, float64(math.Float32frombits(engine.Uint32(b[:])))), nil
	case tagFloat64:
		var b [8]byte
		if err := readFull(r, b[:]); err != nil {
			return Value{}, err
		}
		return Float(64, math.Float64frombits(engine.Uint64(b[:]))), nil
	default:
		return Value{}, fmt.Errorf("%w: %#x is not a scalar tag", errs.ErrUnexpectedTag, t)
	}
}

// decodeBlobPayload reads a compact length prefix then that many bytes from
// r. The String/Bytes tag itself must already have been consumed.
func decodeBlobPayload(r io.Reader, engine byteorder.Engine) ([]byte, error) {
	n, err := readLength(r, engine)
	if err != nil {
		return nil, err
	}
	data := make([]byte, n)
	if err := readFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}

// readFull wraps io.ReadFull, translating short reads into
// errs.ErrTruncatedPayload.
func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrTruncatedPayload, err)
	}
	return nil
}

// validateUTF8 returns errs.ErrInvalidUTF8 if data is not valid UTF-8.
func validateUTF8(data []byte) error {
	if !utf8.Valid(data) {
		return errs.ErrInvalidUTF8
	}
	return nil
}
