package xtype

import (
	"fmt"
	"io"

	"github.com/creachadair/xtype/byteorder"
	"github.com/creachadair/xtype/errs"
)

// cursor adapts a random-access io.ReaderAt plus a running offset into an
// io.Reader, so the sequential primitive decoders (readLength,
// decodeScalarPayload, decodeBlobPayload) can be reused both for
// sequential Navigator reads and for the length-oracle Skip.
type cursor struct {
	src io.ReaderAt
	pos int64
}

func (c *cursor) Read(p []byte) (int, error) {
	n, err := c.src.ReadAt(p, c.pos)
	c.pos += int64(n)
	return n, err
}

func readTagAt(c *cursor) (tag, error) {
	var b [1]byte
	if err := readFull(c, b[:]); err != nil {
		return 0, err
	}
	return tag(b[0]), nil
}

// peekTagAt reads the tag byte at pos without any other side effect.
func peekTagAt(src io.ReaderAt, pos int64) (tag, error) {
	var b [1]byte
	if _, err := src.ReadAt(b[:], pos); err != nil {
		return 0, fmt.Errorf("%w: %v", errs.ErrTruncatedPayload, err)
	}
	return tag(b[0]), nil
}

// probeBytes confirms that n bytes starting at pos actually exist in src,
// without copying them, by reading the single last byte of the range.
func probeBytes(src io.ReaderAt, pos int64, n int64) error {
	if n == 0 {
		return nil
	}
	var b [1]byte
	if _, err := src.ReadAt(b[:], pos+n-1); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrTruncatedPayload, err)
	}
	return nil
}

// skipValueAt advances past exactly one complete value starting at pos and
// returns the offset just past it (spec.md §4.5 "Skip value").
func skipValueAt(src io.ReaderAt, engine byteorder.Engine, pos int64) (int64, error) {
	c := &cursor{src: src, pos: pos}
	t, err := readTagAt(c)
	if err != nil {
		return 0, err
	}

	if w := scalarWidth(t); w >= 0 {
		if err := probeBytes(src, c.pos, int64(w)); err != nil {
			return 0, err
		}
		return c.pos + int64(w), nil
	}

	switch t {
	case tagString, tagBytes:
		n, err := readLength(c, engine)
		if err != nil {
			return 0, err
		}
		if err := probeBytes(src, c.pos, int64(n)); err != nil {
			return 0, err
		}
		return c.pos + int64(n), nil

	case tagListOpen, tagDictOpen:
		closeTag := closeFor(t)
		cur := c.pos
		for {
			ct, err := peekTagAt(src, cur)
			if err != nil {
				return 0, err
			}
			if ct == closeTag {
				return cur + 1, nil
			}
			if t == tagDictOpen {
				cur, err = skipValueAt(src, engine, cur) // key
				if err != nil {
					return 0, err
				}
			}
			cur, err = skipValueAt(src, engine, cur) // value (or list element)
			if err != nil {
				return 0, err
			}
		}

	case tagArrayOpen:
		_, _, _, end, err := readArrayHeader(src, engine, c.pos)
		return end, err

	default:
		return 0, fmt.Errorf("%w: %#x at offset %d", errs.ErrUnexpectedTag, byte(t), pos)
	}
}

// readArrayHeader parses the rank, shape and element kind of an ArrayOpen
// value whose tag has NOT yet been consumed (pos points at tagArrayOpen),
// and returns the offset where the raw element payload begins along with
// the offset just past the whole array (payload included).
func readArrayHeader(src io.ReaderAt, engine byteorder.Engine, pos int64) (kind ElementKind, shape []int, payloadStart int64, end int64, err error) {
	c := &cursor{src: src, pos: pos}
	t, err := readTagAt(c)
	if err != nil {
		return 0, nil, 0, 0, err
	}
	if t != tagArrayOpen {
		return 0, nil, 0, 0, fmt.Errorf("%w: expected ArrayOpen, got %#x", errs.ErrUnexpectedTag, byte(t))
	}
	rank, err := readLength(c, engine)
	if err != nil {
		return 0, nil, 0, 0, err
	}
	shape = make([]int, rank)
	for i := range shape {
		d, err := readLength(c, engine)
		if err != nil {
			return 0, nil, 0, 0, err
		}
		shape[i] = int(d)
	}
	elemT, err := readTagAt(c)
	if err != nil {
		return 0, nil, 0, 0, err
	}
	kind, ok := elementKindFromTag(elemT)
	if !ok {
		return 0, nil, 0, 0, fmt.Errorf("%w: %#x", errs.ErrUnknownElementKind, byte(elemT))
	}

	count := 1
	for _, d := range shape {
		count *= d
	}
	total := int64(count) * int64(kind.Width())
	if err := probeBytes(src, c.pos, total); err != nil {
		return 0, nil, 0, 0, err
	}
	return kind, shape, c.pos, c.pos + total, nil
}

// readValueAt materializes exactly one complete value starting at pos and
// returns the offset just past it.
func readValueAt(src io.ReaderAt, engine byteorder.Engine, pos int64) (Value, int64, error) {
	c := &cursor{src: src, pos: pos}
	t, err := readTagAt(c)
	if err != nil {
		return Value{}, 0, err
	}

	if w := scalarWidth(t); w >= 0 {
		v, err := decodeScalarPayload(c, engine, t)
		return v, c.pos, err
	}

	switch t {
	case tagString:
		data, err := decodeBlobPayload(c, engine)
		if err != nil {
			return Value{}, 0, err
		}
		if err := validateUTF8(data); err != nil {
			return Value{}, 0, err
		}
		return String(string(data)), c.pos, nil

	case tagBytes:
		data, err := decodeBlobPayload(c, engine)
		if err != nil {
			return Value{}, 0, err
		}
		return Bytes(data), c.pos, nil

	case tagListOpen:
		var items []Value
		cur := c.pos
		for {
			ct, err := peekTagAt(src, cur)
			if err != nil {
				return Value{}, 0, err
			}
			if ct == tagListClose {
				cur++
				break
			}
			var item Value
			item, cur, err = readValueAt(src, engine, cur)
			if err != nil {
				return Value{}, 0, err
			}
			items = append(items, item)
		}
		return List(items...), cur, nil

	case tagDictOpen:
		d := NewDict()
		cur := c.pos
		for {
			ct, err := peekTagAt(src, cur)
			if err != nil {
				return Value{}, 0, err
			}
			if ct == tagDictClose {
				cur++
				break
			}
			keyVal, next, err := readValueAt(src, engine, cur)
			if err != nil {
				return Value{}, 0, err
			}
			key, ok := keyVal.AsString()
			if !ok {
				return Value{}, 0, fmt.Errorf("%w: dict key is not a String", errs.ErrUnexpectedTag)
			}
			cur = next
			var val Value
			val, cur, err = readValueAt(src, engine, cur)
			if err != nil {
				return Value{}, 0, err
			}
			d.Set(key, val) // last occurrence wins (spec.md §9)
		}
		return FromDict(d), cur, nil

	case tagArrayOpen:
		kind, shape, payloadStart, end, err := readArrayHeader(src, engine, pos)
		if err != nil {
			return Value{}, 0, err
		}
		data := make([]byte, end-payloadStart)
		if _, err := src.ReadAt(data, payloadStart); err != nil {
			return Value{}, 0, fmt.Errorf("%w: %v", errs.ErrTruncatedPayload, err)
		}
		a, err := NewArray(kind, shape, data)
		if err != nil {
			return Value{}, 0, err
		}
		return FromArray(a), end, nil

	default:
		return Value{}, 0, fmt.Errorf("%w: %#x at offset %d", errs.ErrUnexpectedTag, byte(t), pos)
	}
}
