package xtype

import (
	"fmt"
	"io"

	"github.com/creachadair/xtype/byteorder"
	"github.com/creachadair/xtype/errs"
	"github.com/creachadair/xtype/internal/options"
)

// Navigator gives random-access, lazy-parsing read access to one value
// inside an encoded stream (spec.md §4.5). Unlike the Writer, a Navigator
// never holds a stack of state describing how it got there: it is a thin,
// immutable (src, engine, pos) triple, and every operation re-derives
// whatever it needs by consulting the bytes at pos. Sub-navigators returned
// by Child/LookupKey/LookupIndex are independent values that share the same
// underlying src.
type Navigator struct {
	src    io.ReaderAt
	engine byteorder.Engine
	pos    int64
}

// OpenNavigator creates a Navigator positioned at the root value of src.
func OpenNavigator(src io.ReaderAt, opts ...NavOption) (*Navigator, error) {
	cfg := &navConfig{order: AutoByteOrder}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	return &Navigator{src: src, engine: cfg.order.engine(), pos: 0}, nil
}

// Kind reports the Kind of the value at this Navigator's position without
// materializing it (spec.md §4.5 "Peek tag").
func (n *Navigator) Kind() (Kind, error) {
	t, err := peekTagAt(n.src, n.pos)
	if err != nil {
		return 0, err
	}
	return kindForTag(t)
}

func kindForTag(t tag) (Kind, error) {
	switch {
	case t == tagNull:
		return KindNull, nil
	case t == tagBoolFalse || t == tagBoolTrue:
		return KindBool, nil
	case t >= tagInt8 && t <= tagInt64:
		return KindInt, nil
	case t >= tagUint8 && t <= tagUint64:
		return KindUint, nil
	case t == tagFloat32 || t == tagFloat64:
		return KindFloat, nil
	case t == tagString:
		return KindString, nil
	case t == tagBytes:
		return KindBytes, nil
	case t == tagListOpen:
		return KindList, nil
	case t == tagDictOpen:
		return KindDict, nil
	case t == tagArrayOpen:
		return KindArray, nil
	default:
		return 0, fmt.Errorf("%w: %#x", errs.ErrUnexpectedTag, byte(t))
	}
}

// Read materializes the entire value at n's position, recursively
// (spec.md §4.5 "Read"). For large containers prefer Child/LookupKey/
// LookupIndex so unneeded subtrees are never parsed.
func (n *Navigator) Read() (Value, error) {
	v, _, err := readValueAt(n.src, n.engine, n.pos)
	return v, err
}

// end returns the offset just past n's value, without materializing it.
func (n *Navigator) end() (int64, error) {
	return skipValueAt(n.src, n.engine, n.pos)
}

// Len reports the number of elements of a List, key/value pairs of a Dict,
// or the size of an Array's leading axis (spec.md §4.5 "Len").
func (n *Navigator) Len() (int, error) {
	k, err := n.Kind()
	if err != nil {
		return 0, err
	}
	switch k {
	case KindList:
		count := 0
		cur := n.pos + 1
		for {
			ct, err := peekTagAt(n.src, cur)
			if err != nil {
				return 0, err
			}
			if ct == tagListClose {
				return count, nil
			}
			cur, err = skipValueAt(n.src, n.engine, cur)
			if err != nil {
				return 0, err
			}
			count++
		}
	case KindDict:
		count := 0
		cur := n.pos + 1
		for {
			ct, err := peekTagAt(n.src, cur)
			if err != nil {
				return 0, err
			}
			if ct == tagDictClose {
				return count, nil
			}
			cur, err = skipValueAt(n.src, n.engine, cur) // key
			if err != nil {
				return 0, err
			}
			cur, err = skipValueAt(n.src, n.engine, cur) // value
			if err != nil {
				return 0, err
			}
			count++
		}
	case KindArray:
		_, shape, _, _, err := readArrayHeader(n.src, n.engine, n.pos)
		if err != nil {
			return 0, err
		}
		if len(shape) == 0 {
			return 0, fmt.Errorf("%w: rank-0 array has no leading axis", errs.ErrShapeMismatch)
		}
		return shape[0], nil
	default:
		return 0, fmt.Errorf("%w: Len is only valid on List, Dict or Array", errs.ErrTypeMismatch)
	}
}

// Keys returns a Dict's keys in encoded order (spec.md §4.5 "Keys"). A
// repeated key appears once per occurrence; see LookupKey for lookup
// semantics versus Read's last-match-wins materialization.
func (n *Navigator) Keys() ([]string, error) {
	k, err := n.Kind()
	if err != nil {
		return nil, err
	}
	if k != KindDict {
		return nil, fmt.Errorf("%w: Keys is only valid on a Dict", errs.ErrTypeMismatch)
	}
	var keys []string
	cur := n.pos + 1
	for {
		ct, err := peekTagAt(n.src, cur)
		if err != nil {
			return nil, err
		}
		if ct == tagDictClose {
			return keys, nil
		}
		keyVal, next, err := readValueAt(n.src, n.engine, cur)
		if err != nil {
			return nil, err
		}
		key, _ := keyVal.AsString()
		keys = append(keys, key)
		cur, err = skipValueAt(n.src, n.engine, next)
		if err != nil {
			return nil, err
		}
	}
}

// LookupKey returns a sub-Navigator for the first value associated with
// key in this Dict, scanning in encoded order (spec.md §4.5 "Lookup by
// key": first-match-wins for navigation, as opposed to Read's
// last-match-wins materialization).
func (n *Navigator) LookupKey(key string) (*Navigator, error) {
	k, err := n.Kind()
	if err != nil {
		return nil, err
	}
	if k != KindDict {
		return nil, fmt.Errorf("%w: LookupKey is only valid on a Dict", errs.ErrTypeMismatch)
	}
	cur := n.pos + 1
	for {
		ct, err := peekTagAt(n.src, cur)
		if err != nil {
			return nil, err
		}
		if ct == tagDictClose {
			return nil, fmt.Errorf("%w: %q", errs.ErrKeyNotFound, key)
		}
		keyVal, next, err := readValueAt(n.src, n.engine, cur)
		if err != nil {
			return nil, err
		}
		gotKey, _ := keyVal.AsString()
		if gotKey == key {
			return &Navigator{src: n.src, engine: n.engine, pos: next}, nil
		}
		cur, err = skipValueAt(n.src, n.engine, next)
		if err != nil {
			return nil, err
		}
	}
}

// LookupIndex returns a sub-Navigator for the i-th element of a List.
// Negative indices count from the end (spec.md §4.5 "Lookup by index"):
// since list length isn't known up front, a negative index requires one
// count pass followed by a second seek pass.
func (n *Navigator) LookupIndex(i int) (*Navigator, error) {
	k, err := n.Kind()
	if err != nil {
		return nil, err
	}
	if k != KindList {
		return nil, fmt.Errorf("%w: LookupIndex is only valid on a List", errs.ErrTypeMismatch)
	}
	if i < 0 {
		length, err := n.Len()
		if err != nil {
			return nil, err
		}
		i += length
		if i < 0 {
			return nil, fmt.Errorf("%w: index out of range", errs.ErrIndexOutOfRange)
		}
	}
	cur := n.pos + 1
	for idx := 0; ; idx++ {
		ct, err := peekTagAt(n.src, cur)
		if err != nil {
			return nil, err
		}
		if ct == tagListClose {
			return nil, fmt.Errorf("%w: index %d", errs.ErrIndexOutOfRange, i)
		}
		if idx == i {
			return &Navigator{src: n.src, engine: n.engine, pos: cur}, nil
		}
		cur, err = skipValueAt(n.src, n.engine, cur)
		if err != nil {
			return nil, err
		}
	}
}

// Array materializes the whole Array at n's position, payload included.
// Get's Array path does not use it: it reads only the selected elements
// straight from the source.
func (n *Navigator) Array() (*Array, error) {
	k, err := n.Kind()
	if err != nil {
		return nil, err
	}
	if k != KindArray {
		return nil, fmt.Errorf("%w: not an Array", errs.ErrTypeMismatch)
	}
	v, err := n.Read()
	if err != nil {
		return nil, err
	}
	a, _ := v.AsArray()
	return a, nil
}
