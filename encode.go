package xtype

import (
	"fmt"

	"github.com/creachadair/xtype/byteorder"
	"github.com/creachadair/xtype/errs"
)

// encodeValue recursively appends the full encoding of v to buf. It is used
// both by Writer.WriteValue (root value) and by Handle.Add (nested values),
// since a List/Dict element is always written as a complete sub-tree in one
// shot even when its ancestors are being built incrementally.
func encodeValue(buf []byte, engine byteorder.Engine, v Value, strict bool) ([]byte, error) {
	switch v.Kind {
	case KindNull, KindBool, KindInt, KindUint, KindFloat:
		return appendScalar(buf, engine, v)

	case KindString:
		s, _ := v.AsString()
		if err := validateUTF8([]byte(s)); err != nil {
			return nil, err
		}
		return appendBlob(buf, engine, tagString, []byte(s)), nil

	case KindBytes:
		b, _ := v.AsBytes()
		return appendBlob(buf, engine, tagBytes, b), nil

	case KindList:
		items, _ := v.AsList()
		buf = append(buf, byte(tagListOpen))
		for i, item := range items {
			var err error
			buf, err = encodeValue(buf, engine, item, strict)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
		}
		return append(buf, byte(tagListClose)), nil

	case KindDict:
		d, _ := v.AsDict()
		buf = append(buf, byte(tagDictOpen))
		seen := map[string]struct{}{}
		for i := 0; i < d.Len(); i++ {
			key, val := d.At(i)
			if strict {
				if _, dup := seen[key]; dup {
					return nil, fmt.Errorf("%w: %q", errs.ErrDuplicateKey, key)
				}
				seen[key] = struct{}{}
			}
			if err := validateUTF8([]byte(key)); err != nil {
				return nil, err
			}
			buf = appendBlob(buf, engine, tagString, []byte(key))
			var err error
			buf, err = encodeValue(buf, engine, val, strict)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
		}
		return append(buf, byte(tagDictClose)), nil

	case KindArray:
		a, _ := v.AsArray()
		return appendArray(buf, engine, a)

	default:
		return nil, fmt.Errorf("encodeValue: invalid kind %v", v.Kind)
	}
}

// appendArray appends the ArrayOpen prefix, rank, dims, element tag and raw
// payload bytes for a (spec.md §4.1 "Array prefix").
func appendArray(buf []byte, engine byteorder.Engine, a *Array) ([]byte, error) {
	want := a.Count() * a.Kind.Width()
	if len(a.Data) != want {
		return nil, fmt.Errorf("array payload length %d does not match shape %v of %s (want %d)", len(a.Data), a.Shape, a.Kind, want)
	}
	buf = append(buf, byte(tagArrayOpen))
	buf = appendLength(buf, engine, uint64(len(a.Shape)))
	for _, d := range a.Shape {
		buf = appendLength(buf, engine, uint64(d))
	}
	buf = append(buf, byte(elemTag(a.Kind)))
	return append(buf, a.Data...), nil
}
