package xtype

import (
	"fmt"

	"github.com/creachadair/xtype/errs"
)

// Selector is one step of a path used to navigate into a value without
// materializing its ancestors (spec.md §4.6 "Path Resolver & Slicer").
type Selector interface {
	isSelector()
}

// KeySelector selects a Dict value by key.
type KeySelector string

func (KeySelector) isSelector() {}

// IntSelector selects a single element of a List, or a single index along
// one Array axis. Negative values count from the end.
type IntSelector int

func (IntSelector) isSelector() {}

// SliceSelector selects a sub-range of a List, or of one Array axis, with
// Python-style start/stop/step semantics: nil fields take the direction-
// appropriate default, and indices may be negative.
type SliceSelector struct {
	Start *int
	Stop  *int
	Step  *int
}

func (SliceSelector) isSelector() {}

func intp(v int) *int { return &v }

// Child resolves a single KeySelector or IntSelector step against a List or
// Dict, returning a sub-Navigator (spec.md §4.6: non-terminal steps stay
// lazy while the path walks through List/Dict containers).
func (n *Navigator) Child(sel Selector) (*Navigator, error) {
	switch s := sel.(type) {
	case KeySelector:
		return n.LookupKey(string(s))
	case IntSelector:
		return n.LookupIndex(int(s))
	default:
		return nil, fmt.Errorf("%w: %T is not valid against a List/Dict element", errs.ErrTypeMismatch, sel)
	}
}

// Get resolves path against n and returns the materialized result
// (spec.md §4.6 "get(selector) -> Navigator | Value"). Each step into a
// List or Dict stays lazy; a SliceSelector step against a List, or any
// step that reaches an Array, ends the walk and materializes a Value
// there, since the result of slicing does not exist contiguously in the
// source stream.
func (n *Navigator) Get(path ...Selector) (Value, error) {
	cur := n
	for i, sel := range path {
		k, err := cur.Kind()
		if err != nil {
			return Value{}, err
		}
		switch k {
		case KindList:
			if sliceSel, ok := sel.(SliceSelector); ok {
				if i != len(path)-1 {
					return Value{}, fmt.Errorf("%w: a List slice must be the last selector in a path", errs.ErrTypeMismatch)
				}
				return cur.sliceList(sliceSel)
			}
			cur, err = cur.Child(sel)
			if err != nil {
				return Value{}, err
			}
		case KindDict:
			key, ok := sel.(KeySelector)
			if !ok {
				return Value{}, fmt.Errorf("%w: Dict requires a KeySelector, got %T", errs.ErrTypeMismatch, sel)
			}
			cur, err = cur.LookupKey(string(key))
			if err != nil {
				return Value{}, err
			}
		case KindArray:
			return cur.getArray(path[i:])
		default:
			return Value{}, fmt.Errorf("%w: cannot select into a %s", errs.ErrTypeMismatch, k)
		}
	}
	return cur.Read()
}

// sliceList materializes a new List holding the elements sel selects,
// walking the source once to record each element's offset (spec.md §4.6:
// List slicing is linear in the list's length, unlike Array slicing).
func (n *Navigator) sliceList(sel SliceSelector) (Value, error) {
	offsets, err := n.listElementOffsets()
	if err != nil {
		return Value{}, err
	}
	indices, err := computeSliceIndices(sel, len(offsets))
	if err != nil {
		return Value{}, err
	}
	items := make([]Value, len(indices))
	for i, idx := range indices {
		v, _, err := readValueAt(n.src, n.engine, offsets[idx])
		if err != nil {
			return Value{}, err
		}
		items[i] = v
	}
	return List(items...), nil
}

// listElementOffsets returns the starting offset of each element of the
// List at n's position, in encoded order.
func (n *Navigator) listElementOffsets() ([]int64, error) {
	k, err := n.Kind()
	if err != nil {
		return nil, err
	}
	if k != KindList {
		return nil, fmt.Errorf("%w: not a List", errs.ErrTypeMismatch)
	}
	var offsets []int64
	cur := n.pos + 1
	for {
		ct, err := peekTagAt(n.src, cur)
		if err != nil {
			return nil, err
		}
		if ct == tagListClose {
			return offsets, nil
		}
		offsets = append(offsets, cur)
		cur, err = skipValueAt(n.src, n.engine, cur)
		if err != nil {
			return nil, err
		}
	}
}

// getArray resolves the remaining path steps as a single axis-selector
// tuple against the Array at n's position (spec.md §4.6 "Tuple of
// selectors, for Arrays"). Fewer selectors than the Array's rank leave the
// trailing axes whole; KeySelector is never valid here.
func (n *Navigator) getArray(axisSelectors []Selector) (Value, error) {
	kind, shape, payloadStart, _, err := readArrayHeader(n.src, n.engine, n.pos)
	if err != nil {
		return Value{}, err
	}
	if len(axisSelectors) > len(shape) {
		return Value{}, fmt.Errorf("%w: %d selectors for rank-%d array", errs.ErrShapeMismatch, len(axisSelectors), len(shape))
	}

	axes := make([]axisSpec, len(shape))
	for i, d := range shape {
		if i < len(axisSelectors) {
			spec, err := resolveAxis(axisSelectors[i], d)
			if err != nil {
				return Value{}, err
			}
			axes[i] = spec
			continue
		}
		axes[i] = fullAxis(d)
	}

	outShape, data, err := gatherArray(n.src, payloadStart, shape, kind.Width(), axes)
	if err != nil {
		return Value{}, err
	}
	if len(outShape) == 0 {
		// Every axis was fixed by an IntSelector: the result is one scalar
		// element, decoded according to its element kind.
		return decodeArrayElement(n.engine, kind, data)
	}
	a, err := NewArray(kind, outShape, data)
	if err != nil {
		return Value{}, err
	}
	return FromArray(a), nil
}

func resolveAxis(sel Selector, dim int) (axisSpec, error) {
	switch s := sel.(type) {
	case IntSelector:
		i := int(s)
		if i < 0 {
			i += dim
		}
		if i < 0 || i >= dim {
			return axisSpec{}, fmt.Errorf("%w: index %d for axis of size %d", errs.ErrIndexOutOfRange, int(s), dim)
		}
		return axisSpec{fixed: true, index: i}, nil
	case SliceSelector:
		indices, err := computeSliceIndices(s, dim)
		if err != nil {
			return axisSpec{}, err
		}
		return axisSpec{indices: indices}, nil
	default:
		return axisSpec{}, fmt.Errorf("%w: %T is not valid against an Array axis", errs.ErrTypeMismatch, sel)
	}
}
