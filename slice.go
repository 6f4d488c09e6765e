package xtype

import (
	"fmt"
	"io"
	"math"

	"github.com/creachadair/xtype/byteorder"
	"github.com/creachadair/xtype/errs"
)

// computeSliceIndices resolves sel against a dimension of size length,
// producing the concrete list of indices it selects, in output order
// (spec.md §4.6 "Slice selector"). Semantics follow Python's slicing: nil
// fields take the direction-appropriate default, indices may be negative,
// and a zero Step is rejected.
func computeSliceIndices(sel SliceSelector, length int) ([]int, error) {
	step := 1
	if sel.Step != nil {
		step = *sel.Step
	}
	if step == 0 {
		return nil, fmt.Errorf("%w: step must not be zero", errs.ErrInvalidSlice)
	}

	var start, stop int
	if step > 0 {
		start, stop = 0, length
	} else {
		start, stop = length-1, -1
	}
	if sel.Start != nil {
		start = normalizeSliceIndex(*sel.Start, length, step > 0)
	}
	if sel.Stop != nil {
		stop = normalizeSliceIndex(*sel.Stop, length, step > 0)
	}

	var out []int
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, i)
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, i)
		}
	}
	return out, nil
}

// normalizeSliceIndex resolves a negative index against length and clamps
// the result to the valid bound range for the direction of travel.
func normalizeSliceIndex(i, length int, forward bool) int {
	if i < 0 {
		i += length
	}
	if forward {
		if i < 0 {
			return 0
		}
		if i > length {
			return length
		}
		return i
	}
	if i < -1 {
		return -1
	}
	if i >= length {
		return length - 1
	}
	return i
}

// axisSpec describes how one Array axis is selected: either fixed to a
// single index (the axis disappears from the output shape) or kept with an
// explicit, possibly reordered or strided, list of indices.
type axisSpec struct {
	fixed bool
	index int
	indices []int
}

func fullAxis(dim int) axisSpec {
	indices := make([]int, dim)
	for i := range indices {
		indices[i] = i
	}
	return axisSpec{indices: indices}
}

// gatherArray performs the strided-address random access described in
// spec.md §4.6 and §8 property 5: it computes the source element index for
// every coordinate of the output directly from shape/strides, and reads
// only the bytes belonging to selected elements, never the whole payload.
func gatherArray(src io.ReaderAt, payloadStart int64, shape []int, width int, axes []axisSpec) (outShape []int, data []byte, err error) {
	strides := rowMajorStrides(shape)

	for _, ax := range axes {
		if !ax.fixed {
			outShape = append(outShape, len(ax.indices))
		}
	}

	count := 1
	for _, d := range outShape {
		count *= d
	}
	data = make([]byte, 0, count*width)

	coord := make([]int, len(axes))
	buf := make([]byte, width)
	var walk func(axis int) error
	walk = func(axis int) error {
		if axis == len(axes) {
			srcIdx := 0
			for i, c := range coord {
				srcIdx += c * strides[i]
			}
			off := payloadStart + int64(srcIdx)*int64(width)
			if _, err := src.ReadAt(buf, off); err != nil {
				return fmt.Errorf("%w: %v", errs.ErrTruncatedPayload, err)
			}
			data = append(data, buf...)
			return nil
		}
		ax := axes[axis]
		if ax.fixed {
			coord[axis] = ax.index
			return walk(axis + 1)
		}
		for _, idx := range ax.indices {
			coord[axis] = idx
			if err := walk(axis + 1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(0); err != nil {
		return nil, nil, err
	}
	return outShape, data, nil
}

func rowMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= shape[i]
	}
	return strides
}

// decodeArrayElement decodes a single raw element of kind from data, which
// must hold exactly kind.Width() bytes, using engine's byte order.
func decodeArrayElement(engine byteorder.Engine, kind ElementKind, data []byte) (Value, error) {
	switch kind {
	case ElemInt8:
		return Int(8, int64(int8(data[0]))), nil
	case ElemInt16:
		return Int(16, int64(int16(engine.Uint16(data)))), nil
	case ElemInt32:
		return Int(32, int64(int32(engine.Uint32(data)))), nil
	case ElemInt64:
		return Int(64, int64(engine.Uint64(data))), nil
	case ElemUint8:
		return Uint(8, uint64(data[0])), nil
	case ElemUint16:
		return Uint(16, uint64(engine.Uint16(data))), nil
	case ElemUint32:
		return Uint(32, uint64(engine.Uint32(data))), nil
	case ElemUint64:
		return Uint(64, engine.Uint64(data)), nil
	case ElemFloat32:
		return Float(32, float64(math.Float32frombits(engine.Uint32(data)))), nil
	case ElemFloat64:
		return Float(64, math.Float64frombits(engine.Uint64(data))), nil
	default:
		return Value{}, fmt.Errorf("%w: %s", errs.ErrUnknownElementKind, kind)
	}
}
