package xtype

import (
	"fmt"
	"io"
	"iter"

	"github.com/creachadair/xtype/byteorder"
)

// ReadDebug returns a lazy sequence of human-readable tokens describing the
// value at n's position, one token per tag encountered, in encoded order
// (SPEC_FULL.md §3 "Supplemented features"). It is a range-over-func
// iterator: the caller controls how much of the stream gets walked by
// breaking out of the range early, and no token is produced before it is
// requested.
//
//	for line := range nav.ReadDebug() {
//		fmt.Println(line)
//	}
//
// Consuming the full sequence parses the same bytes Read would, but never
// builds a Value tree: each container's open/close tokens and each
// scalar/string/bytes/array token are yielded directly from the cursor
// walk, mirroring the dispatch shape of a tree-visitor rather than a
// decoder.
func (n *Navigator) ReadDebug() iter.Seq[string] {
	return func(yield func(string) bool) {
		stopped := false
		emit := func(s string) bool {
			if stopped {
				return false
			}
			if !yield(s) {
				stopped = true
				return false
			}
			return true
		}
		debugWalk(n.src, n.engine, n.pos, 0, emit, &stopped)
	}
}

// debugWalk yields tokens for one value at pos and returns the offset just
// past it. It stops early, without error, once *stopped is set (by emit
// observing a false return from the caller's yield), and never calls emit
// again after that point. A parse error produces one final "!error: ..."
// token before stopping.
func debugWalk(src io.ReaderAt, engine byteorder.Engine, pos int64, depth int, emit func(string) bool, stopped *bool) int64 {
	t, err := peekTagAt(src, pos)
	if err != nil {
		emit(fmt.Sprintf("%s!error: %v", indent(depth), err))
		*stopped = true
		return pos
	}

	if w := scalarWidth(t); w >= 0 {
		v, next, err := readValueAt(src, engine, pos)
		if err != nil {
			emit(fmt.Sprintf("%s!error: %v", indent(depth), err))
			*stopped = true
			return pos
		}
		emit(fmt.Sprintf("%s%s %s", indent(depth), v.Kind, v))
		return next
	}

	switch t {
	case tagString, tagBytes:
		v, next, err := readValueAt(src, engine, pos)
		if err != nil {
			emit(fmt.Sprintf("%s!error: %v", indent(depth), err))
			*stopped = true
			return pos
		}
		emit(fmt.Sprintf("%s%s %s", indent(depth), v.Kind, v))
		return next

	case tagListOpen:
		if !emit(indent(depth) + "list {") {
			return pos
		}
		cur := pos + 1
		for {
			if *stopped {
				return cur
			}
			ct, err := peekTagAt(src, cur)
			if err != nil {
				emit(fmt.Sprintf("%s!error: %v", indent(depth+1), err))
				*stopped = true
				return cur
			}
			if ct == tagListClose {
				emit(indent(depth) + "}")
				return cur + 1
			}
			cur = debugWalk(src, engine, cur, depth+1, emit, stopped)
		}

	case tagDictOpen:
		if !emit(indent(depth) + "dict {") {
			return pos
		}
		cur := pos + 1
		for {
			if *stopped {
				return cur
			}
			ct, err := peekTagAt(src, cur)
			if err != nil {
				emit(fmt.Sprintf("%s!error: %v", indent(depth+1), err))
				*stopped = true
				return cur
			}
			if ct == tagDictClose {
				emit(indent(depth) + "}")
				return cur + 1
			}
			keyVal, next, err := readValueAt(src, engine, cur)
			if err != nil {
				emit(fmt.Sprintf("%s!error: %v", indent(depth+1), err))
				*stopped = true
				return cur
			}
			key, _ := keyVal.AsString()
			if !emit(fmt.Sprintf("%skey %q", indent(depth+1), key)) {
				return next
			}
			cur = debugWalk(src, engine, next, depth+1, emit, stopped)
		}

	case tagArrayOpen:
		kind, shape, _, end, err := readArrayHeader(src, engine, pos)
		if err != nil {
			emit(fmt.Sprintf("%s!error: %v", indent(depth), err))
			*stopped = true
			return pos
		}
		emit(fmt.Sprintf("%sarray%v(%s)", indent(depth), shape, kind))
		return end

	default:
		emit(fmt.Sprintf("%s!error: unexpected tag %#x", indent(depth), byte(t)))
		*stopped = true
		return pos
	}
}

func indent(depth int) string {
	buf := make([]byte, depth*2)
	for i := range buf {
		buf[i] = ' '
	}
	return string(buf)
}
