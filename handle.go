package xtype

import (
	"fmt"

	"github.com/creachadair/xtype/errs"
)

// Handle is a Writer-side reference to an open container frame (spec.md
// §4.4, §9 "Sequential construction with 'last' references"). A Handle
// remains valid for the lifetime of the Writer; it becomes usable again to
// detect staleness in O(1) by comparing a generation counter against the
// Writer's current innermost frame, rather than by walking the frame stack.
//
// Writing through a Handle is only valid while its frame is still the
// Writer's innermost open container: the underlying byte stream can only
// ever be appended to at its current end, so a Handle for an enclosing
// container cannot be used again until every descendant container opened
// after it has been closed. Both that case and the case where the
// container has truly been closed are reported as errs.ErrHandleClosed.
type Handle struct {
	w   *Writer
	gen int
}

// frame returns h's frame if it is still the Writer's innermost open
// container, or nil otherwise.
func (h *Handle) frame() *frame {
	f := h.w.top()
	if f == nil || f.gen != h.gen {
		return nil
	}
	return f
}

// Add appends v as the next element of a List, or as the value for the
// most recently written key of a Dict.
func (h *Handle) Add(v Value) error {
	f := h.frame()
	if f == nil {
		return errs.ErrHandleClosed
	}
	if f.kind == frameDict && f.expectKey {
		return fmt.Errorf("%w: dict expects a key, not a value", errs.ErrTypeMismatch)
	}
	buf, err := encodeValue(nil, h.w.engine, v, h.w.strictDup)
	if err != nil {
		return err
	}
	if err := h.w.write(buf); err != nil {
		return err
	}
	if f.kind == frameDict {
		f.expectKey = true
	}
	return nil
}

// AddArray appends a numeric Array as the next List element or Dict value.
func (h *Handle) AddArray(kind ElementKind, shape []int, data []byte) error {
	a, err := NewArray(kind, shape, data)
	if err != nil {
		return err
	}
	return h.Add(FromArray(a))
}

// Key writes the next Dict key. Valid only atop a Dict frame that is
// currently expecting a key.
func (h *Handle) Key(key string) error {
	f := h.frame()
	if f == nil {
		return errs.ErrHandleClosed
	}
	if f.kind != frameDict {
		return fmt.Errorf("%w: Key is only valid on a Dict handle", errs.ErrTypeMismatch)
	}
	if !f.expectKey {
		return fmt.Errorf("%w: dict expects a value, not a key", errs.ErrTypeMismatch)
	}
	if f.seenKeys != nil {
		if _, dup := f.seenKeys[key]; dup {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateKey, key)
		}
		f.seenKeys[key] = struct{}{}
	}
	if err := validateUTF8([]byte(key)); err != nil {
		return err
	}
	buf := appendBlob(nil, h.w.engine, tagString, []byte(key))
	if err := h.w.write(buf); err != nil {
		return err
	}
	f.expectKey = false
	return nil
}

// OpenList opens a new child List as the next List element or Dict value,
// returning a Handle to it.
func (h *Handle) OpenList() (*Handle, error) {
	return h.openChild(frameList, tagListOpen)
}

// OpenDict opens a new child Dict as the next List element or Dict value,
// returning a Handle to it.
func (h *Handle) OpenDict() (*Handle, error) {
	return h.openChild(frameDict, tagDictOpen)
}

func (h *Handle) openChild(kind frameKind, open tag) (*Handle, error) {
	f := h.frame()
	if f == nil {
		return nil, errs.ErrHandleClosed
	}
	if f.kind == frameDict && f.expectKey {
		return nil, fmt.Errorf("%w: dict expects a key, not a value", errs.ErrTypeMismatch)
	}
	if err := h.w.write([]byte{byte(open)}); err != nil {
		return nil, err
	}
	if f.kind == frameDict {
		f.expectKey = true
	}
	child := h.w.pushFrame(kind)
	return &Handle{w: h.w, gen: child.gen}, nil
}

// Close closes h's container, emitting its close tag, provided h is still
// the Writer's innermost open container.
func (h *Handle) Close() error {
	f := h.frame()
	if f == nil {
		return errs.ErrHandleClosed
	}
	return h.w.closeTop()
}
