package xtype

import (
	"fmt"
	"io"

	"github.com/creachadair/xtype/byteorder"
	"github.com/creachadair/xtype/errs"
	"github.com/creachadair/xtype/internal/options"
)

// AppendableSink is the capability a sink must have to support append mode:
// in addition to sequential writes, the Writer needs to read the file's
// last byte and truncate it away before resuming (spec.md §4.4).
type AppendableSink interface {
	io.Writer
	io.ReaderAt
	Truncate(size int64) error
	// Size reports the current length of the sink's contents.
	Size() (int64, error)
}

// frameKind identifies whether an open container frame is a List or Dict.
// Arrays never get a frame: they are atomic from the tree-structure
// perspective (spec.md §4.4).
type frameKind uint8

const (
	frameList frameKind = iota
	frameDict
)

// frame is the Writer-side bookkeeping record for one open container
// (spec.md §4.4 "State").
type frame struct {
	kind frameKind
	gen  int

	// expectKey is true atop a Dict frame when the next token must be a
	// key, false when it must be a value.
	expectKey bool

	seenKeys map[string]struct{} // only populated when strict mode is on
}

// Writer is the encoder state machine from spec.md §4.4: a cursor over an
// append-mode byte sink that tracks the stack of open containers and
// supports both whole-value writes and sequential writes via container
// Handles that outlive the call that created them.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	sink      io.Writer
	engine    byteorder.Engine
	strictDup bool

	frames []frame
	nextGen int

	rootStarted bool
	rootDone    bool
	rootIsContainer bool

	closed bool
}

// Open creates a Writer that writes a new root value to sink from scratch.
func Open(sink io.Writer, opts ...WriterOption) (*Writer, error) {
	cfg := &writerConfig{order: AutoByteOrder}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	return &Writer{
		sink:      sink,
		engine:    cfg.order.engine(),
		strictDup: cfg.strictDup,
	}, nil
}

// OpenAppend re-opens a sink that already holds one complete root List or
// Dict value, positioning the Writer to add more children to that root
// (spec.md §4.4 "Append mode"). If sink is empty, if its last byte is not
// the close tag of a List or Dict, or if its first byte is not the matching
// open tag (as for a scalar, String, Bytes or Array root), OpenAppend fails
// with errs.ErrRootNotExtensible rather than touch the file.
func OpenAppend(sink AppendableSink, opts ...WriterOption) (*Writer, error) {
	cfg := &writerConfig{order: AutoByteOrder}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	w := &Writer{
		sink:      sink,
		engine:    cfg.order.engine(),
		strictDup: cfg.strictDup,
	}

	size, err := sink.Size()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrIoError, err)
	}
	if size == 0 {
		return nil, fmt.Errorf("%w: empty file has no root to append to", errs.ErrRootNotExtensible)
	}

	var last [1]byte
	if _, err := sink.ReadAt(last[:], size-1); err != nil {
		return nil, fmt.Errorf("%w: reading trailing byte: %v", errs.ErrIoError, err)
	}

	var kind frameKind
	var open tag
	switch tag(last[0]) {
	case tagListClose:
		kind, open = frameList, tagListOpen
	case tagDictClose:
		kind, open = frameDict, tagDictOpen
	default:
		return nil, fmt.Errorf("%w: trailing byte %#x is not a List/Dict close tag", errs.ErrRootNotExtensible, last[0])
	}

	var first [1]byte
	if _, err := sink.ReadAt(first[:], 0); err != nil {
		return nil, fmt.Errorf("%w: reading leading byte: %v", errs.ErrIoError, err)
	}
	if tag(first[0]) != open {
		return nil, fmt.Errorf("%w: root tag %#x does not match trailing byte %#x", errs.ErrRootNotExtensible, first[0], last[0])
	}

	if err := sink.Truncate(size - 1); err != nil {
		return nil, fmt.Errorf("%w: truncating terminator: %v", errs.ErrIoError, err)
	}

	w.rootStarted = true
	w.rootIsContainer = true
	w.pushFrame(kind)
	return w, nil
}

func (w *Writer) pushFrame(kind frameKind) *frame {
	f := frame{kind: kind, gen: w.nextGen, expectKey: kind == frameDict}
	if w.strictDup && kind == frameDict {
		f.seenKeys = make(map[string]struct{})
	}
	w.nextGen++
	w.frames = append(w.frames, f)
	return &w.frames[len(w.frames)-1]
}

// top returns the innermost open frame, or nil if none is open.
func (w *Writer) top() *frame {
	if len(w.frames) == 0 {
		return nil
	}
	return &w.frames[len(w.frames)-1]
}

// canWriteRoot reports whether a fresh root value may be started.
func (w *Writer) canWriteRoot() error {
	if w.closed {
		return fmt.Errorf("%w: writer is closed", errs.ErrIoError)
	}
	if w.rootStarted {
		return fmt.Errorf("root value already started")
	}
	return nil
}

func (w *Writer) write(buf []byte) error {
	if _, err := w.sink.Write(buf); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIoError, err)
	}
	return nil
}

// WriteValue writes v as the file's entire root value, recursively
// (spec.md §6.2 write_value). It is only valid before any other root write
// or container has been started.
func (w *Writer) WriteValue(v Value) error {
	if err := w.canWriteRoot(); err != nil {
		return err
	}
	buf, err := encodeValue(nil, w.engine, v, w.strictDup)
	if err != nil {
		return err
	}
	if err := w.write(buf); err != nil {
		return err
	}
	w.rootStarted = true
	w.rootDone = true
	w.rootIsContainer = v.Kind == KindList || v.Kind == KindDict
	return nil
}

// WriteArray writes a numeric Array as the file's entire root value. Arrays
// are atomic: spec.md §4.4 "Write-numeric-array".
func (w *Writer) WriteArray(kind ElementKind, shape []int, data []byte) error {
	a, err := NewArray(kind, shape, data)
	if err != nil {
		return err
	}
	return w.WriteValue(FromArray(a))
}

// OpenList opens a new List as the file's root container and returns a
// Handle to it.
func (w *Writer) OpenList() (*Handle, error) {
	if err := w.canWriteRoot(); err != nil {
		return nil, err
	}
	if err := w.write([]byte{byte(tagListOpen)}); err != nil {
		return nil, err
	}
	w.rootStarted = true
	w.rootIsContainer = true
	f := w.pushFrame(frameList)
	return &Handle{w: w, gen: f.gen}, nil
}

// OpenDict opens a new Dict as the file's root container and returns a
// Handle to it.
func (w *Writer) OpenDict() (*Handle, error) {
	if err := w.canWriteRoot(); err != nil {
		return nil, err
	}
	if err := w.write([]byte{byte(tagDictOpen)}); err != nil {
		return nil, err
	}
	w.rootStarted = true
	w.rootIsContainer = true
	f := w.pushFrame(frameDict)
	return &Handle{w: w, gen: f.gen}, nil
}

// Last returns a Handle to the innermost still-open container, or ok=false
// if no container is currently open.
func (w *Writer) Last() (h *Handle, ok bool) {
	f := w.top()
	if f == nil {
		return nil, false
	}
	return &Handle{w: w, gen: f.gen}, true
}

// Close closes every still-open container in LIFO order (spec.md §4.4
// "Close file") and marks the Writer closed. It is safe to call Close on an
// already-closed Writer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	for len(w.frames) > 0 {
		if err := w.closeTop(); err != nil {
			w.closed = true
			return err
		}
	}
	w.closed = true
	return nil
}

func (w *Writer) closeTop() error {
	f := w.top()
	if f == nil {
		return nil
	}
	var ct tag
	switch f.kind {
	case frameList:
		ct = tagListClose
	case frameDict:
		ct = tagDictClose
	}
	if err := w.write([]byte{byte(ct)}); err != nil {
		return err
	}
	w.frames = w.frames[:len(w.frames)-1]
	if len(w.frames) == 0 {
		w.rootDone = true
	}
	return nil
}
