package xtype

import "io"

// memSink is a minimal in-memory AppendableSink used by the writer and
// append-mode tests: it backs a Writer with a plain growable byte slice
// while also satisfying io.ReaderAt and Truncate, the operations Navigator
// and OpenAppend need respectively.
type memSink struct {
	data []byte
}

func (m *memSink) Write(p []byte) (int, error) {
	m.data = append(m.data, p...)
	return len(p), nil
}

func (m *memSink) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *memSink) Truncate(size int64) error {
	if size < 0 || size > int64(len(m.data)) {
		return io.EOF
	}
	m.data = m.data[:size]
	return nil
}

func (m *memSink) Size() (int64, error) {
	return int64(len(m.data)), nil
}
