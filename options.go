package xtype

import (
	"github.com/creachadair/xtype/byteorder"
	"github.com/creachadair/xtype/internal/options"
)

// ByteOrder selects the file-level byte order a Writer or Navigator uses
// (spec.md §6.3). It is not recorded in-band; the caller must supply the
// same ByteOrder on write and on read.
type ByteOrder int

const (
	// AutoByteOrder resolves to the host's native byte order at the moment
	// the Writer or Navigator is constructed. The format does not
	// self-describe endianness, so this is only safe when writer and
	// reader run on the same byte order or the caller otherwise knows it.
	AutoByteOrder ByteOrder = iota
	LittleEndian
	BigEndian
)

func (b ByteOrder) engine() byteorder.Engine {
	switch b {
	case LittleEndian:
		return byteorder.Little()
	case BigEndian:
		return byteorder.Big()
	default:
		return byteorder.Host()
	}
}

// WriterOption configures a Writer at construction time.
type WriterOption = options.Option[*writerConfig]

type writerConfig struct {
	order     ByteOrder
	strictDup bool
}

// WithByteOrder selects the byte order used for every multi-byte scalar and
// array element the Writer emits.
func WithByteOrder(order ByteOrder) WriterOption {
	return options.NoError(func(c *writerConfig) { c.order = order })
}

// WithStrictDuplicateKeys causes Handle.Key to fail with errs.ErrDuplicateKey
// if the key has already been written to the enclosing Dict. It is off by
// default: spec.md leaves duplicate-key handling as an open question and
// only recommends, rather than mandates, a strict mode.
func WithStrictDuplicateKeys() WriterOption {
	return options.NoError(func(c *writerConfig) { c.strictDup = true })
}

// NavOption configures a Navigator at construction time.
type NavOption = options.Option[*navConfig]

type navConfig struct {
	order ByteOrder
}

// WithNavByteOrder selects the byte order the Navigator uses to decode
// multi-byte scalars and array elements. It must match the ByteOrder the
// data was written with.
func WithNavByteOrder(order ByteOrder) NavOption {
	return options.NoError(func(c *navConfig) { c.order = order })
}
