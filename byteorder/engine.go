// Package byteorder provides the file-level byte order used by the xtype
// codec.
//
// It combines encoding/binary's ByteOrder and AppendByteOrder interfaces
// into one Engine, the way github.com/arloliu/mebo/endian does, so a single
// value can both decode existing buffers and append new ones without an
// intermediate allocation.
package byteorder

import (
	"encoding/binary"
	"unsafe"
)

// Engine is the byte order a Writer or Navigator uses for every multi-byte
// integer and float in a container. It is a file-level attribute: spec.md
// requires it to be chosen once, out of band, and applied uniformly.
type Engine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Little returns the little-endian Engine.
func Little() Engine { return binary.LittleEndian }

// Big returns the big-endian Engine.
func Big() Engine { return binary.BigEndian }

// Host returns the Engine matching this process's native byte order. This
// is what "auto" resolves to at Writer/Navigator construction time; the
// format does not record byte order in-band, so a file written with Host()
// on a little-endian machine is only portable to readers that are told, out
// of band, to use little-endian.
func Host() Engine {
	if hostIsBigEndian() {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// hostIsBigEndian uses a fixed integer value to determine the host's byte
// order.
func hostIsBigEndian() bool {
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	return b[0] == 0x01
}

// IsHostLittleEndian reports whether the host's native byte order is
// little-endian.
func IsHostLittleEndian() bool {
	return !hostIsBigEndian()
}

// Equal reports whether two Engines encode the same byte order.
func Equal(a, b Engine) bool {
	return a == b
}
