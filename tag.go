package xtype

// tag is the one-byte discriminator at the head of every encoded value.
// The assignment below is a codec implementation detail, but it must stay
// fixed: it is the only grammar the format has.
type tag byte

const (
	tagNull tag = 0x00

	tagBoolFalse tag = 0x01
	tagBoolTrue  tag = 0x02

	tagInt8  tag = 0x10
	tagInt16 tag = 0x11
	tagInt32 tag = 0x12
	tagInt64 tag = 0x13

	tagUint8  tag = 0x14
	tagUint16 tag = 0x15
	tagUint32 tag = 0x16
	tagUint64 tag = 0x17

	tagFloat32 tag = 0x20
	tagFloat64 tag = 0x21

	tagString tag = 0x30
	tagBytes  tag = 0x31

	tagListOpen  tag = 0x40
	tagListClose tag = 0x41

	tagDictOpen  tag = 0x42
	tagDictClose tag = 0x43

	// tagArrayOpen has no matching close tag: an Array is atomic from the
	// tree-structure perspective and auto-closes once its declared payload
	// has been written (spec.md §4.1).
	tagArrayOpen tag = 0x50
)

// scalarWidth returns the number of payload bytes that follow t for a fixed-
// width scalar tag, or -1 if t is not a fixed-width scalar tag.
func scalarWidth(t tag) int {
	switch t {
	case tagNull, tagBoolFalse, tagBoolTrue:
		return 0
	case tagInt8, tagUint8:
		return 1
	case tagInt16, tagUint16:
		return 2
	case tagInt32, tagUint32, tagFloat32:
		return 4
	case tagInt64, tagUint64, tagFloat64:
		return 8
	default:
		return -1
	}
}

// isContainerOpen reports whether t opens a List or Dict frame.
func isContainerOpen(t tag) bool {
	return t == tagListOpen || t == tagDictOpen
}

// closeFor returns the close tag matching an open tag.
func closeFor(t tag) tag {
	switch t {
	case tagListOpen:
		return tagListClose
	case tagDictOpen:
		return tagDictClose
	default:
		panic("closeFor: not a container open tag")
	}
}
