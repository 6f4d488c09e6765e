// Package xtype implements a self-describing binary value codec: scalars,
// strings, byte blobs, ordered Dicts, ordered Lists and dense N-dimensional
// numeric Arrays, serialized as a flat stream of one-byte-tagged values.
//
// Writer encodes values either whole, via WriteValue, or incrementally
// through container Handles returned by OpenList/OpenDict, so a caller can
// build a large List or Dict without holding the whole thing in memory.
// Navigator decodes the same stream lazily and with random access: Get
// resolves a path of Selectors into a container without materializing
// values it does not need, and Array access seeks directly to the selected
// elements' bytes.
package xtype
