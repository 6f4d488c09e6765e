// Package errs defines the sentinel errors returned by the xtype codec.
//
// Callers should compare against these with errors.Is; the codec wraps each
// sentinel with call-specific detail via fmt.Errorf("%w: ...", sentinel, ...).
package errs

import "errors"

var (
	// ErrUnexpectedTag is returned when a byte at the cursor does not match
	// any tag the reader expects in the current context.
	ErrUnexpectedTag = errors.New("unexpected tag")

	// ErrTruncatedPayload is returned when the source ends before a value's
	// declared length has been fully consumed.
	ErrTruncatedPayload = errors.New("truncated payload")

	// ErrInvalidLength is returned when a length prefix has an unrecognized
	// tier discriminator. A length that runs past the end of the source is
	// reported as ErrTruncatedPayload.
	ErrInvalidLength = errors.New("invalid length")

	// ErrInvalidUTF8 is returned when a String value's bytes are not valid
	// UTF-8, either on decode or (for the writer) on encode.
	ErrInvalidUTF8 = errors.New("invalid utf-8")

	// ErrUnknownElementKind is returned for an Array element kind tag the
	// codec does not recognize.
	ErrUnknownElementKind = errors.New("unknown array element kind")

	// ErrKeyNotFound is returned when a Dict lookup exhausts all keys
	// without finding the requested one.
	ErrKeyNotFound = errors.New("key not found")

	// ErrIndexOutOfRange is returned when an integer selector falls outside
	// the bounds of the target List or Array axis.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrTypeMismatch is returned when a selector is not applicable to the
	// kind of the value it is applied against.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrShapeMismatch is returned when a selector tuple names more axes
	// than an Array has.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidSlice is returned for a slice selector with a zero step.
	ErrInvalidSlice = errors.New("invalid slice")

	// ErrHandleClosed is returned when a write is attempted through a
	// container Handle whose container has already been closed.
	ErrHandleClosed = errors.New("handle closed")

	// ErrRootNotExtensible is returned when append mode is requested against
	// a file whose root is a scalar, or whose trailing byte is not the
	// close tag of a List or Dict root.
	ErrRootNotExtensible = errors.New("root not extensible")

	// ErrDuplicateKey is returned by Handle.Key in strict mode when a key
	// has already been written to the enclosing Dict.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrIoError wraps errors returned by a Writer's underlying sink, and is
	// also returned for a root write on a closed Writer. Read failures from a
	// Navigator's source are reported as ErrTruncatedPayload.
	ErrIoError = errors.New("i/o error")
)
