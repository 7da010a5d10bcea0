package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when an encode is requested on a source
	// that holds no bytes.
	ErrEmptyInput = errors.New("huffman: empty input")

	// ErrNotCompressible is returned when the encoded form (header plus
	// payload words) would not be strictly smaller than the input.
	ErrNotCompressible = errors.New("huffman: encoded output is not smaller than input")

	// ErrMalformedTree is returned when a tree header does not match the
	// header grammar or does not hold exactly one EOF leaf.
	ErrMalformedTree = errors.New("huffman: malformed tree header")

	// ErrTruncatedStream is returned when the payload ends before the EOF
	// code has been decoded.
	ErrTruncatedStream = errors.New("huffman: truncated payload")

	// ErrWrongState is returned when an Encoder or Decoder method is called
	// out of order.
	ErrWrongState = errors.New("huffman: operation not valid in current state")
)

// HeaderError describes why a tree header was rejected.  It always matches
// ErrMalformedTree under errors.Is.
type HeaderError struct {
	// Offset is the zero-based position of the offending byte within the
	// header.
	Offset int64

	// Byte is the offending byte.  It is zero when the header ended early
	// or the problem is not tied to a single byte.
	Byte byte

	// Reason is a short description of the problem.
	Reason string
}

// Error fulfills the error interface.
func (err *HeaderError) Error() string {
	return fmt.Sprintf("%v: offset %d: %s", ErrMalformedTree, err.Offset, err.Reason)
}

// Unwrap returns ErrMalformedTree.
func (err *HeaderError) Unwrap() error {
	return ErrMalformedTree
}

var _ error = (*HeaderError)(nil)
