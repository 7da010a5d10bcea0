package huffman

import (
	"strconv"
)

// Symbol represents a symbol in the codec's alphabet: the byte values 0
// through 255 plus the EOF sentinel.  Negative symbols are not valid.
type Symbol int32

// EOF is the end-of-stream sentinel.  It is appended exactly once to every
// encoded stream.
const EOF = Symbol(256)

// NumSymbols is the size of the alphabet, including EOF.
const NumSymbols = int(EOF) + 1

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol(-1)

// IsLiteral returns true iff this Symbol stands for a byte value.
func (s Symbol) IsLiteral() bool {
	return s >= 0 && s < EOF
}

// String returns the string representation of this Symbol.
func (s Symbol) String() string {
	switch {
	case s == EOF:
		return "EOF"
	case s < 0 || s > EOF:
		return "Symbol(" + strconv.Itoa(int(s)) + ")"
	default:
		return strconv.Itoa(int(s))
	}
}
