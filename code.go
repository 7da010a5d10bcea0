package huffman

import (
	"fmt"
	"strconv"
)

// MaxCodeSize is the longest code, in bits, that the codec will assign or
// accept.  It matches WordBits so a code always fits in one register.
const MaxCodeSize = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The most significant of
	// the Size low bits is the first bit, i.e. the bit chosen at the root.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	return Code{Size: size, Bits: bits}
}

// Append returns the Code extended by one bit: 0 for a left branch, 1 for
// a right branch.
func (hc Code) Append(right bool) Code {
	bits := hc.Bits << 1
	if right {
		bits |= 1
	}
	return Code{Size: hc.Size + 1, Bits: bits}
}

// IsPrefixOf returns true iff every bit of hc matches the leading bits of
// other.  A Code is a prefix of itself.
func (hc Code) IsPrefixOf(other Code) bool {
	if hc.Size > other.Size {
		return false
	}
	if hc.Size == 0 {
		return true
	}
	return other.Bits>>(other.Size-hc.Size) == hc.Bits
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	format := "%0" + strconv.FormatUint(uint64(hc.Size), 10) + "b"
	return strconv.Quote(fmt.Sprintf(format, hc.Bits))
}

var _ fmt.Stringer = Code{}
