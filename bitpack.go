package huffman

import (
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// WordBits is the width of one payload word.  It is fixed so that encoded
// files do not depend on the host's native integer width.
const WordBits = 64

// WordBytes is the width of one payload word in bytes.
const WordBytes = WordBits / 8

const topBit = uint64(1) << (WordBits - 1)

// Packer accumulates codes into 64-bit words, most significant bit first,
// and writes each word as soon as it is full.
type Packer struct {
	bw    *bitio.Writer
	acc   uint64
	n     uint
	words uint64
}

// NewPacker returns a Packer that writes words to w.  Flush must be called
// once all codes have been written.
func NewPacker(w io.Writer) *Packer {
	return &Packer{bw: bitio.NewWriter(w)}
}

// WriteCode appends the bits of hc to the stream.
func (p *Packer) WriteCode(hc Code) error {
	writeLen := uint(hc.Size)
	writeVal := hc.Bits
	for writeLen != 0 {
		outLen := min(writeLen, WordBits-p.n)
		rest := writeLen - outLen

		// Shifts of a uint64 by 64 yield 0, which is what an empty
		// accumulator needs when a whole word arrives at once.
		p.acc = (p.acc << outLen) | (writeVal >> rest)
		p.n += outLen
		writeVal &= (uint64(1) << rest) - 1
		writeLen = rest

		if p.n == WordBits {
			if err := p.emit(p.acc); err != nil {
				return err
			}
			p.acc = 0
			p.n = 0
		}
	}
	return nil
}

// Flush left-justifies any bits still held, writes them as a final word, and
// flushes the underlying writer.
func (p *Packer) Flush() error {
	if p.n != 0 {
		word := p.acc << (WordBits - p.n)
		if err := p.emit(word); err != nil {
			return err
		}
		p.acc = 0
		p.n = 0
	}
	if err := p.bw.Close(); err != nil {
		return fmt.Errorf("huffman: flushing payload: %w", err)
	}
	return nil
}

// Words returns the number of words written so far.
func (p *Packer) Words() uint64 {
	return p.words
}

func (p *Packer) emit(word uint64) error {
	if err := p.bw.WriteBits(word, WordBits); err != nil {
		return fmt.Errorf("huffman: writing payload word %d: %w", p.words, err)
	}
	p.words++
	return nil
}

// Unpacker reads 64-bit words and hands out their bits from the most
// significant down.
type Unpacker struct {
	br    *bitio.Reader
	word  uint64
	mask  uint64
	words uint64
}

// NewUnpacker returns an Unpacker that reads words from r.
func NewUnpacker(r io.Reader) *Unpacker {
	return &Unpacker{br: bitio.NewReader(r)}
}

// ReadBit returns the next bit, reading a new word when the current one is
// used up.  It returns ErrTruncatedStream if the stream ends at or inside a
// word.
func (u *Unpacker) ReadBit() (bool, error) {
	if u.mask == 0 {
		word, err := u.br.ReadBits(WordBits)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, fmt.Errorf("%w: payload ends after %d words", ErrTruncatedStream, u.words)
		}
		if err != nil {
			return false, fmt.Errorf("huffman: reading payload word %d: %w", u.words, err)
		}
		u.word = word
		u.mask = topBit
		u.words++
	}
	bit := u.word&u.mask != 0
	u.mask >>= 1
	return bit, nil
}
