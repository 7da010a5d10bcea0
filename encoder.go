package huffman

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

type encoderState byte

const (
	encoderIdle encoderState = iota
	encoderCounting
	encoderTreeBuilt
	encoderRejected
	encoderExporting
	encoderPacking
	encoderDone
)

// Encoder runs one encoding session: Build, then ExportTree, then Encode.
// The zero value is ready to use.
type Encoder struct {
	// AllowExpansion, if set, makes Build accept input whose encoded form
	// is not smaller than the input itself.
	AllowExpansion bool

	state     encoderState
	tree      *Tree
	inputSize uint64
}

// Build reads all of r, tallies byte frequencies, and builds the tree.  It
// returns ErrEmptyInput if r holds no bytes, or ErrNotCompressible if the
// encoded form would not be smaller than the input.
func (e *Encoder) Build(r io.Reader) error {
	if e.state != encoderIdle {
		return fmt.Errorf("%w: Build called twice", ErrWrongState)
	}
	e.state = encoderCounting
	freqs, err := CountFrequencies(r)
	if err != nil {
		e.state = encoderIdle
		return err
	}
	return e.init(&freqs)
}

// Init builds the tree from frequencies counted elsewhere, for instance by
// CountFrequenciesAt.  It fails in the same ways as Build.
func (e *Encoder) Init(freqs *Frequencies) error {
	if e.state != encoderIdle {
		return fmt.Errorf("%w: Init called after Build", ErrWrongState)
	}
	return e.init(freqs)
}

func (e *Encoder) init(freqs *Frequencies) error {
	e.inputSize = freqs.Total()
	tree, err := BuildTree(freqs)
	if err != nil {
		e.state = encoderRejected
		return err
	}
	e.tree = tree

	if encoded := tree.EncodedSize(); !e.AllowExpansion && encoded >= e.inputSize {
		e.state = encoderRejected
		return fmt.Errorf("%w: %d bytes would encode to %d bytes", ErrNotCompressible, e.inputSize, encoded)
	}
	e.state = encoderTreeBuilt
	return nil
}

// ExportTree writes the tree header to w.
func (e *Encoder) ExportTree(w io.Writer) (int64, error) {
	if e.state != encoderTreeBuilt {
		return 0, fmt.Errorf("%w: ExportTree requires a built tree", ErrWrongState)
	}
	e.state = encoderExporting
	return e.tree.WriteTo(w)
}

// Encode reads r from its start, which must hold the same bytes given to
// Build, and writes the packed codes of every byte followed by EOF's code.
// ExportTree must have been called first.
func (e *Encoder) Encode(r io.Reader, w io.Writer) error {
	if e.state != encoderExporting {
		return fmt.Errorf("%w: Encode requires the tree to be exported first", ErrWrongState)
	}
	e.state = encoderPacking

	var codes [NumSymbols]Code
	for symbol := range codes {
		codes[symbol], _ = e.tree.Code(Symbol(symbol))
	}

	br := bufio.NewReader(r)
	p := NewPacker(w)
	var count uint64
	for {
		b, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("huffman: reading input: %w", err)
		}
		hc := codes[b]
		if hc.Size == 0 {
			return fmt.Errorf("huffman: byte %d at offset %d was not seen by Build", b, count)
		}
		if err := p.WriteCode(hc); err != nil {
			return err
		}
		count++
	}
	if count != e.inputSize {
		return fmt.Errorf("huffman: input changed between Build and Encode: %d bytes, expected %d", count, e.inputSize)
	}

	if err := p.WriteCode(codes[EOF]); err != nil {
		return err
	}
	if err := p.Flush(); err != nil {
		return err
	}
	e.state = encoderDone
	return nil
}

// Tree returns the tree built by Build, or nil before Build.  The tree is
// available even after Build returned ErrNotCompressible.
func (e *Encoder) Tree() *Tree {
	return e.tree
}

// InputSize returns the number of bytes counted by Build.
func (e *Encoder) InputSize() uint64 {
	return e.inputSize
}
