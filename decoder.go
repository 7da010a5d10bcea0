package huffman

import (
	"bytes"
	"fmt"
	"io"
)

type decoderState byte

const (
	decoderIdle decoderState = iota
	decoderParsingTree
	decoderRejected
	decoderReady
	decoderDecoding
	decoderDone
)

// Decoder runs one decoding session: Build, then Decode.  The zero value is
// ready to use.
type Decoder struct {
	state decoderState
	tree  *Tree
}

// Build parses the tree header from r.  It returns an error matching
// ErrMalformedTree if the header is invalid.  Build reads no further than
// the end of the header, so the same r can be passed to Decode.
func (d *Decoder) Build(r io.ByteReader) error {
	if d.state != decoderIdle {
		return fmt.Errorf("%w: Build called twice", ErrWrongState)
	}
	d.state = decoderParsingTree
	tree, err := ReadTree(r)
	if err != nil {
		d.state = decoderRejected
		return err
	}
	d.tree = tree
	d.state = decoderReady
	return nil
}

// Decode reads payload words from r and writes the decoded bytes to w until
// the EOF code is reached.  The decoded bytes are held in memory and only
// written to w once EOF is decoded; if the payload runs out first, Decode
// writes nothing and returns an error matching ErrTruncatedStream.
func (d *Decoder) Decode(r io.Reader, w io.Writer) (int64, error) {
	if d.state != decoderReady {
		return 0, fmt.Errorf("%w: Decode requires a parsed tree", ErrWrongState)
	}
	d.state = decoderDecoding

	nodes := d.tree.nodes
	root := d.tree.root
	u := NewUnpacker(r)
	var buf bytes.Buffer

	current := root
	for {
		right, err := u.ReadBit()
		if err != nil {
			return 0, err
		}
		if right {
			current = nodes[current].Right
		} else {
			current = nodes[current].Left
		}

		node := nodes[current]
		if !node.IsLeaf() {
			continue
		}
		if node.Symbol == EOF {
			break
		}
		buf.WriteByte(byte(node.Symbol))
		current = root
	}

	written, err := buf.WriteTo(w)
	if err != nil {
		return written, fmt.Errorf("huffman: writing output: %w", err)
	}
	d.state = decoderDone
	return written, nil
}

// Tree returns the tree parsed by Build, or nil if Build has not succeeded.
func (d *Decoder) Tree() *Tree {
	return d.tree
}
