package huffman

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Header markers.
const (
	markInternal = 'N'
	markLiteral  = 'C'
	markEOF      = 'Z'
)

// WriteTo serializes the tree to w as a header.  It implements io.WriterTo.
func (t *Tree) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.Grow(int(t.headerSize))
	t.writeNode(&buf, t.root)
	return buf.WriteTo(w)
}

func (t *Tree) writeNode(buf *bytes.Buffer, index NodeIndex) {
	node := t.nodes[index]
	switch {
	case !node.IsLeaf():
		buf.WriteByte(markInternal)
		t.writeNode(buf, node.Left)
		t.writeNode(buf, node.Right)
	case node.Symbol == EOF:
		buf.WriteByte(markEOF)
	default:
		buf.WriteByte(markLiteral)
		buf.WriteByte(byte(node.Symbol))
	}
}

var _ io.WriterTo = (*Tree)(nil)

// ReadTree parses a header written by Tree.WriteTo.  It consumes exactly the
// bytes the header grammar requires, so r may continue with the payload.
// Each leaf's code is recomputed from its position while parsing.
//
// Any problem with the header is reported as a *HeaderError, which matches
// ErrMalformedTree.  Errors from r other than io.EOF are returned as is.
//
func ReadTree(r io.ByteReader) (*Tree, error) {
	p := headerParser{r: r, tree: newTree(2*NumSymbols - 1)}
	root, err := p.node(Code{})
	if err != nil {
		return nil, err
	}
	if !p.sawEOF {
		return nil, p.fail("no EOF leaf")
	}
	if p.tree.nodes[root].IsLeaf() {
		return nil, &HeaderError{Offset: 0, Reason: "tree has a single leaf"}
	}

	t := p.tree
	t.root = root
	t.tally()
	return t, nil
}

type headerParser struct {
	r      io.ByteReader
	tree   *Tree
	offset int64
	sawEOF bool
}

func (p *headerParser) fail(reason string) *HeaderError {
	return &HeaderError{Offset: p.offset, Reason: reason}
}

// failAt reports a problem with c, the byte most recently read.
func (p *headerParser) failAt(c byte, reason string) *HeaderError {
	return &HeaderError{Offset: p.offset - 1, Byte: c, Reason: reason}
}

func (p *headerParser) readByte() (byte, error) {
	c, err := p.r.ReadByte()
	if errors.Is(err, io.EOF) {
		return 0, p.fail("unexpected end of header")
	}
	if err != nil {
		return 0, fmt.Errorf("huffman: reading header: %w", err)
	}
	p.offset++
	return c, nil
}

func (p *headerParser) node(code Code) (NodeIndex, error) {
	c, err := p.readByte()
	if err != nil {
		return NoNode, err
	}

	switch c {
	case markInternal:
		if code.Size >= MaxCodeSize {
			return NoNode, p.failAt(c, fmt.Sprintf("tree deeper than %d bits", MaxCodeSize))
		}
		index := p.tree.newInternal(0, NoNode, NoNode)
		left, err := p.node(code.Append(false))
		if err != nil {
			return NoNode, err
		}
		right, err := p.node(code.Append(true))
		if err != nil {
			return NoNode, err
		}
		p.tree.nodes[index].Left = left
		p.tree.nodes[index].Right = right
		return index, nil

	case markLiteral:
		b, err := p.readByte()
		if err != nil {
			return NoNode, err
		}
		symbol := Symbol(b)
		if p.tree.leaves[symbol] != NoNode {
			return NoNode, p.failAt(b, fmt.Sprintf("duplicate leaf for symbol %v", symbol))
		}
		index := p.tree.newLeaf(symbol, 0)
		p.tree.nodes[index].Code = code
		return index, nil

	case markEOF:
		if p.sawEOF {
			return NoNode, p.failAt(c, "duplicate EOF leaf")
		}
		p.sawEOF = true
		index := p.tree.newLeaf(EOF, 0)
		p.tree.nodes[index].Code = code
		return index, nil

	default:
		return NoNode, p.failAt(c, fmt.Sprintf("unknown marker %q", c))
	}
}
