package huffman

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// NodeIndex identifies a Node within the Tree that owns it.
type NodeIndex int32

// NoNode is the NodeIndex of a missing child.
const NoNode = NodeIndex(-1)

// Node is one vertex of a Tree.  A leaf has Left == Right == NoNode and a
// valid Symbol; an internal node has two children and Symbol ==
// InvalidSymbol.
type Node struct {
	Symbol Symbol
	Freq   uint64
	Left   NodeIndex
	Right  NodeIndex

	// Code is the root-to-leaf path of a leaf.  It is zero for internal
	// nodes.
	Code Code
}

// IsLeaf returns true iff this Node has no children.
func (n Node) IsLeaf() bool {
	return n.Left == NoNode
}

// Tree is a Huffman tree.  All nodes live in a single arena and refer to
// their children by index, so a Tree is released as a unit.
type Tree struct {
	nodes       []Node
	root        NodeIndex
	leaves      [NumSymbols]NodeIndex
	headerSize  uint64
	payloadBits uint64
	minSize     byte
	maxSize     byte
}

func newTree(capacity int) *Tree {
	t := &Tree{
		nodes: make([]Node, 0, capacity),
		root:  NoNode,
	}
	for symbol := range t.leaves {
		t.leaves[symbol] = NoNode
	}
	return t
}

func (t *Tree) newLeaf(symbol Symbol, freq uint64) NodeIndex {
	index := NodeIndex(len(t.nodes))
	t.nodes = append(t.nodes, Node{Symbol: symbol, Freq: freq, Left: NoNode, Right: NoNode})
	t.leaves[symbol] = index
	return index
}

func (t *Tree) newInternal(freq uint64, left NodeIndex, right NodeIndex) NodeIndex {
	index := NodeIndex(len(t.nodes))
	t.nodes = append(t.nodes, Node{Symbol: InvalidSymbol, Freq: freq, Left: left, Right: right})
	return index
}

// BuildTree constructs a Huffman tree from the given frequencies.  Symbols
// with a frequency of zero are left out; EOF is always included with a
// frequency of 1.  Nodes of equal frequency are merged in the order they
// were created, which makes the result reproducible.
//
// BuildTree returns ErrEmptyInput if no literal has a nonzero frequency.
//
func BuildTree(freqs *Frequencies) (*Tree, error) {
	if freqs.Total() == 0 {
		return nil, ErrEmptyInput
	}

	t := newTree(2*NumSymbols - 1)
	h := freqHeap{tree: t, list: make([]NodeIndex, 0, NumSymbols)}
	for symbol := Symbol(0); symbol < EOF; symbol++ {
		if freq := freqs[symbol]; freq != 0 {
			h.list = append(h.list, t.newLeaf(symbol, freq))
		}
	}
	h.list = append(h.list, t.newLeaf(EOF, 1))
	h.Init()

	// Pop the two cheapest nodes and push their parent until one remains.
	// The first node removed becomes the left child.
	for h.Len() > 1 {
		a := heap.Pop(&h).(NodeIndex)
		b := heap.Pop(&h).(NodeIndex)
		freqSum := t.nodes[a].Freq + t.nodes[b].Freq
		assert.Assertf(freqSum >= t.nodes[a].Freq, "frequency overflow merging nodes %d and %d", a, b)
		heap.Push(&h, t.newInternal(freqSum, a, b))
	}
	t.root = heap.Pop(&h).(NodeIndex)

	t.assignCodes()
	t.tally()
	return t, nil
}

// assignCodes walks the tree from the root and gives every leaf its path,
// appending 0 for each left branch and 1 for each right branch.
func (t *Tree) assignCodes() {
	type stackItem struct {
		index NodeIndex
		code  Code
	}

	stack := make([]stackItem, 0, MaxCodeSize)
	stack = append(stack, stackItem{index: t.root})
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := &t.nodes[top.index]
		if node.IsLeaf() {
			node.Code = top.code
			continue
		}

		assert.Assertf(top.code.Size < MaxCodeSize, "code for node %d exceeds %d bits", top.index, MaxCodeSize)
		stack = append(stack, stackItem{node.Right, top.code.Append(true)})
		stack = append(stack, stackItem{node.Left, top.code.Append(false)})
	}
}

// tally computes the header size, the payload size, and the code length
// range from nodes whose codes are already assigned.
func (t *Tree) tally() {
	t.headerSize = 0
	t.payloadBits = 0
	t.minSize = 0
	t.maxSize = 0

	hasMinMax := false
	for _, node := range t.nodes {
		if !node.IsLeaf() {
			t.headerSize++
			continue
		}

		if node.Symbol == EOF {
			t.headerSize++
		} else {
			t.headerSize += 2
		}
		t.payloadBits += uint64(node.Code.Size) * node.Freq

		size := node.Code.Size
		if !hasMinMax {
			hasMinMax = true
			t.minSize = size
			t.maxSize = size
		} else if t.minSize > size {
			t.minSize = size
		} else if t.maxSize < size {
			t.maxSize = size
		}
	}
}

// Root returns the index of the root node.
func (t *Tree) Root() NodeIndex {
	return t.root
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node with the given index.
func (t *Tree) Node(index NodeIndex) Node {
	assert.Assertf(index >= 0 && int(index) < len(t.nodes), "node index %d out of range [0, %d)", index, len(t.nodes))
	return t.nodes[index]
}

// Code returns the code assigned to symbol.  The second result is false if
// symbol has no leaf in this tree.
func (t *Tree) Code(symbol Symbol) (Code, bool) {
	if symbol < 0 || symbol > EOF {
		return Code{}, false
	}
	index := t.leaves[symbol]
	if index == NoNode {
		return Code{}, false
	}
	return t.nodes[index].Code, true
}

// HeaderSize is the length in bytes of the serialized tree: one byte per
// internal node, two per literal leaf, and one for the EOF leaf.
func (t *Tree) HeaderSize() uint64 {
	return t.headerSize
}

// PayloadBits is the sum over leaves of code length times frequency.  It is
// zero for a tree read from a header, since headers carry no frequencies.
func (t *Tree) PayloadBits() uint64 {
	return t.payloadBits
}

// EncodedSize is the total size in bytes of the header plus the payload
// rounded up to whole words.
func (t *Tree) EncodedSize() uint64 {
	return t.headerSize + wordsFor(t.payloadBits)*WordBytes
}

// MinSize is the bit length of the shortest code.
func (t *Tree) MinSize() byte {
	return t.minSize
}

// MaxSize is the bit length of the longest code.
func (t *Tree) MaxSize() byte {
	return t.maxSize
}

// Dump writes a programmer-readable debugging dump of the Tree to the given
// writer.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", t.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", t.maxSize)
	fmt.Fprintf(&buf, "\tHeaderSize() = %d\n", t.headerSize)
	fmt.Fprintf(&buf, "\tPayloadBits() = %d\n", t.payloadBits)
	for symbol := Symbol(0); symbol <= EOF; symbol++ {
		if hc, found := t.Code(symbol); found {
			fmt.Fprintf(&buf, "\tCode(%v) = %s\n", symbol, hc)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// type freqHeap {{{

type freqHeap struct {
	tree *Tree
	list []NodeIndex
}

func (h *freqHeap) Init() {
	heap.Init(h)
}

func (h *freqHeap) Len() int {
	return len(h.list)
}

func (h *freqHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *freqHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	af, bf := h.tree.nodes[a].Freq, h.tree.nodes[b].Freq
	if af != bf {
		return af < bf
	}
	return a < b
}

func (h *freqHeap) Push(x interface{}) {
	h.list = append(h.list, x.(NodeIndex))
}

func (h *freqHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*freqHeap)(nil)

// }}}
