// Package huffman implements a static, byte-oriented Huffman codec.
//
// An encoding session counts byte frequencies, builds a Huffman tree over
// the 256 byte values plus an end-of-stream sentinel, writes the tree as a
// compact header, and then packs one code per input byte (followed by the
// sentinel's code) into 64-bit words.  A decoding session parses the header
// back into an identical tree and walks it bit by bit until the sentinel is
// reached.
//
// Header grammar, depth first and left before right:
//
//     tree := 'N' tree tree   internal node
//           | 'C' <byte>      literal leaf
//           | 'Z'             end-of-stream leaf
//
// The payload follows the header directly.  It is a sequence of 64-bit
// words, each stored most significant byte first, holding the concatenated
// codes most significant bit first.  The final word is zero padded.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffman
