package huffman

// wordsFor returns the number of whole payload words needed to hold the
// given number of bits.
func wordsFor(bits uint64) uint64 {
	return (bits + WordBits - 1) / WordBits
}
