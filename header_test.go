package huffman

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func exportString(t *testing.T, tree *Tree) string {
	t.Helper()
	var buf bytes.Buffer
	n, err := tree.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if uint64(n) != tree.HeaderSize() {
		t.Errorf("WriteTo wrote %d bytes, HeaderSize() = %d", n, tree.HeaderSize())
	}
	return buf.String()
}

func TestTree_WriteTo(t *testing.T) {
	var freqs Frequencies
	copy(freqs[:], []uint64{5, 9, 12, 13, 16, 45})

	type testRow struct {
		name   string
		freqs  *Frequencies
		expect string
	}

	testData := [...]testRow{
		{"aaab", freqsOf("aaab"), "NNCbZCa"},
		{"single", freqsOf(strings.Repeat("x", 1000)), "NZCx"},
		{"six", &freqs, "NC\x05NNC\x02C\x03NNNZC\x00C\x01C\x04"},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			actual := exportString(t, mustBuildTree(t, row.freqs))
			if actual != row.expect {
				t.Errorf("wrong header:\n\texpect: %q\n\tactual: %q", row.expect, actual)
			}
		})
	}
}

func TestReadTree_RoundTrip(t *testing.T) {
	inputs := []string{
		"aaab",
		strings.Repeat("x", 1000),
		"the quick brown fox jumps over the lazy dog",
		string([]byte{0, 'C', 'N', 'Z', 255, 0, 0}),
	}
	for _, input := range inputs {
		built := mustBuildTree(t, freqsOf(input))
		header := exportString(t, built)

		parsed, err := ReadTree(strings.NewReader(header))
		if err != nil {
			t.Fatalf("ReadTree(%q) failed: %v", header, err)
		}
		for symbol := Symbol(0); symbol <= EOF; symbol++ {
			a, aFound := built.Code(symbol)
			b, bFound := parsed.Code(symbol)
			if aFound != bFound || a != b {
				t.Errorf("%q: symbol %v: built %v (%v), parsed %v (%v)", header, symbol, a, aFound, b, bFound)
			}
		}
		if built.HeaderSize() != parsed.HeaderSize() {
			t.Errorf("%q: header size %d vs %d", header, built.HeaderSize(), parsed.HeaderSize())
		}
		if built.MinSize() != parsed.MinSize() || built.MaxSize() != parsed.MaxSize() {
			t.Errorf("%q: code length range differs", header)
		}
		if again := exportString(t, parsed); again != header {
			t.Errorf("re-export differs:\n\texpect: %q\n\tactual: %q", header, again)
		}
		checkPrefixFree(t, parsed)
		checkKraft(t, parsed)
	}
}

func TestReadTree_StopsAtEndOfHeader(t *testing.T) {
	r := strings.NewReader("NNCbZCa" + "payload")
	if _, err := ReadTree(r); err != nil {
		t.Fatalf("ReadTree failed: %v", err)
	}
	rest, _ := io.ReadAll(r)
	if string(rest) != "payload" {
		t.Errorf("expected %q to remain, got %q", "payload", rest)
	}
}

func TestReadTree_Malformed(t *testing.T) {
	type testRow struct {
		name   string
		header string
		offset int64
		b      byte
	}

	testData := [...]testRow{
		{"unknown-marker", "X", 0, 'X'},
		{"unknown-nested", "NCaQ", 3, 'Q'},
		{"empty", "", 0, 0},
		{"truncated-internal", "N", 1, 0},
		{"truncated-literal", "NC", 2, 0},
		{"truncated-subtree", "NCa", 3, 0},
		{"no-eof", "NCaCb", 5, 0},
		{"duplicate-eof", "NZZ", 2, 'Z'},
		{"duplicate-literal", "NNCaZCa", 6, 'a'},
		{"single-leaf", "Z", 0, 0},
		{"too-deep", strings.Repeat("N", 65), 64, 'N'},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			tree, err := ReadTree(strings.NewReader(row.header))
			if tree != nil {
				t.Errorf("expected nil tree")
			}
			if !errors.Is(err, ErrMalformedTree) {
				t.Fatalf("expected ErrMalformedTree, got %v", err)
			}
			var herr *HeaderError
			if !errors.As(err, &herr) {
				t.Fatalf("expected *HeaderError, got %T", err)
			}
			if herr.Offset != row.offset {
				t.Errorf("expected offset %d, got %d (%v)", row.offset, herr.Offset, err)
			}
			if herr.Byte != row.b {
				t.Errorf("expected byte %q, got %q (%v)", row.b, herr.Byte, err)
			}
		})
	}
}

type failingByteReader struct{}

func (failingByteReader) ReadByte() (byte, error) {
	return 0, io.ErrClosedPipe
}

func TestReadTree_ReaderError(t *testing.T) {
	_, err := ReadTree(failingByteReader{})
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("expected io.ErrClosedPipe, got %v", err)
	}
	if errors.Is(err, ErrMalformedTree) {
		t.Errorf("reader errors must not look like a malformed header")
	}
}
