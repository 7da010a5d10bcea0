package huffman

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestDecoder(t *testing.T) {
	r := bytes.NewReader(aaabEncoded)
	var d Decoder
	if err := d.Build(r); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	expectDump := strings.Join([]string{
		"Tree{\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 2\n",
		"\tHeaderSize() = 7\n",
		"\tPayloadBits() = 0\n",
		"\tCode(97) = \"1\"\n",
		"\tCode(98) = \"00\"\n",
		"\tCode(EOF) = \"01\"\n",
		"}\n",
	}, "")
	if actualDump := dumpString(d.Tree()); expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}

	var out bytes.Buffer
	n, err := d.Decode(r, &out)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if n != 4 || out.String() != "aaab" {
		t.Errorf("expected %q, got %q (%d bytes)", "aaab", out.String(), n)
	}
}

func TestDecoder_Errors(t *testing.T) {
	// Large enough that the decoded prefix overflows any small write
	// buffer before the missing final word is noticed.
	large, err := Compress([]byte(strings.Repeat("abcabcabd", 4000)))
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	largeTruncated := large[:len(large)-WordBytes]

	type testRow struct {
		name  string
		input []byte
		err   error
	}

	testData := [...]testRow{
		{"unknown-marker", []byte("X"), ErrMalformedTree},
		{"no-eof", []byte("NCaCb\xff\x00\x00\x00\x00\x00\x00\x00"), ErrMalformedTree},
		{"header-only", aaabEncoded[:7], ErrTruncatedStream},
		{"partial-word", aaabEncoded[:len(aaabEncoded)-1], ErrTruncatedStream},
		{"no-eof-code", []byte("NNCbZCa\xff\xff\xff\xff\xff\xff\xff\xff"), ErrTruncatedStream},
		{"large-missing-last-word", largeTruncated, ErrTruncatedStream},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			var out bytes.Buffer
			decoded, err := Decompress(row.input)
			if !errors.Is(err, row.err) {
				t.Errorf("expected %v, got %v", row.err, err)
			}
			if decoded != nil {
				t.Errorf("expected no decoded bytes, got %d", len(decoded))
			}

			r := bytes.NewReader(row.input)
			var d Decoder
			if err := d.Build(r); err == nil {
				n, err := d.Decode(r, &out)
				if !errors.Is(err, row.err) {
					t.Errorf("expected %v, got %v", row.err, err)
				}
				if n != 0 {
					t.Errorf("expected 0 bytes reported, got %d", n)
				}
			}
			if out.Len() != 0 {
				t.Errorf("expected no output, got %q", out.Bytes())
			}
		})
	}
}

func TestDecoder_WrongState(t *testing.T) {
	var d Decoder
	if _, err := d.Decode(bytes.NewReader(aaabEncoded), &bytes.Buffer{}); !errors.Is(err, ErrWrongState) {
		t.Errorf("expected ErrWrongState, got %v", err)
	}

	r := bytes.NewReader(aaabEncoded)
	if err := d.Build(r); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if err := d.Build(r); !errors.Is(err, ErrWrongState) {
		t.Errorf("expected ErrWrongState, got %v", err)
	}
}

func TestDecoder_TrailingBytes(t *testing.T) {
	input := append(append([]byte(nil), aaabEncoded...), "trailing"...)
	out, err := Decompress(input)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if string(out) != "aaab" {
		t.Errorf("expected %q, got %q", "aaab", out)
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := [][]byte{
		[]byte("a"),
		[]byte("aaab"),
		[]byte(strings.Repeat("x", 1000)),
		[]byte(strings.Repeat("NCZ", 40)),
		[]byte("the quick brown fox jumps over the lazy dog"),
	}

	rng := rand.New(rand.NewSource(3))
	for round := 0; round < 30; round++ {
		alphabet := 1 + rng.Intn(256)
		input := make([]byte, 1+rng.Intn(5000))
		for i := range input {
			// Skew toward low values so most inputs compress.
			input[i] = byte(rng.Intn(1 + rng.Intn(alphabet)))
		}
		inputs = append(inputs, input)
	}

	for i, input := range inputs {
		encoded, err := CompressAlways(input)
		if err != nil {
			t.Fatalf("input %d: CompressAlways failed: %v", i, err)
		}
		decoded, err := Decompress(encoded)
		if err != nil {
			t.Fatalf("input %d: Decompress failed: %v", i, err)
		}
		if !bytes.Equal(input, decoded) {
			t.Errorf("input %d: round trip mismatch: %d bytes in, %d bytes out", i, len(input), len(decoded))
		}

		compressed, err := Compress(input)
		switch {
		case err == nil:
			if len(compressed) >= len(input) {
				t.Errorf("input %d: Compress returned %d bytes for %d", i, len(compressed), len(input))
			}
			if !bytes.Equal(compressed, encoded) {
				t.Errorf("input %d: Compress and CompressAlways disagree", i)
			}
		case errors.Is(err, ErrNotCompressible):
			if len(encoded) < len(input) {
				t.Errorf("input %d: rejected although %d < %d", i, len(encoded), len(input))
			}
		default:
			t.Errorf("input %d: Compress failed: %v", i, err)
		}
	}
}
