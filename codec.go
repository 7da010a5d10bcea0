package huffman

import (
	"bytes"
)

// Compress encodes src in one call: header followed by payload.
func Compress(src []byte) ([]byte, error) {
	return compress(src, false)
}

// CompressAlways is like Compress but does not fail with
// ErrNotCompressible.
func CompressAlways(src []byte) ([]byte, error) {
	return compress(src, true)
}

func compress(src []byte, allowExpansion bool) ([]byte, error) {
	e := Encoder{AllowExpansion: allowExpansion}
	if err := e.Build(bytes.NewReader(src)); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(int(e.Tree().EncodedSize()))
	if _, err := e.ExportTree(&buf); err != nil {
		return nil, err
	}
	if err := e.Encode(bytes.NewReader(src), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress decodes a buffer produced by Compress.
func Decompress(src []byte) ([]byte, error) {
	r := bytes.NewReader(src)
	var d Decoder
	if err := d.Build(r); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := d.Decode(r, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
