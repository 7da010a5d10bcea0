package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"

	huffman "github.com/chronos-tachyon/huffpack"
)

// verifyRoundTrip decodes encPath in memory and checks that the result
// hashes the same as srcPath.
func verifyRoundTrip(srcPath, encPath string) error {
	want, err := hashFile(srcPath)
	if err != nil {
		return err
	}

	f, err := os.Open(encPath)
	if err != nil {
		return err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var d huffman.Decoder
	if err := d.Build(br); err != nil {
		return fmt.Errorf("verify %s: %w", encPath, err)
	}
	h := xxhash.New()
	if _, err := d.Decode(br, h); err != nil {
		return fmt.Errorf("verify %s: %w", encPath, err)
	}
	if got := h.Sum64(); got != want {
		return fmt.Errorf("verify %s: checksum %016x, expected %016x", encPath, got, want)
	}
	return nil
}

func hashFile(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
