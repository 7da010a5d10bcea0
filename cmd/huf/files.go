package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	huffman "github.com/chronos-tachyon/huffpack"
)

const (
	encodedSuffix = ".huf"
	decodedSuffix = ".dec"
)

func encodeFile(logger *slog.Logger, stderr io.Writer, path string, opts options) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	e := huffman.Encoder{AllowExpansion: opts.force}
	if opts.workers == 1 {
		err = e.Build(in)
	} else {
		err = buildParallel(&e, in, opts.workers)
	}
	if err != nil {
		return err
	}
	tree := e.Tree()
	logger.Info("treeBuilt", "path", path, "leaves", (tree.Len()+1)/2, "minBits", tree.MinSize(), "maxBits", tree.MaxSize())

	if _, err := in.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding %s: %w", path, err)
	}

	outPath := path + encodedSuffix
	err = writeFile(outPath, func(w io.Writer) error {
		if _, err := e.ExportTree(w); err != nil {
			return err
		}
		return e.Encode(in, w)
	})
	if err != nil {
		return err
	}

	if opts.verbose {
		p := message.NewPrinter(language.English)
		inSize, outSize := e.InputSize(), tree.EncodedSize()
		p.Fprintf(stderr, "%s: %d bytes -> %d bytes (%d header, %d payload), %.1f%%\n",
			path, inSize, outSize, tree.HeaderSize(), outSize-tree.HeaderSize(), 100*float64(outSize)/float64(inSize))
	}

	if opts.verify {
		if err := verifyRoundTrip(path, outPath); err != nil {
			os.Remove(outPath)
			return err
		}
		logger.Info("verified", "path", outPath)
	}
	return nil
}

func buildParallel(e *huffman.Encoder, f *os.File, workers int) error {
	fi, err := f.Stat()
	if err != nil {
		return err
	}
	freqs, err := huffman.CountFrequenciesAt(context.Background(), f, fi.Size(), workers)
	if err != nil {
		return err
	}
	return e.Init(&freqs)
}

func decodeFile(logger *slog.Logger, stderr io.Writer, path string, opts options) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	// The header is parsed before the output file exists, so a malformed
	// header leaves nothing behind.
	br := bufio.NewReader(in)
	var d huffman.Decoder
	if err := d.Build(br); err != nil {
		return err
	}
	logger.Info("treeParsed", "path", path, "headerBytes", d.Tree().HeaderSize())

	var n int64
	outPath := path + decodedSuffix
	err = writeFile(outPath, func(w io.Writer) error {
		var err error
		n, err = d.Decode(br, w)
		return err
	})
	if err != nil {
		return err
	}

	if opts.verbose {
		p := message.NewPrinter(language.English)
		p.Fprintf(stderr, "%s: decoded %d bytes into %s\n", path, n, outPath)
	}
	return nil
}

// writeFile creates path, hands fn a buffered writer, and removes the file
// again if anything fails.
func writeFile(path string, fn func(w io.Writer) error) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(path)
		}
	}()

	bw := bufio.NewWriter(out)
	if err = fn(bw); err != nil {
		out.Close()
		return err
	}
	if err = bw.Flush(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
