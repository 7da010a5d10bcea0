// Command huf compresses a file with a static Huffman code, or expands a
// file produced by an earlier run.
//
//     huf [flags] + <filename>    writes <filename>.huf
//     huf [flags] - <filename>    writes <filename>.dec
//
// The exit status is 0 on success and 1 on any failure.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
)

const usageLine = "Usage: huf [flags] (+|-) <filename>"

type options struct {
	force   bool
	workers int
	verify  bool
	verbose bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fset := flag.NewFlagSet("huf", flag.ContinueOnError)
	fset.SetOutput(stderr)
	fset.Usage = func() {
		fmt.Fprintln(stderr, usageLine)
		fset.PrintDefaults()
	}

	var opts options
	fset.BoolVar(&opts.force, "f", false, "encode even if the output is not smaller than the input")
	fset.IntVar(&opts.workers, "j", 1, "number of workers counting byte frequencies (0 means one per CPU)")
	fset.BoolVar(&opts.verify, "verify", false, "decode the new .huf file and compare checksums with the input")
	fset.BoolVar(&opts.verbose, "v", false, "log progress and size statistics")
	if err := fset.Parse(args); err != nil {
		return 1
	}
	if fset.NArg() != 2 {
		fset.Usage()
		return 1
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	mode, path := fset.Arg(0), fset.Arg(1)
	var err error
	switch mode {
	case "+":
		err = encodeFile(logger, stderr, path, opts)
	case "-":
		err = decodeFile(logger, stderr, path, opts)
	default:
		fset.Usage()
		return 1
	}
	if err != nil {
		logger.Error("hufFailed", "mode", mode, "path", path, "err", err)
		return 1
	}
	return 0
}
