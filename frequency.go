package huffman

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// chunkSize is the slice of input handed to one worker at a time by
// CountFrequenciesAt.
const chunkSize = 1 << 20

// Frequencies holds the number of occurrences of each Symbol.  The EOF entry
// is ignored by BuildTree, which always treats EOF as occurring once.
type Frequencies [NumSymbols]uint64

// Observe tallies every byte in p.
func (f *Frequencies) Observe(p []byte) {
	for _, b := range p {
		f[b]++
	}
}

// Add sums other into f.  Addition is commutative, so partial tables may be
// merged in any order.
func (f *Frequencies) Add(other *Frequencies) {
	for symbol := range f {
		f[symbol] += other[symbol]
	}
}

// Total returns the number of literal bytes tallied, excluding EOF.
func (f *Frequencies) Total() uint64 {
	var sum uint64
	for symbol := Symbol(0); symbol < EOF; symbol++ {
		sum += f[symbol]
	}
	return sum
}

// CountFrequencies reads r to the end and tallies every byte.
func CountFrequencies(r io.Reader) (Frequencies, error) {
	var freqs Frequencies
	br := bufio.NewReader(r)
	buf := make([]byte, 32<<10)
	for {
		n, err := br.Read(buf)
		freqs.Observe(buf[:n])
		if errors.Is(err, io.EOF) {
			return freqs, nil
		}
		if err != nil {
			return freqs, fmt.Errorf("huffman: counting frequencies: %w", err)
		}
	}
}

// CountFrequenciesAt tallies the first size bytes of r using the given
// number of workers.  Each worker counts whole chunks into a private table,
// and the tables are summed once every worker is done.  A workers value of
// zero or less means one worker per CPU.
func CountFrequenciesAt(ctx context.Context, r io.ReaderAt, size int64, workers int) (Frequencies, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	offsets := make(chan int64)
	locals := make([]Frequencies, workers)

	for w := 0; w < workers; w++ {
		local := &locals[w]
		g.Go(func() error {
			buf := make([]byte, chunkSize)
			for offset := range offsets {
				p := buf
				if remain := size - offset; remain < int64(len(p)) {
					p = p[:remain]
				}
				n, err := r.ReadAt(p, offset)
				if n != len(p) {
					if err == nil || errors.Is(err, io.EOF) {
						err = io.ErrUnexpectedEOF
					}
					return fmt.Errorf("huffman: counting frequencies at offset %d: %w", offset, err)
				}
				local.Observe(p)
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(offsets)
		for offset := int64(0); offset < size; offset += chunkSize {
			select {
			case offsets <- offset:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	var freqs Frequencies
	if err := g.Wait(); err != nil {
		return freqs, err
	}
	for w := range locals {
		freqs.Add(&locals[w])
	}
	return freqs, nil
}
