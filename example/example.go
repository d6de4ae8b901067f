// Demo for the tapesort API: fills a memory-backed tape with random cells,
// sorts it onto a second tape with a small memory budget, and checks the
// result.
package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/lanrat/tapesort"
	"github.com/lanrat/tapesort/tape"
)

var count = int64(1e6) // 1M cells

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	in, err := tape.New(tape.NewMemStream(), count, nil)
	if err != nil {
		return err
	}
	for i := int64(0); i < count; i++ {
		if err := tapesort.Put(in, rand.Int31()); err != nil {
			return err
		}
	}
	if err := in.Seek(-count); err != nil {
		return err
	}

	out, err := tape.New(tape.NewMemStream(), count, nil)
	if err != nil {
		return err
	}

	var scratch [3]*tape.Tape
	for i := range scratch {
		if scratch[i], err = tape.New(tape.NewMemStream(), count, nil); err != nil {
			return err
		}
	}

	// keep at most ~64KiB of cells in memory at a time
	chunkSize := int64(64 * 1024 / tape.CellSize)
	if err := tapesort.SortExternal(in, out, scratch[0], scratch[1], scratch[2], chunkSize, nil); err != nil {
		return err
	}

	// walk the output backward and check the ordering
	prev, err := tapesort.Peek(out)
	if err != nil {
		return err
	}
	for !out.IsBegin() {
		v, err := tapesort.Peek(out)
		if err != nil {
			return err
		}
		if v > prev {
			return fmt.Errorf("output out of order: %d before %d", v, prev)
		}
		prev = v
	}

	fmt.Printf("sorted %d cells\n", count)
	return nil
}
