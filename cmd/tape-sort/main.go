// Command tape-sort sorts a file of raw int32 cells with an external-memory
// tape sort. The input and output files are wrapped in read-only and
// write-only tape devices; when the data does not fit in the memory budget,
// three scratch tapes are staged in the scratch directory and removed when
// the sort finishes, on success and failure alike.
//
// Usage:
//
//	tape-sort [flags] <input-file> <output-file> [input-tape-size] [memory-limit]
//
// input-tape-size is a cell count and defaults to the input length divided
// by the cell size. memory-limit is a byte budget for the in-memory base
// case and defaults to 0. Device latencies are read from the delay
// configuration file if it exists.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/lanrat/tapesort"
	"github.com/lanrat/tapesort/tape"
	"github.com/lanrat/tapesort/tempfile"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

const callFormat = "tape-sort [flags] <input-file> <output-file> [input-tape-size] [memory-limit]"

var (
	configPath = pflag.String("config", "config.txt", "path to the delay configuration file")
	tmpDir     = pflag.String("tmp-dir", "./tmp", "directory for scratch tapes")
)

func main() {
	pflag.Parse()
	if err := run(pflag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) > 4 {
		return fmt.Errorf("too many arguments:\n%s", callFormat)
	}
	if len(args) < 2 {
		return fmt.Errorf("the input and output files expected:\n%s", callFormat)
	}

	fin, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening the input file: %w", err)
	}
	defer fin.Close()

	fout, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("opening the output file: %w", err)
	}
	defer fout.Close()

	in := tape.NewFileStream(fin)
	out := tape.NewFileStream(fout)

	var n int64
	if len(args) > 2 {
		n, err = parseCount(args[2], "input tape size")
		if err != nil {
			return err
		}
	} else {
		size, err := in.Size()
		if err != nil {
			return fmt.Errorf("sizing the input file: %w", err)
		}
		if size%tape.CellSize != 0 {
			fmt.Println("input data can't be split by integers. the tail will be discarded")
		}
		n = size / tape.CellSize
	}

	var m int64
	if len(args) > 3 {
		m, err = parseCount(args[3], "memory limit")
		if err != nil {
			return err
		}
	}

	delays, err := parseDelays(*configPath)
	if err != nil {
		return err
	}

	config := &tape.Config{Delays: delays}
	chunkSize := m / tape.CellSize

	tin := tape.NewReader(in, n, config)
	tout, err := tape.NewWriter(out, n, config)
	if err != nil {
		return fmt.Errorf("preparing the output tape: %w", err)
	}

	if n <= chunkSize {
		if err := tapesort.Sort(tin, tout, nil); err != nil {
			return fmt.Errorf("i/o error occurred while working with the tapes: %w", err)
		}
		if err := tout.Flush(); err != nil {
			return fmt.Errorf("i/o error occurred while working with the tapes: %w", err)
		}
		return nil
	}

	scratch, cleanup, err := stageScratchTapes(n, config)
	defer cleanup()
	if err != nil {
		return err
	}

	if err := tapesort.SortExternal(tin, tout, scratch[0], scratch[1], scratch[2], chunkSize, nil); err != nil {
		return fmt.Errorf("i/o error occurred while working with the tapes: %w", err)
	}
	if err := tout.Flush(); err != nil {
		return fmt.Errorf("i/o error occurred while working with the tapes: %w", err)
	}
	return nil
}

// stageScratchTapes mints three guarded scratch files and wraps each in a
// bidirectional tape of n cells. The zero-extensions are independent file
// I/O, so the three tapes are staged concurrently. The returned cleanup
// closes the scratch streams and deletes the files; it is safe to call
// whether or not staging succeeded.
func stageScratchTapes(n int64, config *tape.Config) ([3]*tape.Tape, func(), error) {
	var tapes [3]*tape.Tape
	var guards [3]*tempfile.Guard
	var streams [3]*tape.FileStream

	cleanup := func() {
		for _, s := range streams {
			if s != nil {
				s.Close()
			}
		}
		for _, g := range guards {
			if g == nil {
				continue
			}
			if err := g.Remove(); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
	}

	for i := range guards {
		g, err := tempfile.New(*tmpDir)
		if err != nil {
			return tapes, cleanup, fmt.Errorf("creating temporary file: %w", err)
		}
		guards[i] = g
	}

	var group errgroup.Group
	for i := range guards {
		i := i
		group.Go(func() error {
			f, err := os.OpenFile(guards[i].Path(), os.O_RDWR, 0o644)
			if err != nil {
				return fmt.Errorf("opening temporary file: %w", err)
			}
			streams[i] = tape.NewFileStream(f)
			t, err := tape.New(streams[i], n, config)
			if err != nil {
				return fmt.Errorf("preparing temporary tape: %w", err)
			}
			tapes[i] = t
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return tapes, cleanup, err
	}
	return tapes, cleanup, nil
}

// parseCount parses a non-negative integer positional argument.
func parseCount(s, name string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s. non-negative integer expected", name)
	}
	return v, nil
}
