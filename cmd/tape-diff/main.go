// Command tape-diff compares two sorted tape files cell by cell and prints
// each difference, "<" for cells only in the first file and ">" for cells
// only in the second. Exits 0 when the files hold identical sequences and 1
// on differences or errors.
//
// Usage:
//
//	tape-diff <file-a> <file-b>
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lanrat/tapesort/diff"
	"github.com/lanrat/tapesort/tape"

	"github.com/spf13/pflag"
)

const callFormat = "tape-diff <file-a> <file-b>"

func main() {
	pflag.Parse()
	same, err := run(pflag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if !same {
		os.Exit(1)
	}
}

func run(args []string) (bool, error) {
	if len(args) != 2 {
		return false, fmt.Errorf("two tape files expected:\n%s", callFormat)
	}

	a, sizeA, err := openTape(args[0])
	if err != nil {
		return false, err
	}
	defer a.Close()

	b, sizeB, err := openTape(args[1])
	if err != nil {
		return false, err
	}
	defer b.Close()

	result, err := diff.Tapes(context.Background(),
		tape.NewReader(a, sizeA, nil),
		tape.NewReader(b, sizeB, nil),
		nil, diff.PrintDiff)
	if err != nil {
		return false, err
	}

	fmt.Println(result.String())
	return result.Same(), nil
}

func openTape(path string) (*tape.FileStream, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	stream := tape.NewFileStream(f)
	size, err := stream.Size()
	if err != nil {
		stream.Close()
		return nil, 0, fmt.Errorf("sizing %s: %w", path, err)
	}
	return stream, size / tape.CellSize, nil
}
