// Package diff compares two sorted tapes cell by cell. It reports cells
// that appear in only one of the two sequences, plus counts of the common
// and extra cells on each side. Both inputs MUST already be sorted under
// the comparator; this is not validated.
package diff

import "fmt"

// Delta represents the type of difference found when comparing two sorted
// sequences: a cell unique to the first tape (OLD) or to the second (NEW).
type Delta int

const (
	// NEW indicates a cell that exists only in the second tape (B).
	NEW Delta = iota
	// OLD indicates a cell that exists only in the first tape (A).
	OLD
)

func (d Delta) String() string {
	switch d {
	case NEW:
		return ">"
	case OLD:
		return "<"
	default:
		return "?"
	}
}

// ResultFunc is called once for each cell that appears in only one of the
// two tapes. Returning an error terminates the comparison.
type ResultFunc func(Delta, int32) error

// Result contains statistical information about the differences between
// two sorted sequences.
type Result struct {
	// ExtraA is the count of cells that exist only in tape A
	ExtraA uint64
	// ExtraB is the count of cells that exist only in tape B
	ExtraB uint64
	// TotalA is the total count of cells read from tape A
	TotalA uint64
	// TotalB is the total count of cells read from tape B
	TotalB uint64
	// Common is the count of cells that exist in both tapes
	Common uint64
}

func (r *Result) String() string {
	return fmt.Sprintf("A: %d/%d\tB: %d/%d\tC: %d", r.ExtraA, r.TotalA, r.ExtraB, r.TotalB, r.Common)
}

// Same reports whether the two sequences were identical.
func (r *Result) Same() bool {
	return r.ExtraA == 0 && r.ExtraB == 0
}

// PrintDiff is a ResultFunc that prints each difference to standard output,
// "<" for cells only in A and ">" for cells only in B.
func PrintDiff(d Delta, v int32) error {
	_, err := fmt.Printf("%s %d\n", d, v)
	return err
}

// differ holds the comparison state for two sorted cell channels.
type differ struct {
	aChan, bChan <-chan int32
	less         func(a, b int32) bool
	resultFunc   ResultFunc
}

// diff runs the merge-style comparison until both channels are exhausted.
// A closed channel is end-of-sequence; pump errors are surfaced by the
// caller after the loop.
func (d *differ) diff() (r Result, err error) {
	dataA, okA := <-d.aChan
	dataB, okB := <-d.bChan

	for okA && okB {
		switch {
		case d.less(dataA, dataB):
			r.TotalA++
			r.ExtraA++
			if err = d.resultFunc(OLD, dataA); err != nil {
				return
			}
			dataA, okA = <-d.aChan
		case d.less(dataB, dataA):
			r.TotalB++
			r.ExtraB++
			if err = d.resultFunc(NEW, dataB); err != nil {
				return
			}
			dataB, okB = <-d.bChan
		default:
			// common
			r.Common++
			r.TotalA++
			r.TotalB++
			dataA, okA = <-d.aChan
			dataB, okB = <-d.bChan
		}
	}

	// only A has data left
	for okA {
		r.TotalA++
		r.ExtraA++
		if err = d.resultFunc(OLD, dataA); err != nil {
			return
		}
		dataA, okA = <-d.aChan
	}

	// only B has data left
	for okB {
		r.TotalB++
		r.ExtraB++
		if err = d.resultFunc(NEW, dataB); err != nil {
			return
		}
		dataB, okB = <-d.bChan
	}
	return
}
