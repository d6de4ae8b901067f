package diff

import (
	"context"
	"fmt"

	"github.com/lanrat/tapesort"

	"golang.org/x/sync/errgroup"
)

// pumpBuffer is the channel buffer between a tape pump and the comparison
// loop.
const pumpBuffer = 64

// Tapes compares two sorted tapes left to right and calls resultFunc for
// each cell that exists in only one of them. Both tape heads must start at
// the beginning of their data and end up at the end of it.
//
// Each tape is streamed by its own goroutine, so the two devices pay their
// read latencies concurrently. A nil less means ascending order.
func Tapes(ctx context.Context, a, b tapesort.ReadTape, less tapesort.LessFunc, resultFunc ResultFunc) (Result, error) {
	if ctx == nil || a == nil || b == nil || resultFunc == nil {
		return Result{}, fmt.Errorf("arguments must not be nil")
	}
	if less == nil {
		less = tapesort.Less
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	aChan := make(chan int32, pumpBuffer)
	bChan := make(chan int32, pumpBuffer)

	var group errgroup.Group
	group.Go(func() error {
		defer close(aChan)
		return pump(ctx, a, aChan)
	})
	group.Go(func() error {
		defer close(bChan)
		return pump(ctx, b, bChan)
	})

	d := differ{
		aChan:      aChan,
		bChan:      bChan,
		less:       less,
		resultFunc: resultFunc,
	}
	r, err := d.diff()

	// Unblock the pumps if the comparison stopped early, then collect
	// their errors. A pump failure closes its channel early, which the
	// loop saw as a normal end of sequence; the error surfaces here.
	cancel()
	waitErr := group.Wait()
	if err != nil {
		return r, err
	}
	return r, waitErr
}

// pump streams a tape left to right into out until the end of the tape.
func pump(ctx context.Context, t tapesort.ReadTape, out chan<- int32) error {
	for !t.IsEnd() {
		value, err := t.Get()
		if err != nil {
			return err
		}
		t.Next()
		select {
		case out <- value:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
