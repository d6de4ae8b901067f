// Package tapesort implements an unstable external sort over simulated
// magnetic-tape devices. It reorders a sequence of int32 cells using a
// bounded amount of RAM and three bidirectional scratch tapes, recursing
// with a randomised-pivot quicksort driven by head-reversal traversal.
package tapesort

import "sort"

// Sort reads every cell from in, sorts them in memory, and puts them on out
// in order. The sort is not stable and uses as much memory as the input
// data occupies.
//
// After the call the in head is back at its original position and the out
// head is after the last cell written. A nil less means ascending order.
func Sort(in ReadTape, out WriteTape, less LessFunc) error {
	if less == nil {
		less = Less
	}

	var vec []int32
	for !in.IsEnd() {
		value, err := in.Get()
		if err != nil {
			return err
		}
		in.Next()
		vec = append(vec, value)
	}

	if err := in.Seek(-int64(len(vec))); err != nil {
		return err
	}

	sort.Slice(vec, func(i, j int) bool {
		return less(vec[i], vec[j])
	})
	return vecToTape(vec, out)
}

// SortExternal reads every cell from in and puts them on out in sorted
// order, holding at most chunkSize cells in memory at a time and staging
// the rest on the three scratch tapes. The sort is not stable.
//
// The in head must start at the beginning of the data and is restored there
// after the call. The out head must start at the first position to write
// and ends after the last cell written. Each scratch tape must be
// bidirectional with at least as much space after its head as the input
// holds; scratch data before the heads and the head positions themselves
// are preserved, while data after the heads may be lost. The five devices
// must not share backing storage.
//
// A chunkSize of 0 partitions every non-trivial range; a chunkSize of the
// input size or more degenerates to the in-memory path. A nil less means
// ascending order.
//
// Any IOError or SeekError from a device aborts the sort and propagates
// unchanged; no rollback is attempted.
func SortExternal(in ReadTape, out WriteTape, tmp1, tmp2, tmp3 ScratchTape, chunkSize int64, less LessFunc) error {
	if less == nil {
		less = Less
	}

	info := newSubarrayInfo(less)
	for !in.IsEnd() {
		value, err := in.Get()
		if err != nil {
			return err
		}
		in.Next()
		if err := Put(tmp1, value); err != nil {
			return err
		}
		info.update(value)
	}

	if err := in.Seek(-info.size); err != nil {
		return err
	}
	return sortImpl(out, tmp1, tmp2, tmp3, info, chunkSize, less)
}

// sortImpl moves the info.size cells before the current head to out in
// sorted order. current, tmp1 and tmp2 rotate across recursive calls: each
// partition becomes the callee's current tape, and the caller's current is
// reused as callee scratch, overwriting whatever lay above its head.
func sortImpl(out WriteTape, current, tmp1, tmp2 ScratchTape, info *subarrayInfo, chunkSize int64, less LessFunc) error {
	if info.size == 0 {
		return nil
	}

	// A range that is uniform under the comparator is already sorted, and
	// the reversal inside Peek cannot be observed: copy it straight out.
	// This is also what keeps the pivot recursion finite on constant input.
	if info.equal {
		for i := int64(0); i < info.size; i++ {
			value, err := Peek(current)
			if err != nil {
				return err
			}
			if err := Put(out, value); err != nil {
				return err
			}
		}
		return nil
	}

	// In-memory base case. tapeToVec yields the range reversed; sorting
	// normalises the order before it is written out.
	if info.size <= chunkSize {
		vec, err := tapeToVec(current, info.size)
		if err != nil {
			return err
		}
		sort.Slice(vec, func(i, j int) bool {
			return less(vec[i], vec[j])
		})
		return vecToTape(vec, out)
	}

	// Partition around the reservoir sample: strictly-less cells to tmp1,
	// the rest (pivot included) to tmp2. The sample is uniform over the
	// range, so the expected recursion depth is logarithmic.
	leftInfo, rightInfo, err := split(current, tmp1, tmp2, less, info.element, info.size)
	if err != nil {
		return err
	}
	if err := sortImpl(out, tmp1, current, tmp2, leftInfo, chunkSize, less); err != nil {
		return err
	}
	return sortImpl(out, tmp2, current, tmp1, rightInfo, chunkSize, less)
}
