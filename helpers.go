package tapesort

// Peek moves the head one cell backward and returns that cell's value. The
// head ends up on the cell just read. The head must not be at the begin.
func Peek(t ReadTape) (int32, error) {
	t.Prev()
	return t.Get()
}

// Put writes value at the head and moves the head one cell forward. The
// head must not be at the end.
func Put(t WriteTape, value int32) error {
	if err := t.Set(value); err != nil {
		return err
	}
	t.Next()
	return nil
}

// vecToTape puts the elements of vec on t in order: the leftmost element of
// the vector becomes the leftmost cell written. The head ends up after the
// last cell written.
func vecToTape(vec []int32, t WriteTape) error {
	for _, v := range vec {
		if err := Put(t, v); err != nil {
			return err
		}
	}
	return nil
}

// tapeToVec peeks up to size cells from t into a vector. Because Peek walks
// backward, the vector holds the cells in reverse of their left-to-right
// order on the tape. The head ends up on the leftmost cell peeked.
func tapeToVec(t ReadTape, size int64) ([]int32, error) {
	vec := make([]int32, 0, size)
	for !t.IsBegin() && size > 0 {
		v, err := Peek(t)
		if err != nil {
			return nil, err
		}
		vec = append(vec, v)
		size--
	}
	return vec, nil
}

// split peeks exactly size cells from source and distributes them: a value
// goes to left when less(value, key), to right otherwise. Element order is
// not preserved. The source head ends up size cells back; the left and
// right heads end up after the last cell each received.
//
// The returned statistics describe the two partitions; their sizes sum to
// size.
func split(source ReadTape, left, right WriteTape, less LessFunc, key int32, size int64) (*subarrayInfo, *subarrayInfo, error) {
	leftInfo := newSubarrayInfo(less)
	rightInfo := newSubarrayInfo(less)

	for i := int64(0); i < size; i++ {
		value, err := Peek(source)
		if err != nil {
			return nil, nil, err
		}
		if less(value, key) {
			if err := Put(left, value); err != nil {
				return nil, nil, err
			}
			leftInfo.update(value)
		} else {
			if err := Put(right, value); err != nil {
				return nil, nil, err
			}
			rightInfo.update(value)
		}
	}
	return leftInfo, rightInfo, nil
}
