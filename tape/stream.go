package tape

import "io"

// ReadStream is the capability-limited view a read-only tape needs from its
// backing byte stream: random-access reads plus cursor positioning.
//
// ReadAt follows the io.ReaderAt contract. A read at or past end-of-stream
// returns 0 bytes with io.EOF and is not treated as a device error; the
// affected cells read as zero.
type ReadStream interface {
	io.ReaderAt
	io.Seeker
}

// WriteStream is the capability-limited view a write-only tape needs from
// its backing byte stream. ExtendTo grows the stream with zero bytes until
// it holds at least size bytes; it never shrinks the stream. Flush forces
// buffered data onto the medium.
type WriteStream interface {
	io.WriterAt
	io.Seeker

	// Size returns the current byte length of the stream.
	Size() (int64, error)

	// ExtendTo grows the stream with zero bytes to at least size bytes.
	ExtendTo(size int64) error

	// Flush forces any buffered writes onto the medium.
	Flush() error
}

// Stream is a byte stream usable by a bidirectional tape.
type Stream interface {
	io.ReaderAt
	io.WriterAt
	io.Seeker

	// Size returns the current byte length of the stream.
	Size() (int64, error)

	// ExtendTo grows the stream with zero bytes to at least size bytes.
	ExtendTo(size int64) error

	// Flush forces any buffered writes onto the medium.
	Flush() error
}
