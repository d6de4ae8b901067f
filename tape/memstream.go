package tape

import (
	"fmt"
	"io"
)

// MemStream is a growable in-memory byte stream. It implements Stream and is
// the memory-backed counterpart of FileStream, useful for tests and for
// sorting data that fits in RAM without touching the filesystem.
//
// The zero value is an empty stream ready for use.
type MemStream struct {
	data   []byte
	cursor int64
}

// NewMemStream returns an empty in-memory stream.
func NewMemStream() *MemStream {
	return &MemStream{}
}

// NewMemStreamData returns an in-memory stream that takes ownership of data.
func NewMemStreamData(data []byte) *MemStream {
	return &MemStream{data: data}
}

// Bytes returns the stream's current contents. The slice is only valid until
// the next write or extension.
func (m *MemStream) Bytes() []byte {
	return m.data
}

// ReadAt implements io.ReaderAt. Reads at or past the end of the data yield
// io.EOF with however many bytes were available.
func (m *MemStream) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("memstream: negative read offset %d", off)
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt implements io.WriterAt, growing the stream with zero bytes if the
// write lands past the current end.
func (m *MemStream) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("memstream: negative write offset %d", off)
	}
	if end := off + int64(len(p)); end > int64(len(m.data)) {
		m.grow(end)
	}
	return copy(m.data[off:], p), nil
}

// Seek implements io.Seeker. Seeking past the end is allowed; the stream
// only grows on write or extension.
func (m *MemStream) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = m.cursor + offset
	case io.SeekEnd:
		abs = int64(len(m.data)) + offset
	default:
		return 0, fmt.Errorf("memstream: invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, fmt.Errorf("memstream: negative seek position %d", abs)
	}
	m.cursor = abs
	return abs, nil
}

// Size returns the current byte length of the stream.
func (m *MemStream) Size() (int64, error) {
	return int64(len(m.data)), nil
}

// ExtendTo grows the stream with zero bytes to at least size bytes.
func (m *MemStream) ExtendTo(size int64) error {
	if size > int64(len(m.data)) {
		m.grow(size)
	}
	return nil
}

// Flush is a no-op for memory-backed streams.
func (m *MemStream) Flush() error {
	return nil
}

func (m *MemStream) grow(size int64) {
	if size <= int64(cap(m.data)) {
		m.data = m.data[:size]
		return
	}
	grown := make([]byte, size)
	copy(grown, m.data)
	m.data = grown
}
