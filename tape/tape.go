// Package tape implements a simulated magnetic-tape device over a seekable
// byte stream. A tape is a bounded linear array of int32 cells with a single
// movable head; reads and writes happen at the head, and random positioning
// pays a rewind cost proportional to the distance traveled.
//
// Three device types encode the read/write capability of their backing
// stream: Reader (read-only), Writer (write-only), and Tape (bidirectional).
// Passing a device where a missing capability is required fails to compile.
package tape

import (
	"encoding/binary"
	"io"
	"math"
)

// CellSize is the number of bytes a single cell occupies on the medium.
const CellSize = 4

// Capability describes the subset of {read, write} a device type supports.
type Capability uint8

const (
	// Readable devices support Get.
	Readable Capability = 1 << iota
	// Writable devices support Set, Flush, and eager zero-extension.
	Writable
)

// Bidirectional devices support the full operation set.
const Bidirectional = Readable | Writable

func (c Capability) String() string {
	switch c {
	case Readable:
		return "readable"
	case Writable:
		return "writable"
	case Bidirectional:
		return "bidirectional"
	}
	return "none"
}

// Config holds the optional construction parameters of a tape device.
// A nil Config is equivalent to the zero value: head at cell 0, cell 0 at
// byte 0 of the stream, no latency emulation.
type Config struct {
	// Pos is the initial head position in cells. Must be in [0, size].
	Pos int64
	// Offset is the byte offset of cell 0 within the backing stream.
	Offset int64
	// Delays is the device latency table.
	Delays Delays
}

func mergeConfig(c *Config) Config {
	if c == nil {
		return Config{}
	}
	return *c
}

// head is the positional state shared by all device types.
type head struct {
	pos    int64
	size   int64
	offset int64
	delays Delays

	// buffer caches the cell under the head; valid only while consistent.
	buffer     int32
	consistent bool

	// seeker positions the backing stream's cursor; Seek keeps it aligned
	// with the head, Release parks it at cell 0.
	seeker io.Seeker
}

func newHead(seeker io.Seeker, size int64, config Config) head {
	if size < 0 {
		panic("tape: negative size")
	}
	if config.Offset < 0 {
		panic("tape: negative stream offset")
	}
	if config.Pos < 0 || config.Pos > size {
		panic("tape: initial position out of window")
	}
	return head{
		pos:    config.Pos,
		size:   size,
		offset: config.Offset,
		delays: config.Delays,
		seeker: seeker,
	}
}

// Size returns the tape length in cells.
func (h *head) Size() int64 {
	return h.size
}

// Pos returns the current head position. Pos == Size means the head is at
// the end of the tape.
func (h *head) Pos() int64 {
	return h.pos
}

// IsBegin reports whether the head is at cell 0.
func (h *head) IsBegin() bool {
	return h.pos == 0
}

// IsEnd reports whether the head is past the last cell. Get and Set are
// illegal at the end of the tape.
func (h *head) IsEnd() bool {
	return h.pos == h.size
}

// Next moves the head one cell forward. The head must not be at the end.
func (h *head) Next() {
	if h.pos >= h.size {
		panic("tape: next past end of tape")
	}
	h.pos++
	h.consistent = false
	sleep(h.delays.Next)
}

// Prev moves the head one cell backward. The head must not be at the begin.
func (h *head) Prev() {
	if h.pos == 0 {
		panic("tape: prev before begin of tape")
	}
	h.pos--
	h.consistent = false
	sleep(h.delays.Next)
}

// Seek moves the head by delta cells and realigns the backing stream's
// cursor with it. The target position must stay within [0, Size]. The
// rewind cost Rewind + RewindStep*|delta| is charged after the stream seek
// completes, saturating on overflow.
func (h *head) Seek(delta int64) error {
	if !h.deltaInWindow(delta) {
		panic("tape: seek out of window")
	}
	h.pos += delta
	h.consistent = false
	if _, err := h.seeker.Seek(h.offset+h.pos*CellSize, io.SeekStart); err != nil {
		return NewSeekError("seek", err)
	}
	sleep(h.delays.rewindCost(delta))
	return nil
}

func (h *head) deltaInWindow(delta int64) bool {
	if delta >= 0 {
		return delta <= h.size-h.pos
	}
	return delta != math.MinInt64 && -delta <= h.pos
}

// byteAddr returns the byte offset of the cell under the head.
func (h *head) byteAddr() int64 {
	return h.offset + h.pos*CellSize
}

// get lazily reads the cell under the head through the cache. A short or
// empty read caused by end-of-stream is not an error: the missing bytes of
// the cell read as zero.
func (h *head) get(stream io.ReaderAt) (int32, error) {
	if h.pos >= h.size {
		panic("tape: get at end of tape")
	}
	if !h.consistent {
		var cell [CellSize]byte
		if _, err := stream.ReadAt(cell[:], h.byteAddr()); err != nil && err != io.EOF {
			return 0, NewIOError("read", err)
		}
		h.buffer = int32(binary.LittleEndian.Uint32(cell[:]))
		h.consistent = true
	}
	sleep(h.delays.Read)
	return h.buffer, nil
}

// set writes value to the cell under the head and refreshes the cache.
func (h *head) set(stream io.WriterAt, value int32) error {
	if h.pos >= h.size {
		panic("tape: set at end of tape")
	}
	var cell [CellSize]byte
	binary.LittleEndian.PutUint32(cell[:], uint32(value))
	if _, err := stream.WriteAt(cell[:], h.byteAddr()); err != nil {
		return NewIOError("write", err)
	}
	h.buffer = value
	h.consistent = true
	sleep(h.delays.Write)
	return nil
}

// release parks the stream's cursor at cell 0 and resets the head to its
// default empty state.
func (h *head) release() error {
	seeker := h.seeker
	offset := h.offset
	*h = head{}
	if _, err := seeker.Seek(offset, io.SeekStart); err != nil {
		return NewSeekError("release", err)
	}
	return nil
}

// extendStream grows a write-capable stream so that every cell of the tape
// window is addressable, filling new space with zero-valued cells.
func extendStream(stream WriteStream, size int64, config Config) error {
	if err := stream.ExtendTo(config.Offset + size*CellSize); err != nil {
		return NewIOError("extend", err)
	}
	return nil
}

// Reader is a read-only tape device.
type Reader struct {
	head
	stream ReadStream
}

// NewReader constructs a read-only tape of size cells over stream.
// Construction performs no I/O; cells beyond the end of the stream read
// as zero.
func NewReader(stream ReadStream, size int64, config *Config) *Reader {
	return &Reader{head: newHead(stream, size, mergeConfig(config)), stream: stream}
}

// Capability reports Readable.
func (r *Reader) Capability() Capability {
	return Readable
}

// Get returns the cell under the head. The head must not be at the end.
// Repeated calls at one position hit the cell cache and cost no stream I/O.
func (r *Reader) Get() (int32, error) {
	return r.head.get(r.stream)
}

// Release moves the backing stream out of the tape, parked at cell 0, and
// resets the tape to its default empty state.
func (r *Reader) Release() (ReadStream, error) {
	stream := r.stream
	if stream == nil {
		panic("tape: release of empty tape")
	}
	r.stream = nil
	if err := r.head.release(); err != nil {
		return nil, err
	}
	return stream, nil
}

// Writer is a write-only tape device.
type Writer struct {
	head
	stream WriteStream
}

// NewWriter constructs a write-only tape of size cells over stream. The
// stream is extended with zero-valued cells until the whole tape window is
// addressable; an extension failure surfaces as an IOError.
func NewWriter(stream WriteStream, size int64, config *Config) (*Writer, error) {
	cfg := mergeConfig(config)
	w := &Writer{head: newHead(stream, size, cfg), stream: stream}
	if err := extendStream(stream, size, cfg); err != nil {
		return nil, err
	}
	return w, nil
}

// Capability reports Writable.
func (w *Writer) Capability() Capability {
	return Writable
}

// Set writes value to the cell under the head. The head must not be at the
// end. The cell cache is refreshed only if the write succeeds.
func (w *Writer) Set(value int32) error {
	return w.head.set(w.stream, value)
}

// Flush forces buffered writes onto the medium.
func (w *Writer) Flush() error {
	if err := w.stream.Flush(); err != nil {
		return NewIOError("flush", err)
	}
	return nil
}

// Release moves the backing stream out of the tape, parked at cell 0, and
// resets the tape to its default empty state.
func (w *Writer) Release() (WriteStream, error) {
	stream := w.stream
	if stream == nil {
		panic("tape: release of empty tape")
	}
	w.stream = nil
	if err := w.head.release(); err != nil {
		return nil, err
	}
	return stream, nil
}

// Tape is a bidirectional tape device.
type Tape struct {
	head
	stream Stream
}

// New constructs a bidirectional tape of size cells over stream. The stream
// is extended with zero-valued cells until the whole tape window is
// addressable; an extension failure surfaces as an IOError.
func New(stream Stream, size int64, config *Config) (*Tape, error) {
	cfg := mergeConfig(config)
	t := &Tape{head: newHead(stream, size, cfg), stream: stream}
	if err := extendStream(stream, size, cfg); err != nil {
		return nil, err
	}
	return t, nil
}

// Capability reports Bidirectional.
func (t *Tape) Capability() Capability {
	return Bidirectional
}

// Get returns the cell under the head. The head must not be at the end.
// Repeated calls at one position hit the cell cache and cost no stream I/O.
func (t *Tape) Get() (int32, error) {
	return t.head.get(t.stream)
}

// Set writes value to the cell under the head. The head must not be at the
// end. The cell cache is refreshed only if the write succeeds.
func (t *Tape) Set(value int32) error {
	return t.head.set(t.stream, value)
}

// Flush forces buffered writes onto the medium.
func (t *Tape) Flush() error {
	if err := t.stream.Flush(); err != nil {
		return NewIOError("flush", err)
	}
	return nil
}

// Release moves the backing stream out of the tape, parked at cell 0, and
// resets the tape to its default empty state.
func (t *Tape) Release() (Stream, error) {
	stream := t.stream
	if stream == nil {
		panic("tape: release of empty tape")
	}
	t.stream = nil
	if err := t.head.release(); err != nil {
		return nil, err
	}
	return stream, nil
}
