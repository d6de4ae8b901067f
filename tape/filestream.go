package tape

import "os"

// FileStream adapts an *os.File to the Stream interface. The file must be a
// regular (seekable) file; pipes and other sequential streams are not
// supported by the tape device.
type FileStream struct {
	file *os.File
}

// NewFileStream wraps f. The stream takes over I/O on the file but not its
// lifetime; the caller remains responsible for closing it (or may use Close).
func NewFileStream(f *os.File) *FileStream {
	return &FileStream{file: f}
}

// Name returns the name of the underlying file.
func (s *FileStream) Name() string {
	return s.file.Name()
}

// ReadAt implements io.ReaderAt.
func (s *FileStream) ReadAt(p []byte, off int64) (int, error) {
	return s.file.ReadAt(p, off)
}

// WriteAt implements io.WriterAt.
func (s *FileStream) WriteAt(p []byte, off int64) (int, error) {
	return s.file.WriteAt(p, off)
}

// Seek implements io.Seeker.
func (s *FileStream) Seek(offset int64, whence int) (int64, error) {
	return s.file.Seek(offset, whence)
}

// Size returns the current byte length of the file.
func (s *FileStream) Size() (int64, error) {
	info, err := s.file.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// ExtendTo grows the file with zero bytes to at least size bytes. The file
// is never shrunk.
func (s *FileStream) ExtendTo(size int64) error {
	current, err := s.Size()
	if err != nil {
		return err
	}
	if current >= size {
		return nil
	}
	return s.file.Truncate(size)
}

// Flush forces buffered writes onto the medium.
func (s *FileStream) Flush() error {
	return s.file.Sync()
}

// Close closes the underlying file.
func (s *FileStream) Close() error {
	return s.file.Close()
}
