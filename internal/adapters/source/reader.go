package source

import "io"

// ReaderSource adapts any io.Reader to the byte source contract. It is
// the plug for in-memory streams and custom decompression pipelines.
type ReaderSource struct {
	r    io.Reader
	done bool
}

// FromReader wraps r as a byte source.
func FromReader(r io.Reader) *ReaderSource {
	return &ReaderSource{r: r}
}

// Read fills dst as completely as the reader allows; a short count
// signals end of data.
func (s *ReaderSource) Read(dst []byte) (int, error) {
	if s.done {
		return 0, nil
	}
	n, err := io.ReadFull(s.r, dst)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		s.done = true
		return n, nil
	}
	return n, err
}

// Close closes the wrapped reader when it is closable.
func (s *ReaderSource) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
