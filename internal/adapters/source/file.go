package source

import (
	"fmt"
	"io"

	"github.com/shenwei356/xopen"
)

// FileSource reads one side of a pair from a file, transparently
// decompressing gzip input. A path of "-" reads standard input.
type FileSource struct {
	path string
	r    *xopen.Reader
	done bool
}

// OpenFile opens a plain or gzip-compressed FASTQ file as a byte
// source.
func OpenFile(path string) (*FileSource, error) {
	r, err := xopen.Ropen(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &FileSource{path: path, r: r}, nil
}

// Read fills dst as completely as the stream allows. A short count
// signals end of data; once that happens every later call returns 0.
func (f *FileSource) Read(dst []byte) (int, error) {
	if f.done {
		return 0, nil
	}
	n, err := io.ReadFull(f.r, dst)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		f.done = true
		return n, nil
	}
	if err != nil {
		return n, fmt.Errorf("read %s: %w", f.path, err)
	}
	return n, nil
}

// Path returns the path this source was opened with.
func (f *FileSource) Path() string {
	return f.path
}

// Close closes the underlying file.
func (f *FileSource) Close() error {
	return f.r.Close()
}
