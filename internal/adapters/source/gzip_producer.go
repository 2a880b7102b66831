package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/valyala/bytebufferpool"
)

// DefaultBlockSize is the size of each decompressed block handed to a
// QueueSource.
const DefaultBlockSize = 256 * 1024

// ProduceBlocks reads path (gzip-compressed when it ends in .gz),
// decompresses it into pooled blocks of blockSize bytes, and sends
// them to out. It closes out when the input is exhausted, which is the
// consumer's done signal. Blocks are owned by the receiver once sent.
// Run it on its own goroutine so decompression latency never stalls
// the synchronizer.
func ProduceBlocks(path string, blockSize int, pool *bytebufferpool.Pool, out chan<- *bytebufferpool.ByteBuffer) error {
	defer close(out)

	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("gzip %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	for {
		bb := pool.Get()
		if cap(bb.B) < blockSize {
			bb.B = make([]byte, blockSize)
		} else {
			bb.B = bb.B[:blockSize]
		}

		n, err := io.ReadFull(r, bb.B)
		if n > 0 {
			bb.B = bb.B[:n]
			out <- bb
		} else {
			pool.Put(bb)
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decompress %s: %w", path, err)
		}
	}
}
