package source

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/valyala/bytebufferpool"
)

func sendBlock(t *testing.T, pool *bytebufferpool.Pool, ch chan *bytebufferpool.ByteBuffer, data string) {
	t.Helper()
	bb := pool.Get()
	bb.B = append(bb.B[:0], data...)
	ch <- bb
}

func TestQueueSourceSpansBlocks(t *testing.T) {
	pool := new(bytebufferpool.Pool)
	blocks := make(chan *bytebufferpool.ByteBuffer, 4)
	sendBlock(t, pool, blocks, "abc")
	sendBlock(t, pool, blocks, "defgh")
	close(blocks)

	src := NewQueueSource(blocks, pool)
	defer src.Close()

	dst := make([]byte, 8)
	n, err := src.Read(dst)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(dst[:n]) != "abcdefgh" {
		t.Fatalf("expected %q, got %q", "abcdefgh", dst[:n])
	}

	if n, err := src.Read(dst); n != 0 || err != nil {
		t.Fatalf("expected terminal 0, got %d, %v", n, err)
	}
}

func TestQueueSourceRetainsPartialBlock(t *testing.T) {
	pool := new(bytebufferpool.Pool)
	blocks := make(chan *bytebufferpool.ByteBuffer, 4)
	sendBlock(t, pool, blocks, "abcdefgh")
	close(blocks)

	src := NewQueueSource(blocks, pool)
	defer src.Close()

	dst := make([]byte, 3)
	for _, want := range []string{"abc", "def"} {
		n, err := src.Read(dst)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(dst[:n]) != want {
			t.Fatalf("expected %q, got %q", want, dst[:n])
		}
	}

	// Two bytes left in the retained block; short read ends the stream.
	n, err := src.Read(dst)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n != 2 || string(dst[:n]) != "gh" {
		t.Fatalf("expected short read of %q, got %d bytes %q", "gh", n, dst[:n])
	}
}

func TestQueueSourceCloseReturnsRetainedBlock(t *testing.T) {
	pool := new(bytebufferpool.Pool)
	blocks := make(chan *bytebufferpool.ByteBuffer, 1)
	sendBlock(t, pool, blocks, "abcdefgh")
	close(blocks)

	src := NewQueueSource(blocks, pool)
	dst := make([]byte, 3)
	if _, err := src.Read(dst); err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := src.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if src.last != nil {
		t.Error("close did not return the retained block")
	}
}

func TestProduceBlocksRoundTrip(t *testing.T) {
	content := bytes.Repeat([]byte("@r1\nACGTACGT\n+\nIIIIIIII\n"), 64)

	plain := filepath.Join(t.TempDir(), "reads.fq")
	if err := os.WriteFile(plain, content, 0o644); err != nil {
		t.Fatal(err)
	}

	compressed := filepath.Join(t.TempDir(), "reads.fq.gz")
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(compressed, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{plain, compressed} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			pool := new(bytebufferpool.Pool)
			blocks := make(chan *bytebufferpool.ByteBuffer, 4)

			errc := make(chan error, 1)
			go func() {
				// Small blocks force the content to span several of them.
				errc <- ProduceBlocks(path, 256, pool, blocks)
			}()

			src := NewQueueSource(blocks, pool)
			defer src.Close()

			var got []byte
			dst := make([]byte, 100)
			for {
				n, err := src.Read(dst)
				if err != nil {
					t.Fatalf("read: %v", err)
				}
				got = append(got, dst[:n]...)
				if n < len(dst) {
					break
				}
			}

			if err := <-errc; err != nil {
				t.Fatalf("producer: %v", err)
			}
			if !bytes.Equal(got, content) {
				t.Errorf("round trip mismatch: %d bytes in, %d out", len(content), len(got))
			}
		})
	}
}
