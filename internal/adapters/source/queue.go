package source

import (
	"github.com/valyala/bytebufferpool"
)

// QueueSource presents the byte source contract over a bounded channel
// of decompressed blocks produced by an upstream goroutine. The closed
// channel is the producer-done signal. A partially consumed block is
// retained across calls, so no byte is dropped or read twice. Read
// blocks only while it still needs bytes and the producer has not
// finished.
type QueueSource struct {
	blocks <-chan *bytebufferpool.ByteBuffer
	pool   *bytebufferpool.Pool

	// last is the block currently being drained; off is the next
	// unread byte within it.
	last *bytebufferpool.ByteBuffer
	off  int
	done bool
}

// NewQueueSource wires a source to its inbound block channel. Drained
// blocks are returned to pool.
func NewQueueSource(blocks <-chan *bytebufferpool.ByteBuffer, pool *bytebufferpool.Pool) *QueueSource {
	return &QueueSource{blocks: blocks, pool: pool}
}

// Read drains queued blocks into dst until dst is full or the producer
// has completed. A short count signals end of data.
func (q *QueueSource) Read(dst []byte) (int, error) {
	if q.done {
		return 0, nil
	}
	filled := 0
	for filled < len(dst) {
		if q.last == nil {
			bb, ok := <-q.blocks
			if !ok {
				q.done = true
				break
			}
			q.last, q.off = bb, 0
		}
		n := copy(dst[filled:], q.last.B[q.off:])
		filled += n
		q.off += n
		if q.off == len(q.last.B) {
			q.pool.Put(q.last)
			q.last = nil
		}
	}
	return filled, nil
}

// Close returns any retained block to the pool. The producer goroutine
// owns the channel and closes it.
func (q *QueueSource) Close() error {
	if q.last != nil {
		q.pool.Put(q.last)
		q.last = nil
	}
	return nil
}
