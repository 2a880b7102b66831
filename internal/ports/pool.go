package ports

import "github.com/baditaflorin/go_fastq_chunker/internal/core/domain"

// ChunkPool lends and reclaims fixed-capacity chunk buffers.
type ChunkPool interface {
	// Acquire returns an available chunk with its size reset to zero.
	// When every chunk is lent out, Acquire blocks until one is
	// released; backpressure comes from the consumer returning buffers.
	Acquire() *domain.Chunk

	// Release returns ownership of a chunk to the pool. It is safe to
	// call from a different goroutine than the one calling Acquire.
	Release(c *domain.Chunk)
}
