package pool

import (
	"github.com/baditaflorin/go_fastq_chunker/internal/core/domain"
)

// ChunkPool is a bounded set of reusable chunk buffers. The whole
// population is allocated at construction and never grows, so Acquire
// blocks once every chunk is lent out; a pool never frees a chunk
// individually. The free list is a buffered channel, which makes
// Release safe from any goroutine, including downstream consumers.
type ChunkPool struct {
	free     chan *domain.Chunk
	chunkCap int
}

// New creates a pool of `chunks` buffers, each with fixed capacity
// `chunkCap` bytes.
func New(chunks, chunkCap int) *ChunkPool {
	p := &ChunkPool{
		free:     make(chan *domain.Chunk, chunks),
		chunkCap: chunkCap,
	}
	for i := 0; i < chunks; i++ {
		p.free <- domain.NewChunk(chunkCap)
	}
	return p
}

// Acquire returns an available chunk with its size reset to zero,
// blocking until one is free.
func (p *ChunkPool) Acquire() *domain.Chunk {
	c := <-p.free
	c.Reset()
	return c
}

// Release returns a chunk to the pool, making it immediately eligible
// for reuse. Releasing a chunk twice is a caller bug.
func (p *ChunkPool) Release(c *domain.Chunk) {
	if c == nil {
		return
	}
	c.Reset()
	p.free <- c
}

// Available reports how many chunks are currently free.
func (p *ChunkPool) Available() int {
	return len(p.free)
}

// ChunkCapacity returns the fixed capacity of each pooled buffer.
func (p *ChunkPool) ChunkCapacity() int {
	return p.chunkCap
}
