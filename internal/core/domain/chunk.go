package domain

// Chunk is a pooled, fixed-capacity byte buffer holding a trimmed,
// whole number of FASTQ records from one side of a pair. The backing
// buffer is allocated once at pool construction and reused; Size is
// reset and rewritten on every acquisition.
type Chunk struct {
	// Data is the full-capacity backing buffer.
	Data []byte
	// Size is the number of leading bytes of Data that are valid.
	Size int
}

// NewChunk allocates a chunk with the given fixed capacity.
func NewChunk(capacity int) *Chunk {
	return &Chunk{Data: make([]byte, capacity)}
}

// Bytes returns the valid portion of the buffer.
func (c *Chunk) Bytes() []byte {
	return c.Data[:c.Size]
}

// Capacity returns the fixed capacity of the backing buffer.
func (c *Chunk) Capacity() int {
	return len(c.Data)
}

// Reset marks the chunk empty without touching the backing buffer.
func (c *Chunk) Reset() {
	c.Size = 0
}

// ChunkPair is two chunks produced together, one per paired side,
// guaranteed on success to contain the same number of complete
// records. The consumer must return both chunks to their pools.
type ChunkPair struct {
	Left  *Chunk
	Right *Chunk
}
