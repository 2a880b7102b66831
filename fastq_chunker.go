// fastq_chunker.go
// Package fastqchunker turns two paired-end FASTQ streams into
// equally-sized, record-aligned chunk pairs for downstream parallel
// processing. Raw reads never align with record boundaries and the two
// streams are read independently, so the engine locates a record
// boundary near each chunk's tail, reconciles the two boundaries until
// both chunks hold the same number of complete records, and carries the
// trimmed remainder into the next chunk. Buffers come from bounded
// pools and are reused for the whole run.
//
// This package uses the functional options pattern for configuration
// of chunk capacity, swap-buffer size, pool size, pairing strictness,
// and logging.
package fastqchunker

import (
	"fmt"

	"github.com/baditaflorin/go_fastq_chunker/internal/adapters/logger"
	"github.com/baditaflorin/go_fastq_chunker/internal/adapters/source"
	"github.com/baditaflorin/go_fastq_chunker/internal/core/domain"
	"github.com/baditaflorin/go_fastq_chunker/internal/core/pairsync"
	"github.com/baditaflorin/go_fastq_chunker/internal/pool"
	"github.com/baditaflorin/go_fastq_chunker/internal/ports"
	"github.com/baditaflorin/l"
)

// Default configuration values.
const (
	// DefaultChunkSize is the fixed capacity of every pooled chunk.
	DefaultChunkSize = 1 << 20
	// DefaultSwapBufferSize bounds the carry-over between chunks and
	// must be at least the longest single record expected.
	DefaultSwapBufferSize = 1 << 13
	// DefaultPoolSize is the number of chunks preallocated per side.
	DefaultPoolSize = 128
)

// Chunk, ChunkPair and Stats are the value types handed to consumers.
type (
	Chunk     = domain.Chunk
	ChunkPair = domain.ChunkPair
	Stats     = domain.Stats
)

// Sentinel errors surfaced by Next.
var (
	ErrMalformedRecord = pairsync.ErrMalformedRecord
	ErrEmptyInput      = pairsync.ErrEmptyInput
	ErrPairMismatch    = pairsync.ErrPairMismatch
	ErrReconciliation  = pairsync.ErrReconciliation
)

// Config holds configuration options for the paired chunker.
type Config struct {
	ChunkSize      int
	SwapBufferSize int
	PoolSize       int
	// StrictPairing makes a one-sided end-of-data a hard error instead
	// of a logged anomaly.
	StrictPairing bool
	Logger        ports.Logger
}

// Option defines a functional option for configuring the chunker.
type Option func(*Config)

// WithChunkSize sets the fixed capacity of every pooled chunk.
func WithChunkSize(size int) Option {
	return func(cfg *Config) {
		cfg.ChunkSize = size
	}
}

// WithSwapBufferSize sets the per-side carry-over capacity.
func WithSwapBufferSize(size int) Option {
	return func(cfg *Config) {
		cfg.SwapBufferSize = size
	}
}

// WithPoolSize sets how many chunks are preallocated per side.
func WithPoolSize(n int) Option {
	return func(cfg *Config) {
		cfg.PoolSize = n
	}
}

// WithStrictPairing toggles hard errors on one-sided end-of-data.
// Strict pairing is the default.
func WithStrictPairing(strict bool) Option {
	return func(cfg *Config) {
		cfg.StrictPairing = strict
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// PairedChunker produces record-count-matched chunk pairs from two
// paired FASTQ inputs. It owns its two byte sources and chunk pools
// for its lifetime.
type PairedChunker struct {
	sync      *pairsync.Synchronizer
	leftPool  *pool.ChunkPool
	rightPool *pool.ChunkPool
	logger    ports.Logger
}

// New opens the two paired files (plain or gzip-compressed, "-" for
// standard input) and builds a chunker over them.
func New(leftPath, rightPath string, opts ...Option) (*PairedChunker, error) {
	left, err := source.OpenFile(leftPath)
	if err != nil {
		return nil, err
	}
	right, err := source.OpenFile(rightPath)
	if err != nil {
		left.Close()
		return nil, err
	}
	pc, err := NewFromSources(left, right, opts...)
	if err != nil {
		left.Close()
		right.Close()
		return nil, err
	}
	return pc, nil
}

// NewFromSources builds a chunker over two already opened byte
// sources, such as queue-fed decompression pipelines.
func NewFromSources(left, right ports.ByteSource, opts ...Option) (*PairedChunker, error) {
	cfg := Config{
		ChunkSize:      DefaultChunkSize,
		SwapBufferSize: DefaultSwapBufferSize,
		PoolSize:       DefaultPoolSize,
		StrictPairing:  true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Logger == nil {
		lg, err := logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
		cfg.Logger = lg
	}

	if cfg.PoolSize < 2 {
		return nil, fmt.Errorf("fastqchunker: pool size %d is too small, need at least 2", cfg.PoolSize)
	}

	leftPool := pool.New(cfg.PoolSize, cfg.ChunkSize)
	rightPool := pool.New(cfg.PoolSize, cfg.ChunkSize)

	sync, err := pairsync.New(left, right, leftPool, rightPool, pairsync.Config{
		ChunkCapacity: cfg.ChunkSize,
		SwapSize:      cfg.SwapBufferSize,
		Strict:        cfg.StrictPairing,
		Logger:        cfg.Logger,
	})
	if err != nil {
		return nil, err
	}

	cfg.Logger.Debug("paired chunker ready",
		"chunk_size", cfg.ChunkSize,
		"swap_buffer_size", cfg.SwapBufferSize,
		"pool_size", cfg.PoolSize,
		"strict_pairing", cfg.StrictPairing,
	)

	return &PairedChunker{
		sync:      sync,
		leftPool:  leftPool,
		rightPool: rightPool,
		logger:    cfg.Logger,
	}, nil
}

// Next returns the next record-aligned chunk pair, or io.EOF once both
// inputs are drained. The caller must hand the pair back via Release
// when done; the pool blocks further production until it does.
func (pc *PairedChunker) Next() (*ChunkPair, error) {
	return pc.sync.NextPair()
}

// Release returns both chunks of a pair to their pools. Safe to call
// from a consumer goroutine.
func (pc *PairedChunker) Release(pair *ChunkPair) {
	if pair == nil {
		return
	}
	pc.leftPool.Release(pair.Left)
	pc.rightPool.Release(pair.Right)
}

// Stats returns a snapshot of the progress counters.
func (pc *PairedChunker) Stats() Stats {
	return pc.sync.Stats()
}

// Close closes both byte sources.
func (pc *PairedChunker) Close() error {
	return pc.sync.Close()
}
