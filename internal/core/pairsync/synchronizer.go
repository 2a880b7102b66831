package pairsync

import (
	"fmt"
	"io"

	"github.com/baditaflorin/go_fastq_chunker/internal/core/domain"
	"github.com/baditaflorin/go_fastq_chunker/internal/ports"
)

// Config holds the synchronizer's construction-time parameters.
type Config struct {
	// ChunkCapacity is the fixed capacity of every pooled chunk.
	ChunkCapacity int
	// SwapSize is the per-side carry-over capacity; boundary scans
	// start SwapSize bytes before the chunk end. It must be at least
	// the longest single record expected in the input.
	SwapSize int
	// Strict makes a one-sided end-of-data a hard error instead of a
	// logged anomaly.
	Strict bool
	// Logger receives diagnostics.
	Logger ports.Logger
}

// side carries the per-side state that survives across calls.
type side struct {
	name string
	src  ports.ByteSource
	pool ports.ChunkPool
	// swap holds the tail bytes of the previous raw read that belong
	// to records straddling the previous chunk boundary; they are
	// copied to the front of the next chunk before new bytes are read.
	swap []byte
	eof  bool
}

// fill describes one side's freshly filled chunk before trimming.
type fill struct {
	chunk *domain.Chunk
	// end is the tentative boundary: the offset of the next record
	// start for an interior chunk, or the end of valid data at EOF.
	end int
	// valid is the total number of raw bytes in the chunk buffer.
	valid int
	eof   bool
}

// Synchronizer reconciles two independently read byte streams into
// boundary-aligned, record-count-matched chunk pairs. It owns its two
// byte sources and chunk pools for its lifetime and is meant to be
// driven by a single pipeline stage; pairs are emitted strictly in
// stream order.
type Synchronizer struct {
	cfg    Config
	logger ports.Logger
	loc    locator

	left  side
	right side

	started bool
	done    bool

	stats domain.Stats
}

// New wires a synchronizer to its two sources and pools. Pools must
// hand out chunks of exactly cfg.ChunkCapacity bytes.
func New(leftSrc, rightSrc ports.ByteSource, leftPool, rightPool ports.ChunkPool, cfg Config) (*Synchronizer, error) {
	if cfg.ChunkCapacity <= 0 || cfg.SwapSize <= 0 {
		return nil, fmt.Errorf("pairsync: chunk capacity and swap size must be positive")
	}
	if cfg.ChunkCapacity <= 2*cfg.SwapSize {
		return nil, fmt.Errorf("pairsync: chunk capacity %d must exceed twice the swap size %d", cfg.ChunkCapacity, cfg.SwapSize)
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("pairsync: logger is required")
	}
	return &Synchronizer{
		cfg:    cfg,
		logger: cfg.Logger,
		// Reconciliation can defer up to a full scan window plus the
		// record straddling it, so the carry-over buffers hold twice
		// the scan window.
		left:  side{name: "left", src: leftSrc, pool: leftPool, swap: make([]byte, 0, 2*cfg.SwapSize)},
		right: side{name: "right", src: rightSrc, pool: rightPool, swap: make([]byte, 0, 2*cfg.SwapSize)},
	}, nil
}

// NextPair produces the next record-aligned chunk pair. It returns
// io.EOF once both sides have been fully drained; after that every
// call returns io.EOF without acquiring buffers.
func (s *Synchronizer) NextPair() (*domain.ChunkPair, error) {
	if s.done {
		return nil, io.EOF
	}

	lc := s.left.pool.Acquire()
	rc := s.right.pool.Acquire()
	release := func() {
		s.left.pool.Release(lc)
		s.right.pool.Release(rc)
	}

	lf, err := s.fillSide(&s.left, lc)
	if err != nil {
		release()
		return nil, err
	}
	rf, err := s.fillSide(&s.right, rc)
	if err != nil {
		release()
		return nil, err
	}

	first := !s.started
	s.started = true

	if lf.valid == 0 && rf.valid == 0 {
		s.done = true
		release()
		if first {
			return nil, ErrEmptyInput
		}
		return nil, io.EOF
	}
	lopsided := lf.valid == 0 || rf.valid == 0
	if lopsided {
		empty, active := &s.left, &s.right
		if rf.valid == 0 {
			empty, active = &s.right, &s.left
		}
		if first {
			s.done = true
			release()
			return nil, fmt.Errorf("%w: %s side", ErrEmptyInput, empty.name)
		}
		if s.cfg.Strict {
			s.done = true
			release()
			return nil, fmt.Errorf("%w: %s side exhausted while %s side still has data", ErrPairMismatch, empty.name, active.name)
		}
		s.logger.Warn("paired inputs out of step",
			"exhausted", empty.name,
			"active", active.name,
		)
	}

	if lf.eof && rf.eof {
		s.done = true
	} else if lf.eof != rf.eof {
		exhausted := s.left.name
		if rf.eof {
			exhausted = s.right.name
		}
		s.logger.Warn("one input reached end of data before the other",
			"exhausted", exhausted,
		)
	}

	switch {
	case lopsided:
		// One side is already empty; there is nothing to reconcile
		// against. The surviving side drains as-is.
	case s.done:
		// Final pair: both tails are emitted whole. For truly paired
		// inputs their record counts must already agree.
		ll := fullLines(lc.Data[:lf.end])
		rl := fullLines(rc.Data[:rf.end])
		if ll != rl {
			if s.cfg.Strict {
				release()
				return nil, fmt.Errorf("%w: final chunk has %d lines on left, %d on right", ErrPairMismatch, ll, rl)
			}
			s.logger.Warn("final chunk pair has unequal line counts",
				"left_lines", ll,
				"right_lines", rl,
			)
		}
	default:
		if err := s.reconcile(lc, &lf, rc, &rf); err != nil {
			release()
			return nil, err
		}
	}

	if err := s.finishSide(&s.left, lc, &lf); err != nil {
		release()
		return nil, err
	}
	if err := s.finishSide(&s.right, rc, &rf); err != nil {
		release()
		return nil, err
	}

	s.stats.Pairs++
	s.stats.LeftRecords += int64(fullLines(lc.Bytes())) / 4
	s.stats.RightRecords += int64(fullLines(rc.Bytes())) / 4
	s.stats.LeftBytes += int64(lc.Size)
	s.stats.RightBytes += int64(rc.Size)

	return &domain.ChunkPair{Left: lc, Right: rc}, nil
}

// fillSide copies any carry-over to the front of the chunk, reads the
// remaining capacity from the side's source, and locates a tentative
// boundary. A short read marks the side EOF; no further reads are
// issued for an EOF side.
func (s *Synchronizer) fillSide(sd *side, chunk *domain.Chunk) (fill, error) {
	data := chunk.Data
	filled := copy(data, sd.swap)
	sd.swap = sd.swap[:0]

	if !sd.eof {
		n, err := sd.src.Read(data[filled:])
		if err != nil {
			return fill{}, fmt.Errorf("%s side: read: %w", sd.name, err)
		}
		filled += n
		if filled < len(data) {
			sd.eof = true
		}
	}

	f := fill{chunk: chunk, valid: filled, eof: sd.eof}
	if sd.eof {
		// Short tail: the end of valid data is an implicit boundary;
		// never scan past it.
		f.end = filled
		return f, nil
	}

	end, err := s.loc.nextRecordStart(data, len(data)-s.cfg.SwapSize)
	if err != nil {
		return fill{}, fmt.Errorf("%s side: %w", sd.name, err)
	}
	f.end = end
	return f, nil
}

// reconcile compares the per-side line counts up to each tentative
// boundary and walks the boundary of the side with more lines backward
// until both chunks hold the same number of complete records. The
// trimmed tail is deferred into the next call via the swap buffer, not
// discarded.
func (s *Synchronizer) reconcile(lc *domain.Chunk, lf *fill, rc *domain.Chunk, rf *fill) error {
	ll := boundaryLines(lc.Data[:lf.end], lf.eof)
	rl := boundaryLines(rc.Data[:rf.end], rf.eof)

	if !lf.eof && !rf.eof && (ll-rl)%4 != 0 {
		return fmt.Errorf("%w: boundary line counts differ by %d, not a whole number of records", ErrReconciliation, ll-rl)
	}

	var err error
	switch {
	case ll > rl:
		lf.end, err = trimToLineCount(lc.Data, lf.end, rl)
	case rl > ll:
		rf.end, err = trimToLineCount(rc.Data, rf.end, ll)
	}
	if err != nil {
		return err
	}

	// A residual difference after trimming is a boundary-detection
	// bug; surface it loudly rather than corrupt downstream pairing.
	ll = boundaryLines(lc.Data[:lf.end], lf.eof)
	rl = boundaryLines(rc.Data[:rf.end], rf.eof)
	if ll != rl {
		return fmt.Errorf("%w: residual line difference %d after trim", ErrReconciliation, ll-rl)
	}
	return nil
}

// finishSide trims the chunk's logical size to its final boundary and
// saves everything past the boundary into the side's swap buffer for
// the next call.
func (s *Synchronizer) finishSide(sd *side, chunk *domain.Chunk, f *fill) error {
	chunk.Size = s.loc.trimLineEnding(chunk.Data, f.end)

	tail := chunk.Data[f.end:f.valid]
	if len(tail) > cap(sd.swap) {
		return fmt.Errorf("%w: %s side carry-over of %d bytes exceeds swap capacity %d", ErrReconciliation, sd.name, len(tail), cap(sd.swap))
	}
	sd.swap = sd.swap[:len(tail)]
	copy(sd.swap, tail)
	return nil
}

// Done reports whether both sides have been fully drained.
func (s *Synchronizer) Done() bool {
	return s.done
}

// UsesCrlf reports the detected line-ending mode.
func (s *Synchronizer) UsesCrlf() bool {
	return s.loc.usesCrlf
}

// Stats returns a snapshot of the progress counters.
func (s *Synchronizer) Stats() domain.Stats {
	return s.stats
}

// Close closes both byte sources, left first.
func (s *Synchronizer) Close() error {
	lerr := s.left.src.Close()
	rerr := s.right.src.Close()
	if lerr != nil {
		return lerr
	}
	return rerr
}
