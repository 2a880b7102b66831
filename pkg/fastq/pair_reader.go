package fastq

import (
	"errors"
	"fmt"
	"io"
)

// ErrOutOfStep reports paired inputs with unequal record counts.
var ErrOutOfStep = errors.New("fastq: paired inputs have unequal record counts")

// PairReader yields matched record pairs from two paired files.
type PairReader struct {
	Left  *Reader
	Right *Reader
}

// NewPairReader opens both sides of a pair.
func NewPairReader(leftPath, rightPath string, opts ...ReaderOption) (*PairReader, error) {
	left, err := NewReader(leftPath, opts...)
	if err != nil {
		return nil, err
	}
	right, err := NewReader(rightPath, opts...)
	if err != nil {
		left.Close()
		return nil, err
	}
	return &PairReader{Left: left, Right: right}, nil
}

// Next returns the next record pair, io.EOF when both sides end
// together, or ErrOutOfStep when only one does.
func (p *PairReader) Next() (*Record, *Record, error) {
	l, lerr := p.Left.Next()
	r, rerr := p.Right.Next()

	if lerr == io.EOF && rerr == io.EOF {
		return nil, nil, io.EOF
	}
	if lerr == io.EOF {
		return nil, nil, fmt.Errorf("%w: left ended first", ErrOutOfStep)
	}
	if rerr == io.EOF {
		return nil, nil, fmt.Errorf("%w: right ended first", ErrOutOfStep)
	}
	if lerr != nil {
		return nil, nil, lerr
	}
	if rerr != nil {
		return nil, nil, rerr
	}
	return l, r, nil
}

// Close closes both sides.
func (p *PairReader) Close() error {
	lerr := p.Left.Close()
	rerr := p.Right.Close()
	if lerr != nil {
		return lerr
	}
	return rerr
}
