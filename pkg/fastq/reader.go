// Package fastq provides a simple single-record-at-a-time FASTQ
// reader. It is the line-oriented sibling of the chunked engine and
// the correctness oracle in its tests: slow, allocation-heavy, and
// easy to trust.
package fastq

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shenwei356/xopen"
)

var (
	// ErrTruncatedRecord reports an input that ends inside a 4-line
	// record.
	ErrTruncatedRecord = errors.New("fastq: truncated record")

	// ErrQualityLength reports a quality string whose length differs
	// from its sequence.
	ErrQualityLength = errors.New("fastq: sequence and quality have different length")
)

// Record is one 4-line FASTQ entry. Name keeps its '@' prefix and
// Strand its '+' prefix; line breaks are stripped.
type Record struct {
	Name   string
	Seq    string
	Strand string
	Qual   string
}

// Reader yields records one at a time from a plain or gzip-compressed
// stream.
type Reader struct {
	br        *bufio.Reader
	closer    io.Closer
	noQuality bool
	eof       bool
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithoutQuality handles 3-line inputs that carry no quality string;
// the quality is filled with 'K' to the sequence length.
func WithoutQuality() ReaderOption {
	return func(r *Reader) {
		r.noQuality = true
	}
}

// NewReader opens path (plain, .gz, or "-" for standard input).
func NewReader(path string, opts ...ReaderOption) (*Reader, error) {
	xr, err := xopen.Ropen(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	r := &Reader{br: xr.Reader, closer: xr}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// NewReaderFrom wraps an already opened stream.
func NewReaderFrom(rd io.Reader, opts ...ReaderOption) *Reader {
	r := &Reader{br: bufio.NewReader(rd)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// readLine returns the next line with its \n, \r or \r\n stripped. A
// final line without a terminator is still returned; the call after it
// reports io.EOF.
func (r *Reader) readLine() (string, error) {
	if r.eof {
		return "", io.EOF
	}
	line, err := r.br.ReadString('\n')
	if err == io.EOF {
		r.eof = true
		if line == "" {
			return "", io.EOF
		}
	} else if err != nil {
		return "", err
	}
	line = strings.TrimRight(line, "\n")
	line = strings.TrimRight(line, "\r")
	return line, nil
}

// Next returns the next record, or io.EOF at end of input. Blank lines
// and stray content before a '@' header are skipped, matching the
// tolerant behavior of common FASTQ tooling.
func (r *Reader) Next() (*Record, error) {
	name, err := r.readLine()
	if err != nil {
		return nil, err
	}
	for name == "" || name[0] != '@' {
		name, err = r.readLine()
		if err != nil {
			return nil, err
		}
	}

	seq, err := r.requireLine(name)
	if err != nil {
		return nil, err
	}
	strand, err := r.requireLine(name)
	if err != nil {
		return nil, err
	}

	if r.noQuality {
		return &Record{Name: name, Seq: seq, Strand: strand, Qual: strings.Repeat("K", len(seq))}, nil
	}

	qual, err := r.requireLine(name)
	if err != nil {
		return nil, err
	}
	if len(qual) != len(seq) {
		return nil, fmt.Errorf("%w: %s has %d sequence bytes, %d quality bytes", ErrQualityLength, name, len(seq), len(qual))
	}
	return &Record{Name: name, Seq: seq, Strand: strand, Qual: qual}, nil
}

func (r *Reader) requireLine(name string) (string, error) {
	line, err := r.readLine()
	if err == io.EOF {
		return "", fmt.Errorf("%w: %s", ErrTruncatedRecord, name)
	}
	return line, err
}

// Close closes the underlying stream when it was opened by NewReader.
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
