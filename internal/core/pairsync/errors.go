package pairsync

import "errors"

var (
	// ErrMalformedRecord reports a format-consistency violation: a
	// boundary scan could not verify the expected record structure.
	// The stream must abort rather than guess at a boundary.
	ErrMalformedRecord = errors.New("fastq: malformed record")

	// ErrEmptyInput reports that a side produced zero bytes on the
	// very first read.
	ErrEmptyInput = errors.New("fastq: empty input")

	// ErrPairMismatch reports that the two inputs are not truly
	// paired: one side ran out of records while the other still has
	// data.
	ErrPairMismatch = errors.New("fastq: paired inputs out of step")

	// ErrReconciliation reports an internal boundary-detection defect:
	// the two sides' line counts still differ after trimming.
	ErrReconciliation = errors.New("fastq: chunk reconciliation failed")
)
