package pairsync

import (
	"bytes"
	"fmt"
)

// countLines returns the number of newline-terminated lines in b.
func countLines(b []byte) int {
	return bytes.Count(b, []byte{'\n'})
}

// fullLines counts lines in b including a trailing line that lacks a
// terminator, as happens on a short final read.
func fullLines(b []byte) int {
	n := bytes.Count(b, []byte{'\n'})
	if len(b) > 0 && b[len(b)-1] != '\n' {
		n++
	}
	return n
}

// boundaryLines counts the lines before a tentative boundary. An
// interior boundary sits just past a newline, so terminated lines are
// the whole story; a boundary at end of data may close with an
// unterminated final line, which is still a complete line.
func boundaryLines(b []byte, eof bool) int {
	if eof {
		return fullLines(b)
	}
	return countLines(b)
}

// trimToLineCount moves a tentative boundary backward until exactly
// `want` newline-terminated lines remain before it, and returns the
// new boundary. An unterminated final line before end is dropped along
// the way. The trimmed tail is not discarded by callers; it is
// deferred into the next chunk.
func trimToLineCount(data []byte, end, want int) (int, error) {
	have := countLines(data[:end])
	if want > have {
		return 0, fmt.Errorf("%w: cannot trim boundary to %d lines, only %d terminated lines present", ErrReconciliation, want, have)
	}
	seen := 0
	for i := end - 1; i >= 0; i-- {
		if data[i] != '\n' {
			continue
		}
		seen++
		if seen == have-want+1 {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: cannot trim boundary from %d to %d lines", ErrReconciliation, have, want)
}
