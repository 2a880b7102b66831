package pairsync

import "fmt"

// locator finds record starts within a filled buffer. Line-ending mode
// is detected from the first CRLF seen and latched for the rest of the
// stream, so every later trim accounts for the extra carriage return.
type locator struct {
	usesCrlf bool
}

// skipToLineEnd advances pos to the final terminator byte of the
// current line: the '\n' itself, or the '\n' of a "\r\n" sequence. The
// caller must guarantee a terminator exists before len(data); scans
// start near, not at, the true buffer end, which leaves that slack.
func (l *locator) skipToLineEnd(data []byte, pos int) (int, error) {
	for pos < len(data) && data[pos] != '\n' && data[pos] != '\r' {
		pos++
	}
	if pos >= len(data) {
		return 0, fmt.Errorf("%w: no line terminator before byte %d", ErrMalformedRecord, len(data))
	}
	if data[pos] == '\r' {
		if pos+1 >= len(data) {
			return 0, fmt.Errorf("%w: carriage return at buffer end (byte %d)", ErrMalformedRecord, pos)
		}
		if data[pos+1] == '\n' {
			l.usesCrlf = true
			pos++
		}
	}
	return pos, nil
}

// nextRecordStart returns the byte offset of the first true record
// header at or after pos. A quality string may itself begin with '@',
// so an '@'-prefixed line is only accepted as a header once the line
// two below it starts with '+'; if instead the line immediately below
// starts with '@', the candidate was a quality line and the later
// position is the real header. A missing '+' where one is required is
// a fatal format violation.
func (l *locator) nextRecordStart(data []byte, pos int) (int, error) {
	pos, err := l.skipToLineEnd(data, pos)
	if err != nil {
		return 0, err
	}
	pos++

	for pos < len(data) && data[pos] != '@' {
		if pos, err = l.skipToLineEnd(data, pos); err != nil {
			return 0, err
		}
		pos++
	}
	if pos >= len(data) {
		return 0, fmt.Errorf("%w: no record header before byte %d", ErrMalformedRecord, len(data))
	}
	start := pos

	if pos, err = l.skipToLineEnd(data, pos); err != nil {
		return 0, err
	}
	pos++
	if pos < len(data) && data[pos] == '@' {
		// start was a quality line; this is the real header.
		return pos, nil
	}

	if pos, err = l.skipToLineEnd(data, pos); err != nil {
		return 0, err
	}
	pos++
	if pos >= len(data) || data[pos] != '+' {
		return 0, fmt.Errorf("%w: expected '+' strand marker at byte %d", ErrMalformedRecord, pos)
	}
	return start, nil
}

// trimLineEnding shrinks end past the line terminator it lands on, so
// a chunk's size excludes the terminator of its final line. A tail
// without a terminator (short final read) is left untouched.
func (l *locator) trimLineEnding(data []byte, end int) int {
	if end > 0 && data[end-1] == '\n' {
		end--
		if l.usesCrlf && end > 0 && data[end-1] == '\r' {
			end--
		}
	}
	return end
}
