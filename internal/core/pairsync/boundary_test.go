package pairsync

import (
	"errors"
	"testing"
)

func TestSkipToLineEnd(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		pos      int
		want     int
		wantCrlf bool
		wantErr  bool
	}{
		{
			name: "plain LF",
			data: "ACGT\nTTTT\n",
			pos:  0,
			want: 4,
		},
		{
			name:     "CRLF latches mode",
			data:     "ACGT\r\nTTTT\r\n",
			pos:      0,
			want:     5, // the '\n' of the "\r\n" pair
			wantCrlf: true,
		},
		{
			name:    "no terminator before buffer end",
			data:    "ACGT",
			pos:     0,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var loc locator
			got, err := loc.skipToLineEnd([]byte(tc.data), tc.pos)
			if tc.wantErr {
				if !errors.Is(err, ErrMalformedRecord) {
					t.Fatalf("expected ErrMalformedRecord, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected pos %d, got %d", tc.want, got)
			}
			if loc.usesCrlf != tc.wantCrlf {
				t.Errorf("expected usesCrlf=%v, got %v", tc.wantCrlf, loc.usesCrlf)
			}
		})
	}
}

func TestNextRecordStart(t *testing.T) {
	// Two records; the first one's quality string begins with '@', so a
	// naive scan would mistake it for a header.
	atQuality := "@r1\nACGT\n+\n@@@@\n@r2\nTTTT\n+\nIIII\n"
	plain := "@r1\nACGT\n+\nIIII\n@r2\nTTTT\n+\nJJJJ\n@r3\nGGGG\n+\nKKKK\n"

	tests := []struct {
		name string
		data string
		pos  int
		want int
	}{
		{
			name: "header verified by '+' two lines below",
			data: plain,
			pos:  1, // inside the first header line
			want: 16,
		},
		{
			name: "quality line starting with '@' is not a record start",
			data: atQuality,
			pos:  1,
			want: 16,
		},
		{
			name: "scan from inside the second record",
			data: plain,
			pos:  20, // inside the sequence line of @r2
			want: 32,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var loc locator
			got, err := loc.nextRecordStart([]byte(tc.data), tc.pos)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected record start %d, got %d", tc.want, got)
			}
			if tc.data[got] != '@' {
				t.Errorf("record start does not point at '@': %q", tc.data[got])
			}
		})
	}
}

func TestNextRecordStartMalformed(t *testing.T) {
	// The line two below the '@' candidate does not start with '+'.
	data := "xx\n@bad\nACGT\nnotplus\nmore\nlines\nhere\n"
	var loc locator
	if _, err := loc.nextRecordStart([]byte(data), 0); !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
}

func TestTrimLineEnding(t *testing.T) {
	tests := []struct {
		name string
		data string
		end  int
		crlf bool
		want int
	}{
		{name: "LF trimmed", data: "AC\n", end: 3, want: 2},
		{name: "CRLF trimmed", data: "AC\r\n", end: 4, crlf: true, want: 2},
		{name: "no terminator untouched", data: "ACGT", end: 4, want: 4},
		{name: "empty", data: "", end: 0, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			loc := locator{usesCrlf: tc.crlf}
			if got := loc.trimLineEnding([]byte(tc.data), tc.end); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

// Re-scanning a trimmed chunk's end must never move the boundary.
func TestBoundaryIdempotence(t *testing.T) {
	data := "@r1\nACGT\n+\nIIII\n@r2\nTTTT\n+\nJJJJ\n@r3\nGGGG\n+\nKKKK\n"
	var loc locator
	first, err := loc.nextRecordStart([]byte(data), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	again, err := loc.nextRecordStart([]byte(data), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != again {
		t.Errorf("boundary moved on re-scan: %d then %d", first, again)
	}
}
