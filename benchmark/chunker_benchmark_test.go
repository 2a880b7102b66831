package benchmark

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	fastqchunker "github.com/baditaflorin/go_fastq_chunker"
	"github.com/baditaflorin/go_fastq_chunker/internal/adapters/source"
	"github.com/baditaflorin/l"
)

// quietLogger builds a discard-backed logger so log output never skews
// the measurements.
func quietLogger(b *testing.B) l.Logger {
	b.Helper()
	lg, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:     io.Discard,
		JsonFormat: false,
	})
	if err != nil {
		b.Fatal(err)
	}
	return lg
}

// generateReads builds n synthetic FASTQ records with the given read
// length. Every third quality string is all '@', the worst case for
// boundary scanning.
func generateReads(n, seqLen int, mate string) string {
	var sb strings.Builder
	sb.Grow(n * (seqLen*2 + 24))
	bases := "ACGT"
	for i := 0; i < n; i++ {
		seq := strings.Repeat(string(bases[i%4]), seqLen)
		qual := strings.Repeat("I", seqLen)
		if i%3 == 0 {
			qual = strings.Repeat("@", seqLen)
		}
		fmt.Fprintf(&sb, "@read%08d/%s\n%s\n+\n%s\n", i, mate, seq, qual)
	}
	return sb.String()
}

// BenchmarkPairedChunking measures end-to-end chunk pair production over
// in-memory paired streams at typical short-read lengths.
func BenchmarkPairedChunking(b *testing.B) {
	cases := []struct {
		name    string
		records int
		seqLen  int
	}{
		{name: "10k_records_100bp", records: 10_000, seqLen: 100},
		{name: "10k_records_150bp", records: 10_000, seqLen: 150},
		{name: "50k_records_100bp", records: 50_000, seqLen: 100},
	}

	lg := quietLogger(b)
	defer lg.Close()

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			left := generateReads(tc.records, tc.seqLen, "1")
			right := generateReads(tc.records, tc.seqLen, "2")

			b.SetBytes(int64(len(left) + len(right)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				pc, err := fastqchunker.NewFromSources(
					source.FromReader(strings.NewReader(left)),
					source.FromReader(strings.NewReader(right)),
					fastqchunker.WithChunkSize(1<<20),
					fastqchunker.WithSwapBufferSize(1<<13),
					fastqchunker.WithPoolSize(4),
					fastqchunker.WithLogger(lg),
				)
				if err != nil {
					b.Fatal(err)
				}
				for {
					pair, err := pc.Next()
					if errors.Is(err, io.EOF) {
						break
					}
					if err != nil {
						b.Fatal(err)
					}
					pc.Release(pair)
				}
				pc.Close()
			}
		})
	}
}

// BenchmarkChunkSizes varies the chunk capacity to expose the tradeoff
// between boundary scans per byte and buffer locality.
func BenchmarkChunkSizes(b *testing.B) {
	left := generateReads(20_000, 100, "1")
	right := generateReads(20_000, 100, "2")

	lg := quietLogger(b)
	defer lg.Close()

	for _, chunkSize := range []int{1 << 18, 1 << 20, 1 << 22} {
		b.Run(fmt.Sprintf("chunk_%dKiB", chunkSize/1024), func(b *testing.B) {
			b.SetBytes(int64(len(left) + len(right)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				pc, err := fastqchunker.NewFromSources(
					source.FromReader(strings.NewReader(left)),
					source.FromReader(strings.NewReader(right)),
					fastqchunker.WithChunkSize(chunkSize),
					fastqchunker.WithSwapBufferSize(1<<13),
					fastqchunker.WithPoolSize(4),
					fastqchunker.WithLogger(lg),
				)
				if err != nil {
					b.Fatal(err)
				}
				for {
					pair, err := pc.Next()
					if errors.Is(err, io.EOF) {
						break
					}
					if err != nil {
						b.Fatal(err)
					}
					pc.Release(pair)
				}
				pc.Close()
			}
		})
	}
}
