package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"runtime/pprof"

	fastqchunker "github.com/baditaflorin/go_fastq_chunker"
	"github.com/baditaflorin/go_fastq_chunker/internal/adapters/source"
	"github.com/baditaflorin/l"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/sync/errgroup"
)

func main() {
	var (
		r1         = flag.String("r1", "", "left (R1) FASTQ file, plain or .gz, '-' for stdin")
		r2         = flag.String("r2", "", "right (R2) FASTQ file, plain or .gz")
		chunkSize  = flag.Int("chunk-size", fastqchunker.DefaultChunkSize, "chunk capacity in bytes")
		swapSize   = flag.Int("swap-size", fastqchunker.DefaultSwapBufferSize, "carry-over buffer size in bytes")
		poolSize   = flag.Int("pool-size", fastqchunker.DefaultPoolSize, "chunks preallocated per side")
		lenient    = flag.Bool("lenient", false, "log instead of fail when one side ends early")
		queue      = flag.Bool("queue", false, "decompress on separate goroutines feeding block queues")
		cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
		memprofile = flag.String("memprofile", "", "write memory profile to `file`")
	)
	flag.Parse()

	if *r1 == "" || *r2 == "" {
		fmt.Fprintln(os.Stderr, "usage: fqchunk -r1 reads_1.fq[.gz] -r2 reads_2.fq[.gz]")
		os.Exit(2)
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	lg, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:     os.Stderr,
		JsonFormat: false,
		AsyncWrite: true,
		BufferSize: 256 * 1024,
	})
	if err != nil {
		log.Fatal("could not create logger: ", err)
	}
	defer lg.Close()

	opts := []fastqchunker.Option{
		fastqchunker.WithChunkSize(*chunkSize),
		fastqchunker.WithSwapBufferSize(*swapSize),
		fastqchunker.WithPoolSize(*poolSize),
		fastqchunker.WithStrictPairing(!*lenient),
		fastqchunker.WithLogger(lg),
	}

	var (
		pc *fastqchunker.PairedChunker
		g  errgroup.Group
	)
	if *queue {
		blockPool := new(bytebufferpool.Pool)
		leftBlocks := make(chan *bytebufferpool.ByteBuffer, 16)
		rightBlocks := make(chan *bytebufferpool.ByteBuffer, 16)
		g.Go(func() error { return source.ProduceBlocks(*r1, source.DefaultBlockSize, blockPool, leftBlocks) })
		g.Go(func() error { return source.ProduceBlocks(*r2, source.DefaultBlockSize, blockPool, rightBlocks) })
		pc, err = fastqchunker.NewFromSources(
			source.NewQueueSource(leftBlocks, blockPool),
			source.NewQueueSource(rightBlocks, blockPool),
			opts...,
		)
	} else {
		pc, err = fastqchunker.New(*r1, *r2, opts...)
	}
	if err != nil {
		log.Fatal(err)
	}
	defer pc.Close()

	for {
		pair, err := pc.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Fatal(err)
		}
		// A real pipeline would hand the pair to worker threads here.
		pc.Release(pair)
	}
	if *queue {
		if err := g.Wait(); err != nil {
			log.Fatal(err)
		}
	}

	stats := pc.Stats()
	fmt.Printf("pairs\t%d\nleft_records\t%d\nright_records\t%d\nleft_bytes\t%d\nright_bytes\t%d\n",
		stats.Pairs, stats.LeftRecords, stats.RightRecords, stats.LeftBytes, stats.RightBytes)

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal("could not create memory profile: ", err)
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal("could not write memory profile: ", err)
		}
	}
}
