// Command persistence computes the persistence diagram of a .flt filtration
// file and writes one "dim birth death" line per interval.
//
// Usage:
//
//	persistence --in filtration.flt --out pairs.txt --field 2 --matrix boundary --driver twist
//
// The input may be plain, zstd- or lz4-framed; the codec is detected by the
// frame magic. Exit codes: 0 success, 2 malformed input, 3 canceled.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hupe1980/topogo"
	"github.com/hupe1980/topogo/filtration"
)

const (
	exitOK        = 0
	exitFailure   = 1
	exitMalformed = 2
	exitCanceled  = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		in      = flag.String("in", "", "input .flt file (\"-\" for stdin)")
		out     = flag.String("out", "-", "output file (\"-\" for stdout)")
		fieldP  = flag.Uint("field", 0, "field characteristic (0 uses the file header)")
		species = flag.String("matrix", "boundary", "matrix species: boundary, ru, chain")
		kind    = flag.String("column", "vector", "column kind: vector, list, set, heap, ordered")
		driver  = flag.String("driver", "twist", "reduction driver: standard, twist, chunk")
		workers = flag.Int("workers", 0, "chunk workers (0 = one per dimension)")
		cycles  = flag.Bool("cycles", false, "also emit representative cycles")
		verbose = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "persistence: --in is required")
		flag.Usage()
		return exitFailure
	}

	input := os.Stdin
	if *in != "-" {
		f, err := os.Open(*in)
		if err != nil {
			fmt.Fprintln(os.Stderr, "persistence:", err)
			return exitFailure
		}
		defer f.Close()
		input = f
	}

	fr, err := filtration.NewReader(input)
	if err != nil {
		return fail(err)
	}

	characteristic := uint32(*fieldP)
	if characteristic == 0 {
		characteristic = fr.Characteristic()
	}
	if characteristic == 0 {
		characteristic = 2
	}

	b, err := configure(characteristic, *species, *kind, *driver, *workers, *cycles)
	if err != nil {
		fmt.Fprintln(os.Stderr, "persistence:", err)
		return exitFailure
	}

	var opts []topogo.Option
	if *verbose {
		opts = append(opts, topogo.WithLogLevel(slog.LevelDebug))
	}

	eng, err := b.Build(opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "persistence:", err)
		return exitFailure
	}
	defer eng.Close()

	for {
		rec, err := fr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fail(err)
		}

		if err := eng.Insert(ctx, rec); err != nil {
			return fail(err)
		}
		if err := ctx.Err(); err != nil {
			return fail(err)
		}
	}

	diagram, err := eng.Compute(ctx)
	if err != nil {
		return fail(err)
	}

	output := os.Stdout
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintln(os.Stderr, "persistence:", err)
			return exitFailure
		}
		defer f.Close()
		output = f
	}

	if err := filtration.WriteIntervals(output, diagram); err != nil {
		fmt.Fprintln(os.Stderr, "persistence:", err)
		return exitFailure
	}

	if *cycles {
		reps, err := eng.RepresentativeCycles(ctx)
		if err != nil {
			return fail(err)
		}
		for _, c := range reps {
			fmt.Fprintf(output, "# cycle %d:", c.PairID)
			for _, id := range c.Chain {
				fmt.Fprintf(output, " %d", id)
			}
			fmt.Fprintln(output)
		}
	}

	return exitOK
}

func configure(characteristic uint32, species, kind, driver string, workers int, cycles bool) (topogo.Builder, error) {
	b := topogo.Zp(characteristic)
	if characteristic == 2 {
		b = topogo.Z2()
	}

	switch species {
	case "boundary":
		if cycles {
			return b, fmt.Errorf("--cycles requires --matrix ru or chain")
		}
		b = b.Boundary()
	case "ru":
		b = b.RU()
	case "chain":
		b = b.Chain()
	default:
		return b, fmt.Errorf("unknown matrix species %q", species)
	}

	switch kind {
	case "vector":
		b = b.VectorColumns()
	case "list":
		b = b.ListColumns()
	case "set":
		b = b.SetColumns()
	case "heap":
		b = b.HeapColumns()
	case "ordered":
		b = b.OrderedColumns()
	default:
		return b, fmt.Errorf("unknown column kind %q", kind)
	}

	switch driver {
	case "standard":
		b = b.Standard()
	case "twist":
		b = b.Twist()
	case "chunk":
		b = b.Chunk(workers)
	default:
		return b, fmt.Errorf("unknown driver %q", driver)
	}

	return b, nil
}

func fail(err error) int {
	fmt.Fprintln(os.Stderr, "persistence:", err)

	var invalid *filtration.ErrInvalidRecord

	switch {
	case errors.Is(err, context.Canceled):
		return exitCanceled
	case errors.Is(err, filtration.ErrMalformedStream),
		errors.Is(err, filtration.ErrUnsupportedVersion),
		errors.Is(err, topogo.ErrInvalidInput),
		errors.As(err, &invalid):
		return exitMalformed
	default:
		return exitFailure
	}
}
