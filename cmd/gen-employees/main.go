// Command gen-employees writes a synthetic employee dataset as JSON, YAML
// or CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/empdash/internal/adapters/repository"
	"github.com/okian/empdash/internal/datagen"
	"github.com/okian/empdash/pkg/logger"
)

// Default configuration constants.
const (
	defaultCount   = 100
	defaultTimeout = time.Minute
)

func main() {
	var (
		count   = flag.Int("count", defaultCount, "Number of employees to generate")
		format  = flag.String("format", "", "Output format: json, yaml or csv (default: from -output extension, else json)")
		output  = flag.String("output", "", "Output file (default: stdout)")
		year    = flag.Int("year", 0, "Reference year; every hire date precedes it (default: current year)")
		seed    = flag.Uint64("seed", 0, "Seed for reproducible output (0: random)")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := run(*count, *format, *output, *year, *seed, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, "gen-employees: "+err.Error())
		os.Exit(1)
	}
}

func run(count int, formatName, output string, year int, seed uint64, verbose bool) error {
	level := "warn"
	if verbose {
		level = "debug"
	}
	if err := logger.Init(); err != nil {
		return err
	}
	if err := logger.SetLevelString(level); err != nil {
		return err
	}

	format, err := resolveFormat(formatName, output)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	opts := []datagen.Option{datagen.WithReferenceYear(year)}
	if seed != 0 {
		opts = append(opts, datagen.WithSeed(seed))
	}
	records, err := datagen.Generate(ctx, count, opts...)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := repository.Encode(w, records, format); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	logger.Get().Info(ctx, "dataset written", logger.Int("count", len(records)), logger.String("format", string(format)))
	return nil
}

func resolveFormat(name, output string) (repository.Format, error) {
	if name != "" {
		return repository.ParseFormat(name)
	}
	if output != "" {
		return repository.FormatFromPath(output)
	}
	return repository.FormatJSON, nil
}
