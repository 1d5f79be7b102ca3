// Command png2dds converts PNG textures to block-compressed DDS files.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"github.com/texelstream/png2dds/internal/discover"
	"github.com/texelstream/png2dds/internal/mipmap"
	"github.com/texelstream/png2dds/pipeline"
)

type config struct {
	input       string
	output      string
	format      string
	filter      string
	quality     int
	parallelism int
	tokens      int64
	mipmaps     bool
	vflip       bool
	edds        bool
	overwrite   bool
	depth       int
	pattern     string
	verbose     bool
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.input, "input", "", "PNG file, directory, or .txt manifest to convert (required)")
	flag.StringVar(&cfg.output, "output", "", "output directory; mirrors the input tree when input is a directory")
	flag.StringVar(&cfg.format, "format", "bc1", "block format: bc1 or bc7")
	flag.StringVar(&cfg.filter, "filter", "bilinear", "mipmap filter: nearest, bilinear, bicubic, area, lanczos")
	flag.IntVar(&cfg.quality, "quality", 5, "encoder quality, 0-10")
	flag.IntVar(&cfg.parallelism, "parallelism", 4, "worker pool size for intra-file fan-out")
	flag.Int64Var(&cfg.tokens, "tokens", 4, "number of files converted concurrently")
	flag.BoolVar(&cfg.mipmaps, "mipmaps", true, "generate the full mip chain")
	flag.BoolVar(&cfg.vflip, "vflip", false, "flip rows at decode time")
	flag.BoolVar(&cfg.edds, "edds", false, "write an LZ4-compressed EDDS container instead of plain DDS")
	flag.BoolVar(&cfg.overwrite, "overwrite", false, "convert sources even if a destination file already exists")
	flag.IntVar(&cfg.depth, "depth", 0, "maximum directory recursion depth, 0 for unlimited")
	flag.StringVar(&cfg.pattern, "pattern", "", "only convert sources whose path matches this regexp")
	flag.BoolVar(&cfg.verbose, "verbose", true, "print a live progress line")
	flag.Parse()
	return cfg
}

func main() {
	cfg := parseFlags()
	if cfg.input == "" {
		fmt.Fprintln(os.Stderr, "png2dds: -input is required")
		flag.Usage()
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := run(cfg); err != nil {
		logger.Error("conversion failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	format, ok := pipeline.ParseFormat(cfg.format)
	if !ok {
		return fmt.Errorf("unknown -format %q", cfg.format)
	}
	filter, ok := mipmap.ParseFilter(cfg.filter)
	if !ok {
		return fmt.Errorf("unknown -filter %q", cfg.filter)
	}

	var pattern *regexp.Regexp
	if cfg.pattern != "" {
		p, err := regexp.Compile(cfg.pattern)
		if err != nil {
			return fmt.Errorf("compiling -pattern: %w", err)
		}
		pattern = p
	}

	paths, err := discover.Find(cfg.input, discover.Options{
		Output:    cfg.output,
		Overwrite: cfg.overwrite,
		Depth:     cfg.depth,
		Pattern:   pattern,
	})
	if err != nil {
		return fmt.Errorf("discovering input: %w", err)
	}
	if len(paths) == 0 {
		slog.Default().Warn("no matching PNG files found", "input", cfg.input)
		return nil
	}

	pc := pipeline.Config{
		Parallelism: cfg.parallelism,
		Tokens:      cfg.tokens,
		Mipmaps:     cfg.mipmaps,
		Filter:      filter,
		Format:      format,
		Quality:     cfg.quality,
		VFlip:       cfg.vflip,
		EDDS:        cfg.edds,
		Verbose:     cfg.verbose,
	}

	reporter := pipeline.NewReporter(os.Stdout, os.Stderr, len(paths), cfg.verbose)
	return pipeline.Run(context.Background(), paths, pc, reporter)
}
