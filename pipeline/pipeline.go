package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/texelstream/png2dds/internal/blockcodec"
	"github.com/texelstream/png2dds/internal/mipmap"
	"github.com/texelstream/png2dds/internal/parallel"
)

// Config describes one pipeline run: the knobs a CLI or library caller
// sets once before Run.
type Config struct {
	// Parallelism sizes the intra-file worker pool used to fan out
	// mipmap-level resampling and block-chunk compression.
	Parallelism int
	// Tokens caps the number of files in flight at once across Load
	// through Write.
	Tokens int64
	// Mipmaps enables the full mip chain; when false, every file
	// produces exactly one level.
	Mipmaps bool
	// Filter selects the resampling kernel for levels beyond 0.
	Filter mipmap.Filter
	// Format selects the block-compression format.
	Format Format
	// Quality maps to encoder-specific effort, 0-blockcodec.MaxQuality.
	Quality int
	// VFlip reverses row order at decode time.
	VFlip bool
	// EDDS selects the Enfusion-style LZ4-compressed container instead
	// of a plain DDS file.
	EDDS bool
	// Verbose enables the live progress line; errors are always
	// reported regardless of this setting.
	Verbose bool
}

func (c Config) validate(pathCount int) error {
	if pathCount == 0 {
		return ErrNoFiles
	}
	if c.Parallelism <= 0 {
		return ErrInvalidParallelism
	}
	if c.Tokens <= 0 {
		return ErrInvalidTokens
	}
	if c.Format != FormatBC1 && c.Format != FormatBC7 {
		return ErrUnknownFormat
	}
	if c.Filter < mipmap.FilterNearest || c.Filter > mipmap.FilterLanczos {
		return ErrUnknownFilter
	}
	return nil
}

// Run converts every source/destination pair in paths according to cfg.
// It registers paths in a FileSlot, starts reporter's progress loop, and
// drives Load/Decode/Reblock/Encode/Write with the configured token
// budget, returning once every job has flowed through or ctx is
// cancelled.
func Run(ctx context.Context, paths []PathPair, cfg Config, reporter *Reporter) error {
	if err := cfg.validate(len(paths)); err != nil {
		return err
	}

	slot := NewFileSlot(paths)
	reporter.SetTotal(slot.Len())
	reporter.Start()
	defer reporter.Close()

	params := blockcodec.NewParams(toBlockFormat(cfg.Format), cfg.Quality)
	pool := parallel.New(cfg.Parallelism)
	defer pool.Close()

	dc := decodeConfig{mipmaps: cfg.Mipmaps, filter: cfg.Filter, vflip: cfg.VFlip, format: cfg.Format}
	wc := writeConfig{edds: cfg.EDDS}

	ld := newLoader(slot)
	sem := semaphore.NewWeighted(cfg.Tokens)
	group, groupCtx := errgroup.WithContext(ctx)

	for {
		raw, ok := ld.next(reporter.errs)
		if !ok {
			break
		}
		if err := sem.Acquire(groupCtx, 1); err != nil {
			break
		}

		group.Go(func() error {
			defer sem.Release(1)
			mip := decode(raw, slot, dc, pool, reporter.errs)
			block := reblock(mip)
			enc := encodeImage(block, &params, pool, slot, reporter.errs)
			writeDDS(enc, slot, wc, reporter)
			return nil
		})
	}

	return group.Wait()
}

func toBlockFormat(f Format) blockcodec.Format {
	if f == FormatBC7 {
		return blockcodec.FormatBC7
	}
	return blockcodec.FormatBC1
}
