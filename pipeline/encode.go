package pipeline

import (
	"fmt"
	"sync"

	"github.com/texelstream/png2dds/internal/blockcodec"
	"github.com/texelstream/png2dds/internal/parallel"
)

// encodeImage compresses every tile of every level of a BlockImage using
// params, which were precomputed once at pipeline construction. Within a
// level, tile compression fans out over pool; levels themselves are small
// in count so they run sequentially. A panic anywhere in the block encoder
// is caught, reported as ErrEncodeBlock against the file's source path,
// and turned into an ErrorIndex sentinel so it never escapes this file's
// goroutine.
func encodeImage(block BlockImage, params *blockcodec.Params, pool *parallel.Pool, slot *FileSlot, errs chan<- error) (result EncodedImage) {
	if block.FileIndex == ErrorIndex {
		return EncodedImage{FileIndex: ErrorIndex}
	}

	defer func() {
		if r := recover(); r != nil {
			entry := slot.Entry(block.FileIndex)
			pushError(errs, fmt.Errorf("%w: %s: %v", ErrEncodeBlock, entry.Source, r))
			result = EncodedImage{FileIndex: ErrorIndex}
		}
	}()

	format := toBlockFormat2(params.Format)
	levels := make([]EncodedLevel, len(block.Levels))
	for i, grid := range block.Levels {
		levels[i] = encodeLevel(&grid, params, pool)
	}

	return EncodedImage{FileIndex: block.FileIndex, Format: format, Levels: levels}
}

// encodeLevel runs tile encoding over pool in chunks. A panic in any
// chunk is captured rather than propagated, so pool.Run always returns;
// the first one captured is re-raised once every chunk has finished, for
// encodeImage's recover to catch.
func encodeLevel(grid *BlockGrid, params *blockcodec.Params, pool *parallel.Pool) EncodedLevel {
	bytesPerBlock := params.Format.BytesPerBlock()
	out := make(EncodedLevel, len(grid.Tiles)*bytesPerBlock)

	const chunkSize = 64
	chunks := (len(grid.Tiles) + chunkSize - 1) / chunkSize
	if chunks == 0 {
		return out
	}

	var mu sync.Mutex
	var failure error
	work := make([]func(), chunks)
	for c := 0; c < chunks; c++ {
		start := c * chunkSize
		end := min(start+chunkSize, len(grid.Tiles))
		work[c] = func() {
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					if failure == nil {
						failure = fmt.Errorf("%v", r)
					}
					mu.Unlock()
				}
			}()
			for i := start; i < end; i++ {
				tile := blockcodec.Tile(grid.Tiles[i])
				encoded := blockcodec.EncodeBlock(params, &tile)
				copy(out[i*bytesPerBlock:(i+1)*bytesPerBlock], encoded)
			}
		}
	}
	pool.Run(work)

	if failure != nil {
		panic(failure)
	}
	return out
}

func toBlockFormat2(f blockcodec.Format) Format {
	if f == blockcodec.FormatBC7 {
		return FormatBC7
	}
	return FormatBC1
}
