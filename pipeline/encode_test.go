package pipeline

import (
	"testing"

	"github.com/texelstream/png2dds/internal/blockcodec"
	"github.com/texelstream/png2dds/internal/parallel"
)

func TestEncodeImageSentinelPassesThrough(t *testing.T) {
	params := blockcodec.NewParams(blockcodec.FormatBC1, 5)
	pool := parallel.New(1)
	defer pool.Close()

	enc := encodeImage(BlockImage{FileIndex: ErrorIndex}, &params, pool, nil, nil)
	if enc.FileIndex != ErrorIndex {
		t.Errorf("FileIndex = %d, want ErrorIndex", enc.FileIndex)
	}
}

func TestEncodeImageBC1ProducesExpectedByteLength(t *testing.T) {
	params := blockcodec.NewParams(blockcodec.FormatBC1, 5)
	pool := parallel.New(2)
	defer pool.Close()

	grid := BlockGrid{WidthInBlocks: 3, HeightInBlocks: 2, Tiles: make([]BlockTile, 6)}
	block := BlockImage{FileIndex: 1, WidthInBlocks: 3, HeightInBlocks: 2, Levels: []BlockGrid{grid}}

	slot := NewFileSlot([]PathPair{{}, {Source: "a.png"}})
	errs := make(chan error, 1)
	enc := encodeImage(block, &params, pool, slot, errs)
	if enc.FileIndex != 1 {
		t.Fatalf("FileIndex = %d, want 1", enc.FileIndex)
	}
	if enc.Format != FormatBC1 {
		t.Errorf("Format = %v, want BC1", enc.Format)
	}
	want := 6 * 8
	if len(enc.Levels[0]) != want {
		t.Errorf("level bytes = %d, want %d", len(enc.Levels[0]), want)
	}
}

func TestEncodeImageBC7ProducesExpectedByteLength(t *testing.T) {
	params := blockcodec.NewParams(blockcodec.FormatBC7, 3)
	pool := parallel.New(2)
	defer pool.Close()

	grid := BlockGrid{WidthInBlocks: 1, HeightInBlocks: 1, Tiles: make([]BlockTile, 1)}
	block := BlockImage{FileIndex: 0, WidthInBlocks: 1, HeightInBlocks: 1, Levels: []BlockGrid{grid}}

	slot := NewFileSlot([]PathPair{{Source: "a.png"}})
	errs := make(chan error, 1)
	enc := encodeImage(block, &params, pool, slot, errs)
	if len(enc.Levels[0]) != 16 {
		t.Errorf("level bytes = %d, want 16", len(enc.Levels[0]))
	}
}

func TestEncodeImageManyTilesSpansMultipleChunks(t *testing.T) {
	params := blockcodec.NewParams(blockcodec.FormatBC1, 0)
	pool := parallel.New(4)
	defer pool.Close()

	tileCount := 200
	grid := BlockGrid{WidthInBlocks: tileCount, HeightInBlocks: 1, Tiles: make([]BlockTile, tileCount)}
	block := BlockImage{FileIndex: 0, Levels: []BlockGrid{grid}}

	slot := NewFileSlot([]PathPair{{Source: "a.png"}})
	errs := make(chan error, 1)
	enc := encodeImage(block, &params, pool, slot, errs)
	if len(enc.Levels[0]) != tileCount*8 {
		t.Errorf("level bytes = %d, want %d", len(enc.Levels[0]), tileCount*8)
	}
}

func TestEncodeImageRecoversFromPanic(t *testing.T) {
	params := blockcodec.NewParams(blockcodec.FormatBC1, 5)

	grid := BlockGrid{WidthInBlocks: 1, HeightInBlocks: 1, Tiles: make([]BlockTile, 1)}
	block := BlockImage{FileIndex: 0, Levels: []BlockGrid{grid}}

	slot := NewFileSlot([]PathPair{{Source: "bad.png"}})
	errs := make(chan error, 1)

	// A nil pool makes encodeLevel's pool.Run call panic (nil pointer
	// dereference), standing in for any unexpected encoder failure.
	enc := encodeImage(block, &params, nil, slot, errs)

	if enc.FileIndex != ErrorIndex {
		t.Errorf("FileIndex = %d, want ErrorIndex", enc.FileIndex)
	}
	select {
	case err := <-errs:
		if err == nil {
			t.Fatal("expected a non-nil error")
		}
	default:
		t.Fatal("expected an error on the channel")
	}
}
