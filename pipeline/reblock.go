package pipeline

// reblock converts a decoded MipmapImage into row-major 4x4 tile grids,
// one per level. A sentinel MipmapImage (ErrorIndex, or no levels) passes
// through as a sentinel BlockImage.
func reblock(mip MipmapImage) BlockImage {
	if mip.FileIndex == ErrorIndex || len(mip.Levels) == 0 {
		return BlockImage{FileIndex: ErrorIndex}
	}

	levels := make([]BlockGrid, len(mip.Levels))
	for i, img := range mip.Levels {
		levels[i] = reblockLevel(&img)
	}

	return BlockImage{
		FileIndex:      mip.FileIndex,
		WidthInBlocks:  levels[0].WidthInBlocks,
		HeightInBlocks: levels[0].HeightInBlocks,
		Levels:         levels,
	}
}

func reblockLevel(img *Image) BlockGrid {
	wBlocks := img.PaddedWidth / 4
	hBlocks := img.PaddedHeight / 4
	tiles := make([]BlockTile, wBlocks*hBlocks)

	for ty := 0; ty < hBlocks; ty++ {
		for tx := 0; tx < wBlocks; tx++ {
			tile := &tiles[ty*wBlocks+tx]
			for v := 0; v < 4; v++ {
				srcRow := (ty*4 + v) * img.Stride
				srcOff := srcRow + tx*4*4
				dstOff := v * 16
				copy(tile[dstOff:dstOff+16], img.Pix[srcOff:srcOff+16])
			}
		}
	}

	return BlockGrid{WidthInBlocks: wBlocks, HeightInBlocks: hBlocks, Tiles: tiles}
}
