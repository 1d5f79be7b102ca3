package pipeline

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/bits"

	"github.com/texelstream/png2dds/internal/mipmap"
	"github.com/texelstream/png2dds/internal/parallel"
)

// decodeConfig carries the per-run settings Decode needs, a subset of
// Config so this file doesn't depend on the full pipeline assembly.
type decodeConfig struct {
	mipmaps bool
	filter  mipmap.Filter
	vflip   bool
	format  Format
}

// decode parses a PNG byte buffer, builds its mipmap chain, and records
// FileMetadata for the Writer. A RawFile with empty bytes, or one that
// fails to decode, produces an ErrorIndex sentinel and no metadata write.
func decode(raw RawFile, slot *FileSlot, cfg decodeConfig, pool *parallel.Pool, errs chan<- error) MipmapImage {
	if len(raw.Bytes) == 0 {
		return MipmapImage{FileIndex: ErrorIndex}
	}

	img, err := png.Decode(bytes.NewReader(raw.Bytes))
	if err != nil {
		entry := slot.Entry(raw.FileIndex)
		pushError(errs, fmt.Errorf("%w: %s: %v", ErrDecodePNG, entry.Source, err))
		return MipmapImage{FileIndex: ErrorIndex}
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < 1 || height < 1 {
		entry := slot.Entry(raw.FileIndex)
		pushError(errs, fmt.Errorf("%w: %s: empty image", ErrDecodePNG, entry.Source))
		return MipmapImage{FileIndex: ErrorIndex}
	}

	levelCount := 1
	if cfg.mipmaps {
		levelCount = bits.Len(uint(max(width, height)))
	}

	levels := make([]Image, levelCount)
	levels[0] = rasterizeLevel0(img, width, height, cfg.vflip)

	if levelCount > 1 {
		base := rasterToMipmap(&levels[0])
		work := make([]func(), levelCount-1)
		for k := 1; k < levelCount; k++ {
			k := k
			lw := max(1, width>>uint(k))
			lh := max(1, height>>uint(k))
			levels[k] = NewImage(lw, lh)
			dst := rasterToMipmap(&levels[k])
			work[k-1] = func() { mipmap.Resize(dst, base, cfg.filter) }
		}
		pool.Run(work)
	}

	slot.SetMetadata(raw.FileIndex, FileMetadata{
		Width:        width,
		Height:       height,
		MipmapCount:  levelCount,
		ChosenFormat: cfg.format,
	})

	return MipmapImage{FileIndex: raw.FileIndex, Levels: levels}
}

// rasterizeLevel0 copies a decoded image into a padded Image buffer,
// reversing row order first when vflip is set, then replicating edge
// pixels into the padding region.
func rasterizeLevel0(img image.Image, width, height int, vflip bool) Image {
	out := NewImage(width, height)
	bounds := img.Bounds()
	nrgba, isNRGBA := img.(*image.NRGBA)

	for y := 0; y < height; y++ {
		srcY := bounds.Min.Y + y
		if vflip {
			srcY = bounds.Min.Y + (height - 1 - y)
		}
		rowOff := y * out.Stride
		for x := 0; x < width; x++ {
			var r, g, b, a uint8
			if isNRGBA {
				c := nrgba.NRGBAAt(bounds.Min.X+x, srcY)
				r, g, b, a = c.R, c.G, c.B, c.A
			} else {
				c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, srcY)).(color.NRGBA)
				r, g, b, a = c.R, c.G, c.B, c.A
			}
			off := rowOff + x*4
			out.Pix[off] = r
			out.Pix[off+1] = g
			out.Pix[off+2] = b
			out.Pix[off+3] = a
		}
	}
	padImageEdges(&out)
	return out
}

// padImageEdges replicates the last valid column, then the last valid
// (now-padded) row, into an Image's padding region.
func padImageEdges(img *Image) {
	raster := rasterToMipmap(img)
	mipmap.PadEdges(raster)
}

// rasterToMipmap adapts a pipeline Image to the mipmap package's Raster
// view over the same backing buffer.
func rasterToMipmap(img *Image) *mipmap.Raster {
	return &mipmap.Raster{
		Width:  img.Width,
		Height: img.Height,
		Stride: img.Stride,
		Pix:    img.Pix,
	}
}
