package mipmap

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Raster is a plain RGBA8 pixel buffer with a possibly-padded stride.
// Width/Height describe the valid content region; rows/columns beyond
// that, up to Stride and the buffer's total length, are padding and are
// filled by edge replication after resampling so that Reblock never reads
// uninitialized data.
type Raster struct {
	Width, Height int
	Stride        int
	Pix           []byte
}

// asImage views r's content region as a stdlib image.RGBA, suitable for
// golang.org/x/image/draw.
func (r *Raster) asImage() *image.RGBA {
	return &image.RGBA{
		Pix:    r.Pix,
		Stride: r.Stride,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}
}

// Resize resamples src's content region into dst's content region using
// the given filter, then replicates the last valid row/column into dst's
// padding area.
func Resize(dst, src *Raster, filter Filter) {
	if dst.Width == src.Width && dst.Height == src.Height {
		copyContent(dst, src)
		padEdges(dst)
		return
	}

	switch filter {
	case FilterNearest:
		dstImg, srcImg := dst.asImage(), src.asImage()
		draw.NearestNeighbor.Scale(dstImg, dstImg.Bounds(), srcImg, srcImg.Bounds(), draw.Src, nil)
	case FilterBilinear:
		dstImg, srcImg := dst.asImage(), src.asImage()
		draw.ApproxBiLinear.Scale(dstImg, dstImg.Bounds(), srcImg, srcImg.Bounds(), draw.Src, nil)
	case FilterBicubic:
		dstImg, srcImg := dst.asImage(), src.asImage()
		draw.CatmullRom.Scale(dstImg, dstImg.Bounds(), srcImg, srcImg.Bounds(), draw.Src, nil)
	case FilterArea:
		areaResize(dst, src)
	case FilterLanczos:
		lanczosResize(dst, src)
	default:
		dstImg, srcImg := dst.asImage(), src.asImage()
		draw.ApproxBiLinear.Scale(dstImg, dstImg.Bounds(), srcImg, srcImg.Bounds(), draw.Src, nil)
	}

	padEdges(dst)
}

func copyContent(dst, src *Raster) {
	for y := 0; y < dst.Height; y++ {
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+dst.Width*4], src.Pix[y*src.Stride:y*src.Stride+src.Width*4])
	}
}

// PadEdges fills the padded rows/columns of r (beyond Width/Height, up to
// the buffer's allocated stride and row count) by replicating the nearest
// valid edge pixel, so block reblocking never reads garbage. Resize calls
// this internally; callers that fill a Raster's content region by some
// other means (decode's level 0 copy) call it directly afterward.
func PadEdges(r *Raster) {
	padEdges(r)
}

func padEdges(r *Raster) {
	paddedWidth := r.Stride / 4
	paddedHeight := len(r.Pix) / r.Stride
	if paddedWidth == r.Width && paddedHeight == r.Height {
		return
	}

	// Extend columns to the right of Width on every valid row.
	for y := 0; y < r.Height; y++ {
		rowStart := y * r.Stride
		lastPixel := r.Pix[rowStart+(r.Width-1)*4 : rowStart+r.Width*4]
		for x := r.Width; x < paddedWidth; x++ {
			copy(r.Pix[rowStart+x*4:rowStart+x*4+4], lastPixel)
		}
	}

	// Extend rows below Height by repeating the last valid (now fully
	// padded) row.
	lastRow := r.Pix[(r.Height-1)*r.Stride : r.Height*r.Stride]
	for y := r.Height; y < paddedHeight; y++ {
		copy(r.Pix[y*r.Stride:(y+1)*r.Stride], lastRow)
	}
}

// areaResize downsamples src into dst using a box filter: each destination
// pixel averages the rectangle of source pixels it covers. Grounded on the
// tiled box-averaging shape of oov-downscale, simplified to operate over
// the whole content region rather than cache-sized tiles.
func areaResize(dst, src *Raster) {
	sw, sh := float64(src.Width), float64(src.Height)
	dw, dh := float64(dst.Width), float64(dst.Height)

	for dy := 0; dy < dst.Height; dy++ {
		sy0 := int(float64(dy) * sh / dh)
		sy1 := int(float64(dy+1) * sh / dh)
		if sy1 <= sy0 {
			sy1 = sy0 + 1
		}
		if sy1 > src.Height {
			sy1 = src.Height
		}

		for dx := 0; dx < dst.Width; dx++ {
			sx0 := int(float64(dx) * sw / dw)
			sx1 := int(float64(dx+1) * sw / dw)
			if sx1 <= sx0 {
				sx1 = sx0 + 1
			}
			if sx1 > src.Width {
				sx1 = src.Width
			}

			var r, g, b, a, count uint32
			for sy := sy0; sy < sy1; sy++ {
				row := sy * src.Stride
				for sx := sx0; sx < sx1; sx++ {
					off := row + sx*4
					r += uint32(src.Pix[off])
					g += uint32(src.Pix[off+1])
					b += uint32(src.Pix[off+2])
					a += uint32(src.Pix[off+3])
					count++
				}
			}
			if count == 0 {
				count = 1
			}

			off := dy*dst.Stride + dx*4
			dst.Pix[off] = byte(r / count)
			dst.Pix[off+1] = byte(g / count)
			dst.Pix[off+2] = byte(b / count)
			dst.Pix[off+3] = byte(a / count)
		}
	}
}

// lanczosResize resamples src into dst using a separable, windowed-sinc
// (Lanczos, a=3) kernel. No pack example implements Lanczos resampling;
// this follows the standard two-pass separable-kernel construction.
func lanczosResize(dst, src *Raster) {
	const a = 3.0

	sinc := func(x float64) float64 {
		if x == 0 {
			return 1
		}
		px := math.Pi * x
		return math.Sin(px) / px
	}
	kernel := func(x float64) float64 {
		if x <= -a || x >= a {
			return 0
		}
		return sinc(x) * sinc(x/a)
	}

	sample := func(x, y int) [4]float64 {
		if x < 0 {
			x = 0
		}
		if x >= src.Width {
			x = src.Width - 1
		}
		if y < 0 {
			y = 0
		}
		if y >= src.Height {
			y = src.Height - 1
		}
		off := y*src.Stride + x*4
		return [4]float64{
			float64(src.Pix[off]), float64(src.Pix[off+1]),
			float64(src.Pix[off+2]), float64(src.Pix[off+3]),
		}
	}

	scaleX := float64(src.Width) / float64(dst.Width)
	scaleY := float64(src.Height) / float64(dst.Height)

	for dy := 0; dy < dst.Height; dy++ {
		srcY := (float64(dy)+0.5)*scaleY - 0.5
		y0 := int(math.Floor(srcY)) - int(a) + 1
		y1 := int(math.Floor(srcY)) + int(a)

		for dx := 0; dx < dst.Width; dx++ {
			srcX := (float64(dx)+0.5)*scaleX - 0.5
			x0 := int(math.Floor(srcX)) - int(a) + 1
			x1 := int(math.Floor(srcX)) + int(a)

			var sum [4]float64
			var weightSum float64
			for sy := y0; sy <= y1; sy++ {
				wy := kernel(srcY - float64(sy))
				if wy == 0 {
					continue
				}
				for sx := x0; sx <= x1; sx++ {
					wx := kernel(srcX - float64(sx))
					w := wx * wy
					if w == 0 {
						continue
					}
					px := sample(sx, sy)
					sum[0] += px[0] * w
					sum[1] += px[1] * w
					sum[2] += px[2] * w
					sum[3] += px[3] * w
					weightSum += w
				}
			}

			if weightSum == 0 {
				weightSum = 1
			}
			off := dy*dst.Stride + dx*4
			dst.Pix[off] = clampByte(sum[0] / weightSum)
			dst.Pix[off+1] = clampByte(sum[1] / weightSum)
			dst.Pix[off+2] = clampByte(sum[2] / weightSum)
			dst.Pix[off+3] = clampByte(sum[3] / weightSum)
		}
	}
}

func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v + 0.5)
}
