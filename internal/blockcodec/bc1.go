package blockcodec

// BC1Params holds the quality-derived effort for BC1 (DXT1-style) block
// encoding: whether to run a least-squares endpoint refinement pass after
// the initial luminance-based endpoint pick.
type BC1Params struct {
	Refine bool
}

func newBC1Params(quality int) BC1Params {
	return BC1Params{Refine: quality >= MaxQuality/2}
}

type rgb struct {
	r, g, b int
}

func luminance(c rgb) int {
	return 2*c.r + 5*c.g + c.b
}

// encodeBC1 compresses one tile to 8 bytes: two RGB565 endpoints plus 32
// bits of 2-bit-per-pixel indices, always using the opaque 4-color
// interpolation mode.
func encodeBC1(tile *Tile, params *BC1Params) []byte {
	pixels := make([]rgb, 16)
	for i := range pixels {
		r, g, b, _ := tile.pixel(i)
		pixels[i] = rgb{int(r), int(g), int(b)}
	}

	maxPixel, minPixel := pixels[0], pixels[0]
	maxLum, minLum := luminance(pixels[0]), luminance(pixels[0])
	for _, p := range pixels[1:] {
		if l := luminance(p); l > maxLum {
			maxLum, maxPixel = l, p
		} else if l < minLum {
			minLum, minPixel = l, p
		}
	}

	c0 := quantize565(maxPixel)
	c1 := quantize565(minPixel)
	if c0 == c1 {
		// Degenerate (solid) block: nudge c1 so decoders keep 4-color mode.
		if c1 > 0 {
			c1--
		} else {
			c0++
		}
	}
	if c0 < c1 {
		c0, c1 = c1, c0
	}

	palette := buildPalette565(c0, c1)
	indices := assignIndices(pixels, palette)

	if params.Refine {
		refineEndpoints(pixels, indices, &c0, &c1)
		if c0 < c1 {
			c0, c1 = c1, c0
		}
		palette = buildPalette565(c0, c1)
		indices = assignIndices(pixels, palette)
	}

	out := make([]byte, 8)
	out[0] = byte(c0)
	out[1] = byte(c0 >> 8)
	out[2] = byte(c1)
	out[3] = byte(c1 >> 8)
	var packed uint32
	for i, idx := range indices {
		packed |= uint32(idx) << uint(i*2)
	}
	out[4] = byte(packed)
	out[5] = byte(packed >> 8)
	out[6] = byte(packed >> 16)
	out[7] = byte(packed >> 24)
	return out
}

func quantize565(c rgb) uint16 {
	r := uint16(c.r>>3) & 0x1F
	g := uint16(c.g>>2) & 0x3F
	b := uint16(c.b>>3) & 0x1F
	return (r << 11) | (g << 5) | b
}

func expand565(c uint16) rgb {
	r := int(c>>11) & 0x1F
	g := int(c>>5) & 0x3F
	b := int(c) & 0x1F
	return rgb{r: (r << 3) | (r >> 2), g: (g << 2) | (g >> 4), b: (b << 3) | (b >> 2)}
}

// buildPalette565 builds the 4-color opaque DXT1 palette from two 565
// endpoints, assuming c0 > c1 (4-color interpolation mode).
func buildPalette565(c0, c1 uint16) [4]rgb {
	e0, e1 := expand565(c0), expand565(c1)
	return [4]rgb{
		e0,
		e1,
		{r: (2*e0.r + e1.r) / 3, g: (2*e0.g + e1.g) / 3, b: (2*e0.b + e1.b) / 3},
		{r: (e0.r + 2*e1.r) / 3, g: (e0.g + 2*e1.g) / 3, b: (e0.b + 2*e1.b) / 3},
	}
}

func colorDistSq(a, b rgb) int {
	dr, dg, db := a.r-b.r, a.g-b.g, a.b-b.b
	return dr*dr + dg*dg + db*db
}

func assignIndices(pixels []rgb, palette [4]rgb) [16]byte {
	var indices [16]byte
	for i, p := range pixels {
		best, bestDist := 0, colorDistSq(p, palette[0])
		for k := 1; k < 4; k++ {
			if d := colorDistSq(p, palette[k]); d < bestDist {
				best, bestDist = k, d
			}
		}
		indices[i] = byte(best)
	}
	return indices
}

// refineEndpoints recomputes c0 as the average color of the pixels
// currently assigned to the entries nearer c0 (indices 0 and 2), and c1 as
// the average of those assigned to the entries nearer c1 (indices 1 and
// 3), a cheap one-pass least-squares-style refinement.
func refineEndpoints(pixels []rgb, indices [16]byte, c0, c1 *uint16) {
	var sum0, sum1 rgb
	var n0, n1 int
	for i, idx := range indices {
		switch idx {
		case 0, 2:
			sum0.r += pixels[i].r
			sum0.g += pixels[i].g
			sum0.b += pixels[i].b
			n0++
		default:
			sum1.r += pixels[i].r
			sum1.g += pixels[i].g
			sum1.b += pixels[i].b
			n1++
		}
	}
	if n0 > 0 {
		*c0 = quantize565(rgb{sum0.r / n0, sum0.g / n0, sum0.b / n0})
	}
	if n1 > 0 {
		*c1 = quantize565(rgb{sum1.r / n1, sum1.g / n1, sum1.b / n1})
	}
}
