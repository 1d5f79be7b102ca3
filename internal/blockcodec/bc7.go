package blockcodec

// BC7Params holds the quality-derived effort for BC7 mode 6 encoding: how
// many candidate endpoint pairs to evaluate before picking the
// lowest-error one. Built once per pipeline run and reused immutably for
// every block (see format.go's NewParams).
type BC7Params struct {
	// Candidates bounds the endpoint-pair candidates evaluated per block.
	// 1 always uses the bounding-box corners; any higher value also tries
	// one interior candidate (see pickEndpoints) and keeps the one with
	// lower error. Values above 2 evaluate no further candidates.
	Candidates int
}

func newBC7Params(quality int) BC7Params {
	return BC7Params{Candidates: 1 + quality/3}
}

// mode6Weights are the 16 BC7 interpolation weights for 4-bit indices,
// out of 64, per the published BC7 index precision table.
var mode6Weights = [16]int{0, 4, 9, 13, 17, 21, 26, 30, 34, 38, 43, 47, 51, 55, 60, 64}

type rgba struct {
	r, g, b, a int
}

// quantize7Exact returns the 7-bit value that reconstructs v exactly when
// combined with the given shared pbit via (bits7<<1)|pbit. Used when v's
// parity matches pbit.
func quantize7Exact(v int, pbit uint32) uint32 {
	return uint32(v>>1) & 0x7F
}

// quantize7Rounded returns the 7-bit value that best approximates v when
// combined with the given shared pbit, for components whose parity does
// not match pbit (off by at most one from v).
func quantize7Rounded(v int, pbit uint32) uint32 {
	bits7 := (v - int(pbit)) / 2
	if bits7 < 0 {
		bits7 = 0
	}
	if bits7 > 0x7F {
		bits7 = 0x7F
	}
	return uint32(bits7)
}

func unquantize7(bits7, pbit uint32) int {
	return int((bits7 << 1) | pbit)
}

// endpointPbit returns the p-bit shared by all four channels of one
// endpoint: the parity that matches the most channels, so the fewest
// channels need rounding.
func endpointPbit(c rgba) uint32 {
	votes := (c.r & 1) + (c.g & 1) + (c.b & 1) + (c.a & 1)
	if votes >= 2 {
		return 1
	}
	return 0
}

// quantizeEndpoint7 splits each channel of c into its 7-bit field given the
// endpoint's shared p-bit, reconstructing exactly for channels whose
// parity matches pbit.
func quantizeEndpoint7(c rgba, pbit uint32) (r7, g7, b7, a7 uint32) {
	q := func(v int) uint32 {
		if uint32(v&1) == pbit {
			return quantize7Exact(v, pbit)
		}
		return quantize7Rounded(v, pbit)
	}
	return q(c.r), q(c.g), q(c.b), q(c.a)
}

// encodeBC7 compresses one tile to 16 bytes using BC7 mode 6 (single
// subset, 7-bit RGBA endpoints with one shared p-bit per endpoint, 4-bit
// indices). A solid-color tile round-trips bit-exactly only when all four
// channels agree in parity with the chosen p-bit; a channel that
// disagrees is off by at most one, since the p-bit is shared rather than
// per-channel.
func encodeBC7(tile *Tile, params *BC7Params) []byte {
	pixels := make([]rgba, 16)
	for i := range pixels {
		r, g, b, a := tile.pixel(i)
		pixels[i] = rgba{int(r), int(g), int(b), int(a)}
	}

	e0, e1 := pickEndpoints(pixels, params.Candidates)

	w := newBitWriter(16)
	w.writeBits(0x40, 7) // mode 6: 6 zero bits then a 1 bit, value 0b1000000

	p0 := endpointPbit(e0)
	p1 := endpointPbit(e1)
	r0, g0, b0, a0 := quantizeEndpoint7(e0, p0)
	r1, g1, b1, a1 := quantizeEndpoint7(e1, p1)

	w.writeBits(r0, 7)
	w.writeBits(r1, 7)
	w.writeBits(g0, 7)
	w.writeBits(g1, 7)
	w.writeBits(b0, 7)
	w.writeBits(b1, 7)
	w.writeBits(a0, 7)
	w.writeBits(a1, 7)
	w.writeBits(p0, 1)
	w.writeBits(p1, 1)

	indices := pickIndices(pixels, e0, e1)
	w.writeBits(uint32(indices[0]&0x7), 3)
	for i := 1; i < 16; i++ {
		w.writeBits(uint32(indices[i]&0xF), 4)
	}

	return w.bytes()
}

// pickEndpoints evaluates up to candidates endpoint-pair proposals and
// returns the one with the lowest total squared error. Candidate 0 is
// always the componentwise bounding box (max, min); when candidates > 1,
// one more candidate moves both box corners a quarter of the way toward
// the mean color. At most these two candidates are evaluated.
func pickEndpoints(pixels []rgba, candidates int) (e0, e1 rgba) {
	boxMax, boxMin := pixels[0], pixels[0]
	for _, p := range pixels[1:] {
		boxMax = rgba{max(boxMax.r, p.r), max(boxMax.g, p.g), max(boxMax.b, p.b), max(boxMax.a, p.a)}
		boxMin = rgba{min(boxMin.r, p.r), min(boxMin.g, p.g), min(boxMin.b, p.b), min(boxMin.a, p.a)}
	}

	best0, best1 := boxMax, boxMin
	bestErr := totalError(pixels, best0, best1)

	if candidates > 1 {
		mean := meanColor(pixels)
		// Candidate: bounding box toward the mean on each endpoint,
		// approximating a crude two-means split as effort increases.
		c0 := lerpColor(boxMax, mean, 0.25)
		c1 := lerpColor(boxMin, mean, 0.25)
		if e := totalError(pixels, c0, c1); e < bestErr {
			best0, best1, bestErr = c0, c1, e
		}
	}

	return best0, best1
}

func meanColor(pixels []rgba) rgba {
	var sum rgba
	for _, p := range pixels {
		sum.r += p.r
		sum.g += p.g
		sum.b += p.b
		sum.a += p.a
	}
	n := len(pixels)
	return rgba{sum.r / n, sum.g / n, sum.b / n, sum.a / n}
}

func lerpColor(a, b rgba, t float64) rgba {
	l := func(x, y int) int { return int(float64(x) + t*float64(y-x)) }
	return rgba{l(a.r, b.r), l(a.g, b.g), l(a.b, b.b), l(a.a, b.a)}
}

func interpolate(e0, e1 rgba, weight int) rgba {
	w := func(c0, c1 int) int { return (c0*(64-weight) + c1*weight + 32) >> 6 }
	return rgba{w(e0.r, e1.r), w(e0.g, e1.g), w(e0.b, e1.b), w(e0.a, e1.a)}
}

func rgbaDistSq(a, b rgba) int {
	dr, dg, db, da := a.r-b.r, a.g-b.g, a.b-b.b, a.a-b.a
	return dr*dr + dg*dg + db*db + da*da
}

func totalError(pixels []rgba, e0, e1 rgba) int {
	total := 0
	for _, p := range pixels {
		_, err := nearestWeight(p, e0, e1)
		total += err
	}
	return total
}

func nearestWeight(p, e0, e1 rgba) (weight int, errSq int) {
	bestW, bestErr := mode6Weights[0], rgbaDistSq(p, interpolate(e0, e1, mode6Weights[0]))
	for _, w := range mode6Weights[1:] {
		if e := rgbaDistSq(p, interpolate(e0, e1, w)); e < bestErr {
			bestW, bestErr = w, e
		}
	}
	return bestW, bestErr
}

// pickIndices assigns each pixel the 4-bit index (0-15) of the nearest
// interpolation weight between e0 and e1. Pixel 0 (the anchor) is clamped
// to indices 0-7 so its stored 3-bit field round-trips.
func pickIndices(pixels []rgba, e0, e1 rgba) [16]byte {
	var indices [16]byte
	for i, p := range pixels {
		best, bestErr := 0, rgbaDistSq(p, interpolate(e0, e1, mode6Weights[0]))
		limit := 16
		if i == 0 {
			limit = 8
		}
		for idx := 1; idx < limit; idx++ {
			if e := rgbaDistSq(p, interpolate(e0, e1, mode6Weights[idx])); e < bestErr {
				best, bestErr = idx, e
			}
		}
		indices[i] = byte(best)
	}
	return indices
}
