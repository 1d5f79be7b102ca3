package blockcodec

import "testing"

// decodeBC7Mode6 reverses encodeBC7's bitstream for testing. It is not
// used by the pipeline, which never reads back the blocks it writes.
func decodeBC7Mode6(block []byte) (e0, e1 rgba, indices [16]byte) {
	r := &bitReader{buf: block}
	mode := r.readBits(7)
	if mode != 0x40 {
		panic("unexpected BC7 mode tag in test fixture")
	}

	r0 := r.readBits(7)
	r1 := r.readBits(7)
	g0 := r.readBits(7)
	g1 := r.readBits(7)
	b0 := r.readBits(7)
	b1 := r.readBits(7)
	a0 := r.readBits(7)
	a1 := r.readBits(7)
	p0 := r.readBits(1)
	p1 := r.readBits(1)

	e0 = rgba{unquantize7(r0, p0), unquantize7(g0, p0), unquantize7(b0, p0), unquantize7(a0, p0)}
	e1 = rgba{unquantize7(r1, p1), unquantize7(g1, p1), unquantize7(b1, p1), unquantize7(a1, p1)}

	indices[0] = byte(r.readBits(3))
	for i := 1; i < 16; i++ {
		indices[i] = byte(r.readBits(4))
	}
	return e0, e1, indices
}

type bitReader struct {
	buf []byte
	pos uint
}

func (r *bitReader) readBits(n uint) uint32 {
	var v uint32
	for i := uint(0); i < n; i++ {
		byteIdx := r.pos / 8
		bitIdx := r.pos % 8
		bit := (r.buf[byteIdx] >> bitIdx) & 1
		v |= uint32(bit) << i
		r.pos++
	}
	return v
}

func makeSolidTile(r, g, b, a byte) *Tile {
	var tile Tile
	for i := 0; i < 16; i++ {
		off := i * 4
		tile[off] = r
		tile[off+1] = g
		tile[off+2] = b
		tile[off+3] = a
	}
	return &tile
}

func TestEncodeBC7SolidColorIsExactWhenParityMatches(t *testing.T) {
	// All four channels even: the majority-parity p-bit is 0 for both
	// endpoints and every channel's parity matches it, so the 7-bit
	// field round-trips every channel exactly.
	tile := makeSolidTile(200, 100, 50, 254)
	params := newBC7Params(0)
	block := encodeBC7(tile, &params)
	if len(block) != 16 {
		t.Fatalf("block length = %d, want 16", len(block))
	}

	e0, e1, indices := decodeBC7Mode6(block)
	if e0 != (rgba{200, 100, 50, 254}) {
		t.Errorf("e0 = %+v, want {200 100 50 254}", e0)
	}
	if e1 != (rgba{200, 100, 50, 254}) {
		t.Errorf("e1 = %+v, want {200 100 50 254}", e1)
	}
	for i, idx := range indices {
		if idx > 15 {
			t.Errorf("index[%d] = %d out of range", i, idx)
		}
	}
}

func TestEncodeBC7DistinctColorsProduceDistinctEndpoints(t *testing.T) {
	var tile Tile
	for i := 0; i < 8; i++ {
		off := i * 4
		tile[off], tile[off+1], tile[off+2], tile[off+3] = 255, 0, 0, 255
	}
	for i := 8; i < 16; i++ {
		off := i * 4
		tile[off], tile[off+1], tile[off+2], tile[off+3] = 0, 0, 255, 255
	}
	params := newBC7Params(MaxQuality)
	block := encodeBC7(&tile, &params)
	e0, e1, _ := decodeBC7Mode6(block)
	if e0 == e1 {
		t.Errorf("endpoints collapsed to a single color for a two-color block: %+v", e0)
	}
}

func TestEncodeBC7ProducesFixedBlockSize(t *testing.T) {
	tile := makeSolidTile(10, 20, 30, 255)
	params := newBC7Params(5)
	block := encodeBC7(tile, &params)
	if len(block) != FormatBC7.BytesPerBlock() {
		t.Fatalf("block length = %d, want %d", len(block), FormatBC7.BytesPerBlock())
	}
}
