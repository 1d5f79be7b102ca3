package ddsformat

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestBuildMagicAndSizeBC1(t *testing.T) {
	out := Build(Params{Width: 17, Height: 9, MipmapCount: 5, Level0Bytes: 48})
	if !bytes.Equal(out[:4], []byte("DDS ")) {
		t.Fatalf("magic = %q, want %q", out[:4], "DDS ")
	}
	if len(out) != 4+124 {
		t.Fatalf("len = %d, want %d", len(out), 4+124)
	}

	size := binary.LittleEndian.Uint32(out[4:8])
	if size != 124 {
		t.Errorf("dwSize = %d, want 124", size)
	}
	width := binary.LittleEndian.Uint32(out[4+12 : 4+16])
	height := binary.LittleEndian.Uint32(out[4+8 : 4+12])
	if width != 17 || height != 9 {
		t.Errorf("width,height = %d,%d, want 17,9", width, height)
	}
	fourCC := out[4+80 : 4+84]
	if !bytes.Equal(fourCC, []byte("DXT1")) {
		t.Errorf("fourCC = %q, want DXT1", fourCC)
	}
}

func TestBuildBC7IncludesDXT10Extension(t *testing.T) {
	out := Build(Params{Width: 4, Height: 4, MipmapCount: 1, Level0Bytes: 16, BC7: true})
	if len(out) != 4+124+20 {
		t.Fatalf("len = %d, want %d", len(out), 4+124+20)
	}
	fourCC := out[4+80 : 4+84]
	if !bytes.Equal(fourCC, []byte("DX10")) {
		t.Errorf("fourCC = %q, want DX10", fourCC)
	}
	dxgiFormat := binary.LittleEndian.Uint32(out[4+124 : 4+128])
	if dxgiFormat != dxgiFormatBC7UNorm {
		t.Errorf("dxgiFormat = %d, want %d", dxgiFormat, dxgiFormatBC7UNorm)
	}
}

func TestBuildSingleLevelOmitsMipmapFlagsAndCaps(t *testing.T) {
	out := Build(Params{Width: 4, Height: 4, MipmapCount: 1, Level0Bytes: 8})
	flags := binary.LittleEndian.Uint32(out[4+4 : 4+8])
	if flags&flagMipmapCount != 0 {
		t.Errorf("flagMipmapCount set for a single-level image")
	}
	caps := binary.LittleEndian.Uint32(out[4+104 : 4+108])
	if caps&capsComplex != 0 || caps&capsMipmap != 0 {
		t.Errorf("caps = %#x, complex/mipmap bits set for a single-level image", caps)
	}
	if caps&capsTexture == 0 {
		t.Errorf("caps = %#x, missing TEXTURE bit", caps)
	}
}

func TestHeaderSize(t *testing.T) {
	if HeaderSize(false) != 124 {
		t.Errorf("HeaderSize(false) = %d, want 124", HeaderSize(false))
	}
	if HeaderSize(true) != 144 {
		t.Errorf("HeaderSize(true) = %d, want 144", HeaderSize(true))
	}
}
