package ddsformat

import (
	"bytes"
	"encoding/binary"

	"github.com/woozymasta/bcn"
)

// DDS_HEADER flag bits (dwFlags), per the published DDS file layout.
const (
	flagCaps        = 0x1
	flagHeight      = 0x2
	flagWidth       = 0x4
	flagPitch       = 0x8
	flagPixelFormat = 0x1000
	flagMipmapCount = 0x20000
	flagLinearSize  = 0x80000
)

// DDS_PIXELFORMAT flag bits (ddspf.dwFlags).
const pixelFormatFourCC = 0x4

// DDSCAPS bits (dwCaps).
const (
	capsComplex = 0x8
	capsMipmap  = 0x400000
	capsTexture = 0x1000
)

// DXGI_FORMAT_BC7_UNORM, used in the DDS_HEADER_DXT10 extension.
const dxgiFormatBC7UNorm = 98

// D3D10_RESOURCE_DIMENSION_TEXTURE2D.
const resourceDimensionTexture2D = 3

// header mirrors DDS_HEADER field-for-field in file order; Build writes it
// with encoding/binary as the exact 124-byte wire layout.
type header struct {
	Size              uint32
	Flags             uint32
	Height            uint32
	Width             uint32
	PitchOrLinearSize uint32
	Depth             uint32
	MipMapCount       uint32
	Reserved1         [11]uint32
	PFSize            uint32
	PFFlags           uint32
	PFFourCC          [4]byte
	PFRGBBitCount     uint32
	PFRBitMask        uint32
	PFGBitMask        uint32
	PFBBitMask        uint32
	PFABitMask        uint32
	Caps              uint32
	Caps2             uint32
	Caps3             uint32
	Caps4             uint32
	Reserved2         uint32
}

// headerDXT10 mirrors DDS_HEADER_DXT10, appended after header only for
// BC7 payloads.
type headerDXT10 struct {
	DXGIFormat        uint32
	ResourceDimension uint32
	MiscFlag          uint32
	ArraySize         uint32
	MiscFlags2        uint32
}

// Params describes one image's worth of header fields, derived from the
// EncodedImage the caller is about to write.
type Params struct {
	// Width and Height are unpadded source dimensions.
	Width, Height int
	// MipmapCount is the number of encoded levels.
	MipmapCount int
	// Level0Bytes is the encoded byte length of mip level 0, used for
	// dwPitchOrLinearSize.
	Level0Bytes int
	// BC7 selects the DXT10 extension path (FourCC "DX10"); when false
	// the BC1 path is used (FourCC "DXT1").
	BC7 bool
}

// Build serializes the DDS magic, DDS_HEADER and, for BC7, the
// DDS_HEADER_DXT10 extension, in that order.
func Build(p Params) []byte {
	h := header{
		Size:              124,
		Flags:             flagCaps | flagHeight | flagWidth | flagPixelFormat | flagLinearSize,
		Height:            uint32(p.Height),
		Width:             uint32(p.Width),
		PitchOrLinearSize: uint32(p.Level0Bytes),
		Depth:             1, // dwDepth is only meaningful with DDS_HEADER_FLAGS_VOLUME; 1 for a plain 2D texture.
		MipMapCount:       uint32(p.MipmapCount),
		PFSize:            32,
		PFFlags:           pixelFormatFourCC,
		Caps:              capsTexture,
	}
	if p.MipmapCount > 1 {
		h.Flags |= flagMipmapCount
		h.Caps |= capsComplex | capsMipmap
	}
	if p.BC7 {
		h.PFFourCC = [4]byte{'D', 'X', '1', '0'}
	} else {
		h.PFFourCC = [4]byte{'D', 'X', 'T', '1'}
	}

	var buf bytes.Buffer
	_ = bcn.WriteDDSMagic(&buf)
	_ = binary.Write(&buf, binary.LittleEndian, &h)

	if p.BC7 {
		dx10 := headerDXT10{
			DXGIFormat:        dxgiFormatBC7UNorm,
			ResourceDimension: resourceDimensionTexture2D,
			ArraySize:         1,
		}
		_ = binary.Write(&buf, binary.LittleEndian, &dx10)
	}

	return buf.Bytes()
}

// HeaderSize returns the total header length in bytes for a given
// format, excluding the 4-byte magic: 124 for BC1, 144 for BC7.
func HeaderSize(bc7 bool) int {
	if bc7 {
		return 124 + 20
	}
	return 124
}
