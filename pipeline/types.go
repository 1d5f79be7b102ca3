package pipeline

import "math"

// ErrorIndex flags a work unit that originated from a failed operation.
// Downstream stages detect it and drop the unit without computation.
const ErrorIndex = math.MaxInt

// Format selects the block-compression format used by the Encode stage.
type Format int

const (
	// FormatBC1 compresses each 4x4 tile to 8 bytes, RGB only: the
	// encoder always uses the opaque 4-color mode, so alpha is discarded.
	FormatBC1 Format = iota
	// FormatBC7 compresses each 4x4 tile to 16 bytes, full RGBA.
	FormatBC7
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case FormatBC1:
		return "BC1"
	case FormatBC7:
		return "BC7"
	default:
		return "unknown"
	}
}

// ParseFormat maps a lowercase format name to a Format value.
func ParseFormat(name string) (Format, bool) {
	switch name {
	case "bc1":
		return FormatBC1, true
	case "bc7":
		return FormatBC7, true
	default:
		return 0, false
	}
}

// BytesPerBlock returns the encoded size of one 4x4 tile for the format.
func (f Format) BytesPerBlock() int {
	switch f {
	case FormatBC1:
		return 8
	case FormatBC7:
		return 16
	default:
		return 0
	}
}

// FileMetadata is written once by Decode and read by the Writer. No other
// stage mutates it.
type FileMetadata struct {
	Width        int
	Height       int
	MipmapCount  int
	ChosenFormat Format
}

// FileEntry is one input/output path pair, plus its mutable metadata.
type FileEntry struct {
	Source      string
	Destination string
	Metadata    FileMetadata
}

// FileSlot is the shared, indexed registry of all jobs in a run. Entries
// are created before the pipeline starts and never resized once running;
// only the Metadata field of each entry is mutated, exactly once, by
// Decode, and later read by the Writer.
type FileSlot struct {
	entries []FileEntry
}

// NewFileSlot builds a registry from an ordered list of source/destination
// path pairs. Uniqueness and ordering are the caller's responsibility.
func NewFileSlot(paths []PathPair) *FileSlot {
	entries := make([]FileEntry, len(paths))
	for i, p := range paths {
		entries[i] = FileEntry{Source: p.Source, Destination: p.Destination}
	}
	return &FileSlot{entries: entries}
}

// PathPair is a (source, destination) pair supplied by the caller.
type PathPair struct {
	Source      string
	Destination string
}

// Len returns the number of registered jobs.
func (s *FileSlot) Len() int { return len(s.entries) }

// Entry returns the entry at file_index i. The caller must not retain the
// returned pointer past the lifetime of the slot.
func (s *FileSlot) Entry(i int) *FileEntry { return &s.entries[i] }

// SetMetadata writes FileMetadata for slot i. Called exactly once, by Decode.
func (s *FileSlot) SetMetadata(i int, m FileMetadata) { s.entries[i].Metadata = m }

// RawFile is the output of Load and the input to Decode. An empty Bytes
// slice means Load already failed for this index; the unit still flows so
// that file_index accounting stays consistent downstream.
type RawFile struct {
	Bytes     []byte
	FileIndex int
}

// Image owns a contiguous RGBA8 pixel buffer. Width/Height are the
// unpadded content dimensions; the buffer itself is allocated with
// PaddedWidth/PaddedHeight (each rounded up to a multiple of 4) so that
// Reblock can always index it safely.
type Image struct {
	Width, Height             int
	PaddedWidth, PaddedHeight int
	// Stride is the row length in bytes of the padded buffer (PaddedWidth*4).
	Stride int
	Pix    []byte
}

// NewImage allocates an Image with a zero-filled, 4x4-padded buffer.
func NewImage(width, height int) Image {
	pw := padTo4(width)
	ph := padTo4(height)
	return Image{
		Width:        width,
		Height:       height,
		PaddedWidth:  pw,
		PaddedHeight: ph,
		Stride:       pw * 4,
		Pix:          make([]byte, pw*4*ph),
	}
}

func padTo4(n int) int {
	if n < 1 {
		n = 1
	}
	return (n + 3) &^ 3
}

// MipmapImage is the output of Decode+Mipmap and the input to Reblock.
type MipmapImage struct {
	FileIndex int
	Levels    []Image
}

// BlockTile is one 4x4 RGBA tile, stored row-major within the tile
// (16 pixels, 4 bytes each = 64 bytes).
type BlockTile [64]byte

// BlockGrid stores the tiles of one mipmap level in row-major tile order
// (ty-major, then tx).
type BlockGrid struct {
	WidthInBlocks, HeightInBlocks int
	Tiles                         []BlockTile
}

// BlockImage is the output of Reblock and the input to Encode. A
// FileIndex of ErrorIndex marks a sentinel that stages 4 and 5 must drop
// without computation.
type BlockImage struct {
	FileIndex                    int
	WidthInBlocks, HeightInBlocks int
	Levels                       []BlockGrid
}

// EncodedLevel is one mipmap level's compressed byte stream: length equals
// blocks_in_level * format.BytesPerBlock().
type EncodedLevel []byte

// EncodedImage is the output of Encode and the input to the DDS Writer.
type EncodedImage struct {
	FileIndex int
	Format    Format
	Levels    []EncodedLevel
}
