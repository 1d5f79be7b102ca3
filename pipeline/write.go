package pipeline

import (
	"fmt"
	"os"

	"github.com/texelstream/png2dds/internal/ddsformat"
	"github.com/texelstream/png2dds/internal/eddscontainer"
)

// writeConfig carries the per-run settings Write needs.
type writeConfig struct {
	// edds selects the Enfusion-style LZ4-compressed container instead
	// of a plain DDS file.
	edds bool
}

// writeDDS serializes an EncodedImage to its destination path. A sentinel
// input is dropped without touching the filesystem. Success increments
// reporter's completed counter; failure pushes to the error channel and
// leaves it unchanged.
func writeDDS(enc EncodedImage, slot *FileSlot, cfg writeConfig, reporter *Reporter) {
	if enc.FileIndex == ErrorIndex {
		return
	}

	entry := slot.Entry(enc.FileIndex)
	levels := make([][]byte, len(enc.Levels))
	for i, l := range enc.Levels {
		levels[i] = l
	}

	var err error
	if cfg.edds {
		err = eddscontainer.Write(entry.Destination, entry.Metadata.Width, entry.Metadata.Height, levels, enc.Format == FormatBC7)
	} else {
		err = writePlainDDS(entry.Destination, entry.Metadata.Width, entry.Metadata.Height, levels, enc.Format == FormatBC7)
	}

	if err != nil {
		pushError(reporter.errs, fmt.Errorf("%w: %s: %v", ErrWriteDDS, entry.Destination, err))
		return
	}
	reporter.incCompleted()
}

// writePlainDDS writes the default container: magic + DDS_HEADER (+
// DDS_HEADER_DXT10 for BC7) + concatenated level bytes, smallest index
// (largest dimensions) first.
func writePlainDDS(path string, width, height int, levels [][]byte, bc7 bool) error {
	header := ddsformat.Build(ddsformat.Params{
		Width:       width,
		Height:      height,
		MipmapCount: len(levels),
		Level0Bytes: len(levels[0]),
		BC7:         bc7,
	})

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(header); err != nil {
		return err
	}
	for _, level := range levels {
		if _, err := f.Write(level); err != nil {
			return err
		}
	}
	return nil
}
