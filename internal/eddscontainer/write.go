// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/edds

package eddscontainer

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/texelstream/png2dds/internal/ddsformat"
)

// Write serializes already-encoded block-compressed mipmap levels
// (largest first) as an EDDS file at path: a DDS header (shared with the
// plain-DDS writer) followed by a block table and the LZ4/COPY-compressed
// level bodies, smallest level first, matching the Enfusion layout.
func Write(path string, width, height int, levels [][]byte, bc7 bool) error {
	if len(levels) == 0 {
		return ErrEmptyLevels
	}

	header := ddsformat.Build(ddsformat.Params{
		Width:       width,
		Height:      height,
		MipmapCount: len(levels),
		Level0Bytes: len(levels[0]),
		BC7:         bc7,
	})

	blocks := make([]*block, len(levels))
	for i, level := range levels {
		b, err := compressBlock(level)
		if err != nil {
			return fmt.Errorf("%w: level %d: %v", ErrCompressLevel, i, err)
		}
		blocks[i] = b
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCreateFile, path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(header); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteHeader, err)
	}

	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		if _, err := f.Write([]byte(b.magic)); err != nil {
			return fmt.Errorf("%w: level %d: %v", ErrWriteBlockMagic, i, err)
		}
		if err := binary.Write(f, binary.LittleEndian, b.size); err != nil {
			return fmt.Errorf("%w: level %d: %v", ErrWriteBlockSize, i, err)
		}
	}

	for i := len(blocks) - 1; i >= 0; i-- {
		if err := writeBlockData(f, blocks[i]); err != nil {
			return fmt.Errorf("%w: level %d: %v", ErrWriteBlockData, i, err)
		}
	}

	return nil
}
