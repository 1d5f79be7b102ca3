// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/edds

package eddscontainer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

const (
	blockMagicCOPY = "COPY"
	blockMagicLZ4  = "LZ4 "

	// chunkSize is the Enfusion chunk size for LZ4 streams, part of the
	// wire format: a reader splits an LZ4 block back into chunkSize pieces
	// using the same constant.
	chunkSize = 64 * 1024

	// minCompressibleBytes skips the LZ4 path for levels smaller than
	// 256 bytes and stores them as COPY: a single BC1/BC7 mip level
	// this small (a handful of 4x4 blocks) is
	// already high-entropy compressed texture data, so spending an LZ4
	// call on it is pure overhead. This is a policy choice for this
	// pipeline's payloads, not part of the wire format.
	minCompressibleBytes = 256

	maxInt32 = int(^uint32(0) >> 1)
)

// block is one compressed (or stored) mipmap level body.
type block struct {
	magic            string
	data             []byte
	size             int32
	uncompressedSize int32
}

// compressBlock compresses raw level data into an LZ4 chunk stream,
// falling back to an uncompressed COPY block when the input is too small
// to be worth compressing or the LZ4 stream does not come out smaller
// than the input. The chunk size and the 3-byte-length-plus-continuation-
// flag framing are the Enfusion wire format itself; the COPY fallback
// decision is re-derived here for already block-compressed BC1/BC7
// payloads, which rarely have much room left to shrink, so a plain
// smaller-than-the-input check is used instead of a compression-ratio
// margin tuned for a different kind of source data.
func compressBlock(data []byte) (*block, error) {
	if len(data) > maxInt32 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInputTooLarge, len(data))
	}
	uncompressedSize, err := i32FromInt(len(data))
	if err != nil {
		return nil, err
	}

	if len(data) < minCompressibleBytes {
		return &block{magic: blockMagicCOPY, size: uncompressedSize, data: data}, nil
	}

	var chunkStream bytes.Buffer
	maxCompressedSize := lz4.CompressBlockBound(chunkSize)
	compressBuf := make([]byte, maxCompressedSize)

	for i := 0; i < len(data); i += chunkSize {
		end := i + chunkSize
		if end > len(data) {
			end = len(data)
		}
		srcChunk := data[i:end]
		isLast := end == len(data)

		cn, err := lz4.CompressBlockHC(srcChunk, compressBuf, 0, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLZ4Compress, err)
		}
		if cn == 0 || cn >= len(srcChunk) {
			return &block{magic: blockMagicCOPY, size: uncompressedSize, data: data}, nil
		}
		if cn > 0x7FFFFF {
			return nil, fmt.Errorf("%w: %d", ErrChunkTooLarge, cn)
		}

		chunkStream.WriteByte(byte(cn))
		chunkStream.WriteByte(byte(cn >> 8))
		chunkStream.WriteByte(byte(cn >> 16))
		if isLast {
			chunkStream.WriteByte(0x80)
		} else {
			chunkStream.WriteByte(0x00)
		}
		chunkStream.Write(compressBuf[:cn])
	}

	compressedData := chunkStream.Bytes()
	totalOverhead := 4 + len(compressedData)
	if totalOverhead > maxInt32 {
		return nil, fmt.Errorf("%w: %d bytes", ErrCompressedDataTooLarge, totalOverhead)
	}
	if totalOverhead >= len(data) {
		return &block{magic: blockMagicCOPY, size: uncompressedSize, data: data}, nil
	}

	size, err := i32FromInt(totalOverhead)
	if err != nil {
		return nil, err
	}

	return &block{
		magic:            blockMagicLZ4,
		size:             size,
		uncompressedSize: uncompressedSize,
		data:             compressedData,
	}, nil
}

// writeBlockData writes the block payload (no table entry).
func writeBlockData(w io.Writer, b *block) error {
	if b.magic == blockMagicLZ4 {
		if err := binary.Write(w, binary.LittleEndian, b.uncompressedSize); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteBlockData, err)
		}
		if _, err := w.Write(b.data); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteBlockData, err)
		}
		return nil
	}
	if _, err := w.Write(b.data); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteBlockData, err)
	}
	return nil
}

func i32FromInt(n int) (int32, error) {
	if n < 0 || n > maxInt32 {
		return 0, ErrSizeOverflow
	}
	return int32(n), nil
}
