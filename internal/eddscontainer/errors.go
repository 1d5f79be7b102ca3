// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/edds

package eddscontainer

import "errors"

var (
	// ErrEmptyLevels indicates the caller passed no mipmap levels.
	ErrEmptyLevels = errors.New("empty mipmap levels")
	// ErrInputTooLarge indicates a level's data is too large to encode.
	ErrInputTooLarge = errors.New("input data too large")
	// ErrSizeOverflow indicates a size or dimension exceeds supported limits.
	ErrSizeOverflow = errors.New("size overflow")
	// ErrCompressedDataTooLarge indicates compressed payload exceeds limits.
	ErrCompressedDataTooLarge = errors.New("compressed data too large")
	// ErrChunkTooLarge indicates a compressed chunk exceeds allowed size.
	ErrChunkTooLarge = errors.New("compressed chunk too large")
	// ErrLZ4Compress indicates LZ4 compression failed.
	ErrLZ4Compress = errors.New("LZ4 compression failed")
	// ErrCompressLevel indicates level compression failed.
	ErrCompressLevel = errors.New("compress mipmap level failed")
	// ErrCreateFile indicates file creation failed.
	ErrCreateFile = errors.New("create file failed")
	// ErrWriteHeader indicates header write failed.
	ErrWriteHeader = errors.New("writing DDS header failed")
	// ErrWriteBlockMagic indicates block magic write failed.
	ErrWriteBlockMagic = errors.New("writing block magic failed")
	// ErrWriteBlockSize indicates block size write failed.
	ErrWriteBlockSize = errors.New("writing block size failed")
	// ErrWriteBlockData indicates block data write failed.
	ErrWriteBlockData = errors.New("writing block data failed")
)
