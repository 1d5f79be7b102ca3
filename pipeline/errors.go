package pipeline

import "errors"

var (
	// ErrNoFiles indicates an empty input file list was supplied.
	ErrNoFiles = errors.New("no input files")
	// ErrInvalidParallelism indicates a non-positive worker count.
	ErrInvalidParallelism = errors.New("parallelism must be positive")
	// ErrInvalidTokens indicates a non-positive token budget.
	ErrInvalidTokens = errors.New("token budget must be positive")
	// ErrUnknownFormat indicates an unrecognized Format value.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrUnknownFilter indicates an unrecognized Filter value.
	ErrUnknownFilter = errors.New("unknown filter")
	// ErrReadSource indicates Load could not read a source file.
	ErrReadSource = errors.New("reading source file failed")
	// ErrDecodePNG indicates stage 2 could not parse a PNG buffer.
	ErrDecodePNG = errors.New("decoding PNG failed")
	// ErrEncodeBlock indicates the block encoder panicked or otherwise
	// failed for a file.
	ErrEncodeBlock = errors.New("encoding blocks failed")
	// ErrWriteDDS indicates the DDS writer could not open or write the
	// destination file.
	ErrWriteDDS = errors.New("writing DDS file failed")
)
