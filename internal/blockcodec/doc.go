// Package blockcodec compresses 4x4 RGBA8 pixel tiles into BC1 (8 bytes)
// or BC7 (16 bytes) blocks.
//
// Format selection is tagged: Params is built once at pipeline
// construction time, and EncodeBlock picks the encoder for each tile with
// a switch on Params.Format, so the inner encode loop never pays for
// interface or virtual dispatch. BC7 is implemented as mode 6 only: a
// single-subset mode with 7-bit RGBA endpoints and a shared p-bit per
// endpoint, which is simple to encode correctly and reproduces a
// solid-color block bit-exactly whenever that color's four channels agree
// on parity with the endpoint's shared p-bit (otherwise each disagreeing
// channel is off by at most one), at the cost of the image quality a
// full multi-mode encoder would achieve on non-solid content.
package blockcodec
