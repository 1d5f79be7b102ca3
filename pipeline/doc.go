// Package pipeline implements the bounded, multi-stage streaming pipeline
// that converts PNG images into block-compressed DDS textures.
//
// Work flows through five stages (Load, Decode+Mipmap, Reblock, Encode and
// Write), connected by a token budget that caps the number of work units in
// flight at once. Load runs serial-in-order; the remaining stages run in
// parallel and may complete out of order, since every unit carries the
// file_index it was assigned at Load and downstream stages key off that
// index rather than arrival order.
package pipeline
