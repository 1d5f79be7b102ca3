// Package ddsformat builds and serializes the DDS container: the 4-byte
// magic, the 124-byte DDS_HEADER, and, for BC7 payloads, the 20-byte
// DDS_HEADER_DXT10 extension. It never reads DDS files back; the pipeline
// only ever writes them.
package ddsformat
