// Package discover resolves a CLI input argument (a single PNG file, a
// directory tree, or a manifest listing either) into the ordered,
// deduplicated list of source/destination path pairs the pipeline
// converts.
package discover
