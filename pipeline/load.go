package pipeline

import (
	"fmt"
	"os"
)

// loader assigns file_index values in FileSlot order and reads each
// source's bytes. It is never called concurrently; the pipeline loop
// drives it from a single goroutine, which is what makes Load
// serial-ordered.
type loader struct {
	slot    *FileSlot
	nextIdx int
}

func newLoader(slot *FileSlot) *loader {
	return &loader{slot: slot}
}

// next returns the RawFile for the next unconsumed slot, or ok=false once
// every slot has been issued. A read failure still returns ok=true with
// an empty-bytes RawFile, so file_index accounting stays consistent
// downstream; the failure is reported on errs.
func (l *loader) next(errs chan<- error) (RawFile, bool) {
	if l.nextIdx >= l.slot.Len() {
		return RawFile{}, false
	}
	idx := l.nextIdx
	l.nextIdx++

	entry := l.slot.Entry(idx)
	data, err := os.ReadFile(entry.Source)
	if err != nil {
		pushError(errs, fmt.Errorf("%w: %s: %v", ErrReadSource, entry.Source, err))
		return RawFile{FileIndex: idx}, true
	}
	return RawFile{Bytes: data, FileIndex: idx}, true
}

// pushError delivers err to the error channel. The channel is sized to
// the job count at pipeline construction (at most one error per file), so
// this never blocks a stage on the reporter's drain cadence.
func pushError(errs chan<- error, err error) {
	errs <- err
}
