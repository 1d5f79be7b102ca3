package pipeline

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

// Reporter drains the error channel and prints a live "Progress: N/total"
// counter while the pipeline runs. Counters are updated by producer
// goroutines with atomic.Int64; the print loop itself runs on a single
// goroutine started by Run.
type Reporter struct {
	out     io.Writer
	errOut  io.Writer
	verbose bool

	total     atomic.Int64
	completed atomic.Int64

	errs     chan error
	done     chan struct{}
	finished chan struct{}
}

// NewReporter creates a Reporter that writes progress to out and errors
// to errOut. The error channel is sized to capacity, an upper bound on
// the number of recoverable failures a run can produce (at most one per
// job), so pushError never blocks a stage on the print cadence.
func NewReporter(out, errOut io.Writer, capacity int, verbose bool) *Reporter {
	if capacity < 1 {
		capacity = 1
	}
	return &Reporter{
		out:     out,
		errOut:  errOut,
		verbose: verbose,
		errs:     make(chan error, capacity),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// SetTotal records the number of jobs in this run. Called once, before
// Start.
func (r *Reporter) SetTotal(n int) { r.total.Store(int64(n)) }

func (r *Reporter) incCompleted() { r.completed.Add(1) }

// Start begins the 50ms progress-and-error poll loop on its own
// goroutine. Run must call Close once every producer has finished so the
// loop can drain remaining errors and print the final line.
func (r *Reporter) Start() {
	go r.loop()
}

func (r *Reporter) loop() {
	defer close(r.finished)
	total := r.total.Load()
	var lastProgress int64
	requiresNewline := false

	drainErrors := func() {
		for {
			select {
			case err := <-r.errs:
				if requiresNewline {
					fmt.Fprintln(r.errOut)
					requiresNewline = false
				}
				fmt.Fprintln(r.errOut, err)
			default:
				return
			}
		}
	}

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			drainErrors()
			if r.verbose {
				fmt.Fprintf(r.out, "\rProgress: %d/%d\n", r.completed.Load(), total)
			}
			return
		case <-ticker.C:
			drainErrors()

			current := r.completed.Load()
			if current > lastProgress && current < total {
				lastProgress = current
				if r.verbose {
					fmt.Fprintf(r.out, "\rProgress: %d/%d", current, total)
				}
				requiresNewline = true
			}
		}
	}
}

// Close signals the poll loop to drain remaining errors, print the final
// progress line, and stop. It blocks until the loop has exited. Run calls
// this only after every producer has returned, so no further writes to
// errs or completed can race the final drain.
func (r *Reporter) Close() {
	close(r.done)
	<-r.finished
}

// Completed returns the number of successfully written files so far.
func (r *Reporter) Completed() int { return int(r.completed.Load()) }
