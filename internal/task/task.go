// Package task drives the per-record decode loop against one chunk view:
// byte-slide resynchronization on a parse failure, corruption-marker
// collapsing, chunk-overrun detection, and cooperative cancellation via a
// shared context.
//
// This generalizes the teacher's internal/ch10/parser.go Reader.Next/resync
// loop (which walked a whole file sequentially, one sync word at a time)
// into something that walks exactly one chunk view and stops the moment its
// fence is crossed, handing the rest of the file to the next task.
package task

import (
	"context"
	"errors"

	"example.com/dltrace/internal/bytesource"
	"example.com/dltrace/internal/dltmetrics"
	"example.com/dltrace/internal/record"
)

// Task owns one chunk view and produces its slice of the overall record
// vector. Counters, if set, is this task's own exclusively-owned slice of
// the run's aggregate metrics: nothing else ever writes to it, so no lock
// is needed on the per-record hot path.
type Task struct {
	View     *bytesource.View
	Records  []record.Record
	Counters *dltmetrics.Counters
}

// New returns a task over the given view. counters may be nil.
func New(v *bytesource.View, counters *dltmetrics.Counters) *Task {
	return &Task{View: v, Counters: counters}
}

// Execute runs the per-record loop until the view's chunk is exhausted,
// its fence is crossed, or ctx is canceled (the supervisor's single-slot
// error holder became non-empty). It returns a non-nil error only for a
// genuinely fatal condition; EOF and chunk overrun are both normal stops.
func (t *Task) Execute(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		if t.View.GetPos() == t.View.Len() {
			return nil
		}

		start := t.View.GetPos()
		rec, err := record.DecodeOne(t.View)
		if err == nil {
			t.emit(rec)
			if t.Counters != nil {
				t.Counters.AddRecord(rec.BytesConsumed)
			}
			if notifyErr := t.View.NotifySuccess(start); notifyErr != nil {
				return nil
			}
			if t.View.Overrun() != 0 {
				return nil
			}
			continue
		}

		marker := record.NewCorruptionMarker(start, err.Error())
		t.emit(marker)

		if errors.Is(err, bytesource.ErrEOF) {
			// Truncated (file ended mid-record): the marker above already
			// carries "file ended with incomplete record"; stop here,
			// same as a clean EOF.
			return nil
		}

		var pf *record.ParseFailure
		if errors.As(err, &pf) {
			if t.Counters != nil {
				t.Counters.IncResync()
			}
			if serr := t.View.SetPos(start + 1); serr != nil {
				return nil
			}
			continue
		}

		// Anything else is fatal: I/O failure, allocation failure, etc.
		return err
	}
}

// emit appends rec, collapsing a corruption marker into the previous one
// when both are corrupted: spec.md's "at most one corruption marker per
// contiguous run of failures".
func (t *Task) emit(rec record.Record) {
	if rec.Corrupted && len(t.Records) > 0 && t.Records[len(t.Records)-1].Corrupted {
		return
	}
	t.Records = append(t.Records, rec)
}
