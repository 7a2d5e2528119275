// Package supervisor orchestrates N tasks across chunk views: one goroutine
// per view, boundary reconciliation of records that straddle a chunk fence,
// and first-error propagation.
//
// The fan-out/first-error/shared-cancellation shape is implemented with
// golang.org/x/sync/errgroup, which gives exactly the single-slot
// first-writer-wins error holder spec.md §5 describes: errgroup.WithContext
// cancels its context on the first returned error, tasks poll ctx.Err() as
// their advisory early-cancel check, and Wait() blocks until every
// goroutine has returned — the happens-before edge the boundary
// reconciliation below depends on.
package supervisor

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"example.com/dltrace/internal/bytesource"
	"example.com/dltrace/internal/dltmetrics"
	"example.com/dltrace/internal/record"
	"example.com/dltrace/internal/task"
)

// Options configures a Supervisor run.
type Options struct {
	// SplitFactor overrides the number of chunk views. 0 means
	// runtime.NumCPU(), clamped to a minimum of 1.
	SplitFactor int
	// ChunkFencePolicy selects the split(N) final-view fence behavior.
	ChunkFencePolicy bytesource.ChunkFencePolicy
	// Metrics, if non-nil, is updated with byte/record/resync counters as
	// every task progresses.
	Metrics *dltmetrics.Metrics
}

func (o Options) splitFactor() int {
	if o.SplitFactor > 0 {
		return o.SplitFactor
	}
	n := runtime.NumCPU()
	if n < 1 {
		n = 1
	}
	return n
}

// Run splits backing into N chunk views, decodes each in its own goroutine,
// and returns the single contiguous, boundary-reconciled record vector.
func Run(ctx context.Context, backing *bytesource.Backing, opts Options) ([]record.Record, error) {
	if opts.Metrics != nil {
		opts.Metrics.SetTotalBytes(backing.Len())
		opts.Metrics.Start()
		defer opts.Metrics.Stop()
	}

	views, err := bytesource.Split(backing, opts.splitFactor(), opts.ChunkFencePolicy)
	if err != nil {
		if err == bytesource.ErrEOF {
			return nil, nil
		}
		return nil, err
	}

	tasks := make([]*task.Task, len(views))
	for i, v := range views {
		var counters *dltmetrics.Counters
		if opts.Metrics != nil {
			counters = opts.Metrics.NewCounters()
		}
		tasks[i] = task.New(v, counters)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, t := range tasks {
		t := t
		g.Go(func() error {
			return t.Execute(gctx)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reconcile(tasks, views), nil
}

// reconcile concatenates each task's record vector into one, dropping a
// leading corruption marker in task i's output when it provably corresponds
// to task i-1's chunk overrun rather than to a genuine corruption. Leading
// records of task i that start inside bytes already decoded by an earlier
// task are dropped as well: a decoded record always, a corruption marker
// when the run it stands for ends within those bytes.
func reconcile(tasks []*task.Task, views []*bytesource.View) []record.Record {
	var out []record.Record
	var covered int64 // end offset of the last decoded record in out
	for i, t := range tasks {
		recs := t.Records
		if i > 0 && len(recs) > 0 && recs[0].Corrupted {
			prevOverrun := views[i-1].Overrun()
			curFirstValid := views[i].FirstValidOffset()
			sameEOF := prevOverrun == bytesource.OverrunEOF && views[i].Overrun() == bytesource.OverrunEOF && len(recs) == 1
			if (prevOverrun != 0 && prevOverrun == curFirstValid) || sameEOF {
				recs = recs[1:]
			}
		}
		for len(recs) > 0 && recs[0].StartOffset < covered {
			runEnd := views[i].Len()
			if len(recs) > 1 {
				runEnd = recs[1].StartOffset
			}
			if recs[0].Corrupted && runEnd > covered {
				break
			}
			recs = recs[1:]
		}
		// Avoid re-introducing an adjacent duplicate corruption marker at
		// the seam between two tasks' outputs.
		if len(out) > 0 && len(recs) > 0 && out[len(out)-1].Corrupted && recs[0].Corrupted {
			recs = recs[1:]
		}
		out = append(out, recs...)
		for _, r := range recs {
			if !r.Corrupted {
				covered = r.StartOffset + r.BytesConsumed
			}
		}
	}
	return out
}
