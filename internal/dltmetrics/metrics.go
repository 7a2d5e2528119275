// Package dltmetrics tracks throughput and progress for a decode run. It is
// shaped around the task/supervisor fan-out rather than a single sequential
// reader: each chunk task owns its own uncontended Counters (no locking on
// the hot per-record path), and Metrics aggregates across every task's
// Counters on demand, the same way the supervisor's reconcile step combines
// each task's record vector into one.
//
// The counter fields and the Snapshot/throughput/progress-line math below
// are grounded on the teacher's internal/common/metrics.go Metrics, which
// tracked the same things (bytes, packets, duration, completion %) for its
// single sequential reader; here that single shared, mutex-guarded counter
// is split one-per-task to match a decoder that runs N goroutines at once.
package dltmetrics

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Counters accumulates one chunk task's contribution to a run's totals.
// Every field is touched by exactly one goroutine (the task that owns it),
// so plain atomics are enough: there is never a second writer to race
// against, only Metrics.Snapshot reading concurrently from another
// goroutine (e.g. a progress printer).
type Counters struct {
	bytes   int64
	records int64
	resyncs int64
}

// AddRecord records one decoded record (or corruption marker) of size
// bytes.
func (c *Counters) AddRecord(size int64) {
	if size < 0 {
		size = 0
	}
	atomic.AddInt64(&c.bytes, size)
	atomic.AddInt64(&c.records, 1)
}

// IncResync records one byte-slide resynchronization attempt.
func (c *Counters) IncResync() {
	atomic.AddInt64(&c.resyncs, 1)
}

func (c *Counters) load() (bytes, records, resyncs int64) {
	return atomic.LoadInt64(&c.bytes), atomic.LoadInt64(&c.records), atomic.LoadInt64(&c.resyncs)
}

// Metrics aggregates a run's Counters (one per chunk task) plus the run's
// start/end time and the input's total size. Safe for concurrent use: a
// progress printer may call Snapshot while tasks are still registering and
// updating their own Counters.
type Metrics struct {
	mu         sync.Mutex
	start      time.Time
	end        time.Time
	totalBytes int64
	counters   []*Counters
}

// New returns a zero Metrics, ready to Start.
func New() *Metrics {
	return &Metrics{}
}

// NewCounters allocates and registers one task's Counters. Supervisor calls
// this once per chunk view, before spawning that view's task goroutine, so
// registration itself never races with Snapshot's read of the slice.
func (m *Metrics) NewCounters() *Counters {
	c := &Counters{}
	m.mu.Lock()
	m.counters = append(m.counters, c)
	m.mu.Unlock()
	return c
}

// Start marks the beginning of a run. Calling it again before Stop is a
// no-op.
func (m *Metrics) Start() {
	m.mu.Lock()
	if m.start.IsZero() {
		m.start = time.Now()
		m.end = time.Time{}
	}
	m.mu.Unlock()
}

// Stop marks the end of a run.
func (m *Metrics) Stop() {
	m.mu.Lock()
	if !m.start.IsZero() && m.end.IsZero() {
		m.end = time.Now()
	}
	m.mu.Unlock()
}

// SetTotalBytes records the input file's total size, for completion
// percentage reporting.
func (m *Metrics) SetTotalBytes(total int64) {
	if total < 0 {
		total = 0
	}
	atomic.StoreInt64(&m.totalBytes, total)
}

// Snapshot sums every registered task's Counters into one consistent
// point-in-time copy. Individual tasks may still be running: this is the
// same kind of approximate, monotonically-increasing read a progress
// printer always gets from a live aggregate.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	counters := m.counters
	duration := m.elapsedLocked()
	m.mu.Unlock()

	var bytes, records, resyncs int64
	for _, c := range counters {
		b, r, s := c.load()
		bytes += b
		records += r
		resyncs += s
	}

	return Snapshot{
		Duration:   duration,
		Bytes:      bytes,
		TotalBytes: atomic.LoadInt64(&m.totalBytes),
		Records:    records,
		Resyncs:    resyncs,
	}
}

func (m *Metrics) elapsedLocked() time.Duration {
	if m.start.IsZero() {
		return 0
	}
	if !m.end.IsZero() {
		return m.end.Sub(m.start)
	}
	return time.Since(m.start)
}

// Snapshot is an immutable read of a Metrics at one point in time.
type Snapshot struct {
	Duration   time.Duration
	Bytes      int64
	TotalBytes int64
	Records    int64
	Resyncs    int64
}

// ThroughputBytesPerSecond is Bytes/Duration, or 0 before Start.
func (s Snapshot) ThroughputBytesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Bytes) / s.Duration.Seconds()
}

// Completion is Bytes/TotalBytes clamped to [0,1], or 0 if TotalBytes is
// unset.
func (s Snapshot) Completion() float64 {
	if s.TotalBytes <= 0 {
		return 0
	}
	ratio := float64(s.Bytes) / float64(s.TotalBytes)
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// FormatBytes renders b using binary (KiB/MiB/...) units.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div := float64(unit)
	exp := 0
	for n := float64(b) / div; n >= unit && exp < 6; n /= unit {
		div *= unit
		exp++
	}
	prefixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	return fmt.Sprintf("%.2f %s", float64(b)/div, prefixes[exp])
}

func formatProgressLine(s Snapshot) string {
	throughput := s.ThroughputBytesPerSecond() / (1024 * 1024)
	if s.TotalBytes > 0 {
		pct := s.Completion() * 100
		if math.IsNaN(pct) || math.IsInf(pct, 0) {
			pct = 0
		}
		return fmt.Sprintf("Progress: %6.2f%% (%s / %s) %.2f MiB/s", pct, FormatBytes(s.Bytes), FormatBytes(s.TotalBytes), throughput)
	}
	return fmt.Sprintf("Processed: %s (%d records) %.2f MiB/s", FormatBytes(s.Bytes), s.Records, throughput)
}

// StartProgressPrinter writes a self-overwriting progress line to w every
// interval until the returned stop function is called.
func StartProgressPrinter(w io.Writer, m *Metrics, interval time.Duration) func() {
	if m == nil || w == nil {
		return func() {}
	}
	if interval <= 0 {
		interval = time.Second
	}
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		lastLen := 0
		for {
			select {
			case <-ticker.C:
				line := formatProgressLine(m.Snapshot())
				pad := lastLen - len(line)
				if pad > 0 {
					line += strings.Repeat(" ", pad)
				}
				fmt.Fprintf(w, "\r%s", line)
				lastLen = len(line)
			case <-done:
				if lastLen > 0 {
					fmt.Fprintf(w, "\r%s\r\n", strings.Repeat(" ", lastLen))
				}
				return
			}
		}
	}()
	return func() {
		close(done)
		wg.Wait()
	}
}
