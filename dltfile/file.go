// Package dltfile is the public entry point: parse a capture file and get
// back a random-access vector of decoded records plus a derived summary.
//
// This wraps internal/bytesource, internal/supervisor and internal/record
// the way the teacher's internal/ch10 Reader is wrapped by a higher-level
// session type in cmd/ch10d/main.go, except here the wrapping type is
// itself the public API rather than a daemon-internal detail.
package dltfile

import (
	"context"
	"fmt"

	"example.com/dltrace/internal/bytesource"
	"example.com/dltrace/internal/dltconfig"
	"example.com/dltrace/internal/dltlog"
	"example.com/dltrace/internal/dltmetrics"
	"example.com/dltrace/internal/record"
	"example.com/dltrace/internal/supervisor"
)

// File is a parsed capture file: an immutable, randomly addressable vector
// of Record values.
type File struct {
	records []record.Record
	metrics *dltmetrics.Metrics
}

// Option configures a Parse call.
type Option func(*settings)

type settings struct {
	splitFactor int
	fencePolicy bytesource.ChunkFencePolicy
	logger      dltlog.Logger
	useMmap     bool
	metrics     *dltmetrics.Metrics
}

// WithSplitFactor overrides the number of concurrent chunk views. 0 (the
// default) means runtime.NumCPU().
func WithSplitFactor(n int) Option {
	return func(s *settings) { s.splitFactor = n }
}

// WithLogger attaches a diagnostic sink for the parse start, the corruption
// marker count and a failed parse. A nil logger (the default) discards
// everything.
func WithLogger(l dltlog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithConfig applies the decode knobs (split factor, chunk-fence policy) of a
// loaded dltconfig.Config at once. Its report section is not used by Parse.
func WithConfig(cfg dltconfig.Config) Option {
	return func(s *settings) {
		s.splitFactor = cfg.SplitFactor
		s.fencePolicy = cfg.ChunkFencePolicy()
	}
}

// WithMmap selects memory-mapped file access instead of reading the whole
// file into a heap buffer up front. Use for capture files too large to
// comfortably duplicate in memory.
func WithMmap() Option {
	return func(s *settings) { s.useMmap = true }
}

// WithMetrics attaches a throughput/progress tracker that every chunk task
// updates as it decodes records and resynchronizes. The same *Metrics can
// be read concurrently from another goroutine (e.g. a progress printer)
// while Parse is still running.
func WithMetrics(m *dltmetrics.Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// Parse decodes the capture file at path into a File. A missing or
// unreadable file is an error; an empty file is not — it parses to a File
// with zero records.
func Parse(path string, opts ...Option) (*File, error) {
	s := &settings{fencePolicy: bytesource.ChunkFenceCorrected}
	for _, opt := range opts {
		opt(s)
	}
	logger := dltlog.OrNoop(s.logger)

	var backing *bytesource.Backing
	var err error
	if s.useMmap {
		backing, err = bytesource.OpenMmap(path)
	} else {
		backing, err = bytesource.OpenPrecached(path)
	}
	if err != nil {
		return nil, fmt.Errorf("dltfile: open %s: %w", path, err)
	}
	defer backing.Close()

	logger.Infof("parsing %s (%d bytes)", path, backing.Len())

	recs, err := supervisor.Run(context.Background(), backing, supervisor.Options{
		SplitFactor:      s.splitFactor,
		ChunkFencePolicy: s.fencePolicy,
		Metrics:          s.metrics,
	})
	if err != nil {
		logger.Warnf("parse of %s failed: %v", path, err)
		return nil, fmt.Errorf("dltfile: parse %s: %w", path, err)
	}

	corrupted := 0
	for _, r := range recs {
		if r.Corrupted {
			corrupted++
		}
	}
	if corrupted > 0 {
		logger.Debugf("%s: %d corruption marker(s) among %d records", path, corrupted, len(recs))
	}

	return &File{records: recs, metrics: s.metrics}, nil
}

// Metrics returns the throughput tracker passed via WithMetrics, or nil if
// none was attached.
func (f *File) Metrics() *dltmetrics.Metrics { return f.metrics }

// RecordsNum returns the total number of records, including corruption
// markers.
func (f *File) RecordsNum() int { return len(f.records) }

// GetRecord returns the i-th record and true, or the zero Record and false
// if i is out of range.
func (f *File) GetRecord(i int) (Record, bool) {
	if i < 0 || i >= len(f.records) {
		return Record{}, false
	}
	return Record{r: f.records[i]}, true
}

// Summary computes aggregate counts over every record currently held.
func (f *File) Summary() Summary {
	return summarize(f.records)
}
