// Package dltlog is the minimal injectable logger spec.md treats as an
// external collaborator: callers pass in whatever they want, including
// nil, and the decoder never depends on what it does.
//
// The default implementation is grounded on the teacher's logging.go
// (package-level *log.Logger wrapping stderr) and on cmd/ch10d/main.go's
// setupLogging, which points the standard logger at a lumberjack.Logger for
// rotation when running as a long-lived process.
package dltlog

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger receives diagnostic lines from the file adapter (dltfile.Parse):
// the start of a parse, the number of corruption markers found, and a failed
// parse. The supervisor and tasks do not log. Nil is valid and turns every
// call into a no-op.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// Default wraps the standard library's log package, matching the
// teacher's package-level common.Logf/Fatalf.
type Default struct {
	l *log.Logger
}

// NewDefault returns a Logger writing to w with standard flags plus
// microsecond precision, the same format logging.go uses.
func NewDefault(w io.Writer) *Default {
	if w == nil {
		w = os.Stderr
	}
	return &Default{l: log.New(w, "[dltrace] ", log.LstdFlags|log.Lmicroseconds)}
}

func (d *Default) Debugf(format string, args ...interface{}) { d.l.Printf("DEBUG "+format, args...) }
func (d *Default) Infof(format string, args ...interface{})  { d.l.Printf("INFO "+format, args...) }
func (d *Default) Warnf(format string, args ...interface{})  { d.l.Printf("WARN "+format, args...) }

// RotatingOptions configures log rotation for a long-lived embedding, the
// same knobs cmd/ch10d/main.go's logConfig exposes.
type RotatingOptions struct {
	Directory  string
	Filename   string
	MaxSizeMB  int
	MaxAgeDays int
	MaxBackups int
	Compress   bool
}

// NewRotating returns a Default logger that writes to both stdout and a
// lumberjack-rotated file, for embedding in a process that runs for a long
// time against many capture files.
func NewRotating(opts RotatingOptions) (*Default, error) {
	if err := os.MkdirAll(opts.Directory, 0o755); err != nil {
		return nil, err
	}
	filename := opts.Filename
	if filename == "" {
		filename = "dltrace.log"
	}
	rotator := &lumberjack.Logger{
		Filename:   opts.Directory + string(os.PathSeparator) + filename,
		MaxSize:    opts.MaxSizeMB,
		MaxAge:     opts.MaxAgeDays,
		MaxBackups: opts.MaxBackups,
		Compress:   opts.Compress,
	}
	return NewDefault(io.MultiWriter(os.Stdout, rotator)), nil
}

// noop implements Logger by discarding everything; used when a nil Logger
// is passed down to code that wants to call methods unconditionally rather
// than nil-check at every call site.
type noop struct{}

func (noop) Debugf(string, ...interface{}) {}
func (noop) Infof(string, ...interface{})  {}
func (noop) Warnf(string, ...interface{})  {}

// OrNoop returns l if non-nil, otherwise a Logger that discards everything.
func OrNoop(l Logger) Logger {
	if l == nil {
		return noop{}
	}
	return l
}
