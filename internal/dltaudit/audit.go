// Package dltaudit maintains an append-only JSONL audit trail of
// corruption markers encountered while decoding a capture file, so an
// operator can review where and why a file required resynchronization
// without re-running the decoder.
//
// Adapted from the teacher's internal/common/patchlog.go PatchLog, which
// kept the same kind of append-only JSONL trail for in-place Chapter 10
// byte patches; here the entries describe a byte-slide resync instead of a
// patch, and BeforeHex/AfterHex are dropped since a corruption marker
// doesn't rewrite any bytes.
package dltaudit

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"example.com/dltrace/dltfile"
)

// Entry captures one corruption marker for the audit trail.
type Entry struct {
	Offset int64     `json:"offset"`
	Cause  string    `json:"cause"`
	Ts     time.Time `json:"ts"`
}

// Log provides append-only access to a JSONL audit file.
type Log struct {
	path string
	mu   sync.Mutex
}

// New returns a Log that writes to path.
func New(path string) *Log {
	return &Log{path: path}
}

// Path returns the backing file path.
func (l *Log) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Append writes one entry to the audit log.
func (l *Log) Append(entry Entry) error {
	if l == nil {
		return errors.New("dltaudit: nil log")
	}
	if entry.Ts.IsZero() {
		entry.Ts = time.Now().UTC()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	dir := filepath.Dir(l.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return err
	}
	return f.Sync()
}

// RecordFile appends one Entry per corruption marker found in f.
func (l *Log) RecordFile(f *dltfile.File) error {
	for i := 0; i < f.RecordsNum(); i++ {
		rec, ok := f.GetRecord(i)
		if !ok || !rec.IsCorrupted() {
			continue
		}
		if err := l.Append(Entry{Offset: rec.StartOffset(), Cause: rec.CorruptionCause()}); err != nil {
			return fmt.Errorf("dltaudit: append offset %d: %w", rec.StartOffset(), err)
		}
	}
	return nil
}

// ReadLog loads every entry from the JSONL file at path.
func ReadLog(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	var entries []Entry
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, fmt.Errorf("dltaudit: decode entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
