// Package bytesource implements the seekable byte-stream abstraction that
// chunk views are carved out of: a pre-cached in-memory buffer or a
// memory-mapped file, both exposing the same read/seek/split contract.
//
// This is adapted from the teacher's internal/ch10/parser.go blockSource,
// which served the same role (a ReadAt-style backing store a Reader walks
// sequentially with resync) but only ever cached one sliding block. Here the
// whole file is held at once — by a plain buffer or by the kernel's page
// cache via mmap — since views must be split up front and handed to
// independent goroutines.
package bytesource

import (
	"errors"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// ErrEOF is returned when a read or notify crosses the end of the backing
// bytes. It is the spec's "EOF" error kind: a normal terminal condition.
var ErrEOF = errors.New("bytesource: eof")

// OverrunEOF is the sentinel stored in View.Overrun when a read ran past the
// end of the file (as opposed to past the chunk fence but still inside the
// file).
const OverrunEOF = int64(-1)

// TruncatedError is the spec's "Truncated" error kind: a read asked for more
// bytes than remain before the end of the file, i.e. the file ends mid
// record. It wraps ErrEOF so callers that only check for EOF still see it,
// while errors.As lets the per-record recovery loop tell it apart from a
// clean end-of-file and from a resynchronizable ParseFailure.
type TruncatedError struct {
	Pos, Want, Len int64
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("file ended with incomplete record (pos %d, wanted %d, len %d)", e.Pos, e.Want, e.Len)
}

func (e *TruncatedError) Unwrap() error { return ErrEOF }

// Backing holds the full byte content of a capture file, shared read-only
// across every View split from it. It is released once, when the last view
// that depends on it is done (Close).
type Backing struct {
	data  []byte
	mm    mmap.MMap
	f     *os.File
}

// Len returns the total number of bytes in the backing store.
func (b *Backing) Len() int64 { return int64(len(b.data)) }

// Bytes returns the full backing slice. Callers must not mutate it.
func (b *Backing) Bytes() []byte { return b.data }

// Close releases the backing bytes: unmaps the mapping (if memory-mapped)
// and closes the underlying file handle.
func (b *Backing) Close() error {
	var err error
	if b.mm != nil {
		err = b.mm.Unmap()
		b.mm = nil
	}
	if b.f != nil {
		if cerr := b.f.Close(); err == nil {
			err = cerr
		}
		b.f = nil
	}
	b.data = nil
	return err
}

// OpenPrecached reads the whole file into memory at construction. This is
// the default implementation: simple, and fast for files that fit in RAM.
func OpenPrecached(path string) (*Backing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, info.Size())
	if _, err := readFull(f, buf); err != nil {
		return nil, err
	}
	return &Backing{data: buf}, nil
}

func readFull(f *os.File, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := f.ReadAt(buf[total:], int64(total))
		total += n
		if err != nil {
			if total == len(buf) {
				return total, nil
			}
			return total, err
		}
	}
	return total, nil
}

// OpenMmap memory-maps the file read-only; the mapping owns the bytes and is
// released on Close. Use for capture files too large to comfortably
// duplicate into a heap buffer.
func OpenMmap(path string) (*Backing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.Size() == 0 {
		// mmap of a zero-length file fails on most platforms; an empty
		// precached buffer behaves identically for an empty capture.
		f.Close()
		return &Backing{data: []byte{}}, nil
	}
	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Backing{data: []byte(mm), mm: mm, f: f}, nil
}
