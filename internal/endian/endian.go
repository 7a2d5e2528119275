// Package endian reads typed integers and floats out of a byte slice at a
// given cursor position, optionally byte-swapped. The host is assumed
// little-endian; see host_little.go/host_big.go.
package endian

import (
	"encoding/binary"
	"fmt"
	"math"
)

func init() {
	if !HostLittleEndian {
		panic("dltrace: big-endian host not supported")
	}
}

// ErrShort is returned when fewer bytes remain than the requested width.
type ErrShort struct {
	Want, Have int
}

func (e *ErrShort) Error() string {
	return fmt.Sprintf("endian: need %d bytes, have %d", e.Want, e.Have)
}

// Uint8 reads a single byte. Present for symmetry with the wider readers.
func Uint8(b []byte) (uint8, error) {
	if len(b) < 1 {
		return 0, &ErrShort{1, len(b)}
	}
	return b[0], nil
}

// Uint16 reads a 16-bit unsigned integer, swapping if big is true.
func Uint16(b []byte, big bool) (uint16, error) {
	if len(b) < 2 {
		return 0, &ErrShort{2, len(b)}
	}
	if big {
		return binary.BigEndian.Uint16(b), nil
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Uint32 reads a 32-bit unsigned integer, swapping if big is true.
func Uint32(b []byte, big bool) (uint32, error) {
	if len(b) < 4 {
		return 0, &ErrShort{4, len(b)}
	}
	if big {
		return binary.BigEndian.Uint32(b), nil
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Uint64 reads a 64-bit unsigned integer, swapping if big is true.
func Uint64(b []byte, big bool) (uint64, error) {
	if len(b) < 8 {
		return 0, &ErrShort{8, len(b)}
	}
	if big {
		return binary.BigEndian.Uint64(b), nil
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Int8/Int16/Int32/Int64 reinterpret the same-width unsigned read as a
// two's-complement signed value.

func Int8(b []byte) (int8, error) {
	v, err := Uint8(b)
	return int8(v), err
}

func Int16(b []byte, big bool) (int16, error) {
	v, err := Uint16(b, big)
	return int16(v), err
}

func Int32(b []byte, big bool) (int32, error) {
	v, err := Uint32(b, big)
	return int32(v), err
}

func Int64(b []byte, big bool) (int64, error) {
	v, err := Uint64(b, big)
	return int64(v), err
}

// Float32 reads an IEEE-754 single-precision float.
func Float32(b []byte, big bool) (float32, error) {
	v, err := Uint32(b, big)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// Float64 reads an IEEE-754 double-precision float.
func Float64(b []byte, big bool) (float64, error) {
	v, err := Uint64(b, big)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// Bool reads a single byte as a boolean: zero is false, anything else true.
func Bool(b []byte) (bool, error) {
	v, err := Uint8(b)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// Cursor is a read-only byte slice with a moving read position, used by the
// extract* helpers below when the caller wants the cursor advanced for it
// rather than tracking the width itself.
type Cursor struct {
	Buf []byte
	Pos int
}

func (c *Cursor) remaining() []byte {
	if c.Pos >= len(c.Buf) {
		return nil
	}
	return c.Buf[c.Pos:]
}

// ExtractUint16 reads and advances past a 16-bit unsigned integer.
func (c *Cursor) ExtractUint16(big bool) (uint16, error) {
	v, err := Uint16(c.remaining(), big)
	if err != nil {
		return 0, err
	}
	c.Pos += 2
	return v, nil
}

// ExtractUint32 reads and advances past a 32-bit unsigned integer.
func (c *Cursor) ExtractUint32(big bool) (uint32, error) {
	v, err := Uint32(c.remaining(), big)
	if err != nil {
		return 0, err
	}
	c.Pos += 4
	return v, nil
}

// ExtractUint64 reads and advances past a 64-bit unsigned integer.
func (c *Cursor) ExtractUint64(big bool) (uint64, error) {
	v, err := Uint64(c.remaining(), big)
	if err != nil {
		return 0, err
	}
	c.Pos += 8
	return v, nil
}

// ExtractBytes reads and advances past n raw bytes.
func (c *Cursor) ExtractBytes(n int) ([]byte, error) {
	rem := c.remaining()
	if len(rem) < n {
		return nil, &ErrShort{n, len(rem)}
	}
	out := rem[:n]
	c.Pos += n
	return out, nil
}
