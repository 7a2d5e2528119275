// Package dltarg formats the verbose-mode argument list of a DLT message:
// given a payload slice and an argument count, it produces the
// space-joined human-readable text spec.md §4.3 describes.
//
// The type-info bit layout it's cross-checked against comes from
// other_examples/bennyz-dlt-otel-receiver__parser.go's parseArgument, which
// this package generalizes: that parser bailed out to a hex dump on the
// first unsupported argument, where this one must raise a distinguishable
// ParseFailure so the record decoder can turn it into a corruption marker
// and resynchronize.
package dltarg

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"example.com/dltrace/internal/endian"
)

// Category bits of a type-info word.
const (
	catBOOL = 0x10
	catSINT = 0x20
	catUINT = 0x40
	catFLOA = 0x80
	catARAY = 0x100
	catSTRG = 0x200
	catRAWD = 0x400
	catVARI = 0x800
	catFIXP = 0x1000
	catTRAI = 0x2000
	catSTRU = 0x4000
)

const tyleMask = 0x0f

// Coding field (bits 15-17) of a type-info word.
const (
	codingMask  = 0x38000
	codingASCII = 0x00000
	codingUTF8  = 0x08000
	codingHEX   = 0x10000
	codingBIN   = 0x18000
)

// ParseFailure is returned for any unknown category, unknown tyle, or
// unsupported feature combination. The record decoder converts it into a
// corruption marker.
type ParseFailure struct {
	Msg string
}

func (e *ParseFailure) Error() string { return e.Msg }

func fail(format string, args ...interface{}) error {
	return &ParseFailure{Msg: fmt.Sprintf(format, args...)}
}

// Format decodes n verbose arguments from payload and returns the
// space-joined text, with no trailing space after the last argument. An
// empty result is returned when n == 0.
func Format(payload []byte, n int, big bool) (string, error) {
	if n == 0 {
		return "", nil
	}
	var parts []string
	cur := &endian.Cursor{Buf: payload}
	for i := 0; i < n; i++ {
		typeInfo, err := cur.ExtractUint32(big)
		if err != nil {
			return "", fail("truncated type info for argument %d: %v", i, err)
		}
		text, err := formatOne(typeInfo, cur, big)
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " "), nil
}

func formatOne(typeInfo uint32, cur *endian.Cursor, big bool) (string, error) {
	tyle := int(typeInfo & tyleMask)
	switch {
	case typeInfo&(catARAY|catFIXP|catTRAI|catSTRU) != 0,
		typeInfo&catVARI != 0 && typeInfo&catSTRG == 0:
		return "", fail("not supported yet")
	case typeInfo&catBOOL != 0:
		return formatBool(cur)
	case typeInfo&catSINT != 0:
		return formatInt(cur, tyle, big, true)
	case typeInfo&catUINT != 0:
		return formatUint(cur, tyle, big, typeInfo&codingMask)
	case typeInfo&catFLOA != 0:
		return formatFloat(cur, tyle, big)
	case typeInfo&catSTRG != 0:
		return formatString(cur, typeInfo, big)
	case typeInfo&catRAWD != 0:
		return formatRaw(cur, big)
	default:
		return "", fail("unknown argument category 0x%x", typeInfo)
	}
}

func formatBool(cur *endian.Cursor) (string, error) {
	b, err := cur.ExtractBytes(1)
	if err != nil {
		return "", fail("truncated bool: %v", err)
	}
	if b[0] != 0 {
		return "true", nil
	}
	return "false", nil
}

func formatInt(cur *endian.Cursor, tyle int, big, signed bool) (string, error) {
	switch tyle {
	case 1:
		b, err := cur.ExtractBytes(1)
		if err != nil {
			return "", fail("truncated int8: %v", err)
		}
		return strconv.FormatInt(int64(int8(b[0])), 10), nil
	case 2:
		v, err := cur.ExtractUint16(big)
		if err != nil {
			return "", fail("truncated int16: %v", err)
		}
		return strconv.FormatInt(int64(int16(v)), 10), nil
	case 3:
		v, err := cur.ExtractUint32(big)
		if err != nil {
			return "", fail("truncated int32: %v", err)
		}
		return strconv.FormatInt(int64(int32(v)), 10), nil
	case 4:
		v, err := cur.ExtractUint64(big)
		if err != nil {
			return "", fail("truncated int64: %v", err)
		}
		return strconv.FormatInt(int64(v), 10), nil
	default:
		return "", fail("unsupported signed integer tyle %d", tyle)
	}
}

func formatUint(cur *endian.Cursor, tyle int, big bool, coding uint32) (string, error) {
	var v uint64
	var err error
	switch tyle {
	case 1:
		var b []byte
		b, err = cur.ExtractBytes(1)
		if err == nil {
			v = uint64(b[0])
		}
	case 2:
		var u16 uint16
		u16, err = cur.ExtractUint16(big)
		v = uint64(u16)
	case 3:
		var u32 uint32
		u32, err = cur.ExtractUint32(big)
		v = uint64(u32)
	case 4:
		v, err = cur.ExtractUint64(big)
	default:
		return "", fail("unsupported unsigned integer tyle %d", tyle)
	}
	if err != nil {
		return "", fail("truncated uint%d: %v", tyle, err)
	}
	switch coding {
	case codingHEX:
		return "0x" + strconv.FormatUint(v, 16), nil
	case codingBIN:
		return "0b" + strconv.FormatUint(v, 2), nil
	default:
		return strconv.FormatUint(v, 10), nil
	}
}

func formatFloat(cur *endian.Cursor, tyle int, big bool) (string, error) {
	switch tyle {
	case 3:
		f, err := endian.Float32(mustBytes(cur, 4), big)
		if err != nil {
			return "", fail("truncated float32: %v", err)
		}
		cur.Pos += 4
		return strconv.FormatFloat(float64(f), 'g', -1, 32), nil
	case 4:
		f, err := endian.Float64(mustBytes(cur, 8), big)
		if err != nil {
			return "", fail("truncated float64: %v", err)
		}
		cur.Pos += 8
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	default:
		return "", fail("unsupported float tyle %d", tyle)
	}
}

// mustBytes peeks (without advancing) at up to n bytes for the float
// decoders above, which advance the cursor themselves after a successful
// decode so a short read leaves the cursor untouched.
func mustBytes(cur *endian.Cursor, n int) []byte {
	rem := cur.Buf[cur.Pos:]
	if len(rem) < n {
		return rem
	}
	return rem[:n]
}

func formatString(cur *endian.Cursor, typeInfo uint32, big bool) (string, error) {
	if typeInfo&catVARI != 0 {
		return "", fail("how could string be variable?")
	}
	coding := typeInfo & codingMask
	length, err := cur.ExtractUint16(big)
	if err != nil {
		return "", fail("truncated string length: %v", err)
	}
	if length == 0 {
		return "", fail("zero-length string")
	}
	raw, err := cur.ExtractBytes(int(length))
	if err != nil {
		return "", fail("truncated string content: %v", err)
	}
	switch coding {
	case codingASCII:
		if raw[length-1] != 0 {
			return "", fail("ascii string not NUL-terminated")
		}
		return string(raw[:length-1]), nil
	default:
		return "", fail("unsupported string coding 0x%x", coding)
	}
}

func formatRaw(cur *endian.Cursor, big bool) (string, error) {
	length, err := cur.ExtractUint16(big)
	if err != nil {
		return "", fail("truncated raw length: %v", err)
	}
	raw, err := cur.ExtractBytes(int(length))
	if err != nil {
		return "", fail("truncated raw content: %v", err)
	}
	return strings.ToUpper(hex.EncodeToString(raw)), nil
}
