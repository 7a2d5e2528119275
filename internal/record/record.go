// Package record decodes one DLT message at a time from a byte view:
// storage header, standard header, optional extra fields, optional extended
// header, and payload, then formats the message text for the verbose,
// control, and non-verbose branches.
//
// The per-record shape (storage header -> standard header -> extras ->
// extended header -> payload) mirrors the teacher's primary-header parse in
// internal/ch10/parser.go, and the control-message service/return-code
// tables are cross-checked against
// other_examples/bennyz-dlt-otel-receiver__parser.go.
package record

import "strings"

// Record is one decoded DLT message, or a corruption marker standing in for
// a run of unparseable bytes.
type Record struct {
	StorageEcu     string
	StorageSeconds uint32
	StorageMicros  uint32

	Htyp    uint8
	Counter uint8
	WireLen uint16

	HasExtraEcu       bool
	ExtraEcu          string
	HasSessionID      bool
	SessionID         uint32
	HasTimestampExtra bool
	TimestampExtra    uint32

	HasExtendedHeader bool
	Msin              uint8
	Noar              uint8
	Apid              string
	Ctid              string

	BigEndian  bool
	Verbose    bool
	MsgType    uint8
	MsgSubtype uint8

	Message string

	Corrupted       bool
	CorruptionCause string

	// StartOffset is the absolute byte offset this record (or corruption
	// run) began at, for boundary reconciliation and tests.
	StartOffset int64
	// BytesConsumed is how many bytes were read to produce this record.
	// For a corruption marker it is always 1 (the byte-slide width).
	BytesConsumed int64
}

// Ecu returns the extra-header ECU id when present (WEID), falling back to
// the storage header's ECU id otherwise.
func (r Record) Ecu() string {
	if r.HasExtraEcu {
		return r.ExtraEcu
	}
	return r.StorageEcu
}

// Timestamp returns microseconds since the UNIX epoch, derived from the
// storage header's seconds and microseconds fields.
func (r Record) Timestamp() int64 {
	return int64(r.StorageSeconds)*1_000_000 + int64(r.StorageMicros)
}

// trimID4 trims a 4-byte (or shorter) ASCII identifier at the first zero
// byte from the right, per spec.md's ID4 surface rule.
func trimID4(b []byte) string {
	s := string(b)
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return s
}

// htyp flag bits (standard header type byte).
const (
	htypUEH  = 0x01
	htypMSBF = 0x02
	htypWEID = 0x04
	htypWSID = 0x08
	htypWTMS = 0x10
)

// msin bit layout (extended header info byte).
const (
	msinVERB     = 0x01
	msinMSTPMask = 0x0e
	msinMSTPShift = 1
	msinMTINMask = 0xf0
	msinMTINShift = 4
)

// Message types (MSTP).
const (
	TypeLog      = 0
	TypeAppTrace = 1
	TypeNwTrace  = 2
	TypeControl  = 3
)

// NewCorruptionMarker builds a placeholder record standing in for one or
// more unparseable bytes starting at startOffset, carrying cause as the
// parser's diagnostic text.
func NewCorruptionMarker(startOffset int64, cause string) Record {
	return Record{
		Corrupted:       true,
		CorruptionCause: cause,
		StartOffset:     startOffset,
		BytesConsumed:   1,
	}
}
