package dltfile

import "example.com/dltrace/internal/record"

// Record is the public, read-only view of one decoded DLT message or
// corruption marker.
type Record struct {
	r record.Record
}

// IsCorrupted reports whether this entry is a corruption marker standing
// in for a run of unparseable bytes, rather than a successfully decoded
// message.
func (r Record) IsCorrupted() bool { return r.r.Corrupted }

// CorruptionCause returns the diagnostic text explaining why this entry is
// a corruption marker. Empty for a successfully decoded message.
func (r Record) CorruptionCause() string { return r.r.CorruptionCause }

// Message returns the formatted payload text: the space-joined verbose
// argument list, the control-message summary, or the non-verbose message
// id in bracket notation. Empty for a corruption marker.
func (r Record) Message() string { return r.r.Message }

// Apid returns the trimmed 4-character application id, or "" if this
// message has no extended header.
func (r Record) Apid() string { return r.r.Apid }

// Ctid returns the trimmed 4-character context id, or "" if this message
// has no extended header.
func (r Record) Ctid() string { return r.r.Ctid }

// Timestamp returns microseconds since the UNIX epoch, derived from the
// storage header.
func (r Record) Timestamp() int64 { return r.r.Timestamp() }

// TimestampExtra returns the standard header's optional timestamp field
// (100us ticks since ECU startup), or 0 if not present.
func (r Record) TimestampExtra() uint32 { return r.r.TimestampExtra }

// SessionID returns the standard header's optional session id, or 0 if
// not present.
func (r Record) SessionID() uint32 { return r.r.SessionID }

// Counter returns the standard header's message counter (MCNT).
func (r Record) Counter() uint8 { return r.r.Counter }

// Type returns the extended header's message type (MSTP), or 0 if this
// message has no extended header.
func (r Record) Type() uint8 { return r.r.MsgType }

// Subtype returns the extended header's message type info (MTIN), or 0 if
// this message has no extended header.
func (r Record) Subtype() uint8 { return r.r.MsgSubtype }

// Ecu returns the message's ECU id: the extra header's WEID field when
// present, otherwise the storage header's id.
func (r Record) Ecu() string { return r.r.Ecu() }

// IsVerbose reports whether this message used the verbose argument
// encoding. False for control and non-verbose messages.
func (r Record) IsVerbose() bool { return r.r.Verbose }

// StartOffset returns the absolute byte offset this record began at.
func (r Record) StartOffset() int64 { return r.r.StartOffset }
