package record

import (
	"os"
	"path/filepath"
	"testing"

	"example.com/dltrace/internal/bytesource"
)

func viewOverBytes(t *testing.T, data []byte) *bytesource.View {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.dlt")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	b, err := bytesource.OpenPrecached(path)
	if err != nil {
		t.Fatalf("OpenPrecached: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return bytesource.NewView(b)
}

// TestDecodeOneNonVerboseWithExtendedHeader is a self-consistent analog of
// the non-verbose-with-extended-header scenario: same field shape (WEID,
// WTMS, UEH, non-verbose payload) but with a msin whose VERB bit is
// actually clear, since the bit-layout rules (not a specific worked hex
// value) are the authoritative definition of VERB/MSTP/MTIN. MSBF is clear,
// so the message id 0xDEADBEEF is written in little-endian byte order.
func TestDecodeOneNonVerboseWithExtendedHeader(t *testing.T) {
	rb := recordBuilder{
		storageEcu:     "ECU1",
		secs:           1,
		micros:         0,
		htyp:           tHtypUEH | tHtypWEID | tHtypWTMS,
		mcnt:           0,
		extraEcu:       "ECU1",
		timestampExtra: 4096,
		msin:           buildMsin(false, TypeLog, 4),
		noar:           0,
		apid:           "APP1",
		ctid:           "CTX1",
		payload:        []byte{0xEF, 0xBE, 0xAD, 0xDE},
	}
	v := viewOverBytes(t, rb.build())

	rec, err := DecodeOne(v)
	if err != nil {
		t.Fatalf("DecodeOne returned error: %v", err)
	}
	if rec.Corrupted {
		t.Fatalf("got corrupted record: %s", rec.CorruptionCause)
	}
	if rec.Message != "[3735928559]" {
		t.Fatalf("Message = %q, want %q", rec.Message, "[3735928559]")
	}
	if rec.Apid != "APP1" || rec.Ctid != "CTX1" {
		t.Fatalf("Apid/Ctid = %q/%q, want APP1/CTX1", rec.Apid, rec.Ctid)
	}
	if rec.Ecu() != "ECU1" {
		t.Fatalf("Ecu() = %q, want ECU1", rec.Ecu())
	}
	if rec.MsgType != TypeLog {
		t.Fatalf("MsgType = %d, want %d", rec.MsgType, TypeLog)
	}
	if rec.MsgSubtype != 4 {
		t.Fatalf("MsgSubtype = %d, want 4", rec.MsgSubtype)
	}
	if rec.TimestampExtra != 4096 {
		t.Fatalf("TimestampExtra = %d, want 4096", rec.TimestampExtra)
	}
	if rec.Verbose {
		t.Fatal("Verbose = true, want false")
	}
}

func TestDecodeOneVerboseUint32Decimal(t *testing.T) {
	rb := recordBuilder{
		storageEcu: "ECU1",
		htyp:       tHtypUEH,
		msin:       buildMsin(true, TypeLog, 0),
		noar:       1,
		apid:       "APP1",
		ctid:       "CTX1",
		payload:    append([]byte{0x43, 0x00, 0x00, 0x00}, 0x2A, 0x00, 0x00, 0x00),
	}
	v := viewOverBytes(t, rb.build())

	rec, err := DecodeOne(v)
	if err != nil {
		t.Fatalf("DecodeOne returned error: %v", err)
	}
	if rec.Message != "42" {
		t.Fatalf("Message = %q, want %q", rec.Message, "42")
	}
}

func TestDecodeOneVerboseAsciiString(t *testing.T) {
	rb := recordBuilder{
		storageEcu: "ECU1",
		htyp:       tHtypUEH,
		msin:       buildMsin(true, TypeLog, 0),
		noar:       1,
		apid:       "APP1",
		ctid:       "CTX1",
		payload:    append([]byte{0x00, 0x02, 0x00, 0x00}, 0x03, 0x00, 0x68, 0x69, 0x00),
	}
	v := viewOverBytes(t, rb.build())

	rec, err := DecodeOne(v)
	if err != nil {
		t.Fatalf("DecodeOne returned error: %v", err)
	}
	if rec.Message != "hi" {
		t.Fatalf("Message = %q, want %q", rec.Message, "hi")
	}
}

func TestDecodeOneControlGetSoftwareVersion(t *testing.T) {
	payload := []byte{0x13, 0x00, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00, 'v', '1', '2'}
	rb := recordBuilder{
		storageEcu: "ECU1",
		htyp:       tHtypUEH,
		msin:       buildMsin(false, TypeControl, controlResponse),
		noar:       0,
		apid:       "APP1",
		ctid:       "CTX1",
		payload:    payload,
	}
	v := viewOverBytes(t, rb.build())

	rec, err := DecodeOne(v)
	if err != nil {
		t.Fatalf("DecodeOne returned error: %v", err)
	}
	if rec.Message != "[get_software_version ok] v12" {
		t.Fatalf("Message = %q, want %q", rec.Message, "[get_software_version ok] v12")
	}
}

func TestDecodeOneControlConnectionInfo(t *testing.T) {
	payload := append([]byte{0x02, 0x0F, 0x00, 0x00, 0x00, 0x02}, id4("ECU1")...)
	rb := recordBuilder{
		storageEcu: "ECU1",
		htyp:       tHtypUEH,
		msin:       buildMsin(false, TypeControl, controlResponse),
		noar:       0,
		apid:       "APP1",
		ctid:       "CTX1",
		payload:    payload,
	}
	v := viewOverBytes(t, rb.build())

	rec, err := DecodeOne(v)
	if err != nil {
		t.Fatalf("DecodeOne returned error: %v", err)
	}
	if rec.Message != "[connection_info ok] connected ECU1" {
		t.Fatalf("Message = %q, want %q", rec.Message, "[connection_info ok] connected ECU1")
	}
}

func TestDecodeOneBadMagicFails(t *testing.T) {
	v := viewOverBytes(t, []byte{'X', 'X', 'X', 'X', 0, 0, 0, 0})
	_, err := DecodeOne(v)
	if err == nil {
		t.Fatal("expected error for bad storage header magic")
	}
	if _, ok := err.(*ParseFailure); !ok {
		t.Fatalf("expected *ParseFailure, got %T", err)
	}
}

func TestDecodeOneWireLenShorterThanHeadersFails(t *testing.T) {
	data := []byte{'D', 'L', 'T', 0x01, 0, 0, 0, 0, 0, 0, 0, 0, 'E', 'C', 'U', '1', 0x00, 0x00, 0x00, 0x01}
	v := viewOverBytes(t, data)
	_, err := DecodeOne(v)
	if err == nil {
		t.Fatal("expected error for a declared length shorter than headers consumed")
	}
}

func TestDecodeOneTruncatedMidRecord(t *testing.T) {
	rb := recordBuilder{
		storageEcu: "ECU1",
		htyp:       0,
		payload:    []byte{0, 0, 0, 1},
	}
	full := rb.build()
	v := viewOverBytes(t, full[:len(full)-2]) // chop off part of the payload
	_, err := DecodeOne(v)
	if err == nil {
		t.Fatal("expected error for a truncated record")
	}
}
