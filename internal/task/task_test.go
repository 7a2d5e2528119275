package task

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"example.com/dltrace/internal/bytesource"
)

// buildMinimalRecord assembles a bare non-verbose record (no extras, no
// extended header) carrying a 4-byte non-verbose message id as its
// payload.
func buildMinimalRecord(msgID uint32) []byte {
	var out []byte
	out = append(out, 'D', 'L', 'T', 0x01)
	out = append(out, 0, 0, 0, 0) // seconds
	out = append(out, 0, 0, 0, 0) // micros
	out = append(out, 'E', 'C', 'U', '1')
	std := make([]byte, 4)
	std[0] = 0 // htyp
	std[1] = 0 // mcnt
	binary.BigEndian.PutUint16(std[2:4], 8) // 4 header bytes + 4 payload bytes
	out = append(out, std...)
	payload := make([]byte, 4)
	binary.LittleEndian.PutUint32(payload, msgID)
	out = append(out, payload...)
	return out
}

func viewOverBytes(t *testing.T, data []byte) (*bytesource.View, *bytesource.Backing) {
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
	return bytesource.NewView(b), b
}

func TestExecuteDecodesTwoGoodRecords(t *testing.T) {
	data := append(buildMinimalRecord(1), buildMinimalRecord(2)...)
	v, _ := viewOverBytes(t, data)
	tsk := New(v, nil)

	if err := tsk.Execute(context.Background()); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(tsk.Records) != 2 {
		t.Fatalf("len(Records) = %d, want 2", len(tsk.Records))
	}
	if tsk.Records[0].Corrupted || tsk.Records[1].Corrupted {
		t.Fatal("expected both records to be clean")
	}
	if tsk.Records[0].Message != "[1]" || tsk.Records[1].Message != "[2]" {
		t.Fatalf("Messages = %q, %q, want [1], [2]", tsk.Records[0].Message, tsk.Records[1].Message)
	}
}

func TestExecuteResyncsPastSingleGarbageByte(t *testing.T) {
	good1 := buildMinimalRecord(1)
	good2 := buildMinimalRecord(2)
	data := append(append(good1, 0xFF), good2...)
	v, _ := viewOverBytes(t, data)
	tsk := New(v, nil)

	if err := tsk.Execute(context.Background()); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(tsk.Records) != 3 {
		t.Fatalf("len(Records) = %d, want 3 (good, corruption marker, good)", len(tsk.Records))
	}
	if tsk.Records[0].Corrupted || tsk.Records[2].Corrupted {
		t.Fatal("good records must not be marked corrupted")
	}
	if !tsk.Records[1].Corrupted {
		t.Fatal("expected a corruption marker between the two good records")
	}
	if tsk.Records[0].Message != "[1]" || tsk.Records[2].Message != "[2]" {
		t.Fatalf("good records' fields were affected by the resync: %q, %q", tsk.Records[0].Message, tsk.Records[2].Message)
	}
}

func TestExecuteCollapsesAdjacentCorruptionMarkers(t *testing.T) {
	data := append([]byte{0xFF, 0xFF, 0xFF}, buildMinimalRecord(1)...)
	v, _ := viewOverBytes(t, data)
	tsk := New(v, nil)

	if err := tsk.Execute(context.Background()); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(tsk.Records) != 2 {
		t.Fatalf("len(Records) = %d, want 2 (one collapsed marker, one good record)", len(tsk.Records))
	}
	if !tsk.Records[0].Corrupted {
		t.Fatal("expected the first record to be a single collapsed corruption marker")
	}
}

func TestExecuteStopsOnChunkOverrun(t *testing.T) {
	data := append(buildMinimalRecord(1), buildMinimalRecord(2)...)
	path := filepath.Join(t.TempDir(), "fixture.dlt")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	b, err := bytesource.OpenPrecached(path)
	if err != nil {
		t.Fatalf("OpenPrecached: %v", err)
	}
	defer b.Close()

	views, err := bytesource.Split(b, 2, bytesource.ChunkFenceCorrected)
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	tsk := New(views[0], nil)
	if err := tsk.Execute(context.Background()); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if views[0].Overrun() == 0 {
		t.Fatal("expected the first view's chunk fence to be crossed while decoding record 2")
	}
	if len(tsk.Records) != 2 {
		t.Fatalf("len(Records) = %d, want 2: the task should still finish the record it overran on", len(tsk.Records))
	}
}

func TestExecuteStopsOnCancellation(t *testing.T) {
	data := append(buildMinimalRecord(1), buildMinimalRecord(2)...)
	v, _ := viewOverBytes(t, data)
	tsk := New(v, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := tsk.Execute(ctx); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(tsk.Records) != 0 {
		t.Fatalf("len(Records) = %d, want 0: an already-canceled context should decode nothing", len(tsk.Records))
	}
}
