package dltreport

import "testing"

func TestDecodeHexHashTrimsWhitespace(t *testing.T) {
	raw, err := decodeHexHash("  deadbeef  ")
	if err != nil {
		t.Fatalf("decodeHexHash returned error: %v", err)
	}
	if len(raw) != 4 {
		t.Fatalf("len(raw) = %d, want 4", len(raw))
	}
}

func TestDecodeHexHashRejectsEmpty(t *testing.T) {
	if _, err := decodeHexHash("   "); err == nil {
		t.Fatal("expected error for an empty hash")
	}
}

func TestDecodeHexHashRejectsNonHex(t *testing.T) {
	if _, err := decodeHexHash("not-hex-at-all"); err == nil {
		t.Fatal("expected error for a non-hex hash")
	}
}

func TestHashToQRRejectsEmptyHash(t *testing.T) {
	if _, err := hashToQR("   ", 128); err == nil {
		t.Fatal("expected error for an empty hash")
	}
}

func TestHashToQRRejectsInvalidHex(t *testing.T) {
	if _, err := hashToQR("zz", 128); err == nil {
		t.Fatal("expected error for a non-hex hash")
	}
}

func TestHashToQRProducesPNGBytes(t *testing.T) {
	png, err := hashToQR("deadbeef", 0)
	if err != nil {
		t.Fatalf("hashToQR returned error: %v", err)
	}
	if len(png) < 8 {
		t.Fatal("expected non-trivial PNG payload")
	}
	// PNG magic bytes.
	sig := []byte{0x89, 'P', 'N', 'G'}
	for i, b := range sig {
		if png[i] != b {
			t.Fatalf("output is not a PNG, byte %d = %x, want %x", i, png[i], b)
		}
	}
}
