package dltreport

import (
	"encoding/hex"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// hashToQR builds a QR code PNG whose payload is a "sha256:<hex>" URI-like
// string for the given capture file hash, rather than the bare hex digest:
// a scanner then knows what kind of hash it picked up without a caption.
// Unlike a permissive character filter, a hash that isn't valid hex is
// rejected outright rather than silently stripped down to whatever hex
// characters happen to remain in it.
func hashToQR(hash string, size int) ([]byte, error) {
	raw, err := decodeHexHash(hash)
	if err != nil {
		return nil, fmt.Errorf("dltreport: %w", err)
	}
	if size <= 0 {
		size = 128
	}
	payload := "sha256:" + hex.EncodeToString(raw)
	qr, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return qr.PNG(size)
}

func decodeHexHash(hash string) ([]byte, error) {
	trimmed := strings.TrimSpace(hash)
	if trimmed == "" {
		return nil, fmt.Errorf("hash is empty")
	}
	raw, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("hash %q is not valid hex: %w", trimmed, err)
	}
	return raw, nil
}
