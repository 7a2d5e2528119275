package dltreport

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// bytesReader adapts a PNG byte slice to the io.Reader gofpdf's image
// registration expects.
func bytesReader(b []byte) io.Reader { return bytes.NewReader(b) }

// sha256OfFile hashes the full content of the file at path, adapted from
// the teacher's internal/common/files.go Sha256OfFile for use as the QR
// code payload below.
func sha256OfFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
