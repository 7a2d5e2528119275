package dltreport

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuildManifestHashesAndClassifiesArtifacts(t *testing.T) {
	dir := t.TempDir()
	capture := filepath.Join(dir, "trace.dlt")
	report := filepath.Join(dir, "summary.PDF")
	other := filepath.Join(dir, "notes.txt")
	for _, f := range []string{capture, report, other} {
		if err := os.WriteFile(f, []byte("payload"), 0o644); err != nil {
			t.Fatalf("write %s: %v", f, err)
		}
	}

	m, err := BuildManifest([]string{capture, report, other})
	if err != nil {
		t.Fatalf("BuildManifest returned error: %v", err)
	}
	if m.ShaAlgo != "sha256" {
		t.Errorf("ShaAlgo = %q, want sha256", m.ShaAlgo)
	}
	if len(m.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(m.Items))
	}
	wantTypes := map[string]string{capture: "capture", report: "report", other: "other"}
	for _, item := range m.Items {
		if item.Type != wantTypes[item.Path] {
			t.Errorf("Items[%s].Type = %q, want %q", item.Path, item.Type, wantTypes[item.Path])
		}
		if item.Sha256 == "" {
			t.Errorf("Items[%s].Sha256 is empty", item.Path)
		}
		if item.Size != int64(len("payload")) {
			t.Errorf("Items[%s].Size = %d, want %d", item.Path, item.Size, len("payload"))
		}
	}
}

func TestBuildManifestMissingFileReturnsError(t *testing.T) {
	_, err := BuildManifest([]string{filepath.Join(t.TempDir(), "missing.dlt")})
	if err == nil {
		t.Fatal("expected error for a missing artifact")
	}
}

func TestSaveManifestWritesIndentedJSON(t *testing.T) {
	dir := t.TempDir()
	capture := filepath.Join(dir, "trace.dlt")
	if err := os.WriteFile(capture, []byte("x"), 0o644); err != nil {
		t.Fatalf("write capture: %v", err)
	}
	m, err := BuildManifest([]string{capture})
	if err != nil {
		t.Fatalf("BuildManifest returned error: %v", err)
	}

	out := filepath.Join(dir, "manifest.json")
	if err := SaveManifest(m, out); err != nil {
		t.Fatalf("SaveManifest returned error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("manifest file is empty")
	}
}
