package dltconfig

import (
	"os"
	"path/filepath"
	"testing"

	"example.com/dltrace/internal/bytesource"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDecodesAllFields(t *testing.T) {
	path := writeConfigFile(t, `
splitFactor: 8
chunkFenceLegacy: true
report:
  outputPath: out.pdf
  embedQR: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SplitFactor != 8 {
		t.Errorf("SplitFactor = %d, want 8", cfg.SplitFactor)
	}
	if !cfg.ChunkFenceLegacy {
		t.Error("ChunkFenceLegacy = false, want true")
	}
	if cfg.Report.OutputPath != "out.pdf" || !cfg.Report.EmbedQR {
		t.Errorf("Report = %+v, want {out.pdf true}", cfg.Report)
	}
}

func TestLoadMissingFieldsStayZero(t *testing.T) {
	path := writeConfigFile(t, `splitFactor: 4`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SplitFactor != 4 {
		t.Errorf("SplitFactor = %d, want 4", cfg.SplitFactor)
	}
	if cfg.ChunkFenceLegacy {
		t.Error("ChunkFenceLegacy = true, want false (default)")
	}
	if cfg.Report.OutputPath != "" {
		t.Errorf("Report.OutputPath = %q, want empty", cfg.Report.OutputPath)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for a missing config file")
	}
}

func TestLoadInvalidYamlReturnsError(t *testing.T) {
	path := writeConfigFile(t, "not: [valid: yaml")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestDefaultIsZeroValue(t *testing.T) {
	cfg := Default()
	if cfg != (Config{}) {
		t.Errorf("Default() = %+v, want zero value", cfg)
	}
}

func TestChunkFencePolicyTranslation(t *testing.T) {
	if got := (Config{ChunkFenceLegacy: true}).ChunkFencePolicy(); got != bytesource.ChunkFenceLegacy {
		t.Errorf("legacy policy = %v, want ChunkFenceLegacy", got)
	}
	if got := (Config{}).ChunkFencePolicy(); got != bytesource.ChunkFenceCorrected {
		t.Errorf("default policy = %v, want ChunkFenceCorrected", got)
	}
}
