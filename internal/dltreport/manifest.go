package dltreport

import (
	"encoding/json"
	"os"
	"strings"
	"time"
)

// ManifestItem describes one artifact a decode run produced or consumed,
// identified by its SHA-256.
type ManifestItem struct {
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	Sha256 string `json:"sha256"`
	Type   string `json:"type"`
}

// Manifest lists every artifact (capture file, PDF report, audit log)
// belonging to one decode run, adapted from the teacher's root-level
// manifest.go Build/Save for vendor profile manifests. Here the item types
// classify DLT run artifacts instead of Chapter 10 acceptance bundles.
type Manifest struct {
	CreatedAt time.Time      `json:"createdAt"`
	ShaAlgo   string         `json:"shaAlgo"`
	Items     []ManifestItem `json:"items"`
}

// BuildManifest hashes every path and classifies it by extension.
func BuildManifest(paths []string) (Manifest, error) {
	m := Manifest{CreatedAt: time.Now().UTC(), ShaAlgo: "sha256"}
	for _, p := range paths {
		hash, err := sha256OfFile(p)
		if err != nil {
			return m, err
		}
		info, err := os.Stat(p)
		if err != nil {
			return m, err
		}
		m.Items = append(m.Items, ManifestItem{
			Path:   p,
			Size:   info.Size(),
			Sha256: hash,
			Type:   artifactType(p),
		})
	}
	return m, nil
}

func artifactType(path string) string {
	switch {
	case hasExt(path, ".dlt"):
		return "capture"
	case hasExt(path, ".pdf"):
		return "report"
	case hasExt(path, ".jsonl"):
		return "audit"
	case hasExt(path, ".json"):
		return "json"
	default:
		return "other"
	}
}

func hasExt(path string, exts ...string) bool {
	lower := strings.ToLower(path)
	for _, e := range exts {
		if strings.HasSuffix(lower, e) {
			return true
		}
	}
	return false
}

// SaveManifest writes m as indented JSON to out.
func SaveManifest(m Manifest, out string) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(out, b, 0o644)
}
