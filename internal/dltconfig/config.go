// Package dltconfig loads the YAML-tunable knobs a DLT decode run can
// override: split factor, chunk-fence policy, and report options.
//
// Grounded on cmd/ch10d/main.go's loadConfig: decode into a struct with
// yaml.v3 (as ccollicutt-negalog's pkg/config does). Load leaves zero-valued
// fields as they are; the consumers of a Config treat zero as "use the
// default".
package dltconfig

import (
	"os"

	"gopkg.in/yaml.v3"

	"example.com/dltrace/internal/bytesource"
)

// ReportConfig controls the optional PDF/QR summary report.
type ReportConfig struct {
	OutputPath string `yaml:"outputPath"`
	EmbedQR    bool   `yaml:"embedQR"`
}

// Config is the decode run's tunable knobs. All fields are optional; a zero
// value selects the default (NumCPU split factor, corrected fence policy,
// no report).
type Config struct {
	SplitFactor      int          `yaml:"splitFactor"`
	ChunkFenceLegacy bool         `yaml:"chunkFenceLegacy"`
	Report           ReportConfig `yaml:"report"`
}

// ChunkFencePolicy translates the YAML boolean into the bytesource enum.
func (c Config) ChunkFencePolicy() bytesource.ChunkFencePolicy {
	if c.ChunkFenceLegacy {
		return bytesource.ChunkFenceLegacy
	}
	return bytesource.ChunkFenceCorrected
}

// Default returns the zero-value config, which already means "use
// defaults everywhere" (0 split factor -> NumCPU, corrected fence policy).
func Default() Config {
	return Config{}
}

// Load reads and decodes a YAML config document. A missing SplitFactor (0)
// or an absent report section are left as zero values; callers apply
// defaults via Options, exactly as loadConfig does in the teacher's daemon.
func Load(path string) (Config, error) {
	var cfg Config
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
