package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"jpg2mask/internal/imageio"
)

// Config holds input/output locations and conversion settings.
type Config struct {
	// Paths
	InputDir  string `json:"input_dir" yaml:"input_dir"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Naming
	Extensions []string `json:"extensions" yaml:"extensions"` // input extensions, matched case-insensitively
	Suffix     string   `json:"suffix" yaml:"suffix"`
	OutputExt  string   `json:"output_ext" yaml:"output_ext"`

	// Output settings
	Compression string `json:"compression" yaml:"compression"`
	Preview     bool   `json:"preview" yaml:"preview"`   // also write a colorized WebP
	Manifest    bool   `json:"manifest" yaml:"manifest"` // write manifest.json after the run

	// FailFast stops the batch at the first failed file. The default is to
	// log the failure and continue.
	FailFast bool `json:"fail_fast" yaml:"fail_fast"`
}

// Load reads a JSON or YAML config file, chosen by extension.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	InputDir    string
	OutputDir   string
	Compression string
	Preview     bool
	Manifest    bool
	FailFast    bool
}

// Resolve applies flag overrides and fills empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) error {
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Compression != "" {
		c.Compression = flags.Compression
	}
	c.Preview = c.Preview || flags.Preview
	c.Manifest = c.Manifest || flags.Manifest
	c.FailFast = c.FailFast || flags.FailFast

	if c.InputDir == "" {
		c.InputDir = "."
	}

	// Output defaults to the input folder; relative paths hang off it.
	if c.OutputDir == "" {
		c.OutputDir = c.InputDir
	} else if !filepath.IsAbs(c.OutputDir) && flags.OutputDir == "" {
		c.OutputDir = filepath.Join(c.InputDir, c.OutputDir)
	}

	if len(c.Extensions) == 0 {
		c.Extensions = []string{".jpg", ".jpeg"}
	}
	for i, ext := range c.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Extensions[i] = ext
	}

	if c.Suffix == "" {
		c.Suffix = "_mask"
	}
	c.OutputExt = strings.ToLower(strings.TrimPrefix(c.OutputExt, "."))
	switch c.OutputExt {
	case "":
		c.OutputExt = "tiff"
	case "tif", "tiff":
	default:
		return fmt.Errorf("config: output_ext %q: masks are written as TIFF (want tif or tiff)", c.OutputExt)
	}

	comp, err := imageio.ParseCompression(c.Compression)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.Compression = string(comp)

	return nil
}
