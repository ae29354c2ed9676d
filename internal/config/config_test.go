package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, cfg.Resolve(Flags{}))

	assert.Equal(t, ".", cfg.InputDir)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, []string{".jpg", ".jpeg"}, cfg.Extensions)
	assert.Equal(t, "_mask", cfg.Suffix)
	assert.Equal(t, "tiff", cfg.OutputExt)
	assert.Equal(t, "deflate", cfg.Compression)
	assert.False(t, cfg.Preview)
	assert.False(t, cfg.FailFast)
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"input_dir": "/data/label",
		"output_dir": "masks",
		"extensions": ["JPG", ".Png"],
		"output_ext": ".tif",
		"preview": true
	}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Resolve(Flags{}))

	assert.Equal(t, "/data/label", cfg.InputDir)
	assert.Equal(t, filepath.Join("/data/label", "masks"), cfg.OutputDir)
	assert.Equal(t, []string{".jpg", ".png"}, cfg.Extensions)
	assert.Equal(t, "tif", cfg.OutputExt)
	assert.True(t, cfg.Preview)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"input_dir: in\n"+
			"compression: none\n"+
			"suffix: _label\n"+
			"fail_fast: true\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Resolve(Flags{}))

	assert.Equal(t, "in", cfg.InputDir)
	assert.Equal(t, "in", cfg.OutputDir)
	assert.Equal(t, "none", cfg.Compression)
	assert.Equal(t, "_label", cfg.Suffix)
	assert.True(t, cfg.FailFast)
}

func TestFlagsOverride(t *testing.T) {
	cfg := Config{InputDir: "a", OutputDir: "b", Compression: "none"}
	require.NoError(t, cfg.Resolve(Flags{
		InputDir:    "x",
		OutputDir:   "y",
		Compression: "deflate",
		Manifest:    true,
	}))

	assert.Equal(t, "x", cfg.InputDir)
	// Flag paths are taken as given, not joined onto the input dir.
	assert.Equal(t, "y", cfg.OutputDir)
	assert.Equal(t, "deflate", cfg.Compression)
	assert.True(t, cfg.Manifest)
}

func TestResolveRejectsCompression(t *testing.T) {
	cfg := Config{Compression: "jpeg"}
	assert.Error(t, cfg.Resolve(Flags{}))
}

func TestResolveOutputExt(t *testing.T) {
	for _, ext := range []string{"tif", ".TIFF", ""} {
		cfg := Config{OutputExt: ext}
		assert.NoError(t, cfg.Resolve(Flags{}), ext)
	}

	cfg := Config{OutputExt: "png"}
	err := cfg.Resolve(Flags{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "png")
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)
}
