package batch

import (
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jpg2mask/internal/classes"
	"jpg2mask/internal/imageio"
)

func touch(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, data, 0644))
}

// writeLabel writes a solid image, JPEG for .jpg/.jpeg paths and PNG
// otherwise. Solid fills survive JPEG at full quality within the class
// ranges.
func writeLabel(t *testing.T, path string, w, h int, fill color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: 100}))
	default:
		require.NoError(t, png.Encode(f, img))
	}
	require.NoError(t, f.Close())
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.JPG"), nil)
	touch(t, filepath.Join(dir, "a.jpeg"), nil)
	touch(t, filepath.Join(dir, "c.png"), nil)
	touch(t, filepath.Join(dir, "notes.txt"), nil)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.jpg"), 0755))

	paths, err := Discover(dir, []string{".jpg", ".jpeg"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.jpeg"),
		filepath.Join(dir, "b.JPG"),
	}, paths)
}

func TestDiscoverFollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(t.TempDir(), "real.jpg")
	touch(t, target, nil)
	if err := os.Symlink(target, filepath.Join(dir, "link.jpg")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone.jpg"), filepath.Join(dir, "dangling.jpg")))

	paths, err := Discover(dir, []string{".jpg"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "link.jpg")}, paths)
}

func TestCollisions(t *testing.T) {
	cfg := testConfig("/out")
	got := Collisions(cfg, []string{"/in/a.jpg", "/in/a.jpeg", "/in/b.jpg"})

	assert.Equal(t, map[string][]string{
		filepath.Join("/out", "a_mask.tiff"): {"/in/a.jpg", "/in/a.jpeg"},
	}, got)
}

func TestDiscoverMissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), []string{".jpg"})
	assert.Error(t, err)
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/in/photo.jpg", "/out/photo_mask.tiff"},
		{"/in/photo.JPEG", "/out/photo_mask.tiff"},
		{"/in/a.b.jpg", "/out/a.b_mask.tiff"},
		{"/in/noext", "/out/noext_mask.tiff"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.want), OutputPath("/out", tt.in, "_mask", ".tiff"))
		})
	}
}

func TestPreviewPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "a_mask_preview.webp"), PreviewPath(filepath.Join("out", "a_mask.tiff")))
}

func testConfig(out string) Config {
	return Config{
		OutputDir:   out,
		Suffix:      "_mask",
		OutputExt:   "tiff",
		Compression: imageio.CompressionDeflate,
	}
}

func TestRunConvertsAndContinues(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "masks")

	good := filepath.Join(in, "a.jpg")
	bad := filepath.Join(in, "b.jpg")
	last := filepath.Join(in, "c.jpg")
	writeLabel(t, good, 10, 10, color.NRGBA{128, 0, 0, 255})
	touch(t, bad, []byte("corrupt"))
	writeLabel(t, last, 4, 3, color.NRGBA{0, 0, 0, 255})

	results := Run(testConfig(out), []string{good, bad, last})
	require.Len(t, results, 3)

	assert.True(t, results[0].Success)
	assert.Equal(t, map[uint16]int{classes.ClassA: 100}, results[0].Counts)
	assert.False(t, results[1].Success)
	assert.NotEmpty(t, results[1].Error)
	assert.True(t, results[2].Success)

	r, err := imageio.ReadMask(filepath.Join(out, "a_mask.tiff"))
	require.NoError(t, err)
	assert.Equal(t, map[uint16]int{classes.ClassA: 100}, r.Counts())

	_, err = os.Stat(filepath.Join(out, "b_mask.tiff"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(out, "c_mask.tiff"))
	assert.NoError(t, err)
}

func TestRunFailFast(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()

	bad := filepath.Join(in, "a.jpg")
	good := filepath.Join(in, "b.jpg")
	touch(t, bad, []byte("corrupt"))
	writeLabel(t, good, 2, 2, color.NRGBA{0, 0, 0, 255})

	cfg := testConfig(out)
	cfg.FailFast = true
	results := Run(cfg, []string{bad, good})

	assert.False(t, results[0].Success)
	assert.True(t, results[1].Skipped)
	_, err := os.Stat(filepath.Join(out, "b_mask.tiff"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunPreviewAndManifest(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	src := filepath.Join(in, "scene.png")
	writeLabel(t, src, 5, 5, color.NRGBA{10, 100, 10, 255})

	cfg := testConfig(out)
	cfg.Preview = true
	results := Run(cfg, []string{src})
	require.True(t, results[0].Success, results[0].Error)
	assert.Equal(t, filepath.Join(out, "scene_mask_preview.webp"), results[0].Preview)
	_, err := os.Stat(results[0].Preview)
	require.NoError(t, err)

	manifest := filepath.Join(out, "manifest.json")
	require.NoError(t, WriteManifest(manifest, results, classes.Default()))

	data, err := os.ReadFile(manifest)
	require.NoError(t, err)
	var entries []ManifestEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, map[string]int{"class_b": 25}, entries[0].Pixels)
	assert.Equal(t, 5, entries[0].Width)
}

func TestBuildManifestErrors(t *testing.T) {
	entries := BuildManifest([]Result{
		{Input: "z.jpg", Error: "boom"},
		{Input: "a.jpg", Success: true, Output: "a_mask.tiff", Counts: map[uint16]int{0: 3, 9: 1}},
	}, nil)

	require.Len(t, entries, 2)
	assert.Equal(t, "a.jpg", entries[0].Input)
	assert.Equal(t, map[string]int{"background": 3, "code_9": 1}, entries[0].Pixels)
	assert.Equal(t, "boom", entries[1].Error)
	assert.Empty(t, entries[1].Output)
}

func TestRunJPEGEndToEnd(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeLabel(t, filepath.Join(in, "red.jpg"), 16, 16, color.NRGBA{128, 0, 0, 255})
	writeLabel(t, filepath.Join(in, "green.JPEG"), 16, 8, color.NRGBA{20, 120, 20, 255})
	writeLabel(t, filepath.Join(in, "black.jpg"), 8, 8, color.NRGBA{0, 0, 0, 255})

	paths, err := Discover(in, []string{".jpg", ".jpeg"})
	require.NoError(t, err)
	require.Len(t, paths, 3)

	results := Run(testConfig(out), paths)
	assert.Equal(t, Summary{Converted: 3}, Summarize(results))

	want := map[string]map[uint16]int{
		"red_mask.tiff":   {classes.ClassA: 256},
		"green_mask.tiff": {classes.ClassB: 128},
		"black_mask.tiff": {classes.Background: 64},
	}
	for name, counts := range want {
		r, err := imageio.ReadMask(filepath.Join(out, name))
		require.NoError(t, err, name)
		assert.Equal(t, counts, r.Counts(), name)
	}
}

func TestRunRejectsWideScheme(t *testing.T) {
	scheme, err := classes.New(
		classes.Class{Index: 0, Name: "bg", Rank: 2},
		classes.Class{Index: 300, Name: "wide", Rank: 1, Match: classes.RGBRange{MinR: 1, MaxR: 255}},
	)
	require.NoError(t, err)

	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "never")
	src := filepath.Join(in, "a.png")
	writeLabel(t, src, 2, 2, color.NRGBA{200, 0, 0, 255})

	cfg := testConfig(out)
	cfg.Scheme = scheme
	results := Run(cfg, []string{src})

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "8-bit")
	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestSummarize(t *testing.T) {
	got := Summarize([]Result{
		{Success: true},
		{Error: "x"},
		{Skipped: true, Error: "skipped"},
		{Success: true},
	})
	assert.Equal(t, Summary{Converted: 2, Failed: 1, Skipped: 1}, got)
}
