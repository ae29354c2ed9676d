package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"jpg2mask/internal/classes"
	"jpg2mask/internal/imageio"
	"jpg2mask/internal/mask"
)

// Config holds the settings shared by every file of a batch run.
type Config struct {
	OutputDir   string
	Suffix      string
	OutputExt   string
	Compression imageio.Compression
	Scheme      *classes.Scheme
	Preview     bool
	FailFast    bool
}

// Result holds the outcome of processing one file.
type Result struct {
	Input   string
	Output  string
	Preview string
	Width   int
	Height  int
	Counts  map[uint16]int
	Success bool
	Skipped bool
	Error   string
}

// Run converts files one after another. The output directory is created
// before the first write. A failed file is reported and the run moves on,
// unless FailFast is set, in which case the remaining files are marked
// skipped. Outputs written before a failure are left in place.
func Run(cfg Config, paths []string) []Result {
	results := make([]Result, len(paths))

	fail := func(msg string) []Result {
		for i, p := range paths {
			results[i] = Result{Input: p, Error: msg}
		}
		return results
	}

	if cfg.Scheme != nil && cfg.Scheme.MaxIndex() > imageio.MaxCode {
		return fail(fmt.Sprintf("%v: scheme uses code %d", imageio.ErrCodeOverflow, cfg.Scheme.MaxIndex()))
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fail(fmt.Sprintf("output dir: %v", err))
	}

	collisions := Collisions(cfg, paths)
	outs := make([]string, 0, len(collisions))
	for out := range collisions {
		outs = append(outs, out)
	}
	sort.Strings(outs)
	for _, out := range outs {
		fmt.Fprintf(os.Stderr, "Warning: %s is written by %d inputs, the last one wins: %s\n",
			filepath.Base(out), len(collisions[out]), strings.Join(collisions[out], ", "))
	}

	total := len(paths)
	for i, p := range paths {
		res := ProcessFile(cfg, p)
		results[i] = res

		if res.Success {
			fmt.Printf("  [%d/%d] Successfully saved: %s\n", i+1, total, res.Output)
			continue
		}
		fmt.Fprintf(os.Stderr, "  [%d/%d] %s: %s\n", i+1, total, filepath.Base(p), res.Error)

		if cfg.FailFast {
			for j := i + 1; j < total; j++ {
				results[j] = Result{Input: paths[j], Skipped: true, Error: "skipped after earlier failure"}
			}
			break
		}
	}

	return results
}

// Summary counts the outcomes of a run.
type Summary struct {
	Converted int
	Failed    int
	Skipped   int
}

// Summarize tallies results by outcome.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch {
		case r.Success:
			s.Converted++
		case r.Skipped:
			s.Skipped++
		default:
			s.Failed++
		}
	}
	return s
}

// ProcessFile runs load → classify → clean → encode → persist for one file.
func ProcessFile(cfg Config, inPath string) Result {
	scheme := cfg.Scheme
	if scheme == nil {
		scheme = classes.Default()
	}
	outPath := OutputPath(cfg.OutputDir, inPath, cfg.Suffix, cfg.OutputExt)

	img, err := imageio.Load(inPath)
	if err != nil {
		return Result{Input: inPath, Output: outPath, Error: err.Error()}
	}

	r := mask.Convert(img, scheme)

	if err := imageio.WriteMask(outPath, r, cfg.Compression); err != nil {
		return Result{Input: inPath, Output: outPath, Error: err.Error()}
	}

	res := Result{
		Input:   inPath,
		Output:  outPath,
		Width:   r.Width,
		Height:  r.Height,
		Counts:  r.Counts(),
		Success: true,
	}

	if cfg.Preview {
		res.Preview = PreviewPath(outPath)
		if err := imageio.WritePreview(res.Preview, r, scheme.Palette()); err != nil {
			// The mask itself is already on disk.
			fmt.Fprintf(os.Stderr, "Warning: preview %s: %v\n", res.Preview, err)
			res.Preview = ""
		}
	}

	return res
}

// PreviewPath returns the WebP preview path that sits next to a mask file.
func PreviewPath(maskPath string) string {
	return strings.TrimSuffix(maskPath, filepath.Ext(maskPath)) + "_preview.webp"
}
