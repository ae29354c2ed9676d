package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover lists regular files directly inside dir whose extension matches
// one of exts, ignoring case. Symlinks are followed. Results are sorted by
// name.
func Discover(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: read dir %s: %w", dir, err)
	}

	want := make(map[string]bool, len(exts))
	for _, e := range exts {
		want[strings.ToLower(e)] = true
	}

	var paths []string
	for _, e := range entries {
		if !want[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if e.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		} else if !e.Type().IsRegular() {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)

	return paths, nil
}

// OutputPath returns outDir/<input base name without extension><suffix>.<ext>.
func OutputPath(outDir, inPath, suffix, ext string) string {
	base := filepath.Base(inPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, stem+suffix+"."+strings.TrimPrefix(ext, "."))
}

// Collisions groups inputs that map to the same output path, such as
// a.jpg and a.jpeg. Only outputs claimed by more than one input are kept.
func Collisions(cfg Config, paths []string) map[string][]string {
	byOut := make(map[string][]string)
	for _, p := range paths {
		out := OutputPath(cfg.OutputDir, p, cfg.Suffix, cfg.OutputExt)
		byOut[out] = append(byOut[out], p)
	}
	for out, ins := range byOut {
		if len(ins) < 2 {
			delete(byOut, out)
		}
	}
	return byOut
}
