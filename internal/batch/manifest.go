package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"jpg2mask/internal/classes"
)

// ManifestEntry represents one input file in the output manifest.
type ManifestEntry struct {
	Input   string         `json:"input"`
	Output  string         `json:"output,omitempty"`
	Preview string         `json:"preview,omitempty"`
	Width   int            `json:"width,omitempty"`
	Height  int            `json:"height,omitempty"`
	Pixels  map[string]int `json:"pixels,omitempty"` // class name → pixel count
	Error   string         `json:"error,omitempty"`
}

// BuildManifest converts run results into manifest entries, sorted by input.
func BuildManifest(results []Result, scheme *classes.Scheme) []ManifestEntry {
	if scheme == nil {
		scheme = classes.Default()
	}

	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		e := ManifestEntry{Input: r.Input, Error: r.Error}
		if r.Success {
			e.Output = r.Output
			e.Preview = r.Preview
			e.Width = r.Width
			e.Height = r.Height
			e.Pixels = make(map[string]int, len(r.Counts))
			for code, n := range r.Counts {
				name := scheme.Name(code)
				if name == "" {
					name = fmt.Sprintf("code_%d", code)
				}
				e.Pixels[name] = n
			}
		}
		entries[i] = e
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Input < entries[j].Input })
	return entries
}

// WriteManifest writes manifest.json for a finished run.
func WriteManifest(path string, results []Result, scheme *classes.Scheme) error {
	data, err := json.MarshalIndent(BuildManifest(results, scheme), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
