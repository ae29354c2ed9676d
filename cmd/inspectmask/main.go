package main

import (
	"fmt"
	"os"
	"sort"

	"jpg2mask/internal/classes"
	"jpg2mask/internal/imageio"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s mask.tiff...\n", os.Args[0])
		os.Exit(2)
	}

	scheme := classes.Default()
	failed := false
	for _, path := range os.Args[1:] {
		r, err := imageio.ReadMask(path)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			failed = true
			continue
		}

		total := r.Width * r.Height
		fmt.Printf("%s: %dx%d, %d pixels, max code %d\n", path, r.Width, r.Height, total, r.Max())

		counts := r.Counts()
		codes := make([]int, 0, len(counts))
		for c := range counts {
			codes = append(codes, int(c))
		}
		sort.Ints(codes)

		for _, c := range codes {
			n := counts[uint16(c)]
			name := scheme.Name(uint16(c))
			if name == "" {
				name = "unknown"
			}
			fmt.Printf("  %3d %-12s %8d  %5.1f%%\n", c, name, n, 100*float64(n)/float64(total))
		}
	}

	if failed {
		os.Exit(1)
	}
}
