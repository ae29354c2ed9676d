package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"jpg2mask/internal/batch"
	"jpg2mask/internal/classes"
	"jpg2mask/internal/config"
	"jpg2mask/internal/imageio"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json or .yaml)")
	inputDir := flag.String("input", "", "Directory of painted label images (default: .)")
	outputDir := flag.String("output", "", "Output directory (default: same as input)")
	compression := flag.String("compression", "", "TIFF compression: deflate or none (default: deflate)")
	preview := flag.Bool("preview", false, "Also write a colorized WebP preview next to each mask")
	manifest := flag.Bool("manifest", false, "Write manifest.json into the output directory")
	failFast := flag.Bool("fail-fast", false, "Stop at the first file that fails")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [file...]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	if err := cfg.Resolve(config.Flags{
		InputDir:    *inputDir,
		OutputDir:   *outputDir,
		Compression: *compression,
		Preview:     *preview,
		Manifest:    *manifest,
		FailFast:    *failFast,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Positional files bypass directory discovery
	paths := flag.Args()
	if len(paths) == 0 {
		var err error
		paths, err = batch.Discover(cfg.InputDir, cfg.Extensions)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if len(paths) == 0 {
		fmt.Println("No label images to convert.")
		os.Exit(0)
	}

	scheme := classes.Default()

	fmt.Println("Label image → class mask TIFF")
	fmt.Printf("Files: %d, Classes: %d\n", len(paths), len(scheme.Classes()))
	fmt.Printf("Output: %s (%s)\n", cfg.OutputDir, cfg.Compression)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	batchCfg := batch.Config{
		OutputDir:   cfg.OutputDir,
		Suffix:      cfg.Suffix,
		OutputExt:   cfg.OutputExt,
		Compression: imageio.Compression(cfg.Compression),
		Scheme:      scheme,
		Preview:     cfg.Preview,
		FailFast:    cfg.FailFast,
	}

	results := batch.Run(batchCfg, paths)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Per-file failures were already reported as they happened.
	sum := batch.Summarize(results)
	fmt.Printf("Converted: %d, Failed: %d, Skipped: %d (of %d)\n",
		sum.Converted, sum.Failed, sum.Skipped, len(paths))

	if cfg.Manifest {
		manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
		if err := batch.WriteManifest(manifestPath, results, scheme); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
		} else {
			fmt.Printf("Manifest: %s\n", manifestPath)
		}
	}

	if sum.Failed > 0 {
		os.Exit(1)
	}
}
