package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDestDir  = "Fetched_Images"
	defaultTimeout  = 10 * time.Second
	defaultMaxBytes = 10_000_000
)

type Config struct {
	DestDir   string        // Directory to save fetched images to.
	Timeout   time.Duration // Per-request timeout.
	MaxBytes  int64         // Maximum allowed image size in bytes.
	InputFile string        // Optional text file to extract urls from.
	Verbose   bool          // True for verbose output.
	Progress  bool          // True to display a byte progress bar.
	URLs      []string      // URLs supplied as positional arguments.
}

func parseArgs() (*Config, error) {
	// A .env file in the working directory can seed the flag defaults
	// below. A missing file is fine.
	godotenv.Load()

	destDir := flag.String("d", envString("IMGFETCH_DEST_DIR", defaultDestDir), "destination directory")
	timeout := flag.Duration("t", envDuration("IMGFETCH_TIMEOUT", defaultTimeout), "per-request timeout")
	maxBytes := flag.Int64("m", envInt64("IMGFETCH_MAX_BYTES", defaultMaxBytes), "maximum image size in bytes")
	inputFile := flag.String("i", "", "text file to extract urls from")
	verbose := flag.Bool("v", false, "verbose output")
	progress := flag.Bool("p", false, "show a download progress bar")

	flag.Usage = usage
	flag.Parse()

	if *maxBytes <= 0 {
		return nil, fmt.Errorf("maximum image size must be positive: %d", *maxBytes)
	}
	if *timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive: %v", *timeout)
	}

	return &Config{
		DestDir:   *destDir,
		Timeout:   *timeout,
		MaxBytes:  *maxBytes,
		InputFile: *inputFile,
		Verbose:   *verbose,
		Progress:  *progress,
		URLs:      flag.Args(),
	}, nil
}

func envString(key string, dflt string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return dflt
}

func envDuration(key string, dflt time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return dflt
}

func envInt64(key string, dflt int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return dflt
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [option]... [url]...\n", filepath.Base(os.Args[0]))
	fmt.Fprintf(flag.CommandLine.Output(), "Fetches images from http(s) urls, skipping duplicate content.\n")
	flag.PrintDefaults()
}
