package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"mvdan.cc/xurls/v2"
)

func printFatalError(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}

func main() {
	cfg, err := parseArgs()
	if err != nil {
		printFatalError(err)
		flag.Usage()
		os.Exit(1)
	}

	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	fmt.Println("Ubuntu Image Fetcher: fetches images and skips duplicate content")

	urls, err := collectURLs(cfg)
	if err != nil {
		printFatalError(err)
		os.Exit(2)
	}

	if len(urls) == 0 {
		fmt.Println("no urls to fetch")
		return
	}

	sum := processURLs(context.Background(), cfg, urls)

	fmt.Printf("\ndone: %d saved, %d skipped, %d failed\n", sum.Saved, sum.Skipped, sum.Failed)
}

// collectURLs gathers the urls to fetch. Positional arguments win; then an
// input file mined for urls; otherwise an interactive prompt reading one
// line of space-separated urls from stdin.
func collectURLs(cfg *Config) ([]string, error) {
	if len(cfg.URLs) > 0 {
		return cfg.URLs, nil
	}

	if cfg.InputFile != "" {
		return urlsFromFile(cfg.InputFile)
	}

	fmt.Print("Enter image URLs (separated by spaces): ")
	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		return nil, sc.Err()
	}
	return strings.Fields(sc.Text()), nil
}

// urlsFromFile extracts every url embedded in the given text file. The
// file does not need any particular format; urls are recognized anywhere
// in the text.
func urlsFromFile(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	urls := extractURLs(string(b))
	log.Debugf("extracted %d urls from %s", len(urls), path)
	return urls, nil
}

func extractURLs(text string) []string {
	return xurls.Strict().FindAllString(text, -1)
}
