package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/ccollins476ad/imgfetch/dedup"
	"github.com/ccollins476ad/imgfetch/fetch"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Summary is the outcome of a batch of url fetches.
type Summary struct {
	Saved   int
	Skipped int
	Failed  int
}

// processURLs fetches every url in the given slice, strictly one at a
// time: a single goroutine drains the url channel, so each download is
// fully fetched, named, and deduplicated before the next one begins. The
// write-then-dedup sequence must stay serialized per destination
// directory to keep the "no two files with equal hash" invariant.
func processURLs(ctx context.Context, cfg *Config, urls []string) Summary {
	f := fetch.NewFetcher(cfg.DestDir, cfg.Timeout, cfg.MaxBytes)
	f.ShowProgress(cfg.Progress)

	var sum Summary
	g := &errgroup.Group{}

	startWorker := func() {
		urlChan := make(chan string)
		defer close(urlChan)

		g.Go(func() error {
			for u := range urlChan {
				processURL(ctx, cfg, f, u, &sum)
			}
			return nil
		})

		for _, u := range urls {
			select {
			case <-ctx.Done():
				// Operation aborted. Return early to execute deferred
				// channel close.
				return

			case urlChan <- u:
			}
		}
	}

	startWorker()
	if err := g.Wait(); err != nil {
		// The worker reports per-url failures itself and returns nil;
		// surface anything else rather than dropping it.
		log.WithError(err).Error("url worker failed")
	}

	return sum
}

// processURL downloads a single url, dedups the result, and prints one
// status line. Errors are reported, never propagated: one bad url must
// not stop the rest of the batch.
func processURL(ctx context.Context, cfg *Config, f *fetch.Fetcher, u string, sum *Summary) {
	log.Debugf("processing url: %s", u)

	saved, err := f.Fetch(ctx, u)
	if err != nil {
		sum.Failed++
		fmt.Printf("error %s: %s\n", u, classify(err))
		return
	}

	kept, dupOf, err := dedup.Deduplicate(cfg.DestDir, saved.Path)
	if err != nil {
		sum.Failed++
		fmt.Printf("error %s: duplicate check failed: %v\n", u, err)
		return
	}

	if !kept {
		sum.Skipped++
		fmt.Printf("skipped %s: duplicate of %s\n", u, dupOf)
		return
	}

	sum.Saved++
	fmt.Printf("saved %s (%d bytes, last modified: %s)\n", saved.Filename, saved.Bytes, saved.LastModified)
}

// classify renders a fetch error for the status line. Known kinds already
// carry their category in the message; anything else is unexpected.
func classify(err error) string {
	switch {
	case errors.Is(err, fetch.ErrInvalidInput),
		errors.Is(err, fetch.ErrRejectedContent),
		errors.Is(err, fetch.ErrTooLarge),
		errors.Is(err, fetch.ErrNetwork):
		return err.Error()
	default:
		return fmt.Sprintf("unexpected error: %v", err)
	}
}
