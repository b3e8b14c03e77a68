package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	htmlpatch "github.com/alnah/go-htmlpatch"
	"github.com/alnah/go-htmlpatch/internal/config"
	"github.com/alnah/go-htmlpatch/internal/fileutil"
	"github.com/alnah/go-htmlpatch/internal/hints"
)

// Sentinel errors for batch operations.
var (
	ErrReadPage    = errors.New("failed to read page")
	ErrWritePage   = errors.New("failed to write page")
	ErrPagesFailed = errors.New("pages failed")
)

// Patcher is the interface for the patch service.
type Patcher interface {
	Patch(ctx context.Context, input htmlpatch.Input) (*htmlpatch.Result, error)
}

// Compile-time interface implementation check.
var _ Patcher = (*htmlpatch.Service)(nil)

// PageStatus is the outcome of one page.
type PageStatus int

const (
	StatusProcessed PageStatus = iota // page was patched (or would be, on a dry run)
	StatusUnchanged                   // nothing to add
	StatusSkipped                     // page file does not exist
	StatusFailed                      // read, patch or write failed
)

// String returns the status as printed in reports.
func (s PageStatus) String() string {
	switch s {
	case StatusProcessed:
		return "processed"
	case StatusUnchanged:
		return "unchanged"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("PageStatus(%d)", int(s))
}

// PageResult holds the outcome of a single page.
type PageResult struct {
	File             string
	Path             string
	Status           PageStatus
	MetadataInjected bool
	Annotated        bool
	Err              error
	Duration         time.Duration
}

// batchOptions groups parameters shared across the batch.
type batchOptions struct {
	workers int
	dryRun  bool
}

// patchBatch processes pages concurrently. Results keep the order of s.pages,
// and one page failing never stops the others.
func patchBatch(ctx context.Context, svc Patcher, s *session, opts batchOptions) []PageResult {
	if len(s.pages) == 0 {
		return nil
	}

	concurrency := opts.workers
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(s.pages) {
		concurrency = len(s.pages)
	}

	results := make([]PageResult, len(s.pages))
	var wg sync.WaitGroup
	jobs := make(chan int, len(s.pages))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				page := s.pages[idx]
				if ctx.Err() != nil {
					results[idx] = PageResult{
						File:   page.File,
						Path:   s.pagePath(page),
						Status: StatusFailed,
						Err:    ctx.Err(),
					}
					continue
				}
				results[idx] = patchPage(ctx, svc, s, page, opts.dryRun)
			}
		}()
	}

	for i := range s.pages {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// patchPage reads, patches and writes back a single page.
func patchPage(ctx context.Context, svc Patcher, s *session, page config.PageConfig, dryRun bool) PageResult {
	start := time.Now()
	result := PageResult{
		File: page.File,
		Path: s.pagePath(page),
	}
	log := s.log.With(zap.String("file", page.File))

	finish := func(status PageStatus, err error) PageResult {
		result.Status = status
		result.Err = err
		result.Duration = time.Since(start)

		switch status {
		case StatusFailed:
			log.Error("page failed", zap.Error(err))
		case StatusSkipped:
			log.Debug("page not found", zap.String("path", result.Path))
		default:
			log.Debug("page "+status.String(),
				zap.Bool("metadata", result.MetadataInjected),
				zap.Bool("aria", result.Annotated),
				zap.Duration("elapsed", result.Duration),
			)
		}
		return result
	}

	content, err := os.ReadFile(result.Path) // #nosec G304 -- path from config, validated relative
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return finish(StatusSkipped, nil)
		}
		return finish(StatusFailed, wrapPageError(ErrReadPage, err))
	}

	// An empty page has no anchors for either stage
	if len(content) == 0 {
		return finish(StatusUnchanged, nil)
	}

	res, err := svc.Patch(ctx, htmlpatch.Input{
		HTML: string(content),
		Page: htmlpatch.Page{
			File:        page.File,
			Title:       page.Title,
			Description: page.Description,
		},
	})
	if err != nil {
		return finish(StatusFailed, err)
	}

	result.MetadataInjected = res.MetadataInjected
	result.Annotated = res.Annotated
	if !res.Changed() {
		return finish(StatusUnchanged, nil)
	}

	if !dryRun {
		if err := fileutil.WriteFileAtomic(result.Path, []byte(res.HTML)); err != nil {
			return finish(StatusFailed, wrapPageError(ErrWritePage, err))
		}
	}

	return finish(StatusProcessed, nil)
}

// wrapPageError wraps err in sentinel, with a hint for permission failures.
func wrapPageError(sentinel, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %v%s", sentinel, err, hints.ForPermission())
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}

// ResultSummary holds the count of each page status.
type ResultSummary struct {
	Processed int
	Unchanged int
	Skipped   int
	Failed    int
}

// countResults tallies page statuses.
func countResults(results []PageResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		switch r.Status {
		case StatusProcessed:
			summary.Processed++
		case StatusUnchanged:
			summary.Unchanged++
		case StatusSkipped:
			summary.Skipped++
		case StatusFailed:
			summary.Failed++
		}
	}
	return summary
}

// printPatchResults writes one line per page and a summary for multi-page runs.
// Failures go to Stderr and are printed even when quiet.
func printPatchResults(results []PageResult, flags *patchFlags, env *Environment) ResultSummary {
	summary := countResults(results)
	quiet, verbose := flags.common.quiet, flags.common.verbose

	for _, r := range results {
		if r.Status == StatusFailed {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.File, r.Err)
			continue
		}

		if quiet {
			continue
		}

		line := describeResult(r, flags.dryRun)
		if verbose {
			fmt.Fprintf(env.Stdout, "%s (%v)\n", line, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintln(env.Stdout, line)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d processed, %d unchanged, %d skipped, %d failed\n",
			summary.Processed, summary.Unchanged, summary.Skipped, summary.Failed)
	}

	return summary
}

// describeResult renders the report line for a non-failed page.
func describeResult(r PageResult, dryRun bool) string {
	switch r.Status {
	case StatusProcessed:
		verb := "Processed"
		if dryRun {
			verb = "Would patch"
		}
		return fmt.Sprintf("%s %s (%s)", verb, r.File, changeList(r))
	case StatusSkipped:
		return fmt.Sprintf("Skipped %s (not found)", r.File)
	default:
		return fmt.Sprintf("Unchanged %s", r.File)
	}
}

// changeList names the stages that modified a page.
func changeList(r PageResult) string {
	switch {
	case r.MetadataInjected && r.Annotated:
		return "metadata, aria"
	case r.MetadataInjected:
		return "metadata"
	default:
		return "aria"
	}
}
