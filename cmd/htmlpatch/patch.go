package main

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"

	htmlpatch "github.com/alnah/go-htmlpatch"
	"github.com/alnah/go-htmlpatch/internal/config"
)

// maxAutoWorkers caps the automatic worker count.
const maxAutoWorkers = 8

// runPatch patches the configured pages, or the subset named in args.
func runPatch(ctx context.Context, args []string, flags *patchFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	s, err := openSession(&flags.common, &flags.target, &flags.site, args, env)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if flags.workers > 0 {
		s.cfg.Workers = flags.workers
	}

	svc, err := newService(s.cfg)
	if err != nil {
		return err
	}

	workers := resolvePoolSize(s.cfg.Workers)
	s.log.Debug("patch started",
		zap.String("root", s.root),
		zap.Int("pages", len(s.pages)),
		zap.Int("workers", workers),
		zap.Bool("dryRun", flags.dryRun),
	)

	start := env.Now()
	results := patchBatch(ctx, svc, s, batchOptions{workers: workers, dryRun: flags.dryRun})
	summary := printPatchResults(results, flags, env)

	s.log.Debug("patch finished",
		zap.Duration("elapsed", env.Now().Sub(start)),
		zap.Int("processed", summary.Processed),
		zap.Int("unchanged", summary.Unchanged),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
	)

	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrPagesFailed, summary.Failed, len(results))
	}
	return nil
}

// newService builds the patch service from the merged site and label config.
func newService(cfg *config.Config) (*htmlpatch.Service, error) {
	site := htmlpatch.Site{
		Name:   cfg.Site.Name,
		Handle: cfg.Site.Handle,
		Card:   cfg.Site.Card,
		Type:   cfg.Site.Type,
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}

	return htmlpatch.New(
		htmlpatch.WithSite(site),
		htmlpatch.WithLabels(htmlpatch.Labels{
			MainNav:   cfg.Labels.MainNav,
			MobileNav: cfg.Labels.MobileNav,
			Toggle:    cfg.Labels.Toggle,
		}),
	), nil
}

// validateWorkers rejects negative or oversized --workers values.
func validateWorkers(n int) error {
	if n < 0 || n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (must be 0-%d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// resolvePoolSize determines the worker count.
// Priority: explicit value > GOMAXPROCS-based calculation.
func resolvePoolSize(workers int) int {
	// Explicit value takes priority
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0)

	// Minimum 1, maximum 8
	if n < 1 {
		return 1
	}
	if n > maxAutoWorkers {
		return maxAutoWorkers
	}
	return n
}
