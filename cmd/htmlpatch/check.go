package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-htmlpatch/internal/audit"
)

// ErrAuditFailed is returned by check --strict when a page lacks an attribute.
var ErrAuditFailed = errors.New("audit found missing attributes")

// checkResult holds the audit outcome of one page.
type checkResult struct {
	File    string
	Report  *audit.Report
	Skipped bool
	Err     error
}

// runCheck audits the configured pages without modifying them.
func runCheck(ctx context.Context, args []string, flags *checkFlags, env *Environment) error {
	s, err := openSession(&flags.common, &flags.target, nil, args, env)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	results := make([]checkResult, 0, len(s.pages))
	for _, page := range s.pages {
		if ctx.Err() != nil {
			results = append(results, checkResult{File: page.File, Err: ctx.Err()})
			continue
		}

		r := checkResult{File: page.File}
		content, err := os.ReadFile(s.pagePath(page)) // #nosec G304 -- path from config, validated relative
		switch {
		case errors.Is(err, fs.ErrNotExist):
			r.Skipped = true
		case err != nil:
			r.Err = wrapPageError(ErrReadPage, err)
		default:
			r.Report, r.Err = audit.Inspect(string(content))
		}

		if r.Report != nil {
			s.log.Debug("page audited", zap.String("file", page.File), zap.Strings("missing", r.Report.Missing()))
		}
		results = append(results, r)
	}

	failed, incomplete := printCheckResults(results, flags, env)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrPagesFailed, failed, len(results))
	}
	if flags.strict && incomplete > 0 {
		return fmt.Errorf("%w: %d of %d pages", ErrAuditFailed, incomplete, len(results))
	}
	return nil
}

// printCheckResults writes one line per page and returns the number of pages
// that could not be read and the number with missing attributes.
func printCheckResults(results []checkResult, flags *checkFlags, env *Environment) (failed, incomplete int) {
	quiet, verbose := flags.common.quiet, flags.common.verbose

	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.File, r.Err)
			continue
		case r.Skipped:
			if !quiet {
				fmt.Fprintf(env.Stdout, "Skipped %s (not found)\n", r.File)
			}
			continue
		}

		missing := r.Report.Missing()
		if len(missing) > 0 {
			incomplete++
			fmt.Fprintf(env.Stdout, "%s: missing %s\n", r.File, strings.Join(missing, ", "))
		} else if !quiet {
			fmt.Fprintf(env.Stdout, "%s: ok\n", r.File)
		}

		if verbose {
			for _, c := range r.Report.Checks {
				fmt.Fprintf(env.Stdout, "  %-20s %s\n", c.Name, c.Status)
			}
		}
	}

	if !quiet && len(results) > 1 {
		skipped := 0
		for _, r := range results {
			if r.Skipped {
				skipped++
			}
		}
		fmt.Fprintf(env.Stdout, "\n%d complete, %d incomplete, %d skipped, %d failed\n",
			len(results)-failed-incomplete-skipped, incomplete, skipped, failed)
	}
	return failed, incomplete
}
