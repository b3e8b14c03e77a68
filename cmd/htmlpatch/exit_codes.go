package main

import (
	"errors"
	"os"

	htmlpatch "github.com/alnah/go-htmlpatch"
	"github.com/alnah/go-htmlpatch/internal/config"
)

// Exit codes for the htmlpatch CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All pages patched, unchanged or skipped
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Root missing, page read/write failures
	ExitAudit   = 4 // check --strict found missing attributes
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Audit errors (exit 4)
	if errors.Is(err, ErrAuditFailed) {
		return ExitAudit
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrRootNotFound) ||
		errors.Is(err, ErrPagesFailed) ||
		errors.Is(err, ErrReadPage) ||
		errors.Is(err, ErrWritePage) ||
		errors.Is(err, ErrWriteConfig) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrNoPages) ||
		errors.Is(err, config.ErrInvalidPage) ||
		errors.Is(err, config.ErrInvalidLogging) ||
		errors.Is(err, config.ErrInvalidLabels) ||
		errors.Is(err, htmlpatch.ErrInvalidCard) ||
		errors.Is(err, htmlpatch.ErrInvalidHandle) ||
		errors.Is(err, ErrUnknownPage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrConfigExists) ||
		errors.Is(err, ErrUnknownCommand) {
		return ExitUsage
	}

	return ExitGeneral
}
