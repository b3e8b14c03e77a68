// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileMode is used when writing a file that did not exist before.
const DefaultFileMode fs.FileMode = 0o644 // rw-r--r--: pages are meant to be readable

// Sentinel errors for file utility operations.
var (
	ErrPathEmpty     = errors.New("path cannot be empty")
	ErrPathAbsolute  = errors.New("path must be relative to the site root")
	ErrPathTraversal = errors.New("path contains parent reference or null byte")
)

// ValidateRelPath checks that p stays inside whatever root it is joined to.
// Both / and \ are treated as separators so a config file behaves the same
// on every platform.
func ValidateRelPath(p string) error {
	if p == "" {
		return ErrPathEmpty
	}
	if strings.ContainsRune(p, '\x00') {
		return ErrPathTraversal
	}
	if filepath.IsAbs(p) || strings.HasPrefix(p, "/") || strings.HasPrefix(p, `\`) || filepath.VolumeName(p) != "" {
		return ErrPathAbsolute
	}
	for _, seg := range strings.FieldsFunc(p, func(r rune) bool { return r == '/' || r == '\\' }) {
		if seg == ".." {
			return ErrPathTraversal
		}
	}
	return nil
}

// HasHTMLExtension returns true for .html and .htm files (case-insensitive).
func HasHTMLExtension(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// WriteFileAtomic replaces path with data via a temp file in the same
// directory and a rename, so readers never see a half-written file.
// An existing file keeps its permission bits.
func WriteFileAtomic(path string, data []byte) error {
	mode := DefaultFileMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".htmlpatch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpPath := tmpFile.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, writeErr := tmpFile.Write(data); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if chmodErr := os.Chmod(tmpPath, mode); chmodErr != nil {
		cleanup()
		return fmt.Errorf("setting file mode: %w", chmodErr)
	}

	if renameErr := os.Rename(tmpPath, path); renameErr != nil {
		cleanup()
		return fmt.Errorf("replacing file: %w", renameErr)
	}

	return nil
}
