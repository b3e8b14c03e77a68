// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and, when one was searched, the user config location.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/site.yaml"

	// Find a user config path to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, "htmlpatch"+string(os.PathSeparator)) || strings.Contains(p, "htmlpatch/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForNoPages returns a hint for a run with an empty page table.
func ForNoPages(configPath string) string {
	if configPath == "" {
		return format("pass --config with a pages: list, or set HTMLPATCH_CONFIG")
	}
	return format("add a pages: list to " + configPath)
}

// ForRootNotFound returns hints when the site root directory is missing.
func ForRootNotFound(root string) string {
	return formatHints([]string{
		"root resolved to " + root,
		"relative roots in a config file are resolved against the file's directory",
		"override with --root or HTMLPATCH_ROOT",
	})
}

// ForPermission returns a hint for read/write permission failures.
func ForPermission() string {
	return format("check that the page is writable and its directory allows creating temp files")
}

// ForUnknownPage returns a hint listing the configured page files.
func ForUnknownPage(known []string) string {
	if len(known) == 0 {
		return ""
	}
	return format("configured pages: " + strings.Join(known, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
