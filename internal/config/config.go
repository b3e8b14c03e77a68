package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-htmlpatch/internal/fileutil"
	"github.com/alnah/go-htmlpatch/internal/pipeline"
	"github.com/alnah/go-htmlpatch/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrNoPages         = errors.New("no pages configured")
	ErrInvalidPage     = errors.New("invalid page entry")
	ErrInvalidLogging  = errors.New("invalid logging config")
	ErrInvalidLabels   = errors.New("invalid labels config")
)

// Field length limits.
const (
	MaxRootLength        = 4096 // PATH_MAX on Linux
	MaxFileLength        = 1024 // Page path relative to root
	MaxTitleLength       = 200  // og:title
	MaxDescriptionLength = 500  // og:description
	MaxSiteNameLength    = 100  // og:site_name
	MaxHandleLength      = 50   // "@handle"
	MaxCardLength        = 30   // "summary_large_image"
	MaxTypeLength        = 30   // "website", "article"
	MaxLabelLength       = 100  // aria-label values
	MaxPages             = 10000
	MaxWorkers           = 64
)

// Log levels and formats accepted in logging.level and logging.format.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	LogFormatConsole = "console" // colored, for terminals
	LogFormatText    = "text"    // plain, for files
	LogFormatJSON    = "json"
)

// Config holds all configuration for a patch run.
type Config struct {
	Root    string        `yaml:"root"`    // Site root; relative paths resolve against the config file
	Workers int           `yaml:"workers"` // 0 = auto
	Site    SiteConfig    `yaml:"site"`
	Labels  LabelsConfig  `yaml:"labels"`
	Pages   []PageConfig  `yaml:"pages"`
	Logging LoggingConfig `yaml:"logging"`

	dir string // directory of the loaded config file (empty = working directory)
}

// SiteConfig defines values shared by every page.
type SiteConfig struct {
	Name   string `yaml:"name"`   // og:site_name (empty = omitted)
	Handle string `yaml:"handle"` // twitter:site, e.g. "@ClawCypher" (empty = omitted)
	Card   string `yaml:"card"`   // twitter:card (default: "summary")
	Type   string `yaml:"type"`   // og:type (default: "website")
}

// LabelsConfig defines the aria-label values written by the annotator.
type LabelsConfig struct {
	MainNav   string `yaml:"mainNav"`   // default: "Main navigation"
	MobileNav string `yaml:"mobileNav"` // default: "Mobile navigation"
	Toggle    string `yaml:"toggle"`    // default: "Toggle menu"
}

// PageConfig is one entry of the page table.
type PageConfig struct {
	File        string `yaml:"file"` // relative to root
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// LoggingConfig defines diagnostic logging.
type LoggingConfig struct {
	Level  string        `yaml:"level"`  // debug, info, warn, error (default: info)
	Format string        `yaml:"format"` // console, text, json (default: console)
	File   LogFileConfig `yaml:"file"`
}

// LogFileConfig defines an optional rotating log file.
type LogFileConfig struct {
	Path       string `yaml:"path"`       // empty = no file output
	MaxSize    int    `yaml:"maxSize"`    // megabytes before rotation
	MaxAge     int    `yaml:"maxAge"`     // days to keep rotated files
	MaxBackups int    `yaml:"maxBackups"` // rotated files to keep
	Compress   bool   `yaml:"compress"`
}

// Validate checks field lengths, the page table and logging settings.
// Called automatically by LoadConfig, but available for configs built
// in code or merged from flags and environment.
func (c *Config) Validate() error {
	if err := validateFieldLength("root", c.Root, MaxRootLength); err != nil {
		return err
	}
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("workers: must be between 0 and %d, got %d", MaxWorkers, c.Workers)
	}

	// Validate site fields
	if err := validateFieldLength("site.name", c.Site.Name, MaxSiteNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.handle", c.Site.Handle, MaxHandleLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.card", c.Site.Card, MaxCardLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.type", c.Site.Type, MaxTypeLength); err != nil {
		return err
	}

	// Validate labels
	if err := validateFieldLength("labels.mainNav", c.Labels.MainNav, MaxLabelLength); err != nil {
		return err
	}
	if err := validateFieldLength("labels.mobileNav", c.Labels.MobileNav, MaxLabelLength); err != nil {
		return err
	}
	if err := validateFieldLength("labels.toggle", c.Labels.Toggle, MaxLabelLength); err != nil {
		return err
	}
	if err := c.Labels.validate(); err != nil {
		return err
	}

	if err := c.validatePages(); err != nil {
		return err
	}

	return c.Logging.validate()
}

// validatePages checks every page entry and rejects duplicates.
func (c *Config) validatePages() error {
	if len(c.Pages) == 0 {
		return ErrNoPages
	}
	if len(c.Pages) > MaxPages {
		return fmt.Errorf("pages: %d entries (max %d)", len(c.Pages), MaxPages)
	}

	seen := make(map[string]int, len(c.Pages))
	for i, p := range c.Pages {
		field := fmt.Sprintf("pages[%d]", i)

		if err := validateFieldLength(field+".file", p.File, MaxFileLength); err != nil {
			return err
		}
		if err := fileutil.ValidateRelPath(p.File); err != nil {
			return fmt.Errorf("%w: %s.file %q: %v", ErrInvalidPage, field, p.File, err)
		}
		if !fileutil.HasHTMLExtension(p.File) {
			return fmt.Errorf("%w: %s.file %q: must have .html or .htm extension", ErrInvalidPage, field, p.File)
		}

		key := filepath.ToSlash(filepath.Clean(p.File))
		if prev, dup := seen[key]; dup {
			return fmt.Errorf("%w: %s.file %q duplicates pages[%d]", ErrInvalidPage, field, p.File, prev)
		}
		seen[key] = i

		if strings.TrimSpace(p.Title) == "" {
			return fmt.Errorf("%w: %s.title is required", ErrInvalidPage, field)
		}
		if err := validateFieldLength(field+".title", p.Title, MaxTitleLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".description", p.Description, MaxDescriptionLength); err != nil {
			return err
		}
	}
	return nil
}

// validate rejects a toggle label shared with a navigation label. The toggle
// is skipped whenever its label already appears anywhere in the page, so a
// shared value would hide the toggle behind the navigation's own label.
func (l LabelsConfig) validate() error {
	toggle := labelOrDefault(l.Toggle, pipeline.DefaultToggleLabel)
	switch toggle {
	case labelOrDefault(l.MainNav, pipeline.DefaultMainNavLabel):
		return fmt.Errorf("%w: labels.toggle %q equals labels.mainNav", ErrInvalidLabels, toggle)
	case labelOrDefault(l.MobileNav, pipeline.DefaultMobileNavLabel):
		return fmt.Errorf("%w: labels.toggle %q equals labels.mobileNav", ErrInvalidLabels, toggle)
	}
	return nil
}

// labelOrDefault returns label, or def when label is empty.
func labelOrDefault(label, def string) string {
	if label == "" {
		return def
	}
	return label
}

// validate checks logging enumerations and rotation bounds.
func (l LoggingConfig) validate() error {
	switch strings.ToLower(l.Level) {
	case "", LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return fmt.Errorf("%w: logging.level %q (must be debug, info, warn, or error)", ErrInvalidLogging, l.Level)
	}
	switch strings.ToLower(l.Format) {
	case "", LogFormatConsole, LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: logging.format %q (must be console, text, or json)", ErrInvalidLogging, l.Format)
	}
	if l.File.MaxSize < 0 || l.File.MaxAge < 0 || l.File.MaxBackups < 0 {
		return fmt.Errorf("%w: logging.file rotation values cannot be negative", ErrInvalidLogging)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration with defaults and an empty page table.
func DefaultConfig() *Config {
	return &Config{
		Root: ".",
		Site: SiteConfig{
			Card: "summary",
			Type: "website",
		},
		Logging: LoggingConfig{
			Level:  LogLevelInfo,
			Format: LogFormatConsole,
			File: LogFileConfig{
				MaxSize:    10,
				MaxAge:     7,
				MaxBackups: 3,
			},
		},
	}
}

// ResolveRoot returns the site root as a usable path.
// Relative roots from a config file resolve against that file's directory.
func (c *Config) ResolveRoot() string {
	root := c.Root
	if root == "" {
		root = "."
	}
	if filepath.IsAbs(root) || c.dir == "" {
		return filepath.Clean(root)
	}
	return filepath.Join(c.dir, root)
}

// SetRoot overrides the root with a path relative to the working directory.
func (c *Config) SetRoot(root string) {
	c.Root = root
	c.dir = ""
}

// Page returns the page entry for file, comparing cleaned slash paths.
func (c *Config) Page(file string) (PageConfig, bool) {
	key := filepath.ToSlash(filepath.Clean(file))
	for _, p := range c.Pages {
		if filepath.ToSlash(filepath.Clean(p.File)) == key {
			return p, true
		}
	}
	return PageConfig{}, false
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator or ends in .yaml/.yml, it's treated
// as a file path. Otherwise, it's treated as a config name and searched in
// standard locations.
// Missing fields take their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	cfg.dir = filepath.Dir(configPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsFilePath returns true if the string looks like a file path rather than
// a config name: it contains a separator or already carries a YAML extension.
func IsFilePath(s string) bool {
	if strings.ContainsAny(s, "/\\") {
		return true
	}
	switch strings.ToLower(filepath.Ext(s)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, user config dir/htmlpatch/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "htmlpatch", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
