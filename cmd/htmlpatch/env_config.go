package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-htmlpatch/internal/config"
)

const envPrefix = "HTMLPATCH_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without editing the YAML file.
type envConfig struct {
	ConfigPath string // HTMLPATCH_CONFIG: config file name or path
	Root       string // HTMLPATCH_ROOT: site root directory
	Workers    int    // HTMLPATCH_WORKERS: parallel workers
	LogLevel   string // HTMLPATCH_LOG_LEVEL: debug, info, warn, error
	LogFile    string // HTMLPATCH_LOG_FILE: rotating log file path
	SiteName   string // HTMLPATCH_SITE_NAME: og:site_name
	SiteHandle string // HTMLPATCH_SITE_HANDLE: twitter:site
}

// knownEnvVars lists valid HTMLPATCH_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"HTMLPATCH_CONFIG":      true,
	"HTMLPATCH_ROOT":        true,
	"HTMLPATCH_WORKERS":     true,
	"HTMLPATCH_LOG_LEVEL":   true,
	"HTMLPATCH_LOG_FILE":    true,
	"HTMLPATCH_SITE_NAME":   true,
	"HTMLPATCH_SITE_HANDLE": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("HTMLPATCH_CONFIG"),
		Root:       os.Getenv("HTMLPATCH_ROOT"),
		LogLevel:   os.Getenv("HTMLPATCH_LOG_LEVEL"),
		LogFile:    os.Getenv("HTMLPATCH_LOG_FILE"),
		SiteName:   os.Getenv("HTMLPATCH_SITE_NAME"),
		SiteHandle: os.Getenv("HTMLPATCH_SITE_HANDLE"),
	}

	// Invalid or non-positive values are ignored
	if workers := os.Getenv("HTMLPATCH_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized HTMLPATCH_* variable.
// Helps catch typos like HTMLPATCH_WORKER instead of HTMLPATCH_WORKERS.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values over the config file.
// Set variables win over the file; CLI flags are applied afterwards and win
// over both: flags > env > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Root != "" {
		cfg.SetRoot(env.Root)
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
	if env.LogLevel != "" {
		cfg.Logging.Level = env.LogLevel
	}
	if env.LogFile != "" {
		cfg.Logging.File.Path = env.LogFile
	}
	if env.SiteName != "" {
		cfg.Site.Name = env.SiteName
	}
	if env.SiteHandle != "" {
		cfg.Site.Handle = env.SiteHandle
	}
}
