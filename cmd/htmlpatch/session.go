package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-htmlpatch/internal/config"
	"github.com/alnah/go-htmlpatch/internal/fileutil"
	"github.com/alnah/go-htmlpatch/internal/hints"
	"github.com/alnah/go-htmlpatch/internal/logger"
)

// Sentinel errors for CLI operations.
var (
	ErrUnknownCommand     = errors.New("unknown command")
	ErrUnknownPage        = errors.New("page is not in the config")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrRootNotFound       = errors.New("site root not found")
)

// session is the resolved state shared by commands that read pages:
// merged configuration, site root, selected pages and logger.
type session struct {
	cfg   *config.Config
	root  string
	pages []config.PageConfig
	log   *logger.Logger
}

// openSession loads the config and applies env and flag overrides in order,
// then resolves the root and the pages named in pageArgs (all when empty).
// The caller must Close the session.
func openSession(common *commonFlags, target *targetFlags, site *siteFlags, pageArgs []string, env *Environment) (*session, error) {
	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	cfg, err := loadConfig(common.config, envCfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	// flags > env > config file > defaults
	applyEnvConfig(envCfg, cfg)
	mergeTargetFlags(target, site, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	root := cfg.ResolveRoot()
	if !fileutil.DirExists(root) {
		return nil, fmt.Errorf("%w: %s%s", ErrRootNotFound, root, hints.ForRootNotFound(root))
	}

	pages, err := selectPages(cfg, pageArgs)
	if err != nil {
		return nil, err
	}

	log, err := newRunLogger(cfg.Logging, common, env)
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, root: root, pages: pages, log: log}, nil
}

// Close flushes and closes the logger.
func (s *session) Close() error {
	return s.log.Close()
}

// pagePath returns the filesystem path of a page under the site root.
func (s *session) pagePath(p config.PageConfig) string {
	return filepath.Join(s.root, filepath.FromSlash(p.File))
}

// loadConfig loads the config named by the flag, or by HTMLPATCH_CONFIG.
// A page table is required, so running without any config is an error.
func loadConfig(flagPath, envPath string) (*config.Config, error) {
	nameOrPath := flagPath
	if nameOrPath == "" {
		nameOrPath = envPath
	}
	if nameOrPath == "" {
		return nil, fmt.Errorf("%w%s", config.ErrNoPages, hints.ForNoPages(""))
	}

	cfg, err := config.LoadConfig(nameOrPath)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrConfigNotFound):
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(userConfigCandidates(nameOrPath)))
		case errors.Is(err, config.ErrNoPages):
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForNoPages(nameOrPath))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// userConfigCandidates returns the user config path searched for a bare name.
func userConfigCandidates(nameOrPath string) []string {
	if config.IsFilePath(nameOrPath) {
		return nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, "htmlpatch", nameOrPath+".yaml")}
}

// mergeTargetFlags applies non-empty flag values over cfg.
func mergeTargetFlags(target *targetFlags, site *siteFlags, cfg *config.Config) {
	if target.root != "" {
		cfg.SetRoot(target.root)
	}
	if target.logLevel != "" {
		cfg.Logging.Level = target.logLevel
	}
	if target.logFile != "" {
		cfg.Logging.File.Path = target.logFile
	}

	if site == nil {
		return
	}
	if site.name != "" {
		cfg.Site.Name = site.name
	}
	if site.handle != "" {
		cfg.Site.Handle = site.handle
	}
}

// selectPages returns the configured pages named in args, in argument order.
// With no args every configured page is selected.
func selectPages(cfg *config.Config, args []string) ([]config.PageConfig, error) {
	if len(args) == 0 {
		return cfg.Pages, nil
	}

	pages := make([]config.PageConfig, 0, len(args))
	for _, arg := range args {
		p, ok := cfg.Page(arg)
		if !ok {
			known := make([]string, 0, len(cfg.Pages))
			for _, kp := range cfg.Pages {
				known = append(known, kp.File)
			}
			return nil, fmt.Errorf("%w: %s%s", ErrUnknownPage, arg, hints.ForUnknownPage(known))
		}
		pages = append(pages, p)
	}
	return pages, nil
}

// newRunLogger builds the diagnostic logger. --verbose forces debug and
// --quiet limits console and file output to errors.
func newRunLogger(cfg config.LoggingConfig, common *commonFlags, env *Environment) (*logger.Logger, error) {
	log, err := logger.New(logger.Options{
		Level:  cfg.Level,
		Format: cfg.Format,
		Output: env.Stderr,
		File: logger.FileOptions{
			Path:       cfg.File.Path,
			Format:     cfg.Format,
			MaxSize:    cfg.File.MaxSize,
			MaxAge:     cfg.File.MaxAge,
			MaxBackups: cfg.File.MaxBackups,
			Compress:   cfg.File.Compress,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidLogging, err)
	}

	switch {
	case common.verbose:
		log.SetLevel(logger.LevelDebug)
	case common.quiet:
		log.SetLevel(logger.LevelError)
	}
	return log, nil
}
