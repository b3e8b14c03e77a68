package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// validConfig returns a config that passes validation.
func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Pages = []PageConfig{
		{File: "store.html", Title: "ClawCypher.com | Store", Description: "Credits store."},
		{File: "blog/post.htm", Title: "Post"},
	}
	return cfg
}

// writeConfig writes content to dir/name and returns the path.
func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Root != "." {
		t.Errorf("Root = %q, want %q", cfg.Root, ".")
	}
	if cfg.Site.Card != "summary" {
		t.Errorf("Site.Card = %q, want %q", cfg.Site.Card, "summary")
	}
	if cfg.Site.Type != "website" {
		t.Errorf("Site.Type = %q, want %q", cfg.Site.Type, "website")
	}
	if len(cfg.Pages) != 0 {
		t.Errorf("Pages = %d entries, want 0", len(cfg.Pages))
	}
	if cfg.Logging.Level != LogLevelInfo || cfg.Logging.Format != LogFormatConsole {
		t.Errorf("Logging = %+v, want info/console", cfg.Logging)
	}
	if cfg.Logging.File.Path != "" {
		t.Errorf("Logging.File.Path = %q, want empty", cfg.Logging.File.Path)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", value: "", maxLength: 10},
		{name: "value at limit is valid", value: "1234567890", maxLength: 10},
		{name: "value over limit returns error", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate - Page table, fields, logging
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(c *Config)
		wantErr    error
		wantErrMsg string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "no pages",
			mutate:  func(c *Config) { c.Pages = nil },
			wantErr: ErrNoPages,
		},
		{
			name:       "empty file",
			mutate:     func(c *Config) { c.Pages[0].File = "" },
			wantErr:    ErrInvalidPage,
			wantErrMsg: "pages[0].file",
		},
		{
			name:    "absolute file",
			mutate:  func(c *Config) { c.Pages[0].File = "/etc/x.html" },
			wantErr: ErrInvalidPage,
		},
		{
			name:    "parent traversal",
			mutate:  func(c *Config) { c.Pages[1].File = "../x.html" },
			wantErr: ErrInvalidPage,
		},
		{
			name:       "non-html file",
			mutate:     func(c *Config) { c.Pages[0].File = "notes.md" },
			wantErr:    ErrInvalidPage,
			wantErrMsg: ".html or .htm",
		},
		{
			name:       "toggle label equals main nav label",
			mutate:     func(c *Config) { c.Labels = LabelsConfig{MainNav: "Menu", Toggle: "Menu"} },
			wantErr:    ErrInvalidLabels,
			wantErrMsg: "labels.mainNav",
		},
		{
			name:       "toggle label equals default mobile nav label",
			mutate:     func(c *Config) { c.Labels.Toggle = "Mobile navigation" },
			wantErr:    ErrInvalidLabels,
			wantErrMsg: "labels.mobileNav",
		},
		{
			name:   "distinct custom labels",
			mutate: func(c *Config) { c.Labels = LabelsConfig{MainNav: "Site", MobileNav: "Phone", Toggle: "Main navigation"} },
		},
		{
			name: "duplicate file after cleaning",
			mutate: func(c *Config) {
				c.Pages = append(c.Pages, PageConfig{File: "./store.html", Title: "Again"})
			},
			wantErr:    ErrInvalidPage,
			wantErrMsg: "duplicates pages[0]",
		},
		{
			name:       "blank title",
			mutate:     func(c *Config) { c.Pages[0].Title = "   " },
			wantErr:    ErrInvalidPage,
			wantErrMsg: "title is required",
		},
		{
			name:    "title too long",
			mutate:  func(c *Config) { c.Pages[0].Title = strings.Repeat("t", MaxTitleLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "description too long",
			mutate:  func(c *Config) { c.Pages[0].Description = strings.Repeat("d", MaxDescriptionLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "site name too long",
			mutate:  func(c *Config) { c.Site.Name = strings.Repeat("n", MaxSiteNameLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "label too long",
			mutate:  func(c *Config) { c.Labels.Toggle = strings.Repeat("l", MaxLabelLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:       "negative workers",
			mutate:     func(c *Config) { c.Workers = -1 },
			wantErrMsg: "workers",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: ErrInvalidLogging,
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: ErrInvalidLogging,
		},
		{
			name:   "log level is case-insensitive",
			mutate: func(c *Config) { c.Logging.Level = "DEBUG" },
		},
		{
			name:    "negative rotation",
			mutate:  func(c *Config) { c.Logging.File.MaxAge = -1 },
			wantErr: ErrInvalidLogging,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil && tt.wantErrMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErrMsg != "" && !strings.Contains(err.Error(), tt.wantErrMsg) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantErrMsg)
			}
		})
	}
}

func TestConfig_Page(t *testing.T) {
	cfg := validConfig()

	tests := []struct {
		file      string
		wantTitle string
		wantOK    bool
	}{
		{file: "store.html", wantTitle: "ClawCypher.com | Store", wantOK: true},
		{file: "./store.html", wantTitle: "ClawCypher.com | Store", wantOK: true},
		{file: "blog/post.htm", wantTitle: "Post", wantOK: true},
		{file: "missing.html", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			p, ok := cfg.Page(tt.file)
			if ok != tt.wantOK {
				t.Fatalf("Page(%q) ok = %v, want %v", tt.file, ok, tt.wantOK)
			}
			if p.Title != tt.wantTitle {
				t.Errorf("Page(%q).Title = %q, want %q", tt.file, p.Title, tt.wantTitle)
			}
		})
	}
}

func TestConfig_ResolveRoot(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "site")

	tests := []struct {
		name string
		cfg  *Config
		want string
	}{
		{name: "empty root", cfg: &Config{}, want: "."},
		{name: "relative without config dir", cfg: &Config{Root: "./site/"}, want: "site"},
		{name: "relative to config dir", cfg: &Config{Root: "site", dir: filepath.Join("etc", "htmlpatch")}, want: filepath.Join("etc", "htmlpatch", "site")},
		{name: "absolute ignores config dir", cfg: &Config{Root: abs, dir: "elsewhere"}, want: abs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.ResolveRoot(); got != tt.want {
				t.Errorf("ResolveRoot() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("SetRoot clears config dir", func(t *testing.T) {
		cfg := &Config{Root: "site", dir: "conf"}
		cfg.SetRoot("public")
		if got := cfg.ResolveRoot(); got != "public" {
			t.Errorf("ResolveRoot() = %q, want %q", got, "public")
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File loading and resolution
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		dir := t.TempDir()
		configPath := writeConfig(t, dir, "site.yaml", `root: public
site:
  name: ClawCypher
  handle: "@ClawCypher"
labels:
  toggle: Open menu
pages:
  - file: terms.html
    title: "ClawCypher.com | Terms & Privacy"
    description: Terms of service and privacy policy for ClawCypher.
logging:
  level: debug
`)

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Site.Name != "ClawCypher" || cfg.Site.Handle != "@ClawCypher" {
			t.Errorf("Site = %+v", cfg.Site)
		}
		if cfg.Site.Card != "summary" {
			t.Errorf("Site.Card = %q, want default %q", cfg.Site.Card, "summary")
		}
		if cfg.Labels.Toggle != "Open menu" {
			t.Errorf("Labels.Toggle = %q, want %q", cfg.Labels.Toggle, "Open menu")
		}
		if len(cfg.Pages) != 1 || cfg.Pages[0].Title != "ClawCypher.com | Terms & Privacy" {
			t.Errorf("Pages = %+v", cfg.Pages)
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
		}
		if cfg.Logging.File.MaxSize != 10 {
			t.Errorf("Logging.File.MaxSize = %d, want default 10", cfg.Logging.File.MaxSize)
		}
		if got, want := cfg.ResolveRoot(), filepath.Join(dir, "public"); got != want {
			t.Errorf("ResolveRoot() = %q, want %q", got, want)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		configPath := writeConfig(t, t.TempDir(), "invalid.yaml", "pages: [unclosed")
		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		configPath := writeConfig(t, t.TempDir(), "typo.yaml", "roots: public\npages:\n  - file: a.html\n    title: A\n")
		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("validation runs after parsing", func(t *testing.T) {
		configPath := writeConfig(t, t.TempDir(), "nopages.yaml", "root: public\n")
		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrNoPages) {
			t.Errorf("error = %v, want ErrNoPages", err)
		}
	})

	t.Run("config name not found lists tried paths", func(t *testing.T) {
		_, err := LoadConfig("htmlpatch-test-missing-name")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "htmlpatch-test-missing-name.yaml") {
			t.Errorf("error should list tried paths, got %q", err.Error())
		}
	})
}

func TestLoadConfig_ByName(t *testing.T) {
	// Not parallel: changes the working directory.
	dir := t.TempDir()
	writeConfig(t, dir, "mysite.yml", "pages:\n  - file: index.html\n    title: Home\n")
	t.Chdir(dir)

	cfg, err := LoadConfig("mysite")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if len(cfg.Pages) != 1 || cfg.Pages[0].File != "index.html" {
		t.Errorf("Pages = %+v", cfg.Pages)
	}
}

func TestLoadConfig_BareFileName(t *testing.T) {
	// Not parallel: changes the working directory.
	dir := t.TempDir()
	writeConfig(t, dir, "htmlpatch.yaml", "pages:\n  - file: index.html\n    title: Home\n")
	t.Chdir(dir)

	cfg, err := LoadConfig("htmlpatch.yaml")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if got := cfg.ResolveRoot(); got != "." {
		t.Errorf("ResolveRoot() = %q, want %q", got, ".")
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"clawcypher", false},
		{"site.v2", false},
		{"htmlpatch.yaml", true},
		{"htmlpatch.yml", true},
		{"SITE.YAML", true},
		{"./site", true},
		{"conf/site.yaml", true},
		{`conf\site`, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := IsFilePath(tt.input); got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig_ClawCypher - Shipped page table
// ---------------------------------------------------------------------------

func TestLoadConfig_ClawCypher(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join("..", "..", "configs", "clawcypher.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if len(cfg.Pages) != 15 {
		t.Errorf("len(Pages) = %d, want 15", len(cfg.Pages))
	}
	if cfg.Site.Name != "ClawCypher" || cfg.Site.Handle != "@ClawCypher" {
		t.Errorf("Site = %+v", cfg.Site)
	}

	terms, ok := cfg.Page("terms.html")
	if !ok {
		t.Fatal("terms.html not found")
	}
	if terms.Title != "ClawCypher.com | Terms & Privacy" {
		t.Errorf("terms.html Title = %q", terms.Title)
	}
}
