package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	htmlpatch "github.com/alnah/go-htmlpatch"
	"github.com/alnah/go-htmlpatch/internal/config"
	"github.com/alnah/go-htmlpatch/internal/fileutil"
	"github.com/alnah/go-htmlpatch/internal/hints"
	"github.com/alnah/go-htmlpatch/internal/yamlutil"
)

const defaultInitOutput = "htmlpatch.yaml"

// Sentinel errors for init.
var (
	ErrConfigExists = errors.New("config file already exists")
	ErrWriteConfig  = errors.New("failed to write config file")
)

// runInit scans a site root for pages and writes a starter config whose
// page table is filled from each page's <title> and meta description.
func runInit(args []string, flags *initFlags, env *Environment) error {
	root := flags.root
	if len(args) > 0 {
		root = args[0]
	}
	if !fileutil.DirExists(root) {
		return fmt.Errorf("%w: %s%s", ErrRootNotFound, root, hints.ForRootNotFound(root))
	}
	if fileutil.FileExists(flags.output) && !flags.force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, flags.output)
	}

	site := htmlpatch.Site{Name: flags.site.name, Handle: flags.site.handle}
	if err := site.Validate(); err != nil {
		return err
	}

	pages, err := discoverPages(root)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", root, err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("%w: no .html files under %s", config.ErrNoPages, root)
	}

	cfg := config.DefaultConfig()
	cfg.Root = relativeRoot(flags.output, root)
	cfg.Site.Name = site.Name
	cfg.Site.Handle = site.Handle
	cfg.Pages = pages
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yamlutil.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := fileutil.WriteFileAtomic(flags.output, data); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteConfig, err)
	}

	if !flags.quiet {
		fmt.Fprintf(env.Stdout, "Created %s (%d pages)\n", flags.output, len(pages))
	}
	return nil
}

// discoverPages walks root in lexical order and returns one entry per HTML
// file. Hidden directories are skipped.
func discoverPages(root string) ([]config.PageConfig, error) {
	var pages []config.PageConfig

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !fileutil.HasHTMLExtension(path) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		page, err := readPageMetadata(path)
		if err != nil {
			return err
		}
		page.File = filepath.ToSlash(rel)
		if page.Title == "" {
			page.Title = strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		}
		pages = append(pages, page)
		return nil
	})

	return pages, err
}

// readPageMetadata extracts the document title and meta description.
func readPageMetadata(path string) (config.PageConfig, error) {
	f, err := os.Open(path) // #nosec G304 -- path from directory walk
	if err != nil {
		return config.PageConfig{}, err
	}
	defer func() { _ = f.Close() }()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return config.PageConfig{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	description, _ := doc.Find(`meta[name="description"]`).First().Attr("content")

	return config.PageConfig{
		Title:       truncate(title, config.MaxTitleLength),
		Description: truncate(strings.TrimSpace(description), config.MaxDescriptionLength),
	}, nil
}

// truncate shortens s to at most maxLen bytes on a rune boundary.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	s = s[:maxLen]
	for !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}

// relativeRoot expresses root relative to the directory of the config file,
// which is how LoadConfig resolves it.
func relativeRoot(configPath, root string) string {
	absConfig, err := filepath.Abs(configPath)
	if err != nil {
		return root
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return root
	}
	rel, err := filepath.Rel(filepath.Dir(absConfig), absRoot)
	if err != nil {
		return filepath.ToSlash(absRoot)
	}
	return filepath.ToSlash(rel)
}
