package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// storePage has every anchor both stages look for.
const storePage = `<!DOCTYPE html>
<html>
<head>
    <title>Store</title>
    <script>
    </script>
    <style>
    </style>
</head>
<body>
<nav id="site-nav">
  <div class="hamburger" onclick="toggleMobileMenu()"></div>
</nav>
<div class="mobile-overlay"></div>
<div class="mobile-menu" id="mobile-menu"></div>
</body>
</html>
`

// plainPage has a head but no navigation regions.
const plainPage = "<html><head><title>Terms</title></head><body><p>terms</p></body></html>\n"

const siteConfig = `root: site
site:
  name: ClawCypher
  handle: "@ClawCypher"
pages:
  - file: store.html
    title: "ClawCypher.com | Store"
    description: "Credits store for ClawCypher."
  - file: terms.html
    title: "ClawCypher.com | Terms"
    description: "Terms of service."
  - file: missing.html
    title: "ClawCypher.com | Missing"
`

// testEnv returns an Environment writing to buffers.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &Environment{
		Now:    func() time.Time { return time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC) },
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

// writeSite creates dir/site with store.html and terms.html and a config
// at dir/htmlpatch.yaml. It returns the config path.
func writeSite(t *testing.T, dir string) string {
	t.Helper()

	siteDir := filepath.Join(dir, "site")
	if err := os.MkdirAll(siteDir, 0o750); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(siteDir, "store.html"), storePage)
	writeFile(t, filepath.Join(siteDir, "terms.html"), plainPage)

	configPath := filepath.Join(dir, "htmlpatch.yaml")
	writeFile(t, configPath, siteConfig)
	return configPath
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
