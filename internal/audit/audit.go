// Package audit inspects a page and reports which metadata tags and ARIA
// attributes it carries. It parses the document with goquery and never
// modifies it.
package audit

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Status is the outcome of one check.
type Status int

const (
	// Present means the tag or attribute exists.
	Present Status = iota
	// Missing means the region exists but lacks the attribute, or the tag is absent.
	Missing
	// NotApplicable means the page has no markup for the region.
	NotApplicable
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case Present:
		return "ok"
	case Missing:
		return "missing"
	case NotApplicable:
		return "n/a"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Check names, in report order.
const (
	CheckOGTitle       = "og:title"
	CheckOGDescription = "og:description"
	CheckTwitterCard   = "twitter:card"
	CheckMainNav       = "main nav role"
	CheckToggle        = "menu toggle label"
	CheckOverlay       = "overlay hidden"
	CheckMobileNav     = "mobile nav role"
)

// Selectors mirroring the regions the annotator patches.
const (
	mainNavSelector    = `nav[id="site-nav"], nav[class="site-nav"]`
	toggleSelector     = `[class^="hamburger"][onclick="toggleMobileMenu()"]`
	overlaySelector    = `div[class="mobile-overlay"]`
	mobileMenuSelector = `div[class="mobile-menu"][id="mobile-menu"]`
)

// Check is one line of a report.
type Check struct {
	Name   string
	Status Status
}

// Report lists the outcome of every check for one page.
type Report struct {
	Checks []Check
}

// Missing returns the names of checks with status Missing.
func (r *Report) Missing() []string {
	var names []string
	for _, c := range r.Checks {
		if c.Status == Missing {
			names = append(names, c.Name)
		}
	}
	return names
}

// OK reports whether no check is missing.
func (r *Report) OK() bool {
	return len(r.Missing()) == 0
}

// Inspect parses htmlContent and runs every check.
func Inspect(htmlContent string) (*Report, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	r := &Report{}
	r.add(CheckOGTitle, metaStatus(doc, `meta[property="og:title"]`))
	r.add(CheckOGDescription, metaStatus(doc, `meta[property="og:description"]`))
	r.add(CheckTwitterCard, metaStatus(doc, `meta[name="twitter:card"]`))
	r.add(CheckMainNav, regionStatus(doc, mainNavSelector, func(s *goquery.Selection) bool {
		return attrEquals(s, "role", "navigation") && hasAttr(s, "aria-label")
	}))
	r.add(CheckToggle, regionStatus(doc, toggleSelector, func(s *goquery.Selection) bool {
		return hasAttr(s, "aria-label") && hasAttr(s, "aria-expanded")
	}))
	r.add(CheckOverlay, regionStatus(doc, overlaySelector, func(s *goquery.Selection) bool {
		return attrEquals(s, "aria-hidden", "true")
	}))
	r.add(CheckMobileNav, regionStatus(doc, mobileMenuSelector, func(s *goquery.Selection) bool {
		return attrEquals(s, "role", "navigation") && hasAttr(s, "aria-label")
	}))
	return r, nil
}

func (r *Report) add(name string, status Status) {
	r.Checks = append(r.Checks, Check{Name: name, Status: status})
}

// metaStatus reports whether a meta tag with non-empty content exists.
func metaStatus(doc *goquery.Document, selector string) Status {
	found := false
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if content, ok := s.Attr("content"); ok && strings.TrimSpace(content) != "" {
			found = true
			return false
		}
		return true
	})
	if found {
		return Present
	}
	return Missing
}

// regionStatus applies ok to the first element matching selector.
func regionStatus(doc *goquery.Document, selector string, ok func(*goquery.Selection) bool) Status {
	region := doc.Find(selector).First()
	if region.Length() == 0 {
		return NotApplicable
	}
	if ok(region) {
		return Present
	}
	return Missing
}

func hasAttr(s *goquery.Selection, name string) bool {
	v, ok := s.Attr(name)
	return ok && strings.TrimSpace(v) != ""
}

func attrEquals(s *goquery.Selection, name, want string) bool {
	v, ok := s.Attr(name)
	return ok && v == want
}
