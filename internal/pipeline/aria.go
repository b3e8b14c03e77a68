package pipeline

import (
	"context"
	"html"
	"regexp"
	"strings"
)

// Default labels written by the annotator.
const (
	DefaultMainNavLabel   = "Main navigation"
	DefaultMobileNavLabel = "Mobile navigation"
	DefaultToggleLabel    = "Toggle menu"
)

const (
	navigationRole = `role="navigation"`
	hiddenFlag     = `aria-hidden="true"`
	overlayMarker  = "mobile-overlay"
	mobileMarker   = "mobile-menu"
)

// Opening-tag patterns for each region. Every pattern ends on the tag's
// closing '>' so attributes can be spliced in just before it.
var (
	mainNavPatterns = []*regexp.Regexp{
		regexp.MustCompile(`<nav\b[^>]*\sid="site-nav"[^>]*>`),
		regexp.MustCompile(`<nav\b[^>]*\sclass="site-nav"[^>]*>`),
	}
	togglePattern     = regexp.MustCompile(`<[a-zA-Z][a-zA-Z0-9]*\b[^>]*\sclass="hamburger[^"]*"[^>]*\sonclick="toggleMobileMenu\(\)"[^>]*>`)
	overlayPattern    = regexp.MustCompile(`<div\b[^>]*\sclass="mobile-overlay"[^>]*>`)
	mobileMenuPattern = regexp.MustCompile(`<div\b[^>]*(?:\sclass="mobile-menu"[^>]*\sid="mobile-menu"|\sid="mobile-menu"[^>]*\sclass="mobile-menu")[^>]*>`)
)

// ARIALabels holds the descriptive labels written by the annotator.
type ARIALabels struct {
	MainNav   string
	MobileNav string
	Toggle    string
}

// AccessibilityAnnotator defines the contract for ARIA annotation of HTML.
type AccessibilityAnnotator interface {
	Annotate(ctx context.Context, htmlContent string) string
}

// ARIAAnnotation adds navigation roles, labels and hidden flags to the
// navigation, menu toggle, overlay and mobile menu regions of a page.
type ARIAAnnotation struct {
	labels ARIALabels
}

// NewARIAAnnotation creates an annotator. Empty labels fall back to defaults.
func NewARIAAnnotation(labels ARIALabels) *ARIAAnnotation {
	if labels.MainNav == "" {
		labels.MainNav = DefaultMainNavLabel
	}
	if labels.MobileNav == "" {
		labels.MobileNav = DefaultMobileNavLabel
	}
	if labels.Toggle == "" {
		labels.Toggle = DefaultToggleLabel
	}
	return &ARIAAnnotation{labels: labels}
}

// Annotate applies each region rule independently, first match only.
// A region whose markup is absent is left alone.
func (a *ARIAAnnotation) Annotate(ctx context.Context, htmlContent string) string {
	// Check for cancellation
	if ctx.Err() != nil {
		return htmlContent
	}

	htmlContent = a.annotateMainNav(htmlContent)
	htmlContent = a.annotateToggle(htmlContent)
	htmlContent = annotateOverlay(htmlContent)
	htmlContent = a.annotateMobileMenu(htmlContent)
	return htmlContent
}

// annotateMainNav labels the primary <nav>, unless any navigation role exists.
func (a *ARIAAnnotation) annotateMainNav(content string) string {
	if strings.Contains(content, navigationRole) {
		return content
	}

	attrs := " " + navigationRole + ` aria-label="` + html.EscapeString(a.labels.MainNav) + `"`
	for _, p := range mainNavPatterns {
		if loc := p.FindStringIndex(content); loc != nil {
			return insertBeforeTagEnd(content, loc, attrs)
		}
	}
	return content
}

// annotateToggle labels the hamburger control, unless its label already exists.
func (a *ARIAAnnotation) annotateToggle(content string) string {
	label := `aria-label="` + html.EscapeString(a.labels.Toggle) + `"`
	if strings.Contains(content, label) {
		return content
	}

	loc := togglePattern.FindStringIndex(content)
	if loc == nil {
		return content
	}
	return insertBeforeTagEnd(content, loc, " "+label+` aria-expanded="false"`)
}

// annotateOverlay hides the overlay from assistive technology.
func annotateOverlay(content string) string {
	if !strings.Contains(content, overlayMarker) || strings.Contains(content, hiddenFlag) {
		return content
	}

	loc := overlayPattern.FindStringIndex(content)
	if loc == nil {
		return content
	}
	return insertBeforeTagEnd(content, loc, " "+hiddenFlag)
}

// annotateMobileMenu gives the mobile menu its own navigation role.
// The role guard looks only at the menu's opening tag, not the whole document.
func (a *ARIAAnnotation) annotateMobileMenu(content string) string {
	if !strings.Contains(content, mobileMarker) {
		return content
	}

	loc := mobileMenuPattern.FindStringIndex(content)
	if loc == nil {
		return content
	}
	if strings.Contains(content[loc[0]:loc[1]], navigationRole) {
		return content
	}

	attrs := " " + navigationRole + ` aria-label="` + html.EscapeString(a.labels.MobileNav) + `"`
	return insertBeforeTagEnd(content, loc, attrs)
}

// insertBeforeTagEnd splices attrs in front of the '>' that ends the match.
func insertBeforeTagEnd(content string, loc []int, attrs string) string {
	end := loc[1] - 1
	return content[:end] + attrs + content[end:]
}
