package htmlpatch

import (
	"fmt"
	"strings"
)

// Twitter card types.
const (
	CardSummary           = "summary"
	CardSummaryLargeImage = "summary_large_image"
	CardApp               = "app"
	CardPlayer            = "player"
)

// DefaultContentType is the og:type written when Site.Type is empty.
const DefaultContentType = "website"

// Page identifies one document and the metadata written into it.
type Page struct {
	File        string // path relative to the site root
	Title       string
	Description string
}

// Site holds the values shared by every page of a site.
type Site struct {
	Name   string // og:site_name (empty = omitted)
	Handle string // twitter:site, e.g. "@ClawCypher" (empty = omitted)
	Card   string // twitter:card (default: "summary")
	Type   string // og:type (default: "website")
}

// DefaultSite returns a site with the default card and content type.
func DefaultSite() Site {
	return Site{
		Card: CardSummary,
		Type: DefaultContentType,
	}
}

// Validate checks that the card type and handle are valid.
// Empty card and type are accepted; New fills them with defaults.
func (s Site) Validate() error {
	if s.Card != "" && !isValidCard(s.Card) {
		return fmt.Errorf("%w: %q (must be summary, summary_large_image, app, or player)", ErrInvalidCard, s.Card)
	}
	if s.Handle != "" && (!strings.HasPrefix(s.Handle, "@") || len(s.Handle) < 2 || strings.ContainsAny(s.Handle, " \t\n\"")) {
		return fmt.Errorf("%w: %q (must start with @ and contain no spaces or quotes)", ErrInvalidHandle, s.Handle)
	}
	return nil
}

// isValidCard checks if card is a known twitter card type.
func isValidCard(card string) bool {
	switch card {
	case CardSummary, CardSummaryLargeImage, CardApp, CardPlayer:
		return true
	}
	return false
}

// Labels holds the accessible names written by the ARIA stage.
// Empty fields use the defaults: "Main navigation", "Mobile navigation"
// and "Toggle menu".
type Labels struct {
	MainNav   string
	MobileNav string
	Toggle    string
}

// Input contains the page content and its metadata.
type Input struct {
	HTML string // required
	Page Page   // Title required, Description optional
}

// Result holds the patched page and what changed.
type Result struct {
	HTML             string
	MetadataInjected bool // metadata block was added
	Annotated        bool // at least one ARIA attribute was added
}

// Changed reports whether the page differs from the input.
func (r *Result) Changed() bool {
	return r.MetadataInjected || r.Annotated
}
