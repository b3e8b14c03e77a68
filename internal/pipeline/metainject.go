package pipeline

import (
	"context"
	"html"
	"regexp"
	"strings"
)

// metadataMarker is present in any document that already carries the block.
const metadataMarker = "og:title"

// seamPattern matches the preferred insertion point: an indented script
// close directly followed by an indented style open, with LF or CRLF line
// ends. The block goes between them, right after the first line end.
var seamPattern = regexp.MustCompile(`    </script>(\r?\n)    <style>`)

// headClosePattern matches </head> in any letter case. Offsets are taken
// from the original text, never a lowered copy.
var headClosePattern = regexp.MustCompile(`(?i)</head>`)

// MetadataData holds the values rendered into the social metadata block.
type MetadataData struct {
	Title       string
	Description string
	Type        string // og:type, e.g. "website"
	SiteName    string // og:site_name, omitted when empty
	Card        string // twitter:card, e.g. "summary"
	Handle      string // twitter:site, omitted when empty
}

// MetadataInjector defines the contract for metadata injection into HTML.
type MetadataInjector interface {
	InjectMetadata(ctx context.Context, htmlContent string, data *MetadataData) string
}

// MetadataInjection injects Open Graph and Twitter card tags into HTML content.
type MetadataInjection struct{}

// NewMetadataInjection creates a new metadata injector.
func NewMetadataInjection() *MetadataInjection {
	return &MetadataInjection{}
}

// InjectMetadata inserts the metadata block into htmlContent.
// Documents that already contain og:title are returned unchanged.
// Tries the script/style seam first, then </head>. If neither exists the
// document is returned unchanged.
func (m *MetadataInjection) InjectMetadata(ctx context.Context, htmlContent string, data *MetadataData) string {
	if data == nil {
		return htmlContent
	}

	// Check for cancellation
	if ctx.Err() != nil {
		return htmlContent
	}

	if strings.Contains(htmlContent, metadataMarker) {
		return htmlContent
	}

	block := buildMetadataBlock(data, lineEnding(htmlContent))

	// Try the seam between </script> and <style>
	if loc := seamPattern.FindStringSubmatchIndex(htmlContent); loc != nil {
		insertPos := loc[3]
		return htmlContent[:insertPos] + block + htmlContent[insertPos:]
	}

	// Fallback: before </head>
	if loc := headClosePattern.FindStringIndex(htmlContent); loc != nil {
		return htmlContent[:loc[0]] + block + htmlContent[loc[0]:]
	}

	return htmlContent
}

// lineEnding returns "\r\n" for documents that use CRLF, "\n" otherwise.
func lineEnding(content string) string {
	if strings.Contains(content, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// buildMetadataBlock renders one indented tag per line, each ended by eol.
// Values are escaped for use inside double-quoted attributes.
func buildMetadataBlock(data *MetadataData, eol string) string {
	var buf strings.Builder

	writeMeta := func(attr, key, value string) {
		buf.WriteString(`    <meta `)
		buf.WriteString(attr)
		buf.WriteString(`="`)
		buf.WriteString(key)
		buf.WriteString(`" content="`)
		buf.WriteString(html.EscapeString(value))
		buf.WriteString(`">`)
		buf.WriteString(eol)
	}

	writeMeta("property", "og:title", data.Title)
	writeMeta("property", "og:description", data.Description)
	writeMeta("property", "og:type", data.Type)
	if data.SiteName != "" {
		writeMeta("property", "og:site_name", data.SiteName)
	}
	writeMeta("name", "twitter:card", data.Card)
	if data.Handle != "" {
		writeMeta("name", "twitter:site", data.Handle)
	}

	return buf.String()
}
