// Package htmlpatch adds social metadata and accessibility attributes to
// existing HTML pages.
//
// # Quick Start
//
// Create a service and patch a page:
//
//	svc := htmlpatch.New(htmlpatch.WithSite(htmlpatch.Site{
//	    Name:   "ClawCypher",
//	    Handle: "@ClawCypher",
//	}))
//
//	result, err := svc.Patch(ctx, htmlpatch.Input{
//	    HTML: string(content),
//	    Page: htmlpatch.Page{
//	        File:        "store.html",
//	        Title:       "ClawCypher.com | Store",
//	        Description: "Credits store for ClawCypher.",
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if result.Changed() {
//	    os.WriteFile("store.html", []byte(result.HTML), 0644)
//	}
//
// # Patch Stages
//
// Patching runs two stages on the raw page text:
//
//  1. Metadata injection: og:title, og:description, og:type, og:site_name,
//     twitter:card and twitter:site tags. The block goes between an indented
//     "</script>" line and the "<style>" line that follows it, or before
//     "</head>" when that seam is missing.
//  2. ARIA annotation: role and aria-label on the site navigation and the
//     mobile menu, aria-label and aria-expanded on the menu toggle,
//     aria-hidden on the overlay.
//
// Both stages are idempotent. A page that lacks an insertion point is returned
// unchanged; that is not an error.
//
// # Concurrency
//
// A Service holds no per-page state and is safe for concurrent use, so a
// batch of pages can be patched in parallel with a single Service.
package htmlpatch
