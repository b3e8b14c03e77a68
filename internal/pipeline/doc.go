// Package pipeline implements the two page transformations.
//
// Both stages work on raw markup text, never on a parsed tree, so bytes
// outside an insertion point are preserved exactly:
//   - Metadata injection (Open Graph and Twitter card tags)
//   - ARIA annotation (navigation, menu toggle, overlay, mobile menu)
//
// Every stage is idempotent: running it on its own output is a no-op.
// A missing insertion point is not an error; the input is returned as is.
package pipeline
