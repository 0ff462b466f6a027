// Package generic implements a providers.Source for novel sites whose
// table of contents and chapter pages can be described by a BookRule of
// CSS selectors. Pages without a content selector fall back to
// readability extraction.
package generic
