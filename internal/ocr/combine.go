package ocr

import (
	"sort"
	"strings"
)

// PageSeparator is the page-boundary marker inserted between consecutive
// pages when the document markdown is assembled.
const PageSeparator = "\n\n---\n\n"

// CombinePages joins per-page markdown into one document, pages sorted by
// index ascending and separated by PageSeparator. A single page is returned
// verbatim; zero pages produce an empty string.
func CombinePages(pages []Page) string {
	if len(pages) == 0 {
		return ""
	}

	sorted := make([]Page, len(pages))
	copy(sorted, pages)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Index < sorted[j].Index
	})

	parts := make([]string, len(sorted))
	for i, page := range sorted {
		parts[i] = page.Markdown
	}
	return strings.Join(parts, PageSeparator)
}
