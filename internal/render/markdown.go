// Package render turns translated markdown back into a PDF: markdown to
// HTML, synthesized print CSS from the OCR geometry, and an external
// HTML-to-PDF renderer driven over stdin.
package render

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"pdf-to-english/internal/types"
)

// MarkdownToHTML converts markdown to an HTML body fragment. Raw HTML
// passthrough is enabled so embedded tables (with rowspan/colspan) and
// data-URI images survive conversion unchanged.
func MarkdownToHTML(markdown string) (string, error) {
	md := goldmark.New(
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", types.NewAppError(types.ErrRender, "markdown conversion failed", err)
	}
	return buf.String(), nil
}
