package render

import (
	"fmt"
	"strings"

	"pdf-to-english/internal/ocr"
)

// baseCSS carries the typography and table styling shared by every
// rendered document. Page geometry and image sizing are synthesized per
// document and appended after it.
const baseCSS = `body {
    font-family: "Helvetica Neue", Helvetica, Arial, sans-serif;
    font-size: 10pt;
    line-height: 1.4;
    margin: 0;
}
h1, h2, h3, h4, h5, h6 {
    line-height: 1.2;
}
table {
    border-collapse: collapse;
    width: 100%;
    margin: 8px 0;
}
th, td {
    border: 1px solid #999;
    padding: 4px 6px;
    text-align: left;
    vertical-align: top;
}
img {
    max-width: 100%;
}
hr {
    border: none;
    border-top: 1px solid #ccc;
    margin: 16px 0;
}
pre, code {
    font-family: "Courier New", monospace;
    font-size: 9pt;
}`

// GeneratePageCSS emits the @page rule sizing the output to the source
// document's physical dimensions. Documents whose OCR response carried no
// dimension data fall back to A4 portrait.
func GeneratePageCSS(dims *ocr.PageDimensions) string {
	width, height := 210.0, 297.0
	if dims != nil && dims.WidthMM > 0 && dims.HeightMM > 0 {
		width, height = dims.WidthMM, dims.HeightMM
	}
	return fmt.Sprintf("@page {\n    size: %.1fmm %.1fmm;\n    margin: 10mm;\n}", width, height)
}

// GenerateImageCSS emits one width rule per extracted image, keyed on the
// image's alt text (the OCR image ID), restoring each image to the
// fraction of the page width it occupied in the source document. No
// images means no rules.
func GenerateImageCSS(images []ocr.ImageMetadata) string {
	if len(images) == 0 {
		return ""
	}
	rules := make([]string, 0, len(images))
	for _, img := range images {
		selector := strings.ReplaceAll(img.ImageID, `"`, `\"`)
		rules = append(rules, fmt.Sprintf("img[alt=\"%s\"] {\n    width: %.1f%%;\n    height: auto;\n}", selector, img.WidthPercent))
	}
	return strings.Join(rules, "\n")
}

// WrapWithStyles assembles the full HTML document handed to the renderer:
// base styles, per-document page geometry, per-image width rules, body.
func WrapWithStyles(body string, images []ocr.ImageMetadata, dims *ocr.PageDimensions) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<style>\n")
	sb.WriteString(baseCSS)
	sb.WriteString("\n")
	sb.WriteString(GeneratePageCSS(dims))
	if imageCSS := GenerateImageCSS(images); imageCSS != "" {
		sb.WriteString("\n")
		sb.WriteString(imageCSS)
	}
	sb.WriteString("\n</style>\n</head>\n<body>\n")
	sb.WriteString(body)
	sb.WriteString("\n</body>\n</html>\n")
	return sb.String()
}
