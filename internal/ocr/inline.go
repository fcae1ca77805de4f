package ocr

import (
	"fmt"
	"regexp"
	"strings"
)

// InlineTables replaces link-style table placeholders with their HTML content.
//
// The OCR service emits tables out of band and leaves a placeholder of the
// form [tbl-0.html](tbl-0.html) in the page markdown. Table IDs are
// controlled filename-like tokens, so plain substring replacement is enough.
// A table whose ID never occurs in the markdown is a no-op.
func InlineTables(markdown string, tables []apiTable) string {
	result := markdown
	for _, table := range tables {
		placeholder := fmt.Sprintf("[%s](%s)", table.ID, table.ID)
		result = strings.ReplaceAll(result, placeholder, table.Content)
	}
	return result
}

// InlineImages replaces image-style placeholders with base64 data URIs.
//
// Placeholders look like ![img-0.jpeg](img-0.jpeg) and become
// ![img-0.jpeg](data:image/jpeg;base64,...). The alt text is kept verbatim
// so the render stage can key its sizing CSS off it. Image IDs may contain
// regexp metacharacters ('.', '-', parentheses), so the ID is quoted before
// the match pattern is built.
func InlineImages(markdown string, images []apiImage) string {
	result := markdown
	for _, image := range images {
		escaped := regexp.QuoteMeta(image.ID)
		pattern, err := regexp.Compile(`!\[` + escaped + `\]\(` + escaped + `\)`)
		if err != nil {
			// QuoteMeta makes this unreachable; skip rather than fail the page.
			continue
		}
		replacement := fmt.Sprintf("![%s](%s)", image.ID, image.ImageBase64)
		result = pattern.ReplaceAllLiteralString(result, replacement)
	}
	return result
}
