package translate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"pdf-to-english/internal/types"
)

// tokenPrefix is the prefix of the placeholder tokens that stand in for
// stripped data URIs while the document is with the translation service.
const tokenPrefix = "IMG_PLACEHOLDER_"

// dataURIImagePattern matches markdown image syntax whose target is an
// inline data URI. Images pointing at regular URLs or relative paths do
// not match and pass through untouched.
var dataURIImagePattern = regexp.MustCompile(`!\[([^\]]*)\]\((data:image/[^)]+)\)`)

// StripImages removes base64 image data URIs from markdown before it is
// handed to the text-rewriting translation service, replacing each with a
// unique placeholder token. Tokens are sequential and local to one call:
// IMG_PLACEHOLDER_0, IMG_PLACEHOLDER_1, ... Matching is positional, so
// duplicate alt texts are handled correctly.
//
// Returns the stripped markdown and the token-to-data-URI mapping that
// RestoreImages consumes.
func StripImages(markdown string) (string, map[string]string) {
	images := make(map[string]string)
	counter := 0

	stripped := dataURIImagePattern.ReplaceAllStringFunc(markdown, func(match string) string {
		sub := dataURIImagePattern.FindStringSubmatch(match)
		altText, dataURI := sub[1], sub[2]
		token := fmt.Sprintf("%s%d", tokenPrefix, counter)
		images[token] = dataURI
		counter++
		return "![" + altText + "](" + token + ")"
	})

	return stripped, images
}

// RestoreImages reverses StripImages after translation: every literal
// occurrence of "](token)" becomes "](data-uri)". The substitution is
// position-independent text replacement, not anchored to image syntax:
// if a token string coincidentally reappears elsewhere in the translated
// text it is replaced too (a documented trade-off).
//
// A token whose "](token)" form is absent from the markdown means the
// translation service altered or dropped it; that is a shield fault and
// is reported as an error rather than silently ignored.
func RestoreImages(markdown string, images map[string]string) (string, error) {
	result := markdown
	var missing []string

	for token, dataURI := range images {
		needle := "](" + token + ")"
		if !strings.Contains(result, needle) {
			missing = append(missing, token)
			continue
		}
		result = strings.ReplaceAll(result, needle, "]("+dataURI+")")
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return "", types.NewAppErrorWithDetails(
			types.ErrTranslation,
			"image placeholder tokens were lost during translation",
			strings.Join(missing, ", "),
			nil,
		)
	}

	return result, nil
}
