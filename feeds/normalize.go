package feeds

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/evportal-ch/newshub/webutil"
	"github.com/microcosm-cc/bluemonday"
)

const (
	// maxTextLength caps normalized titles and summaries, independently.
	maxTextLength    = 500
	truncationMarker = "..."

	// articleIDLength keeps merge keys short. At a corpus of a few hundred
	// concurrent entries the 12-hex truncation is a collision-probability
	// tradeoff, not a guarantee against adversarial input.
	articleIDLength = 12
)

// stripPolicy removes every tag, leaving text content only.
var stripPolicy = bluemonday.StrictPolicy()

// CleanText strips all markup, decodes HTML entities, collapses runs of
// whitespace to single spaces and trims the ends. Results longer than 500
// characters are truncated with an ellipsis marker. Empty input yields "".
func CleanText(raw string) string {
	if raw == "" {
		return ""
	}
	clean := stripPolicy.Sanitize(raw)
	// Sanitize re-escapes text content, so a single unescape restores it.
	clean = html.UnescapeString(clean)
	clean = strings.Join(strings.Fields(clean), " ")
	if utf8.RuneCountInString(clean) > maxTextLength {
		clean = string([]rune(clean)[:maxTextLength]) + truncationMarker
	}
	return clean
}

// ArticleID derives a stable identifier from an article's canonical link.
// Re-fetching the same article always yields the same ID, which makes it
// usable as an idempotent merge key.
func ArticleID(link string) string {
	return webutil.GenerateHash(link)[:articleIDLength]
}
