package translate

import (
	"html"
	"regexp"
	"strings"

	"github.com/bigtools/multilang-service/internal/models"
)

// The backend is prompted to introduce each language block with a
// `=== XX` marker; this pattern is the wire contract with that convention.
var (
	markerPattern  = regexp.MustCompile(`===\s*([A-Za-z]{2})\s*`)
	headingPattern = regexp.MustCompile(`(?i)<h3>(.*?)</h3>`)
)

// ParseSegments turns the backend's raw segmented text into per-locale
// entries. It is total: malformed input yields fewer or no entries, never
// an error. The product name comes from the segment's first <h3> heading
// (colon-delimited subtitles discarded, entities decoded); the whole
// segment, markup included, is kept verbatim as the description.
func ParseSegments(raw string) map[string]models.TranslationEntry {
	out := make(map[string]models.TranslationEntry)

	markers := markerPattern.FindAllStringSubmatchIndex(raw, -1)
	for i, m := range markers {
		code := strings.ToLower(raw[m[2]:m[3]])

		end := len(raw)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		segment := strings.TrimSpace(raw[m[1]:end])

		name := ""
		if h := headingPattern.FindStringSubmatch(segment); h != nil {
			name = html.UnescapeString(strings.TrimSpace(strings.SplitN(h[1], ":", 2)[0]))
		}

		out[code] = models.TranslationEntry{
			ProductName: name,
			Description: segment,
		}
	}

	return out
}
