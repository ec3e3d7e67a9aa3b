package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// CollapseSpace trims a string and collapses inner whitespace runs to a
// single space. Scraped cell text tends to carry newlines and padding.
func CollapseSpace(s string) string {
	s = strings.TrimSpace(s)
	return whitespaceRegex.ReplaceAllString(s, " ")
}

// MatchKeywords reports which keywords occur as substrings of text.
// Matched keywords are returned in keyword-list order, in their
// original spelling even when matching case-insensitively. Empty text
// or an empty keyword list yields nil.
func MatchKeywords(text string, keywords []string, caseSensitive bool) []string {
	if text == "" || len(keywords) == 0 {
		return nil
	}

	var matched []string
	if caseSensitive {
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				matched = append(matched, kw)
			}
		}
		return matched
	}

	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matched = append(matched, kw)
		}
	}
	return matched
}
