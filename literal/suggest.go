package literal

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Tags returns the recognized tags.
func Tags() []string {
	return []string{TagBool, TagNum, TagArr, TagRaw}
}

// Suggest returns the recognized tag closest to tag, if tag itself is not
// one. It lets callers hint at a likely typo such as "nmu:5".
func Suggest(tag string) (string, bool) {
	tags := Tags()
	for _, t := range tags {
		if t == tag {
			return "", false
		}
	}

	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return "", false
	}

	if matches := fuzzy.Find(tag, tags); len(matches) > 0 {
		return matches[0].Str, true
	}

	// fuzzy matching requires an in-order subsequence, so fall back to
	// comparing the character sets of equal-length tags.
	for _, t := range tags {
		if sameLetters(t, tag) {
			return t, true
		}
	}

	return "", false
}

func sameLetters(a, b string) bool {
	if len(a) != len(b) {
		return false
	}

	for _, r := range a {
		if strings.Count(a, string(r)) != strings.Count(b, string(r)) {
			return false
		}
	}

	return true
}
