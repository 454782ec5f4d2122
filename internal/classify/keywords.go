// Package classify turns relevant newspaper paragraphs into per-location
// incidents and positive events.
package classify

import (
	"sort"
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// KeywordMatcher finds case-insensitive substring hits of a fixed keyword
// list in one pass over the text.
type KeywordMatcher struct {
	keywords []string
	matcher  *ahocorasick.Matcher
}

// NewKeywordMatcher builds a matcher over keywords. Keywords are lowercased.
func NewKeywordMatcher(keywords []string) *KeywordMatcher {
	lower := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			lower = append(lower, k)
		}
	}
	km := &KeywordMatcher{keywords: lower}
	if len(lower) > 0 {
		km.matcher = ahocorasick.NewStringMatcher(lower)
	}
	return km
}

// Matches returns the keywords found in text, in keyword-list order.
func (k *KeywordMatcher) Matches(text string) []string {
	if k.matcher == nil || text == "" {
		return nil
	}
	hits := k.matcher.Match([]byte(strings.ToLower(text)))
	if len(hits) == 0 {
		return nil
	}
	sort.Ints(hits)
	out := make([]string, len(hits))
	for i, idx := range hits {
		out[i] = k.keywords[idx]
	}
	return out
}

// Any reports whether text contains at least one keyword.
func (k *KeywordMatcher) Any(text string) bool {
	return len(k.Matches(text)) > 0
}
