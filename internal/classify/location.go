package classify

import (
	"regexp"
	"strings"
)

// UnknownLocation is used when no location can be detected in a paragraph.
const UnknownLocation = "Unknown"

// DefaultPlaceSuffixes are the trailing words that mark a place name.
var DefaultPlaceSuffixes = []string{
	"Nagar", "Tambaram", "Mylapore", "Velachery", "T Nagar", "T-Nagar",
	"Anna Nagar", "Road", "Street", "Colony", "Chennai", "Station",
}

// leadingStopWords are capitalized words that start sentences rather than
// place names.
var leadingStopWords = map[string]bool{
	"a": true, "an": true, "the": true, "in": true, "at": true, "on": true,
	"near": true, "from": true, "to": true, "of": true, "and": true, "police": true,
}

var properNoun = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s[A-Z][a-z]+){0,2})\b`)

// LocationDetector finds candidate location names in a paragraph.
type LocationDetector interface {
	Detect(paragraph string) []string
}

// SuffixLocationDetector looks for up to three capitalized words ending in
// a known place suffix, then for short proper-noun runs, and finally
// reports UnknownLocation. It is a best-effort heuristic.
type SuffixLocationDetector struct {
	suffixes []string
	patterns []*regexp.Regexp
}

// NewSuffixLocationDetector builds a detector over suffixes.
func NewSuffixLocationDetector(suffixes []string) *SuffixLocationDetector {
	d := &SuffixLocationDetector{suffixes: suffixes}
	for _, s := range suffixes {
		d.patterns = append(d.patterns,
			regexp.MustCompile(`\b((?:[A-Z][A-Za-z0-9\-]*\s+){0,2}`+regexp.QuoteMeta(s)+`)\b`))
	}
	return d
}

// Detect returns candidate names in first-seen order, never empty.
func (d *SuffixLocationDetector) Detect(paragraph string) []string {
	low := strings.ToLower(paragraph)
	var found []string
	for i, s := range d.suffixes {
		if !strings.Contains(low, strings.ToLower(s)) {
			continue
		}
		for _, m := range d.patterns[i].FindAllStringSubmatch(paragraph, -1) {
			found = appendUnique(found, trimLeadingStopWords(m[1]))
		}
	}
	found = dropContained(found)

	if len(found) == 0 {
		for _, m := range properNoun.FindAllStringSubmatch(paragraph, -1) {
			cand := m[1]
			lc := strings.ToLower(cand)
			if len(cand) <= 2 || strings.HasPrefix(lc, "police") || strings.HasPrefix(lc, "the") {
				continue
			}
			found = appendUnique(found, cand)
		}
	}

	if len(found) == 0 {
		return []string{UnknownLocation}
	}
	return found
}

func trimLeadingStopWords(name string) string {
	words := strings.Fields(name)
	for len(words) > 1 && leadingStopWords[strings.ToLower(words[0])] {
		words = words[1:]
	}
	return strings.Join(words, " ")
}

// dropContained removes names that appear as whole words inside another
// candidate, so "Chennai" is dropped when "Chennai Central Station" exists.
func dropContained(names []string) []string {
	out := names[:0:0]
	for i, n := range names {
		contained := false
		for j, other := range names {
			words := " " + strings.ReplaceAll(other, "-", " ") + " "
			if i != j && len(other) > len(n) && strings.Contains(words, " "+n+" ") {
				contained = true
				break
			}
		}
		if !contained {
			out = append(out, n)
		}
	}
	return out
}

func appendUnique(list []string, s string) []string {
	if s == "" {
		return list
	}
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
