package classify

// DefaultRelevanceKeywords selects paragraphs worth classifying.
var DefaultRelevanceKeywords = []string{
	"robbery", "assault", "murder", "kill", "stabbing", "shooting", "pickpocket",
	"chain snatching", "snatch", "theft", "burglary", "accident", "road accident",
	"crash", "collision", "train", "derail", "fire", "flood", "collapse", "police",
	"protest", "riot", "disturbance", "safety", "emergency", "rescue", "evacuate",
	"arrest", "crackdown", "clash", "injured", "killed", "fatality", "serious",
}

// RelevanceFilter keeps paragraphs containing at least one keyword.
type RelevanceFilter struct {
	matcher *KeywordMatcher
}

// NewRelevanceFilter builds a filter over keywords.
func NewRelevanceFilter(keywords []string) *RelevanceFilter {
	return &RelevanceFilter{matcher: NewKeywordMatcher(keywords)}
}

// Relevant reports whether p mentions any keyword.
func (f *RelevanceFilter) Relevant(p string) bool {
	return f.matcher.Any(p)
}

// Filter returns the relevant paragraphs in input order.
func (f *RelevanceFilter) Filter(paragraphs []string) []string {
	var out []string
	for _, p := range paragraphs {
		if f.Relevant(p) {
			out = append(out, p)
		}
	}
	return out
}
