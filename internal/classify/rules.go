package classify

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sells-group/safety-cli/internal/model"
)

// MaxSummaryChars bounds incident summaries.
const MaxSummaryChars = 200

// KeywordGroup maps a keyword list to the category it implies.
type KeywordGroup struct {
	Category model.Category
	Keywords []string
}

// DefaultKeywordGroups are checked in order; the first group with a hit
// decides the category.
var DefaultKeywordGroups = []KeywordGroup{
	{model.CategoryViolentCrime, []string{"murder", "kill", "stabbing", "shooting", "assault", "clash", "riot"}},
	{model.CategoryPropertyCrime, []string{"robbery", "theft", "pickpocket", "snatch", "chain snatch", "burglary", "steal"}},
	{model.CategoryAccident, []string{"accident", "crash", "collision", "derail", "train", "fatality", "killed", "injured"}},
	{model.CategoryPublicDisturbance, []string{"protest", "riot", "disturbance", "clash"}},
	{model.CategoryPoliceAction, []string{"arrest", "police", "raid", "crackdown", "seized"}},
	{model.CategorySafetyMeasure, []string{"safety", "evacuate", "precaution", "announced", "caution", "rescue", "operation"}},
}

// theftTerms pick property_crime over public_disturbance when no group hits.
var theftTerms = []string{"theft", "robbery", "snatch"}

type compiledGroup struct {
	category model.Category
	matcher  *KeywordMatcher
}

// RuleClassifier is the local keyword strategy. It never fails.
type RuleClassifier struct {
	groups   []compiledGroup
	theft    *KeywordMatcher
	detector LocationDetector
}

// NewRuleClassifier builds a rule classifier over groups and detector.
func NewRuleClassifier(groups []KeywordGroup, detector LocationDetector) *RuleClassifier {
	rc := &RuleClassifier{
		theft:    NewKeywordMatcher(theftTerms),
		detector: detector,
	}
	for _, g := range groups {
		rc.groups = append(rc.groups, compiledGroup{category: g.Category, matcher: NewKeywordMatcher(g.Keywords)})
	}
	return rc
}

// NewDefaultRuleClassifier uses the default keyword groups and place suffixes.
func NewDefaultRuleClassifier() *RuleClassifier {
	return NewRuleClassifier(DefaultKeywordGroups, NewSuffixLocationDetector(DefaultPlaceSuffixes))
}

// Name implements Classifier.
func (r *RuleClassifier) Name() string { return StrategyRules }

// Classify implements Classifier. Each paragraph yields one event per
// detected location.
func (r *RuleClassifier) Classify(_ context.Context, paragraphs []string) (*model.Classification, error) {
	out := model.NewClassification()
	for _, p := range paragraphs {
		inc := model.Incident{
			Category:     r.Categorize(p),
			Summary:      Summarize(p),
			OriginalText: p,
		}
		for _, loc := range r.detector.Detect(p) {
			out.Add(loc, inc)
		}
	}
	return out, nil
}

// Categorize returns the category of the first matching keyword group.
func (r *RuleClassifier) Categorize(p string) model.Category {
	for _, g := range r.groups {
		if g.matcher.Any(p) {
			return g.category
		}
	}
	if r.theft.Any(p) {
		return model.CategoryPropertyCrime
	}
	return model.CategoryPublicDisturbance
}

// Summarize returns the first sentence of the first line of p, cut to
// MaxSummaryChars characters.
func Summarize(p string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(p), "\n")
	for _, sep := range []string{". ", "! ", "? "} {
		if i := strings.Index(line, sep); i >= 0 {
			line = line[:i+1]
		}
	}
	return truncateRunes(strings.TrimSpace(line), MaxSummaryChars)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
