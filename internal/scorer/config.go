// Package scorer turns classified locations into bounded safety scores.
package scorer

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/safety-cli/internal/model"
)

// ValidateParameters checks that scoring parameters are internally
// consistent.
func ValidateParameters(p model.AlgorithmParameters) error {
	var errs []string

	if p.MaxScore <= p.MinScore {
		errs = append(errs, "max_score must be > min_score")
	}
	if p.BaseScore < p.MinScore || p.BaseScore > p.MaxScore {
		errs = append(errs, fmt.Sprintf("base_score must be between %g and %g", p.MinScore, p.MaxScore))
	}

	// Penalties lower a score, bonuses raise it.
	for _, c := range model.Categories {
		if v, ok := p.CrimePenalties[c]; ok && v > 0 {
			errs = append(errs, fmt.Sprintf("crime_penalties.%s must be <= 0", c))
		}
		if v, ok := p.PositiveAdditions[c]; ok && v < 0 {
			errs = append(errs, fmt.Sprintf("positive_additions.%s must be >= 0", c))
		}
		_, inPenalty := p.CrimePenalties[c]
		_, inBonus := p.PositiveAdditions[c]
		if inPenalty && inBonus {
			errs = append(errs, fmt.Sprintf("%s cannot be both a penalty and a bonus", c))
		}
	}
	for c := range p.CrimePenalties {
		if !c.Valid() {
			errs = append(errs, fmt.Sprintf("crime_penalties: unknown category %q", c))
		}
	}
	for c := range p.PositiveAdditions {
		if !c.Valid() {
			errs = append(errs, fmt.Sprintf("positive_additions: unknown category %q", c))
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: parameter validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
