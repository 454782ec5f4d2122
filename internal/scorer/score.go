package scorer

import "github.com/sells-group/safety-cli/internal/model"

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Score computes a location's raw and clamped score. Incidents only take
// penalties and positive events only take bonuses, so a category listed
// under the wrong heading contributes nothing.
func Score(loc *model.ClassifiedLocation, p model.AlgorithmParameters) (raw, final float64) {
	raw = p.BaseScore
	if loc != nil {
		for _, inc := range loc.Incidents {
			raw += p.CrimePenalties[inc.Category]
		}
		for _, ev := range loc.PositiveEvents {
			raw += p.PositiveAdditions[ev.Category]
		}
	}
	return raw, Clamp(raw, p.MinScore, p.MaxScore)
}

// Record builds the output record for a classified location. The record's
// incident list holds the incidents followed by the positive events.
func Record(name string, loc *model.ClassifiedLocation, p model.AlgorithmParameters) *model.LocationRecord {
	raw, final := Score(loc, p)
	rec := &model.LocationRecord{
		Name:             name,
		Incidents:        []model.Incident{},
		ScoreBeforeClamp: raw,
		FinalScore:       final,
	}
	if loc != nil {
		rec.Incidents = loc.All()
	}
	return rec
}
