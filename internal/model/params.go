package model

// Score bounds and base value shared by locations and cities.
const (
	BaseScore = 10.0
	MinScore  = 0.0
	MaxScore  = 10.0
)

// AlgorithmParameters is the scoring configuration echoed into every
// report. Values from DefaultParameters must not be mutated by callers.
type AlgorithmParameters struct {
	BaseScore         float64              `json:"base_score"`
	MinScore          float64              `json:"min_score"`
	MaxScore          float64              `json:"max_score"`
	CrimePenalties    map[Category]float64 `json:"crime_penalties"`
	PositiveAdditions map[Category]float64 `json:"positive_additions"`
}

// DefaultParameters returns a fresh copy of the standard scoring table.
func DefaultParameters() AlgorithmParameters {
	return AlgorithmParameters{
		BaseScore: BaseScore,
		MinScore:  MinScore,
		MaxScore:  MaxScore,
		CrimePenalties: map[Category]float64{
			CategoryViolentCrime:      -3,
			CategoryPropertyCrime:     -2,
			CategoryPublicDisturbance: -1,
			CategoryAccident:          -1,
		},
		PositiveAdditions: map[Category]float64{
			CategoryPoliceAction:  2,
			CategorySafetyMeasure: 3,
		},
	}
}

// Delta returns the score contribution of one event of category c.
// Unknown categories contribute nothing.
func (p AlgorithmParameters) Delta(c Category) float64 {
	if v, ok := p.CrimePenalties[c]; ok {
		return v
	}
	return p.PositiveAdditions[c]
}
