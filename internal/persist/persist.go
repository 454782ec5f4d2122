// Package persist projects scored locations onto the places tables.
package persist

import (
	"context"
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/safety-cli/internal/model"
	"github.com/sells-group/safety-cli/internal/store"
)

// Fixed projection values for places created from newspaper extraction.
const (
	DataSource        = "pdf_extraction"
	ReviewTag         = "pdf_extract"
	ReviewPrefix      = "[PDF] "
	Country           = "India"
	DefaultPopularity = 50.0
	BaseElo           = 1000.0
	Confidence        = 0.6
	MaxReviews        = 3
)

var reviewRatings = map[model.Category]int{
	model.CategoryViolentCrime:      1,
	model.CategoryPropertyCrime:     2,
	model.CategoryAccident:          2,
	model.CategoryPublicDisturbance: 3,
	model.CategorySafetyMeasure:     5,
	model.CategoryOther:             3,
}

// Result counts what a Persist call did.
type Result struct {
	Persisted int `json:"persisted"`
	Skipped   int `json:"skipped"`
}

// SafetyScore maps a 0-10 final score onto the 0-100 places scale.
func SafetyScore(final float64) float64 {
	return final * 10
}

// PlaceFor builds the place row for rec. It reports false when rec has no
// coordinates.
func PlaceFor(rec *model.LocationRecord) (model.Place, bool) {
	lat, lng, ok := rec.Coordinates.Values()
	if !ok {
		return model.Place{}, false
	}
	score := SafetyScore(rec.FinalScore)
	return model.Place{
		Name:            rec.Name,
		Lat:             lat,
		Lng:             lng,
		SafetyScore:     score,
		EloScore:        BaseElo + score*5,
		PopularityScore: DefaultPopularity,
		Country:         Country,
	}, true
}

// Attributes derives per-place safety indicators from rec's event counts.
func Attributes(placeID string, rec *model.LocationRecord) model.SafetyAttributes {
	counts := rec.CountByCategory()
	violent := float64(counts[model.CategoryViolentCrime])
	property := float64(counts[model.CategoryPropertyCrime])
	accidents := float64(counts[model.CategoryAccident])

	return model.SafetyAttributes{
		PlaceID:          placeID,
		ViolentCrime:     math.Min(100, 20*violent),
		PropertyCrime:    math.Min(100, 15*property),
		AccidentRate:     math.Min(100, 15*accidents),
		SafetyInfra:      50,
		PoliceDensity:    50,
		NightSafetyScore: math.Max(0, 70-10*violent),
		WomenSafetyScore: math.Max(0, 70-8*violent),
		DataSource:       DataSource,
		ConfidenceScore:  Confidence,
	}
}

// Reviews summarises the first MaxReviews events of rec.
func Reviews(placeID string, rec *model.LocationRecord) []model.Review {
	n := min(len(rec.Incidents), MaxReviews)
	out := make([]model.Review, 0, n)
	for _, inc := range rec.Incidents[:n] {
		rating, ok := reviewRatings[inc.Category]
		if !ok {
			rating = reviewRatings[model.CategoryOther]
		}
		out = append(out, model.Review{
			PlaceID:    placeID,
			Rating:     rating,
			ReviewText: ReviewPrefix + inc.Summary,
			Tags:       []string{string(inc.Category), ReviewTag},
			IsVerified: true,
		})
	}
	return out
}

// Persist writes each record with known coordinates to st, one location
// at a time. Records without coordinates are logged and skipped. Reruns
// overwrite the previous projection of each location.
func Persist(ctx context.Context, st store.Store, records []*model.LocationRecord) (Result, error) {
	var res Result
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return res, eris.Wrap(err, "persist: cancelled")
		}

		place, ok := PlaceFor(rec)
		if !ok {
			zap.L().Warn("persist: skipping location without coordinates", zap.String("location", rec.Name))
			res.Skipped++
			continue
		}

		stored, err := st.UpsertPlace(ctx, place)
		if err != nil {
			return res, eris.Wrapf(err, "persist: location %s", rec.Name)
		}
		if err := st.UpsertSafetyAttributes(ctx, Attributes(stored.ID, rec)); err != nil {
			return res, eris.Wrapf(err, "persist: location %s", rec.Name)
		}
		if err := st.ReplaceReviews(ctx, stored.ID, Reviews(stored.ID, rec)); err != nil {
			return res, eris.Wrapf(err, "persist: location %s", rec.Name)
		}

		zap.L().Info("persist: location stored",
			zap.String("location", rec.Name),
			zap.String("place_id", stored.ID),
			zap.Float64("safety_score", stored.SafetyScore),
		)
		res.Persisted++
	}
	return res, nil
}
