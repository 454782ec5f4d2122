package geo

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"go.uber.org/zap"

	"github.com/sells-group/safety-cli/internal/model"
	"github.com/sells-group/safety-cli/internal/scorer"
)

// Aggregate groups scored locations by city. Cities are returned in the
// order their first location appears.
//
// A city with recorded incidents sums their deltas starting from zero. A
// city without any takes the base score. Both are clamped to the score
// bounds.
func Aggregate(records []*model.LocationRecord, detector CityDetector, p model.AlgorithmParameters) []*model.CityRecord {
	var order []string
	byCity := make(map[string]*model.CityRecord)
	points := make(map[string][]float64)

	for _, rec := range records {
		name := detector.City(rec.Name)
		city, ok := byCity[name]
		if !ok {
			city = &model.CityRecord{Name: name, Locations: []string{}}
			byCity[name] = city
			order = append(order, name)
		}
		city.Locations = append(city.Locations, rec.Name)
		city.IncidentsCount += len(rec.Incidents)
		for _, inc := range rec.Incidents {
			city.ScoreBeforeClamp += p.Delta(inc.Category)
		}
		if lat, lng, ok := rec.Coordinates.Values(); ok {
			points[name] = append(points[name], lng, lat)
		}
	}

	out := make([]*model.CityRecord, 0, len(order))
	for _, name := range order {
		city := byCity[name]
		if city.IncidentsCount == 0 {
			city.ScoreBeforeClamp = p.BaseScore
		}
		city.FinalScore = scorer.Clamp(city.ScoreBeforeClamp, p.MinScore, p.MaxScore)
		city.Coordinates = centroid(points[name])
		out = append(out, city)
	}
	return out
}

// centroid returns the mean of flat lng/lat pairs, or unknown coordinates
// when there are none.
func centroid(flat []float64) model.Coordinates {
	if len(flat) == 0 {
		return model.Coordinates{}
	}
	c, err := xy.Centroid(geom.NewMultiPointFlat(geom.XY, flat))
	if err != nil {
		zap.L().Warn("geo: centroid failed", zap.Int("points", len(flat)/2), zap.Error(err))
		return model.Coordinates{}
	}
	return model.NewCoordinates(c[1], c[0])
}
