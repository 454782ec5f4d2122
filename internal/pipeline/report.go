package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sells-group/safety-cli/internal/geo"
	"github.com/sells-group/safety-cli/internal/model"
	"github.com/sells-group/safety-cli/internal/scorer"
)

// BuildReport scores, resolves and aggregates a merged classification.
// The returned report has no summary or chunk statistics yet.
func BuildReport(source string, merged *model.Classification, resolver geo.Resolver, cities geo.CityDetector, params model.AlgorithmParameters) *model.Report {
	report := &model.Report{
		Source:        source,
		Locations:     make(map[string]*model.LocationRecord, merged.Len()),
		Cities:        make(map[string]*model.CityRecord),
		AlgorithmUsed: params,
	}

	records := make([]*model.LocationRecord, 0, merged.Len())
	for _, name := range merged.Names() {
		loc, _ := merged.Get(name)
		rec := scorer.Record(name, loc, params)

		res := resolver.Resolve(name)
		rec.Place = res.Place
		rec.Coordinates = res.Coordinates
		if !rec.Coordinates.Known() {
			zap.L().Warn("pipeline: no coordinates for location", zap.String("location", name))
		}

		report.Locations[name] = rec
		report.LocationOrder = append(report.LocationOrder, name)
		report.Stats.Incidents += len(loc.Incidents)
		report.Stats.PositiveEvents += len(loc.PositiveEvents)
		records = append(records, rec)
	}

	for _, city := range geo.Aggregate(records, cities, params) {
		report.Cities[city.Name] = city
		report.CityOrder = append(report.CityOrder, city.Name)
	}
	return report
}

// Summarize renders the one-line textual summary of a report.
func Summarize(r *model.Report) string {
	return fmt.Sprintf(
		"Extracted %d incidents and %d positive events across %d locations in %d cities. "+
			"Classified %d of %d relevant paragraphs in %d chunks (%d remote, %d fallback).",
		r.Stats.Incidents, r.Stats.PositiveEvents, len(r.Locations), len(r.Cities),
		r.Stats.RelevantParagraphs, r.Stats.Paragraphs, r.Stats.Chunks,
		r.Stats.RemoteChunks, r.Stats.FallbackChunks,
	)
}
