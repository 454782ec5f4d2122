package classify

import "github.com/sells-group/safety-cli/internal/model"

// Merge combines per-chunk classifications in order. Lists of a location
// seen in several chunks are concatenated in chunk order. Events are not
// deduplicated, so merging the same input twice doubles every list.
func Merge(parts ...*model.Classification) *model.Classification {
	out := model.NewClassification()
	for _, part := range parts {
		for _, name := range part.Names() {
			loc, _ := part.Get(name)
			out.Ensure(name)
			for _, inc := range loc.Incidents {
				out.AddIncident(name, inc)
			}
			for _, inc := range loc.PositiveEvents {
				out.AddPositiveEvent(name, inc)
			}
		}
	}
	return out
}
