package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/safety-cli/internal/model"
)

func record(name string, coords model.Coordinates, cats ...model.Category) *model.LocationRecord {
	rec := &model.LocationRecord{Name: name, Coordinates: coords, Incidents: []model.Incident{}}
	for _, c := range cats {
		rec.Incidents = append(rec.Incidents, model.Incident{Category: c, Summary: "s", OriginalText: "p"})
	}
	return rec
}

func TestAggregate_SeedsAtZeroWithIncidents(t *testing.T) {
	records := []*model.LocationRecord{
		record("Anna Nagar", model.NewCoordinates(13.0827, 80.2245), model.CategoryViolentCrime),
		record("T Nagar", model.Coordinates{}),
	}

	cities := Aggregate(records, NewKeywordCityDetector(nil), model.DefaultParameters())
	require.Len(t, cities, 1)

	c := cities[0]
	assert.Equal(t, "Chennai", c.Name)
	assert.Equal(t, []string{"Anna Nagar", "T Nagar"}, c.Locations)
	assert.Equal(t, 1, c.IncidentsCount)
	assert.InDelta(t, -3.0, c.ScoreBeforeClamp, 1e-9)
	assert.InDelta(t, 0.0, c.FinalScore, 1e-9)

	lat, lng, ok := c.Coordinates.Values()
	require.True(t, ok)
	assert.InDelta(t, 13.0827, lat, 1e-9)
	assert.InDelta(t, 80.2245, lng, 1e-9)
}

func TestAggregate_NoIncidentsUsesBase(t *testing.T) {
	records := []*model.LocationRecord{record("Kodambakkam", model.Coordinates{})}

	cities := Aggregate(records, NewKeywordCityDetector(nil), model.DefaultParameters())
	require.Len(t, cities, 1)
	assert.Equal(t, UnknownCity, cities[0].Name)
	assert.Equal(t, 0, cities[0].IncidentsCount)
	assert.InDelta(t, 10.0, cities[0].ScoreBeforeClamp, 1e-9)
	assert.InDelta(t, 10.0, cities[0].FinalScore, 1e-9)
	assert.False(t, cities[0].Coordinates.Known())
}

func TestAggregate_PositiveEventsCount(t *testing.T) {
	records := []*model.LocationRecord{
		record("Velachery", model.NewCoordinates(12.9937, 80.2230), model.CategoryPoliceAction),
		record("Mylapore", model.NewCoordinates(13.0245, 80.2626), model.CategorySafetyMeasure, model.CategoryAccident),
		record("Adyar", model.NewCoordinates(13.0067, 80.2572), model.CategoryPropertyCrime),
	}

	cities := Aggregate(records, NewKeywordCityDetector(nil), model.DefaultParameters())
	require.Len(t, cities, 2)

	chennai := cities[0]
	assert.Equal(t, "Chennai", chennai.Name)
	assert.Equal(t, 3, chennai.IncidentsCount)
	assert.InDelta(t, 4.0, chennai.ScoreBeforeClamp, 1e-9)
	assert.InDelta(t, 4.0, chennai.FinalScore, 1e-9)

	lat, lng, ok := chennai.Coordinates.Values()
	require.True(t, ok)
	assert.InDelta(t, (12.9937+13.0245)/2, lat, 1e-9)
	assert.InDelta(t, (80.2230+80.2626)/2, lng, 1e-9)

	unknown := cities[1]
	assert.Equal(t, UnknownCity, unknown.Name)
	assert.Equal(t, []string{"Adyar"}, unknown.Locations)
	assert.InDelta(t, -2.0, unknown.ScoreBeforeClamp, 1e-9)
	assert.InDelta(t, 0.0, unknown.FinalScore, 1e-9)
}

func TestAggregate_ClampsHigh(t *testing.T) {
	cats := []model.Category{model.CategorySafetyMeasure, model.CategorySafetyMeasure, model.CategorySafetyMeasure, model.CategorySafetyMeasure}
	records := []*model.LocationRecord{record("Chennai", model.Coordinates{}, cats...)}

	cities := Aggregate(records, NewKeywordCityDetector(nil), model.DefaultParameters())
	require.Len(t, cities, 1)
	assert.InDelta(t, 12.0, cities[0].ScoreBeforeClamp, 1e-9)
	assert.InDelta(t, 10.0, cities[0].FinalScore, 1e-9)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil, NewKeywordCityDetector(nil), model.DefaultParameters()))
}

func TestHaversineKM(t *testing.T) {
	assert.InDelta(t, 0.0, HaversineKM(13.0827, 80.2245, 13.0827, 80.2245), 1e-9)
	// Anna Nagar to Velachery is roughly ten kilometres.
	d := HaversineKM(13.0827, 80.2245, 12.9937, 80.2230)
	assert.InDelta(t, 9.9, d, 0.2)
	assert.InDelta(t, d, HaversineKM(12.9937, 80.2230, 13.0827, 80.2245), 1e-9)
}
