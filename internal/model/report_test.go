package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinatesJSON(t *testing.T) {
	t.Parallel()

	known, err := json.Marshal(NewCoordinates(13.0827, 80.2245))
	require.NoError(t, err)
	assert.JSONEq(t, `{"lat":13.0827,"lng":80.2245}`, string(known))

	unknown, err := json.Marshal(Coordinates{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"lat":null,"lng":null}`, string(unknown))
}

func TestCoordinatesValues(t *testing.T) {
	t.Parallel()

	lat, lng, ok := NewCoordinates(1, 2).Values()
	assert.True(t, ok)
	assert.Equal(t, 1.0, lat)
	assert.Equal(t, 2.0, lng)

	_, _, ok = Coordinates{}.Values()
	assert.False(t, ok)
}

func TestLocationRecordCountByCategory(t *testing.T) {
	t.Parallel()

	rec := &LocationRecord{Incidents: []Incident{
		{Category: CategoryViolentCrime},
		{Category: CategoryViolentCrime},
		{Category: CategorySafetyMeasure},
	}}
	counts := rec.CountByCategory()
	assert.Equal(t, 2, counts[CategoryViolentCrime])
	assert.Equal(t, 1, counts[CategorySafetyMeasure])
	assert.Equal(t, 0, counts[CategoryAccident])
}

func TestReportOrderedLocations(t *testing.T) {
	t.Parallel()

	r := &Report{
		Locations: map[string]*LocationRecord{
			"B": {Name: "B"},
			"A": {Name: "A"},
		},
		LocationOrder: []string{"B", "A", "missing"},
	}
	got := r.OrderedLocations()
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Name)
	assert.Equal(t, "A", got[1].Name)
}

func TestDefaultParametersDelta(t *testing.T) {
	t.Parallel()

	p := DefaultParameters()
	assert.Equal(t, -3.0, p.Delta(CategoryViolentCrime))
	assert.Equal(t, -2.0, p.Delta(CategoryPropertyCrime))
	assert.Equal(t, -1.0, p.Delta(CategoryPublicDisturbance))
	assert.Equal(t, -1.0, p.Delta(CategoryAccident))
	assert.Equal(t, 2.0, p.Delta(CategoryPoliceAction))
	assert.Equal(t, 3.0, p.Delta(CategorySafetyMeasure))
	assert.Equal(t, 0.0, p.Delta(CategoryOther))

	// Fresh copies are independent.
	p.CrimePenalties[CategoryViolentCrime] = -100
	assert.Equal(t, -3.0, DefaultParameters().Delta(CategoryViolentCrime))
}
