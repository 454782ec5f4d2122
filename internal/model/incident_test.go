package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassificationAddRoutesByCategory(t *testing.T) {
	t.Parallel()

	c := NewClassification()
	c.Add("Anna Nagar", Incident{Category: CategoryViolentCrime, Summary: "stabbing"})
	c.Add("Anna Nagar", Incident{Category: CategoryPoliceAction, Summary: "arrests"})
	c.Add("Tambaram", Incident{Category: CategoryAccident, Summary: "crash"})

	assert.Equal(t, []string{"Anna Nagar", "Tambaram"}, c.Names())
	assert.Equal(t, 2, c.Len())

	loc, ok := c.Get("Anna Nagar")
	require.True(t, ok)
	assert.Len(t, loc.Incidents, 1)
	assert.Len(t, loc.PositiveEvents, 1)
	assert.Equal(t, 2, loc.Count())

	all := loc.All()
	require.Len(t, all, 2)
	assert.Equal(t, CategoryViolentCrime, all[0].Category)
	assert.Equal(t, CategoryPoliceAction, all[1].Category)
}

func TestClassificationEnsureKeepsEmptyLists(t *testing.T) {
	t.Parallel()

	c := NewClassification()
	c.Ensure("Mylapore")

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Mylapore":{"incidents":[],"positive_events":[]}}`, string(data))
}

func TestClassificationNilSafe(t *testing.T) {
	t.Parallel()

	var c *Classification
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.Names())
	_, ok := c.Get("x")
	assert.False(t, ok)

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}
