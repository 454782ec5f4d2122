package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/safety-cli/internal/model"
)

func TestFormatPlacesList(t *testing.T) {
	ts := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	places := []model.Place{
		{Name: "Anna Nagar", SafetyScore: 70, EloScore: 1350, Lat: 13.085, Lng: 80.2101, UpdatedAt: ts},
	}

	var buf bytes.Buffer
	formatPlacesList(&buf, places)

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "SAFETY")
	assert.Contains(t, out, "Anna Nagar")
	assert.Contains(t, out, "70.0")
	assert.Contains(t, out, "1350")
	assert.Contains(t, out, "13.0850")
	assert.Contains(t, out, "2026-03-01 09:30")
}
