package model

// Coordinates is an optional latitude/longitude pair. Both fields are nil
// when a location could not be resolved.
type Coordinates struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// NewCoordinates returns known coordinates.
func NewCoordinates(lat, lng float64) Coordinates {
	return Coordinates{Lat: &lat, Lng: &lng}
}

// Known reports whether both components are present.
func (c Coordinates) Known() bool {
	return c.Lat != nil && c.Lng != nil
}

// Values returns the pair and whether it is known.
func (c Coordinates) Values() (lat, lng float64, ok bool) {
	if !c.Known() {
		return 0, 0, false
	}
	return *c.Lat, *c.Lng, true
}

// LocationRecord is the scored output for one location. Incidents holds
// the location's incidents followed by its positive events.
type LocationRecord struct {
	Name             string      `json:"-"`
	Place            string      `json:"place,omitempty"`
	Coordinates      Coordinates `json:"coordinates"`
	Incidents        []Incident  `json:"incidents"`
	ScoreBeforeClamp float64     `json:"score_before_clamp"`
	FinalScore       float64     `json:"final_score_10_scale"`
}

// CountByCategory tallies the record's events per category.
func (r *LocationRecord) CountByCategory() map[Category]int {
	out := make(map[Category]int)
	for _, inc := range r.Incidents {
		out[inc.Category]++
	}
	return out
}

// CityRecord aggregates the locations detected as belonging to one city.
type CityRecord struct {
	Name             string      `json:"-"`
	Locations        []string    `json:"locations"`
	IncidentsCount   int         `json:"incidents_count"`
	ScoreBeforeClamp float64     `json:"score_before_clamp"`
	FinalScore       float64     `json:"final_score_10_scale"`
	Coordinates      Coordinates `json:"coordinates"`
}

// RunStats summarizes how a run was processed.
type RunStats struct {
	Paragraphs         int `json:"paragraphs"`
	RelevantParagraphs int `json:"relevant_paragraphs"`
	Chunks             int `json:"chunks"`
	RemoteChunks       int `json:"remote_chunks"`
	FallbackChunks     int `json:"fallback_chunks"`
	Incidents          int `json:"incidents"`
	PositiveEvents     int `json:"positive_events"`
}

// Report is the final artifact of a run.
type Report struct {
	Source        string                     `json:"source"`
	Locations     map[string]*LocationRecord `json:"locations"`
	Cities        map[string]*CityRecord     `json:"cities"`
	AlgorithmUsed AlgorithmParameters        `json:"algorithm_used"`
	Stats         RunStats                   `json:"stats"`
	Summary       string                     `json:"summary"`

	// LocationOrder and CityOrder keep first-seen order for callers that
	// iterate the maps.
	LocationOrder []string `json:"-"`
	CityOrder     []string `json:"-"`
}

// OrderedLocations returns location records in first-seen order.
func (r *Report) OrderedLocations() []*LocationRecord {
	out := make([]*LocationRecord, 0, len(r.LocationOrder))
	for _, name := range r.LocationOrder {
		if rec, ok := r.Locations[name]; ok {
			out = append(out, rec)
		}
	}
	return out
}
