package model

import "encoding/json"

// Incident is a single extracted event. The same shape is used for
// incidents and positive events.
type Incident struct {
	Category     Category `json:"category"`
	Summary      string   `json:"summary"`
	OriginalText string   `json:"original_text"`
}

// ClassifiedLocation holds the events extracted for one location name.
type ClassifiedLocation struct {
	Incidents      []Incident `json:"incidents"`
	PositiveEvents []Incident `json:"positive_events"`
}

// Count returns the total number of events for the location.
func (l *ClassifiedLocation) Count() int {
	if l == nil {
		return 0
	}
	return len(l.Incidents) + len(l.PositiveEvents)
}

// All returns incidents followed by positive events.
func (l *ClassifiedLocation) All() []Incident {
	out := make([]Incident, 0, l.Count())
	if l == nil {
		return out
	}
	out = append(out, l.Incidents...)
	return append(out, l.PositiveEvents...)
}

// Classification maps location names to their events. Names keep the
// order in which they were first seen so downstream output is stable.
type Classification struct {
	names     []string
	locations map[string]*ClassifiedLocation
}

// NewClassification returns an empty classification.
func NewClassification() *Classification {
	return &Classification{locations: make(map[string]*ClassifiedLocation)}
}

// Ensure returns the entry for name, creating an empty one if needed.
func (c *Classification) Ensure(name string) *ClassifiedLocation {
	if c.locations == nil {
		c.locations = make(map[string]*ClassifiedLocation)
	}
	loc, ok := c.locations[name]
	if !ok {
		loc = &ClassifiedLocation{Incidents: []Incident{}, PositiveEvents: []Incident{}}
		c.locations[name] = loc
		c.names = append(c.names, name)
	}
	return loc
}

// Add appends inc to name's incidents or positive events depending on
// its category.
func (c *Classification) Add(name string, inc Incident) {
	if inc.Category.IsPositive() {
		c.AddPositiveEvent(name, inc)
		return
	}
	c.AddIncident(name, inc)
}

// AddIncident appends inc to name's incidents regardless of category.
func (c *Classification) AddIncident(name string, inc Incident) {
	loc := c.Ensure(name)
	loc.Incidents = append(loc.Incidents, inc)
}

// AddPositiveEvent appends inc to name's positive events regardless of
// category.
func (c *Classification) AddPositiveEvent(name string, inc Incident) {
	loc := c.Ensure(name)
	loc.PositiveEvents = append(loc.PositiveEvents, inc)
}

// Get returns the entry for name.
func (c *Classification) Get(name string) (*ClassifiedLocation, bool) {
	if c == nil {
		return nil, false
	}
	loc, ok := c.locations[name]
	return loc, ok
}

// Names returns location names in first-seen order.
func (c *Classification) Names() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len returns the number of locations.
func (c *Classification) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

// MarshalJSON encodes the classification as a name-keyed object.
func (c *Classification) MarshalJSON() ([]byte, error) {
	if c == nil || c.locations == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c.locations)
}
