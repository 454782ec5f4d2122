package geo

import "strings"

// UnknownCity labels locations no detector rule recognises.
const UnknownCity = "Unknown"

// CityDetector derives the city a location belongs to.
type CityDetector interface {
	City(location string) string
}

// CityRule assigns City to any location whose lowercase name contains one
// of Keywords.
type CityRule struct {
	City     string
	Keywords []string
}

// DefaultCityRules recognises Chennai by name or by its neighbourhoods.
var DefaultCityRules = []CityRule{
	{City: "Chennai", Keywords: []string{"chennai", "anna nagar", "t nagar", "velachery", "mylapore", "tambaram"}},
}

// KeywordCityDetector applies rules in order and falls back to
// UnknownCity.
type KeywordCityDetector struct {
	rules []CityRule
}

// NewKeywordCityDetector creates a detector. A nil rule set uses
// DefaultCityRules.
func NewKeywordCityDetector(rules []CityRule) *KeywordCityDetector {
	if rules == nil {
		rules = DefaultCityRules
	}
	return &KeywordCityDetector{rules: rules}
}

// City implements CityDetector.
func (d *KeywordCityDetector) City(location string) string {
	lower := strings.ToLower(location)
	for _, r := range d.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r.City
			}
		}
	}
	return UnknownCity
}
