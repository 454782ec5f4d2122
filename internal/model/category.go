package model

import "strings"

// Category is the fixed tag attached to every extracted event.
type Category string

const (
	CategoryViolentCrime      Category = "violent_crime"
	CategoryPropertyCrime     Category = "property_crime"
	CategoryPublicDisturbance Category = "public_disturbance"
	CategoryAccident          Category = "accident"
	CategorySafetyMeasure     Category = "safety_measure"
	CategoryPoliceAction      Category = "police_action"
	CategoryOther             Category = "other"
)

// Categories lists every known category in a stable order.
var Categories = []Category{
	CategoryViolentCrime,
	CategoryPropertyCrime,
	CategoryPublicDisturbance,
	CategoryAccident,
	CategorySafetyMeasure,
	CategoryPoliceAction,
	CategoryOther,
}

// ParseCategory normalizes s and reports whether it names a known category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// IsPositive reports whether events of this category improve safety.
// Positive events are routed to a location's positive event list.
func (c Category) IsPositive() bool {
	return c == CategoryPoliceAction || c == CategorySafetyMeasure
}
