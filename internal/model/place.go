package model

import "time"

// Place is a persisted location row.
type Place struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Lat             float64   `json:"lat"`
	Lng             float64   `json:"lng"`
	SafetyScore     float64   `json:"safety_score"`
	EloScore        float64   `json:"elo_score"`
	PopularityScore float64   `json:"popularity_score"`
	Country         string    `json:"country"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SafetyAttributes are derived per-place safety indicators (0-100 scale).
type SafetyAttributes struct {
	PlaceID          string    `json:"place_id"`
	ViolentCrime     float64   `json:"violent_crime"`
	PropertyCrime    float64   `json:"property_crime"`
	AccidentRate     float64   `json:"accident_rate"`
	SafetyInfra      float64   `json:"safety_infra"`
	PoliceDensity    float64   `json:"police_density"`
	NightSafetyScore float64   `json:"night_safety_score"`
	WomenSafetyScore float64   `json:"women_safety_score"`
	DataSource       string    `json:"data_source"`
	ConfidenceScore  float64   `json:"confidence_score"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Review is a short rated note attached to a place.
type Review struct {
	ID         string    `json:"id"`
	PlaceID    string    `json:"place_id"`
	Rating     int       `json:"rating"`
	ReviewText string    `json:"review_text"`
	Tags       []string  `json:"tags"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// PlaceDetail bundles a place with its attributes and reviews.
type PlaceDetail struct {
	Place
	Attributes *SafetyAttributes `json:"safety_attributes,omitempty"`
	Reviews    []Review          `json:"reviews"`
}
