package model

import "time"

// Probability tiers reported for a sighting, from most to least likely.
const (
	ProbabilityHigh   = "high"
	ProbabilityMedium = "medium"
	ProbabilityLow    = "low"
)

// Confidence tiers describing the evidence behind a sighting.
const (
	ConfidenceConfirmed = "confirmed"
	ConfidenceReported  = "reported"
	ConfidenceSuspected = "suspected"
)

// BigFive lists the canonical species used by the big-five summary.
var BigFive = []string{"lion", "elephant", "leopard", "rhino", "buffalo"}

// ValidProbability reports whether p is a known probability tier.
func ValidProbability(p string) bool {
	return p == ProbabilityHigh || p == ProbabilityMedium || p == ProbabilityLow
}

// ValidConfidence reports whether c is a known confidence tier.
func ValidConfidence(c string) bool {
	return c == ConfidenceConfirmed || c == ConfidenceReported || c == ConfidenceSuspected
}

// Gate is a named park entry point (`park_gates`).
type Gate struct {
	ID          int64     `json:"id"`
	GateName    string    `json:"gate_name"`
	Description *string   `json:"description"`
	Location    *string   `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
}

// GateActivity is a gate together with how many sightings reference it and
// when the most recent one was recorded.
type GateActivity struct {
	Gate
	SightingCount int64      `json:"sighting_count"`
	LastUpdated   *time.Time `json:"last_updated"`
}

// Sighting is an animal observation (`wildlife_sightings`) enriched with the
// names of its gate and reporter. The enrichment fields are nil when the
// referenced row does not exist.
type Sighting struct {
	ID                int64     `json:"id"`
	GateID            *int64    `json:"gate_id"`
	AnimalType        string    `json:"animal_type"`
	Probability       string    `json:"probability"`
	Confidence        string    `json:"confidence"`
	Notes             *string   `json:"notes"`
	ReportedBy        *int64    `json:"reported_by"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	GateName          *string   `json:"gate_name"`
	GateLocation      *string   `json:"gate_location"`
	ReporterFirstName *string   `json:"reporter_first_name"`
	ReporterLastName  *string   `json:"reporter_last_name"`
}

// SightingInput carries the writable fields of a sighting.
type SightingInput struct {
	GateID      *int64
	AnimalType  string
	Probability string
	Confidence  string
	Notes       *string
	ReportedBy  *int64
}

// AnimalCount is the number of sightings of one animal type.
type AnimalCount struct {
	AnimalType string `json:"animal_type"`
	Count      int64  `json:"count"`
}

// ProbabilityCount is the number of sightings in one probability tier.
type ProbabilityCount struct {
	Probability string `json:"probability"`
	Count       int64  `json:"count"`
}

// GateCount is the number of sightings recorded at one gate.
type GateCount struct {
	GateName string `json:"gate_name"`
	Count    int64  `json:"count"`
}

// DailyCount is the number of sightings recorded on one calendar day (UTC).
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// Reporter is an entry of the top-reporter leaderboard.
type Reporter struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	SightingCount int64  `json:"sighting_count"`
}

// SightingStats bundles the independent aggregates served by the
// statistics endpoint.
type SightingStats struct {
	Total          int64              `json:"total"`
	ByAnimal       []AnimalCount      `json:"byAnimal"`
	ByProbability  []ProbabilityCount `json:"byProbability"`
	ByGate         []GateCount        `json:"byGate"`
	RecentActivity []DailyCount       `json:"recentActivity"`
	TopReporters   []Reporter         `json:"topReporters"`
	GeneratedAt    time.Time          `json:"generatedAt"`
}
