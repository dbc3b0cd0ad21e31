package model

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// FeaturedThreshold is the guest rating at or above which an accommodation
// counts as featured.
const FeaturedThreshold = 4.5

// PriceTier is the ordinal cost band of an accommodation. The zero value
// means the tier is unknown. Tiers are ordered PriceBudget < PriceModerate <
// PriceUpscale < PriceLuxury and are written as "$" through "$$$$" on the wire.
type PriceTier int

const (
	PriceBudget PriceTier = iota + 1
	PriceModerate
	PriceUpscale
	PriceLuxury
)

// ErrUnknownPriceTier is returned when a price symbol is not one of the
// four recognised tiers.
var ErrUnknownPriceTier = errors.New("unknown price tier")

// ParsePriceTier converts "$".."$$$$" into a PriceTier.
func ParsePriceTier(s string) (PriceTier, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.Trim(s, "$") != "" {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPriceTier, s)
	}
	t := PriceTier(len(s))
	if !t.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPriceTier, s)
	}
	return t, nil
}

// Valid reports whether t is one of the four tiers.
func (t PriceTier) Valid() bool { return t >= PriceBudget && t <= PriceLuxury }

func (t PriceTier) String() string {
	if !t.Valid() {
		return ""
	}
	return strings.Repeat("$", int(t))
}

// MarshalJSON writes the tier symbol, or null for an unknown tier.
func (t PriceTier) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts the tier symbol, its numeric rank, or null.
func (t *PriceTier) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" || raw == `""` {
		*t = 0
		return nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if !PriceTier(n).Valid() {
			return fmt.Errorf("%w: %d", ErrUnknownPriceTier, n)
		}
		*t = PriceTier(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParsePriceTier(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// AmenitySet is a normalized (lower-case, trimmed, de-duplicated, sorted)
// set of amenity tags.
type AmenitySet []string

// NewAmenitySet normalizes tags into a set.
func NewAmenitySet(tags ...string) AmenitySet {
	seen := make(map[string]struct{}, len(tags))
	out := make(AmenitySet, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// ParseAmenityList splits a comma-separated list into a set.
func ParseAmenityList(s string) AmenitySet {
	return NewAmenitySet(strings.Split(s, ",")...)
}

// MarshalJSON always writes a list, never null.
func (a AmenitySet) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(a))
}

// UnmarshalJSON accepts either a JSON array of tags or a single
// comma-separated string.
func (a *AmenitySet) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*a = nil
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		var list []string
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		*a = NewAmenitySet(list...)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*a = ParseAmenityList(s)
	return nil
}

// Accommodation is a lodging row (`accommodations`) plus its amenity set.
// GuestRating and ReviewCount are denormalized from the reviews table and
// are recomputed each time a review is added.
type Accommodation struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Type             string     `json:"type"`
	Description      *string    `json:"description"`
	StarRating       int        `json:"star_rating"`
	GuestRating      float64    `json:"guest_rating"`
	ReviewCount      int64      `json:"review_count"`
	PriceRange       PriceTier  `json:"price_range"`
	Amenities        AmenitySet `json:"amenities"`
	Location         *string    `json:"location"`
	ProximityToGates *string    `json:"proximity_to_gates"`
	ContactInfo      *string    `json:"contact_info"`
	WebsiteURL       *string    `json:"website_url"`
	BookingInfo      *string    `json:"booking_info"`
	IsWomenOwned     bool       `json:"is_women_owned"`
	IsEcoFriendly    bool       `json:"is_eco_friendly"`
	IsFamilyFriendly bool       `json:"is_family_friendly"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// AccommodationSummary is an accommodation as returned by list queries,
// with its images and review aggregates.
type AccommodationSummary struct {
	Accommodation
	Images        []string `json:"images"`
	AverageRating *float64 `json:"average_rating"`
	TotalReviews  int64    `json:"total_reviews"`
}

// AccommodationDetail adds the full review list to a summary.
type AccommodationDetail struct {
	AccommodationSummary
	Reviews []Review `json:"reviews"`
}

// Review is a guest rating (`accommodation_reviews`). Reviews are immutable.
type Review struct {
	ID              int64     `json:"id"`
	AccommodationID int64     `json:"accommodation_id"`
	GuestName       *string   `json:"guest_name"`
	Rating          int       `json:"rating"`
	Comment         *string   `json:"comment"`
	CreatedAt       time.Time `json:"created_at"`
}

// Image is referential metadata for an accommodation picture.
type Image struct {
	ID              int64     `json:"id"`
	AccommodationID int64     `json:"accommodation_id"`
	ImageURL        string    `json:"image_url"`
	Caption         *string   `json:"caption"`
	IsPrimary       bool      `json:"is_primary"`
	CreatedAt       time.Time `json:"created_at"`
}
