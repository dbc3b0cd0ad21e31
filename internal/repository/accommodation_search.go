package repository

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/iliyamo/kruger-gateway/internal/model"
)

// AccommodationFilter defines the optional filters of Search. Zero values
// impose no constraint.
type AccommodationFilter struct {
	Type      string
	MinRating *float64 // guest_rating >= R OR star_rating >= R
	// MaxPrice keeps tiers at or below the given one. A non-nil MaxPrice
	// that is not a valid tier matches nothing.
	MaxPrice      *model.PriceTier
	Amenities     []string // every tag must be in the amenity set
	GateProximity string   // case-insensitive substring of proximity_to_gates
	Featured      bool     // guest_rating >= model.FeaturedThreshold
}

const accommodationSelect = `
	SELECT a.id, a.name, a.type, a.description, a.star_rating, a.guest_rating, a.review_count,
	       a.price_tier, a.location, a.proximity_to_gates, a.contact_info, a.website_url,
	       a.booking_info, a.is_women_owned, a.is_eco_friendly, a.is_family_friendly,
	       a.created_at, a.updated_at,
	       AVG(r.rating) AS average_rating,
	       COUNT(r.id)   AS total_reviews
	FROM accommodations a
	LEFT JOIN accommodation_reviews r ON r.accommodation_id = a.id`

// Search lists accommodations matching f, best rated first. Images and
// amenities are attached with one extra query each.
func (r *AccommodationRepo) Search(ctx context.Context, f AccommodationFilter) ([]model.AccommodationSummary, error) {
	where := []string{}
	args := []any{}

	if f.Type != "" {
		where = append(where, "a.type = ?")
		args = append(args, f.Type)
	}
	if f.MinRating != nil {
		where = append(where, "(a.guest_rating >= ? OR a.star_rating >= ?)")
		args = append(args, *f.MinRating, *f.MinRating)
	}
	if f.MaxPrice != nil {
		if !f.MaxPrice.Valid() {
			return []model.AccommodationSummary{}, nil
		}
		where = append(where, "a.price_tier <= ?")
		args = append(args, int(*f.MaxPrice))
	}
	for _, tag := range model.NewAmenitySet(f.Amenities...) {
		where = append(where, `EXISTS (
			SELECT 1 FROM accommodation_amenities am
			WHERE am.accommodation_id = a.id AND am.amenity = ?)`)
		args = append(args, tag)
	}
	if g := strings.TrimSpace(f.GateProximity); g != "" {
		where = append(where, "LOWER(a.proximity_to_gates) LIKE ?")
		args = append(args, "%"+strings.ToLower(g)+"%")
	}
	if f.Featured {
		where = append(where, "a.guest_rating >= ?")
		args = append(args, model.FeaturedThreshold)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}
	return r.summaries(ctx, cond, args...)
}

// ListNearGate lists accommodations whose proximity text mentions gateName.
func (r *AccommodationRepo) ListNearGate(ctx context.Context, gateName string) ([]model.AccommodationSummary, error) {
	if strings.TrimSpace(gateName) == "" {
		return []model.AccommodationSummary{}, nil
	}
	return r.Search(ctx, AccommodationFilter{GateProximity: gateName})
}

func (r *AccommodationRepo) summaries(ctx context.Context, cond string, args ...any) ([]model.AccommodationSummary, error) {
	q := accommodationSelect + `
		WHERE ` + cond + `
		GROUP BY a.id
		ORDER BY a.guest_rating DESC, a.star_rating DESC, a.id ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("search accommodations: %w", err)
	}
	out := []model.AccommodationSummary{}
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate accommodations: %w", err)
	}
	// release the connection before the follow-up queries
	rows.Close()

	if len(out) == 0 {
		return out, nil
	}
	if err := r.attachChildren(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func scanSummary(rows *sql.Rows) (model.AccommodationSummary, error) {
	var (
		s     model.AccommodationSummary
		stars sql.NullInt64
		tier  sql.NullInt64
		avg   sql.NullFloat64
	)
	a := &s.Accommodation
	if err := rows.Scan(
		&a.ID, &a.Name, &a.Type, &a.Description, &stars, &a.GuestRating, &a.ReviewCount,
		&tier, &a.Location, &a.ProximityToGates, &a.ContactInfo, &a.WebsiteURL,
		&a.BookingInfo, &a.IsWomenOwned, &a.IsEcoFriendly, &a.IsFamilyFriendly,
		timeCol{&a.CreatedAt}, timeCol{&a.UpdatedAt},
		&avg, &s.TotalReviews,
	); err != nil {
		return s, fmt.Errorf("scan accommodation: %w", err)
	}
	a.StarRating = int(stars.Int64)
	a.PriceRange = model.PriceTier(tier.Int64)
	if avg.Valid {
		v := math.Round(avg.Float64*10) / 10
		s.AverageRating = &v
	}
	s.Images = []string{}
	a.Amenities = model.AmenitySet{}
	return s, nil
}

// attachChildren loads image URLs (primary first) and amenity tags for list.
func (r *AccommodationRepo) attachChildren(ctx context.Context, list []model.AccommodationSummary) error {
	index := make(map[int64]*model.AccommodationSummary, len(list))
	ids := make([]any, 0, len(list))
	for i := range list {
		index[list[i].ID] = &list[i]
		ids = append(ids, list[i].ID)
	}
	in := placeholders(len(ids))

	imgRows, err := r.db.QueryContext(ctx, `
		SELECT accommodation_id, image_url FROM accommodation_images
		WHERE accommodation_id IN (`+in+`)
		ORDER BY accommodation_id, is_primary DESC, id`, ids...)
	if err != nil {
		return fmt.Errorf("load images: %w", err)
	}
	for imgRows.Next() {
		var (
			id  int64
			url string
		)
		if err := imgRows.Scan(&id, &url); err != nil {
			imgRows.Close()
			return fmt.Errorf("scan image: %w", err)
		}
		if s, ok := index[id]; ok {
			s.Images = append(s.Images, url)
		}
	}
	err = imgRows.Err()
	imgRows.Close()
	if err != nil {
		return fmt.Errorf("iterate images: %w", err)
	}

	amRows, err := r.db.QueryContext(ctx, `
		SELECT accommodation_id, amenity FROM accommodation_amenities
		WHERE accommodation_id IN (`+in+`)
		ORDER BY accommodation_id, amenity`, ids...)
	if err != nil {
		return fmt.Errorf("load amenities: %w", err)
	}
	defer amRows.Close()
	for amRows.Next() {
		var (
			id  int64
			tag string
		)
		if err := amRows.Scan(&id, &tag); err != nil {
			return fmt.Errorf("scan amenity: %w", err)
		}
		if s, ok := index[id]; ok {
			s.Amenities = append(s.Amenities, tag)
		}
	}
	return amRows.Err()
}
