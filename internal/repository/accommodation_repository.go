package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/kruger-gateway/internal/database"
	"github.com/iliyamo/kruger-gateway/internal/model"
)

type AccommodationRepo struct{ db *sql.DB }

func NewAccommodationRepo(db *sql.DB) *AccommodationRepo { return &AccommodationRepo{db: db} }

// GetByID returns an accommodation with its aggregates, images, amenities
// and reviews (newest first), or ErrAccommodationNotFound.
func (r *AccommodationRepo) GetByID(ctx context.Context, id int64) (model.AccommodationDetail, error) {
	list, err := r.summaries(ctx, "a.id = ?", id)
	if err != nil {
		return model.AccommodationDetail{}, err
	}
	if len(list) == 0 {
		return model.AccommodationDetail{}, ErrAccommodationNotFound
	}

	d := model.AccommodationDetail{AccommodationSummary: list[0], Reviews: []model.Review{}}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, accommodation_id, guest_name, rating, comment, created_at
		FROM accommodation_reviews
		WHERE accommodation_id = ?
		ORDER BY created_at DESC, id DESC`, id)
	if err != nil {
		return d, fmt.Errorf("load reviews: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.AccommodationID, &rv.GuestName, &rv.Rating, &rv.Comment,
			timeCol{&rv.CreatedAt}); err != nil {
			return d, fmt.Errorf("scan review: %w", err)
		}
		d.Reviews = append(d.Reviews, rv)
	}
	return d, rows.Err()
}

// Create inserts a and its amenity set in one transaction and returns the
// stored accommodation. Rating aggregates start at zero.
func (r *AccommodationRepo) Create(ctx context.Context, a model.Accommodation) (model.AccommodationSummary, error) {
	now := database.Now()
	var id int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var stars, tier any
		if a.StarRating > 0 {
			stars = a.StarRating
		}
		if a.PriceRange.Valid() {
			tier = int(a.PriceRange)
		}
		res, err := tx.ExecContext(ctx, `
			INSERT INTO accommodations (
				name, type, description, star_rating, guest_rating, review_count, price_tier,
				location, proximity_to_gates, contact_info, website_url, booking_info,
				is_women_owned, is_eco_friendly, is_family_friendly, created_at, updated_at
			) VALUES (?, ?, ?, ?, 0, 0, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.Name, a.Type, a.Description, stars, tier,
			a.Location, a.ProximityToGates, a.ContactInfo, a.WebsiteURL, a.BookingInfo,
			a.IsWomenOwned, a.IsEcoFriendly, a.IsFamilyFriendly, now, now)
		if err != nil {
			return fmt.Errorf("insert accommodation: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}
		for _, tag := range model.NewAmenitySet(a.Amenities...) {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO accommodation_amenities (accommodation_id, amenity) VALUES (?, ?)", id, tag); err != nil {
				return fmt.Errorf("insert amenity: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return model.AccommodationSummary{}, err
	}

	d, err := r.GetByID(ctx, id)
	if err != nil {
		return model.AccommodationSummary{}, err
	}
	return d.AccommodationSummary, nil
}

// AddImage attaches an image to an accommodation. Marking it primary
// demotes any previous primary image.
func (r *AccommodationRepo) AddImage(ctx context.Context, img model.Image) (model.Image, error) {
	img.CreatedAt = database.Now()
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := accommodationExists(ctx, tx, img.AccommodationID); err != nil {
			return err
		}
		if img.IsPrimary {
			if _, err := tx.ExecContext(ctx,
				"UPDATE accommodation_images SET is_primary = ? WHERE accommodation_id = ?",
				false, img.AccommodationID); err != nil {
				return fmt.Errorf("demote images: %w", err)
			}
		}
		res, err := tx.ExecContext(ctx, `
			INSERT INTO accommodation_images (accommodation_id, image_url, caption, is_primary, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			img.AccommodationID, img.ImageURL, img.Caption, img.IsPrimary, img.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert image: %w", err)
		}
		img.ID, err = res.LastInsertId()
		return err
	})
	return img, err
}

func accommodationExists(ctx context.Context, tx *sql.Tx, id int64) error {
	var found int64
	err := tx.QueryRowContext(ctx, "SELECT id FROM accommodations WHERE id = ?", id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAccommodationNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup accommodation: %w", err)
	}
	return nil
}
