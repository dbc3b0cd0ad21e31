package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/kruger-gateway/internal/database"
	"github.com/iliyamo/kruger-gateway/internal/model"
)

type ReviewRepo struct{ db *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// RatingSummary is the denormalized rating of an accommodation after a
// review was added.
type RatingSummary struct {
	GuestRating float64 `json:"guest_rating"`
	ReviewCount int64   `json:"review_count"`
}

// Add stores rv and, in the same transaction, recomputes the parent's
// guest_rating (mean of all review ratings) and review_count.
func (r *ReviewRepo) Add(ctx context.Context, rv *model.Review) (RatingSummary, error) {
	var sum RatingSummary
	now := database.Now()
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := accommodationExists(ctx, tx, rv.AccommodationID); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `
			INSERT INTO accommodation_reviews (accommodation_id, guest_name, rating, comment, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			rv.AccommodationID, rv.GuestName, rv.Rating, rv.Comment, now)
		if err != nil {
			return fmt.Errorf("insert review: %w", err)
		}
		if rv.ID, err = res.LastInsertId(); err != nil {
			return err
		}
		rv.CreatedAt = now

		var avg sql.NullFloat64
		if err := tx.QueryRowContext(ctx,
			"SELECT AVG(rating), COUNT(*) FROM accommodation_reviews WHERE accommodation_id = ?",
			rv.AccommodationID).Scan(&avg, &sum.ReviewCount); err != nil {
			return fmt.Errorf("aggregate reviews: %w", err)
		}
		sum.GuestRating = avg.Float64

		if _, err := tx.ExecContext(ctx,
			"UPDATE accommodations SET guest_rating = ?, review_count = ?, updated_at = ? WHERE id = ?",
			sum.GuestRating, sum.ReviewCount, now, rv.AccommodationID); err != nil {
			return fmt.Errorf("update rating: %w", err)
		}
		return nil
	})
	return sum, err
}
