package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/kruger-gateway/internal/logging"
	"github.com/iliyamo/kruger-gateway/internal/utils"
)

// Now returns the current time in the form every timestamp column stores:
// UTC, truncated to whole seconds.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// SampleCounts reports how many rows a sample load inserted.
type SampleCounts struct {
	Gates          int `json:"gates,omitempty"`
	Sightings      int `json:"sightings,omitempty"`
	Accommodations int `json:"accommodations,omitempty"`
	Images         int `json:"images,omitempty"`
	Reviews        int `json:"reviews,omitempty"`
}

// querier is the subset of *sql.DB and *sql.Tx used by the seed helpers.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Seed inserts the default users, gates, sightings and accommodations into
// tables that are still empty. Running it again is a no-op.
func Seed(ctx context.Context, db *sql.DB, bcryptCost int) error {
	return withTx(ctx, db, func(tx *sql.Tx) error {
		now := Now()

		n, err := count(ctx, tx, "users")
		if err != nil {
			return err
		}
		if n == 0 {
			if err := insertUsers(ctx, tx, bcryptCost, now); err != nil {
				return err
			}
			logging.Info().Int("users", len(sampleUsers)).Msg("seed: default users created")
		}

		gates, err := count(ctx, tx, "park_gates")
		if err != nil {
			return err
		}
		sightings, err := count(ctx, tx, "wildlife_sightings")
		if err != nil {
			return err
		}
		if gates == 0 && sightings == 0 {
			c, err := insertWildlife(ctx, tx, now)
			if err != nil {
				return err
			}
			logging.Info().Int("gates", c.Gates).Int("sightings", c.Sightings).Msg("seed: sample wildlife data inserted")
		}

		n, err = count(ctx, tx, "accommodations")
		if err != nil {
			return err
		}
		if n == 0 {
			c, err := insertAccommodations(ctx, tx, now)
			if err != nil {
				return err
			}
			logging.Info().Int("accommodations", c.Accommodations).Msg("seed: sample accommodations inserted")
		}
		return nil
	})
}

// LoadWildlifeSample replaces every gate and sighting with the sample set.
func LoadWildlifeSample(ctx context.Context, db *sql.DB) (SampleCounts, error) {
	var out SampleCounts
	err := withTx(ctx, db, func(tx *sql.Tx) error {
		for _, table := range []string{"wildlife_sightings", "park_gates"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		c, err := insertWildlife(ctx, tx, Now())
		out = c
		return err
	})
	return out, err
}

// LoadAccommodationSample replaces every accommodation, together with its
// amenities, images and reviews, with the sample set.
func LoadAccommodationSample(ctx context.Context, db *sql.DB) (SampleCounts, error) {
	var out SampleCounts
	err := withTx(ctx, db, func(tx *sql.Tx) error {
		if err := clearAccommodations(ctx, tx); err != nil {
			return err
		}
		c, err := insertAccommodations(ctx, tx, Now())
		out = c
		return err
	})
	return out, err
}

// ResetAll deletes all accommodation and wildlife data, children before
// parents. User accounts are kept.
func ResetAll(ctx context.Context, db *sql.DB) error {
	return withTx(ctx, db, func(tx *sql.Tx) error {
		if err := clearAccommodations(ctx, tx); err != nil {
			return err
		}
		for _, table := range []string{"wildlife_sightings", "park_gates"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
}

func clearAccommodations(ctx context.Context, q querier) error {
	for _, table := range []string{"accommodation_reviews", "accommodation_images", "accommodation_amenities", "accommodations"} {
		if _, err := q.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

func insertUsers(ctx context.Context, q querier, cost int, now time.Time) error {
	for _, u := range sampleUsers {
		hash, err := utils.HashPassword(u.Password, cost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.Email, err)
		}
		_, err = q.ExecContext(ctx, `
			INSERT INTO users (email, password_hash, first_name, last_name, phone, role, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			u.Email, hash, u.FirstName, u.LastName, u.Phone, u.Role, now, now)
		if err != nil {
			return fmt.Errorf("insert user %s: %w", u.Email, err)
		}
	}
	return nil
}

func insertWildlife(ctx context.Context, q querier, now time.Time) (SampleCounts, error) {
	var c SampleCounts
	gateIDs := make(map[string]int64, len(sampleGates))
	for _, g := range sampleGates {
		res, err := q.ExecContext(ctx,
			`INSERT INTO park_gates (gate_name, description, location, created_at) VALUES (?, ?, ?, ?)`,
			g.Name, g.Description, g.Location, now)
		if err != nil {
			return c, fmt.Errorf("insert gate %s: %w", g.Name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return c, err
		}
		gateIDs[g.Name] = id
		c.Gates++
	}

	// sample sightings are attributed to the first ranger, if there is one
	var reporter sql.NullInt64
	err := q.QueryRowContext(ctx, `SELECT id FROM users WHERE role = 'ranger' ORDER BY id LIMIT 1`).Scan(&reporter)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return c, fmt.Errorf("find ranger: %w", err)
	}

	for i, s := range sampleSightings {
		// one hour apart so that newest-first ordering is stable
		at := now.Add(-time.Duration(i) * time.Hour)
		_, err := q.ExecContext(ctx, `
			INSERT INTO wildlife_sightings (gate_id, animal_type, probability, confidence, notes, reported_by, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			gateIDs[s.Gate], s.Animal, s.Probability, s.Confidence, s.Notes, reporter, at, at)
		if err != nil {
			return c, fmt.Errorf("insert sighting %d: %w", i+1, err)
		}
		c.Sightings++
	}
	return c, nil
}

func insertAccommodations(ctx context.Context, q querier, now time.Time) (SampleCounts, error) {
	var c SampleCounts
	for _, a := range sampleAccommodations {
		res, err := q.ExecContext(ctx, `
			INSERT INTO accommodations (
				name, type, description, star_rating, guest_rating, review_count, price_tier,
				location, proximity_to_gates, contact_info, website_url, booking_info,
				is_women_owned, is_eco_friendly, is_family_friendly, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.Name, a.Type, a.Description, a.Stars, a.GuestRating, a.ReviewCount, a.PriceTier,
			a.Location, a.NearGates, a.Contact, a.Website, a.Booking,
			a.WomenOwned, a.Eco, a.Family, now, now)
		if err != nil {
			return c, fmt.Errorf("insert accommodation %s: %w", a.Name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return c, err
		}
		c.Accommodations++

		for _, tag := range a.Amenities {
			if _, err := q.ExecContext(ctx,
				`INSERT INTO accommodation_amenities (accommodation_id, amenity) VALUES (?, ?)`, id, tag); err != nil {
				return c, fmt.Errorf("insert amenity %s: %w", tag, err)
			}
		}
		for _, img := range a.Images {
			if _, err := q.ExecContext(ctx, `
				INSERT INTO accommodation_images (accommodation_id, image_url, caption, is_primary, created_at)
				VALUES (?, ?, ?, ?, ?)`, id, img.URL, img.Caption, img.Primary, now); err != nil {
				return c, fmt.Errorf("insert image %s: %w", img.URL, err)
			}
			c.Images++
		}
		for _, r := range a.Reviews {
			if _, err := q.ExecContext(ctx, `
				INSERT INTO accommodation_reviews (accommodation_id, guest_name, rating, comment, created_at)
				VALUES (?, ?, ?, ?, ?)`, id, r.Guest, r.Rating, r.Comment, now); err != nil {
				return c, fmt.Errorf("insert review for %s: %w", a.Name, err)
			}
			c.Reviews++
		}
	}
	return c, nil
}

func count(ctx context.Context, q querier, table string) (int64, error) {
	var n int64
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// withTx runs fn inside a transaction, committing on success.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
