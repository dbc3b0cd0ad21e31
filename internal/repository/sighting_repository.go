package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/kruger-gateway/internal/database"
	"github.com/iliyamo/kruger-gateway/internal/model"
)

// Recommendation windows.
const (
	BestGatesWindow = 7 * 24 * time.Hour
	BigFiveWindow   = 30 * 24 * time.Hour
)

// Sort keys shared by the ranked queries. Comparing the raw strings would
// put medium before high, so tiers are mapped to explicit ranks.
const (
	probabilityRank = "CASE s.probability WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END"
	confidenceRank  = "CASE s.confidence WHEN 'confirmed' THEN 1 WHEN 'reported' THEN 2 ELSE 3 END"
)

// sightingSelect enriches each sighting with its gate and reporter. Both
// joins are outer joins: a dangling gate_id or reported_by yields nil
// enrichment fields instead of dropping the row.
const sightingSelect = `
	SELECT s.id, s.gate_id, s.animal_type, s.probability, s.confidence, s.notes, s.reported_by,
	       s.created_at, s.updated_at,
	       g.gate_name, g.location, u.first_name, u.last_name
	FROM wildlife_sightings s
	%s park_gates g ON g.id = s.gate_id
	LEFT JOIN users u ON u.id = s.reported_by`

func selectSightings(gateJoin string) string {
	return fmt.Sprintf(sightingSelect, gateJoin)
}

// SightingQuery holds the optional filters and pagination of List.
type SightingQuery struct {
	Animal      string
	Gate        string // gate name, exact
	Probability string
	Limit       int // <= 0 means no limit
	Offset      int // ignored without a limit
}

type SightingRepo struct{ db *sql.DB }

func NewSightingRepo(db *sql.DB) *SightingRepo { return &SightingRepo{db: db} }

// ListAll returns every sighting, newest first.
func (r *SightingRepo) ListAll(ctx context.Context) ([]model.Sighting, error) {
	return r.query(ctx, selectSightings("LEFT JOIN")+" ORDER BY s.created_at DESC, s.id DESC")
}

// List returns one page of sightings matching q together with the number
// of matching rows irrespective of pagination.
func (r *SightingRepo) List(ctx context.Context, q SightingQuery) ([]model.Sighting, int64, error) {
	where := []string{}
	args := []any{}

	if q.Animal != "" {
		where = append(where, "s.animal_type = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(q.Animal)))
	}
	if q.Gate != "" {
		where = append(where, "g.gate_name = ?")
		args = append(args, strings.TrimSpace(q.Gate))
	}
	if q.Probability != "" {
		where = append(where, "s.probability = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(q.Probability)))
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := `SELECT COUNT(*)
		FROM wildlife_sightings s
		LEFT JOIN park_gates g ON g.id = s.gate_id
		WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sightings: %w", err)
	}

	dataSQL := selectSightings("LEFT JOIN") + " WHERE " + cond + " ORDER BY s.created_at DESC, s.id DESC"
	argsData := append([]any{}, args...)
	if q.Limit > 0 {
		dataSQL += " LIMIT ? OFFSET ?"
		offset := q.Offset
		if offset < 0 {
			offset = 0
		}
		argsData = append(argsData, q.Limit, offset)
	}

	out, err := r.query(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByID returns a single enriched sighting or ErrSightingNotFound.
func (r *SightingRepo) GetByID(ctx context.Context, id int64) (model.Sighting, error) {
	list, err := r.query(ctx, selectSightings("LEFT JOIN")+" WHERE s.id = ?", id)
	if err != nil {
		return model.Sighting{}, err
	}
	if len(list) == 0 {
		return model.Sighting{}, ErrSightingNotFound
	}
	return list[0], nil
}

// ListByGate returns the sightings recorded at one gate, newest first.
func (r *SightingRepo) ListByGate(ctx context.Context, gateID int64) ([]model.Sighting, error) {
	return r.query(ctx,
		selectSightings("JOIN")+" WHERE s.gate_id = ? ORDER BY s.created_at DESC, s.id DESC", gateID)
}

// BestGates recommends where to look for the given animals: high or
// medium probability sightings from the last seven days, best first.
func (r *SightingRepo) BestGates(ctx context.Context, animals []string, now time.Time) ([]model.Sighting, error) {
	animals = normalizeAnimals(animals)
	if len(animals) == 0 {
		return []model.Sighting{}, nil
	}
	args := stringArgs(animals)
	args = append(args, model.ProbabilityHigh, model.ProbabilityMedium, windowStart(now, BestGatesWindow))

	q := selectSightings("JOIN") + `
		WHERE s.animal_type IN (` + placeholders(len(animals)) + `)
		  AND s.probability IN (?, ?)
		  AND s.created_at > ?
		ORDER BY ` + probabilityRank + `, ` + confidenceRank + `, s.created_at DESC, s.id DESC`
	return r.query(ctx, q, args...)
}

// BigFiveSummary returns sightings of the big five species from the last
// thirty days regardless of probability, newest first.
func (r *SightingRepo) BigFiveSummary(ctx context.Context, now time.Time) ([]model.Sighting, error) {
	args := stringArgs(model.BigFive)
	args = append(args, windowStart(now, BigFiveWindow))

	q := selectSightings("JOIN") + `
		WHERE s.animal_type IN (` + placeholders(len(model.BigFive)) + `)
		  AND s.created_at > ?
		ORDER BY s.created_at DESC, s.id DESC`
	return r.query(ctx, q, args...)
}

// Create stores a new sighting and returns it enriched.
func (r *SightingRepo) Create(ctx context.Context, in model.SightingInput) (model.Sighting, error) {
	now := database.Now()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO wildlife_sightings (gate_id, animal_type, probability, confidence, notes, reported_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.GateID, in.AnimalType, in.Probability, in.Confidence, in.Notes, in.ReportedBy, now, now)
	if err != nil {
		return model.Sighting{}, fmt.Errorf("insert sighting: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Sighting{}, err
	}
	return r.GetByID(ctx, id)
}

// Update replaces the editable fields of a sighting. The original reporter
// is kept.
func (r *SightingRepo) Update(ctx context.Context, id int64, in model.SightingInput) (model.Sighting, error) {
	_, err := r.db.ExecContext(ctx, `
		UPDATE wildlife_sightings
		SET gate_id = ?, animal_type = ?, probability = ?, confidence = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		in.GateID, in.AnimalType, in.Probability, in.Confidence, in.Notes, database.Now(), id)
	if err != nil {
		return model.Sighting{}, fmt.Errorf("update sighting: %w", err)
	}
	// RowsAffected is 0 on MySQL for an unchanged row; GetByID reports a missing one
	return r.GetByID(ctx, id)
}

// Delete removes a sighting.
func (r *SightingRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM wildlife_sightings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete sighting: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSightingNotFound
	}
	return nil
}

func (r *SightingRepo) query(ctx context.Context, q string, args ...any) ([]model.Sighting, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query sightings: %w", err)
	}
	defer rows.Close()

	out := make([]model.Sighting, 0, 16)
	for rows.Next() {
		var s model.Sighting
		if err := rows.Scan(
			&s.ID,
			&s.GateID,
			&s.AnimalType,
			&s.Probability,
			&s.Confidence,
			&s.Notes,
			&s.ReportedBy,
			timeCol{&s.CreatedAt},
			timeCol{&s.UpdatedAt},
			&s.GateName,
			&s.GateLocation,
			&s.ReporterFirstName,
			&s.ReporterLastName,
		); err != nil {
			return nil, fmt.Errorf("scan sighting: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sightings: %w", err)
	}
	return out, nil
}

func normalizeAnimals(animals []string) []string {
	out := make([]string, 0, len(animals))
	seen := map[string]bool{}
	for _, a := range animals {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

// windowStart is the exclusive lower bound of a window ending at now, in
// the same second-precision UTC form the timestamps are stored in.
func windowStart(now time.Time, window time.Duration) time.Time {
	return now.UTC().Truncate(time.Second).Add(-window)
}
