package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/kruger-gateway/internal/model"
)

type GateRepo struct{ db *sql.DB }

func NewGateRepo(db *sql.DB) *GateRepo { return &GateRepo{db: db} }

// ListWithCounts returns every gate, ordered by name, with the number of
// sightings reported there and the time of the latest one. Gates without
// sightings have a zero count and a nil LastUpdated.
func (r *GateRepo) ListWithCounts(ctx context.Context) ([]model.GateActivity, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT g.id, g.gate_name, g.description, g.location, g.created_at,
		       COUNT(s.id) AS sighting_count,
		       MAX(s.created_at) AS last_updated
		FROM park_gates g
		LEFT JOIN wildlife_sightings s ON s.gate_id = g.id
		GROUP BY g.id, g.gate_name, g.description, g.location, g.created_at
		ORDER BY g.gate_name`)
	if err != nil {
		return nil, fmt.Errorf("list gates: %w", err)
	}
	defer rows.Close()

	out := make([]model.GateActivity, 0, 8)
	for rows.Next() {
		var g model.GateActivity
		if err := rows.Scan(&g.ID, &g.GateName, &g.Description, &g.Location, timeCol{&g.CreatedAt},
			&g.SightingCount, nullTimeCol{&g.LastUpdated}); err != nil {
			return nil, fmt.Errorf("scan gate: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// GetByID returns a single gate or ErrGateNotFound.
func (r *GateRepo) GetByID(ctx context.Context, id int64) (model.Gate, error) {
	var g model.Gate
	err := r.db.QueryRowContext(ctx,
		"SELECT id, gate_name, description, location, created_at FROM park_gates WHERE id=? LIMIT 1", id).
		Scan(&g.ID, &g.GateName, &g.Description, &g.Location, timeCol{&g.CreatedAt})
	if errors.Is(err, sql.ErrNoRows) {
		return model.Gate{}, ErrGateNotFound
	}
	if err != nil {
		return model.Gate{}, fmt.Errorf("get gate: %w", err)
	}
	return g, nil
}
