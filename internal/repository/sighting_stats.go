package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/kruger-gateway/internal/logging"
	"github.com/iliyamo/kruger-gateway/internal/model"
)

// StatsWindow is the span of the daily activity histogram.
const StatsWindow = 7 * 24 * time.Hour

// TopReporterLimit caps the reporter leaderboard.
const TopReporterLimit = 5

// Stats computes the statistics summary. Each aggregate is an independent
// query. A failing reporter leaderboard is logged and replaced by an empty
// list; any other failure fails the call.
func (r *SightingRepo) Stats(ctx context.Context, now time.Time) (model.SightingStats, error) {
	st := model.SightingStats{GeneratedAt: now.UTC()}

	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM wildlife_sightings").Scan(&st.Total); err != nil {
		return st, fmt.Errorf("count sightings: %w", err)
	}

	var err error
	if st.ByAnimal, err = r.countByAnimal(ctx); err != nil {
		return st, err
	}
	if st.ByProbability, err = r.countByProbability(ctx); err != nil {
		return st, err
	}
	if st.ByGate, err = r.countByGate(ctx); err != nil {
		return st, err
	}
	if st.RecentActivity, err = r.dailyActivity(ctx, windowStart(now, StatsWindow)); err != nil {
		return st, err
	}

	st.TopReporters, err = r.topReporters(ctx, TopReporterLimit)
	if err != nil {
		logging.Warn().Err(err).Msg("stats: top reporters unavailable")
		st.TopReporters = []model.Reporter{}
	}
	return st, nil
}

func (r *SightingRepo) countByAnimal(ctx context.Context) ([]model.AnimalCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT animal_type, COUNT(*) AS cnt
		FROM wildlife_sightings
		GROUP BY animal_type
		ORDER BY cnt DESC, animal_type`)
	if err != nil {
		return nil, fmt.Errorf("count by animal: %w", err)
	}
	defer rows.Close()

	out := []model.AnimalCount{}
	for rows.Next() {
		var c model.AnimalCount
		if err := rows.Scan(&c.AnimalType, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SightingRepo) countByProbability(ctx context.Context) ([]model.ProbabilityCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT probability, COUNT(*) AS cnt
		FROM wildlife_sightings
		GROUP BY probability
		ORDER BY cnt DESC, probability`)
	if err != nil {
		return nil, fmt.Errorf("count by probability: %w", err)
	}
	defer rows.Close()

	out := []model.ProbabilityCount{}
	for rows.Next() {
		var c model.ProbabilityCount
		if err := rows.Scan(&c.Probability, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// countByGate includes gates without sightings.
func (r *SightingRepo) countByGate(ctx context.Context) ([]model.GateCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT g.gate_name, COUNT(s.id) AS cnt
		FROM park_gates g
		LEFT JOIN wildlife_sightings s ON s.gate_id = g.id
		GROUP BY g.id, g.gate_name
		ORDER BY cnt DESC, g.gate_name`)
	if err != nil {
		return nil, fmt.Errorf("count by gate: %w", err)
	}
	defer rows.Close()

	out := []model.GateCount{}
	for rows.Next() {
		var c model.GateCount
		if err := rows.Scan(&c.GateName, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SightingRepo) dailyActivity(ctx context.Context, since time.Time) ([]model.DailyCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DATE(created_at) AS day, COUNT(*) AS cnt
		FROM wildlife_sightings
		WHERE created_at > ?
		GROUP BY DATE(created_at)
		ORDER BY day DESC`, since)
	if err != nil {
		return nil, fmt.Errorf("daily activity: %w", err)
	}
	defer rows.Close()

	out := []model.DailyCount{}
	for rows.Next() {
		var c model.DailyCount
		if err := rows.Scan(dayCol{&c.Date}, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SightingRepo) topReporters(ctx context.Context, limit int) ([]model.Reporter, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.first_name, u.last_name, COUNT(s.id) AS sighting_count
		FROM wildlife_sightings s
		JOIN users u ON u.id = s.reported_by
		GROUP BY u.id, u.first_name, u.last_name
		ORDER BY sighting_count DESC, u.id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("top reporters: %w", err)
	}
	defer rows.Close()

	out := []model.Reporter{}
	for rows.Next() {
		var rep model.Reporter
		if err := rows.Scan(&rep.FirstName, &rep.LastName, &rep.SightingCount); err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}
