package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/kruger-gateway/internal/database"
	"github.com/iliyamo/kruger-gateway/internal/model"
	"github.com/iliyamo/kruger-gateway/internal/testutil"
)

func insertGate(t *testing.T, db *sql.DB, name string) int64 {
	t.Helper()
	res, err := db.Exec("INSERT INTO park_gates (gate_name, location, created_at) VALUES (?, ?, ?)",
		name, "Kruger", database.Now())
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func insertUser(t *testing.T, db *sql.DB, email, first, last string) int64 {
	t.Helper()
	now := database.Now()
	res, err := db.Exec(`INSERT INTO users (email, password_hash, first_name, last_name, role, created_at, updated_at)
		VALUES (?, 'x', ?, ?, 'ranger', ?, ?)`, email, first, last, now, now)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

type sightingRow struct {
	gate        any
	animal      string
	probability string
	confidence  string
	reporter    any
	at          time.Time
}

func insertSighting(t *testing.T, db *sql.DB, s sightingRow) int64 {
	t.Helper()
	if s.confidence == "" {
		s.confidence = model.ConfidenceConfirmed
	}
	at := s.at.UTC().Truncate(time.Second)
	res, err := db.Exec(`
		INSERT INTO wildlife_sightings (gate_id, animal_type, probability, confidence, reported_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`, s.gate, s.animal, s.probability, s.confidence, s.reporter, at, at)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func animals(list []model.Sighting) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.AnimalType)
	}
	return out
}

func TestBestGatesWindowAndOrder(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewSightingRepo(db)
	gate := insertGate(t, db, "Malelane Gate")
	now := time.Now().UTC()

	stale := insertSighting(t, db, sightingRow{gate: gate, animal: "lion", probability: "high", at: now.Add(-8 * 24 * time.Hour)})
	medium := insertSighting(t, db, sightingRow{gate: gate, animal: "lion", probability: "medium", at: now.Add(-time.Hour)})
	highReported := insertSighting(t, db, sightingRow{gate: gate, animal: "lion", probability: "high",
		confidence: model.ConfidenceReported, at: now.Add(-2 * time.Hour)})
	highConfirmed := insertSighting(t, db, sightingRow{gate: gate, animal: "lion", probability: "high",
		confidence: model.ConfidenceConfirmed, at: now.Add(-3 * time.Hour)})
	insertSighting(t, db, sightingRow{gate: gate, animal: "lion", probability: "low", at: now.Add(-time.Hour)})
	insertSighting(t, db, sightingRow{gate: gate, animal: "zebra", probability: "high", at: now.Add(-time.Hour)})

	got, err := repo.BestGates(context.Background(), []string{"Lion", "rhino"}, now)
	require.NoError(t, err)

	ids := make([]int64, 0, len(got))
	for _, s := range got {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int64{highConfirmed, highReported, medium}, ids)
	assert.NotContains(t, ids, stale)
	assert.Equal(t, "Malelane Gate", *got[0].GateName)
}

func TestBestGatesWithoutAnimals(t *testing.T) {
	repo := NewSightingRepo(testutil.NewDB(t))
	got, err := repo.BestGates(context.Background(), []string{" ", ""}, time.Now())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBigFiveSummaryExcludesOtherSpecies(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewSightingRepo(db)
	gate := insertGate(t, db, "Orpen Gate")
	now := time.Now().UTC()

	insertSighting(t, db, sightingRow{gate: gate, animal: "cheetah", probability: "high", at: now.Add(-time.Hour)})
	insertSighting(t, db, sightingRow{gate: gate, animal: "leopard", probability: "low", at: now.Add(-2 * time.Hour)})
	insertSighting(t, db, sightingRow{gate: gate, animal: "buffalo", probability: "high", at: now.Add(-31 * 24 * time.Hour)})

	got, err := repo.BigFiveSummary(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, []string{"leopard"}, animals(got))
}

func TestListPaginationReportsTotal(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewSightingRepo(db)
	gate := insertGate(t, db, "Numbi Gate")
	now := time.Now().UTC()

	ids := make([]int64, 0, 5)
	for i := 0; i < 5; i++ {
		ids = append(ids, insertSighting(t, db, sightingRow{gate: gate, animal: "elephant", probability: "high",
			at: now.Add(-time.Duration(i) * time.Hour)}))
	}

	page, total, err := repo.List(context.Background(), SightingQuery{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page, 2)
	// ids[0] is the most recent
	assert.Equal(t, ids[2], page[0].ID)
	assert.Equal(t, ids[3], page[1].ID)

	// offset without limit is ignored
	page, _, err = repo.List(context.Background(), SightingQuery{Offset: 3})
	require.NoError(t, err)
	assert.Len(t, page, 5)
}

func TestListFilters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewSightingRepo(db)
	malelane := insertGate(t, db, "Malelane Gate")
	orpen := insertGate(t, db, "Orpen Gate")
	now := time.Now().UTC()

	insertSighting(t, db, sightingRow{gate: malelane, animal: "lion", probability: "high", at: now})
	insertSighting(t, db, sightingRow{gate: orpen, animal: "lion", probability: "medium", at: now})
	insertSighting(t, db, sightingRow{gate: orpen, animal: "rhino", probability: "medium", at: now})

	page, total, err := repo.List(context.Background(), SightingQuery{Animal: "lion", Gate: "Orpen Gate"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, page, 1)
	assert.Equal(t, "medium", page[0].Probability)

	_, total, err = repo.List(context.Background(), SightingQuery{Probability: "MEDIUM"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestDanglingReferencesYieldNullFields(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewSightingRepo(db)

	id := insertSighting(t, db, sightingRow{gate: 999, animal: "rhino", probability: "low", reporter: 777, at: time.Now()})
	insertSighting(t, db, sightingRow{gate: nil, animal: "wild dog", probability: "low", at: time.Now()})

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)

	s, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, s.GateID)
	assert.Equal(t, int64(999), *s.GateID)
	assert.Nil(t, s.GateName)
	assert.Nil(t, s.GateLocation)
	assert.Nil(t, s.ReporterFirstName)

	_, err = repo.GetByID(context.Background(), 4242)
	assert.ErrorIs(t, err, ErrSightingNotFound)
}

func TestStats(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewSightingRepo(db)
	busy := insertGate(t, db, "Paul Kruger Gate")
	insertGate(t, db, "Quiet Gate")
	john := insertUser(t, db, "john@krugerpark.com", "John", "Ranger")
	mary := insertUser(t, db, "mary@krugerpark.com", "Mary", "Tracker")
	now := time.Now().UTC()

	insertSighting(t, db, sightingRow{gate: busy, animal: "lion", probability: "high", reporter: john, at: now})
	insertSighting(t, db, sightingRow{gate: busy, animal: "lion", probability: "medium", reporter: john, at: now.Add(-24 * time.Hour)})
	insertSighting(t, db, sightingRow{gate: busy, animal: "rhino", probability: "high", reporter: mary, at: now.Add(-10 * 24 * time.Hour)})

	st, err := repo.Stats(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), st.Total)
	assert.Equal(t, []model.AnimalCount{{AnimalType: "lion", Count: 2}, {AnimalType: "rhino", Count: 1}}, st.ByAnimal)
	assert.Equal(t, []model.ProbabilityCount{{Probability: "high", Count: 2}, {Probability: "medium", Count: 1}}, st.ByProbability)
	assert.Equal(t, []model.GateCount{{GateName: "Paul Kruger Gate", Count: 3}, {GateName: "Quiet Gate", Count: 0}}, st.ByGate)

	var recent int64
	for _, d := range st.RecentActivity {
		assert.Len(t, d.Date, len("2006-01-02"))
		recent += d.Count
	}
	assert.Equal(t, int64(2), recent)
	if len(st.RecentActivity) > 1 {
		assert.Greater(t, st.RecentActivity[0].Date, st.RecentActivity[1].Date)
	}

	require.Len(t, st.TopReporters, 2)
	assert.Equal(t, model.Reporter{FirstName: "John", LastName: "Ranger", SightingCount: 2}, st.TopReporters[0])
}

func TestStatsSurvivesBrokenReporterJoin(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewSightingRepo(db)
	gate := insertGate(t, db, "Phabeni Gate")
	insertSighting(t, db, sightingRow{gate: gate, animal: "buffalo", probability: "high", reporter: 1, at: time.Now()})

	_, err := db.Exec("DROP TABLE users")
	require.NoError(t, err)

	st, err := repo.Stats(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.Total)
	assert.NotNil(t, st.TopReporters)
	assert.Empty(t, st.TopReporters)
}

func TestCreateUpdateDeleteSighting(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewSightingRepo(db)
	ctx := context.Background()
	gate := insertGate(t, db, "Malelane Gate")
	ranger := insertUser(t, db, "ranger@krugerpark.com", "John", "Ranger")

	created, err := repo.Create(ctx, model.SightingInput{
		GateID: &gate, AnimalType: "lion", Probability: "high", Confidence: "confirmed",
		Notes: strPtr("pride at the river"), ReportedBy: &ranger,
	})
	require.NoError(t, err)
	assert.Equal(t, "Malelane Gate", *created.GateName)
	assert.Equal(t, "John", *created.ReporterFirstName)

	updated, err := repo.Update(ctx, created.ID, model.SightingInput{
		GateID: &gate, AnimalType: "lion", Probability: "medium", Confidence: "reported",
	})
	require.NoError(t, err)
	assert.Equal(t, "medium", updated.Probability)
	assert.Nil(t, updated.Notes)
	require.NotNil(t, updated.ReportedBy)
	assert.Equal(t, ranger, *updated.ReportedBy)

	_, err = repo.Update(ctx, 9999, model.SightingInput{AnimalType: "lion", Probability: "low", Confidence: "suspected"})
	assert.ErrorIs(t, err, ErrSightingNotFound)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), ErrSightingNotFound)
}

func TestGatesWithCounts(t *testing.T) {
	db := testutil.NewDB(t)
	gates := NewGateRepo(db)
	busy := insertGate(t, db, "B Gate")
	insertGate(t, db, "A Gate")
	at := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	insertSighting(t, db, sightingRow{gate: busy, animal: "lion", probability: "high", at: at})

	got, err := gates.ListWithCounts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A Gate", got[0].GateName)
	assert.Zero(t, got[0].SightingCount)
	assert.Nil(t, got[0].LastUpdated)
	assert.Equal(t, int64(1), got[1].SightingCount)
	require.NotNil(t, got[1].LastUpdated)
	assert.True(t, at.Equal(*got[1].LastUpdated))

	_, err = gates.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrGateNotFound)

	sightings, err := NewSightingRepo(db).ListByGate(context.Background(), busy)
	require.NoError(t, err)
	assert.Len(t, sightings, 1)
}
