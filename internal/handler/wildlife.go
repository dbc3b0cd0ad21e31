package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kruger-gateway/internal/model"
	"github.com/iliyamo/kruger-gateway/internal/repository"
	"github.com/iliyamo/kruger-gateway/internal/service"
)

// WildlifeHandler serves sightings, gates and their aggregates.
type WildlifeHandler struct {
	Sightings *repository.SightingRepo
	Gates     *repository.GateRepo
	Activity  *service.Activity
	// Now anchors the relative windows; tests replace it.
	Now func() time.Time
}

func NewWildlifeHandler(s *repository.SightingRepo, g *repository.GateRepo, act *service.Activity) *WildlifeHandler {
	return &WildlifeHandler{Sightings: s, Gates: g, Activity: act, Now: time.Now}
}

// List: GET /api/wildlife
func (h *WildlifeHandler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	list, err := h.Sightings.ListAll(ctx)
	if err != nil {
		return respondError(c, err, "failed to fetch wildlife sightings")
	}
	return c.JSON(http.StatusOK, list)
}

// Stats: GET /api/wildlife/stats
func (h *WildlifeHandler) Stats(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	st, err := h.Sightings.Stats(ctx, h.Now())
	if err != nil {
		return respondError(c, err, "failed to fetch statistics")
	}
	return c.JSON(http.StatusOK, st)
}

// Gates: GET /api/wildlife/gates
func (h *WildlifeHandler) ListGates(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	gates, err := h.Gates.ListWithCounts(ctx)
	if err != nil {
		return respondError(c, err, "failed to fetch gates data")
	}
	return c.JSON(http.StatusOK, gates)
}

// GateSightings: GET /api/wildlife/gates/:gateId/sightings
func (h *WildlifeHandler) GateSightings(c echo.Context) error {
	id, ok := parseID(c, "gateId")
	if !ok {
		return badRequest(c, "invalid gate id")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if _, err := h.Gates.GetByID(ctx, id); err != nil {
		return respondError(c, err, "failed to fetch gate sightings")
	}
	list, err := h.Sightings.ListByGate(ctx, id)
	if err != nil {
		return respondError(c, err, "failed to fetch gate sightings")
	}
	return c.JSON(http.StatusOK, list)
}

// BestGates: GET /api/wildlife/best-gates?animals=lion,leopard
func (h *WildlifeHandler) BestGates(c echo.Context) error {
	animals := splitCSV(c.QueryParam("animals"))
	if len(animals) == 0 {
		return badRequest(c, "animals parameter required")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	list, err := h.Sightings.BestGates(ctx, animals, h.Now())
	if err != nil {
		return respondError(c, err, "failed to fetch best gates data")
	}
	return c.JSON(http.StatusOK, list)
}

// BigFive: GET /api/wildlife/big-five-summary
func (h *WildlifeHandler) BigFive(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	list, err := h.Sightings.BigFiveSummary(ctx, h.Now())
	if err != nil {
		return respondError(c, err, "failed to fetch big five summary")
	}
	return c.JSON(http.StatusOK, list)
}

// GetSighting: GET /api/wildlife/sightings/:id
func (h *WildlifeHandler) GetSighting(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid sighting id")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	s, err := h.Sightings.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err, "failed to fetch sighting")
	}
	return c.JSON(http.StatusOK, s)
}

type sightingPage struct {
	Sightings []model.Sighting `json:"sightings"`
	Total     int64            `json:"total"`
	Limit     *int             `json:"limit"`
	Offset    *int             `json:"offset"`
}

// ListSightings: GET /api/wildlife/sightings?limit&offset&animal&gate&probability
func (h *WildlifeHandler) ListSightings(c echo.Context) error {
	limit, err := optionalCount(c, "limit")
	if err != nil {
		return respondError(c, err, "failed to fetch sightings")
	}
	offset, err := optionalCount(c, "offset")
	if err != nil {
		return respondError(c, err, "failed to fetch sightings")
	}
	q := repository.SightingQuery{
		Animal:      c.QueryParam("animal"),
		Gate:        c.QueryParam("gate"),
		Probability: strings.ToLower(strings.TrimSpace(c.QueryParam("probability"))),
	}
	if q.Probability != "" && !model.ValidProbability(q.Probability) {
		return badRequest(c, "probability must be one of high, medium, low")
	}
	if limit != nil {
		q.Limit = *limit
	}
	if offset != nil {
		q.Offset = *offset
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	page, total, err := h.Sightings.List(ctx, q)
	if err != nil {
		return respondError(c, err, "failed to fetch sightings")
	}
	return c.JSON(http.StatusOK, sightingPage{Sightings: page, Total: total, Limit: limit, Offset: offset})
}

// optionalCount parses a non-negative integer query parameter. It returns
// nil when the parameter is absent.
func optionalCount(c echo.Context, name string) (*int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, service.ValidationError(name + " must be a non-negative integer")
	}
	return &n, nil
}
