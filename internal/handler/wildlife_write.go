package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kruger-gateway/internal/metrics"
	"github.com/iliyamo/kruger-gateway/internal/middleware"
	"github.com/iliyamo/kruger-gateway/internal/model"
	"github.com/iliyamo/kruger-gateway/internal/queue"
	"github.com/iliyamo/kruger-gateway/internal/repository"
	"github.com/iliyamo/kruger-gateway/internal/service"
)

type sightingReq struct {
	GateID      *int64  `json:"gate_id" validate:"omitempty,gt=0"`
	AnimalType  string  `json:"animal_type" validate:"required,max=50"`
	Probability string  `json:"probability" validate:"required"`
	Confidence  string  `json:"confidence"`
	Notes       *string `json:"notes" validate:"omitempty,max=1000"`
}

// input validates req and resolves it into repository input. Probability
// and confidence are lower-cased before they are checked against their
// tiers; confidence defaults to reported.
func (h *WildlifeHandler) input(ctx context.Context, c echo.Context) (model.SightingInput, error) {
	var req sightingReq
	if err := c.Bind(&req); err != nil {
		return model.SightingInput{}, service.ValidationError("invalid request body")
	}
	req.AnimalType = strings.ToLower(strings.TrimSpace(req.AnimalType))
	req.Probability = strings.ToLower(strings.TrimSpace(req.Probability))
	req.Confidence = strings.ToLower(strings.TrimSpace(req.Confidence))
	if err := c.Validate(&req); err != nil {
		return model.SightingInput{}, err
	}
	if !model.ValidProbability(req.Probability) {
		return model.SightingInput{}, service.ValidationError("probability must be one of high, medium, low")
	}
	if req.Confidence == "" {
		req.Confidence = model.ConfidenceReported
	}
	if !model.ValidConfidence(req.Confidence) {
		return model.SightingInput{}, service.ValidationError("confidence must be one of confirmed, reported, suspected")
	}
	if req.GateID != nil {
		if _, err := h.Gates.GetByID(ctx, *req.GateID); err != nil {
			if errors.Is(err, repository.ErrGateNotFound) {
				return model.SightingInput{}, service.ValidationError("gate_id does not reference a known gate")
			}
			return model.SightingInput{}, err
		}
	}
	return model.SightingInput{
		GateID:      req.GateID,
		AnimalType:  req.AnimalType,
		Probability: req.Probability,
		Confidence:  req.Confidence,
		Notes:       trimPtr(req.Notes),
	}, nil
}

// CreateSighting: POST /api/wildlife/sightings (ranger). The reporter is
// the token's user.
func (h *WildlifeHandler) CreateSighting(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	in, err := h.input(ctx, c)
	if err != nil {
		return respondError(c, err, "failed to create sighting")
	}
	var actor *int64
	if uid, ok := middleware.UserID(c); ok {
		actor = &uid
	}
	in.ReportedBy = actor

	s, err := h.Sightings.Create(ctx, in)
	if err != nil {
		return respondError(c, err, "failed to create sighting")
	}
	metrics.SightingsReported.WithLabelValues(s.AnimalType).Inc()
	h.Activity.Emit(queue.KindSightingReported, s.ID, actor, sightingSummary(s))
	return c.JSON(http.StatusCreated, s)
}

// UpdateSighting: PUT /api/wildlife/sightings/:id (ranger)
func (h *WildlifeHandler) UpdateSighting(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid sighting id")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	in, err := h.input(ctx, c)
	if err != nil {
		return respondError(c, err, "failed to update sighting")
	}
	s, err := h.Sightings.Update(ctx, id, in)
	if err != nil {
		return respondError(c, err, "failed to update sighting")
	}
	var actor *int64
	if uid, ok := middleware.UserID(c); ok {
		actor = &uid
	}
	h.Activity.Emit(queue.KindSightingUpdated, s.ID, actor, sightingSummary(s))
	return c.JSON(http.StatusOK, s)
}

// DeleteSighting: DELETE /api/wildlife/sightings/:id (admin)
func (h *WildlifeHandler) DeleteSighting(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid sighting id")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Sightings.Delete(ctx, id); err != nil {
		return respondError(c, err, "failed to delete sighting")
	}
	var actor *int64
	if uid, ok := middleware.UserID(c); ok {
		actor = &uid
	}
	h.Activity.Emit(queue.KindSightingDeleted, id, actor, fmt.Sprintf("sighting %d removed", id))
	return c.NoContent(http.StatusNoContent)
}

func sightingSummary(s model.Sighting) string {
	where := "unknown gate"
	if s.GateName != nil {
		where = *s.GateName
	}
	return fmt.Sprintf("%s (%s) at %s", s.AnimalType, s.Probability, where)
}
