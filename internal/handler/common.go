package handler // declare the package name; contains HTTP handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kruger-gateway/internal/logging"
	"github.com/iliyamo/kruger-gateway/internal/repository"
	"github.com/iliyamo/kruger-gateway/internal/service"
	"github.com/iliyamo/kruger-gateway/internal/validation"
)

// requestTimeout bounds the database work of a single request.
const requestTimeout = 5 * time.Second

func dbCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// notFoundMessages maps repository sentinels to client messages.
var notFoundMessages = []struct {
	err error
	msg string
}{
	{repository.ErrAccommodationNotFound, "accommodation not found"},
	{repository.ErrSightingNotFound, "sighting not found"},
	{repository.ErrGateNotFound, "gate not found"},
	{repository.ErrUserNotFound, "user not found"},
}

// respondError writes err as {error: message} with the matching status.
// Anything unclassified is logged and reported as a generic 500; fallback
// is the client message used for it.
func respondError(c echo.Context, err error, fallback string) error {
	var se *service.Error
	if errors.As(err, &se) {
		if se.Kind == service.KindStorage || se.Kind == 0 {
			logError(c, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": se.Message})
		}
		return c.JSON(se.Kind.Status(), echo.Map{"error": se.Message})
	}
	var ve *validation.Error
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error()})
	}
	for _, nf := range notFoundMessages {
		if errors.Is(err, nf.err) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": nf.msg})
		}
	}
	logError(c, err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": fallback})
}

func logError(c echo.Context, err error) {
	logging.Error().Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("request failed")
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

// parseID reads a positive integer path parameter.
func parseID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// bindAndValidate decodes the JSON body into dst and runs its validate tags.
func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return service.ValidationError("invalid request body")
	}
	return c.Validate(dst)
}

// trimPtr trims *s and turns blank strings into nil.
func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// splitCSV splits a comma-separated query value, dropping blanks.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
