package handler

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kruger-gateway/internal/database"
)

// AdminHandler reloads or clears the sample data. Every route is admin only.
type AdminHandler struct {
	DB *sql.DB
}

func NewAdminHandler(db *sql.DB) *AdminHandler { return &AdminHandler{DB: db} }

// SetupWildlife: POST /api/admin/setup-data
func (h *AdminHandler) SetupWildlife(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	n, err := database.LoadWildlifeSample(ctx, h.DB)
	if err != nil {
		return respondError(c, err, "failed to load sample wildlife data")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"message":     "sample wildlife data loaded",
		"data_loaded": n,
	})
}

// SetupAccommodations: POST /api/admin/setup-accommodations
func (h *AdminHandler) SetupAccommodations(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	n, err := database.LoadAccommodationSample(ctx, h.DB)
	if err != nil {
		return respondError(c, err, "failed to load sample accommodations")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"message":     "sample accommodations loaded",
		"data_loaded": n,
	})
}

// ResetAll: POST /api/admin/reset-all. Users are kept.
func (h *AdminHandler) ResetAll(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := database.ResetAll(ctx, h.DB); err != nil {
		return respondError(c, err, "failed to reset data")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "all data cleared successfully"})
}
