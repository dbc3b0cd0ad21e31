package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kruger-gateway/internal/database"
)

// Version is reported by the index and health endpoints.
const Version = "2.0.0"

// HealthHandler reports liveness and database reachability.
type HealthHandler struct {
	DB     *sql.DB
	Driver string
}

func NewHealthHandler(db *sql.DB, driver string) *HealthHandler {
	return &HealthHandler{DB: db, Driver: driver}
}

func (h *HealthHandler) databaseName() string {
	if h.Driver == database.DriverMySQL {
		return "MySQL"
	}
	return "SQLite"
}

// Health pings the database. It answers 503 when the ping fails so load
// balancers can take the instance out of rotation.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	body := echo.Map{
		"status":    "OK",
		"message":   "Kruger Gateway API is running",
		"database":  h.databaseName(),
		"version":   Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.DB.PingContext(ctx); err != nil {
		logError(c, err)
		body["status"] = "DEGRADED"
		body["message"] = "database unreachable"
		return c.JSON(http.StatusServiceUnavailable, body)
	}
	return c.JSON(http.StatusOK, body)
}

// Index lists the public endpoints.
func Index(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Kruger Gateway Discoveries API",
		"version": Version,
		"endpoints": echo.Map{
			"health":  "/api/health",
			"metrics": "/metrics",
			"auth": echo.Map{
				"register": "/api/auth/register",
				"login":    "/api/auth/login",
				"profile":  "/api/auth/profile",
			},
			"admin": echo.Map{
				"wildlife":       "/api/admin/setup-data",
				"accommodations": "/api/admin/setup-accommodations",
				"reset":          "/api/admin/reset-all",
			},
			"wildlife": echo.Map{
				"all":       "/api/wildlife",
				"gates":     "/api/wildlife/gates",
				"sightings": "/api/wildlife/sightings",
				"stats":     "/api/wildlife/stats",
				"bestGates": "/api/wildlife/best-gates?animals=lion,leopard",
				"bigFive":   "/api/wildlife/big-five-summary",
			},
			"accommodations": echo.Map{
				"all":     "/api/accommodations",
				"byId":    "/api/accommodations/:id",
				"byGate":  "/api/accommodations/gate/:gateName",
				"reviews": "/api/accommodations/:id/reviews",
			},
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
