package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kruger-gateway/internal/handler"
	"github.com/iliyamo/kruger-gateway/internal/middleware"
	"github.com/iliyamo/kruger-gateway/internal/model"
)

// RegisterWildlife registers the sighting and gate endpoints under
// /api/wildlife. Reads are public. Rangers report and edit sightings;
// only admins delete them.
func RegisterWildlife(e *echo.Echo, w *handler.WildlifeHandler, jwtSecret string, mw ...echo.MiddlewareFunc) {
	g := e.Group("/api/wildlife", mw...)

	g.GET("", w.List)
	g.GET("/stats", w.Stats)
	g.GET("/gates", w.ListGates)
	g.GET("/gates/:gateId/sightings", w.GateSightings)
	g.GET("/best-gates", w.BestGates)
	g.GET("/big-five-summary", w.BigFive)
	g.GET("/sightings", w.ListSightings)
	g.GET("/sightings/:id", w.GetSighting)

	auth := middleware.JWTAuth(jwtSecret)
	ranger := middleware.RequireRole(model.RoleRanger)
	g.POST("/sightings", w.CreateSighting, auth, ranger)
	g.PUT("/sightings/:id", w.UpdateSighting, auth, ranger)
	g.DELETE("/sightings/:id", w.DeleteSighting, auth, middleware.RequireRole(model.RoleAdmin))
}
