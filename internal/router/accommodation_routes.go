package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kruger-gateway/internal/handler"
	"github.com/iliyamo/kruger-gateway/internal/middleware"
	"github.com/iliyamo/kruger-gateway/internal/model"
)

// RegisterAccommodations registers the lodging endpoints under
// /api/accommodations. Listing, creating and reviewing are public; adding
// images is admin only.
func RegisterAccommodations(e *echo.Echo, h *handler.AccommodationHandler, jwtSecret string, mw ...echo.MiddlewareFunc) {
	g := e.Group("/api/accommodations", mw...)

	g.GET("", h.List)
	g.GET("/gate/:gateName", h.NearGate)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.POST("/:id/reviews", h.AddReview)
	g.POST("/:id/images", h.AddImage,
		middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleAdmin))
}

// RegisterAdmin registers the sample-data maintenance endpoints. All of them
// require an admin token.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string, mw ...echo.MiddlewareFunc) {
	g := e.Group("/api/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)
	g.Use(mw...)

	g.POST("/setup-data", h.SetupWildlife)
	g.POST("/setup-accommodations", h.SetupAccommodations)
	g.POST("/reset-all", h.ResetAll)
}
