package router // package router defines how HTTP routes are registered for the API

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/kruger-gateway/internal/config"
	"github.com/iliyamo/kruger-gateway/internal/handler"
	"github.com/iliyamo/kruger-gateway/internal/logging"
	"github.com/iliyamo/kruger-gateway/internal/middleware"
	"github.com/iliyamo/kruger-gateway/internal/repository"
	"github.com/iliyamo/kruger-gateway/internal/service"
	"github.com/iliyamo/kruger-gateway/internal/validation"
)

// Deps is everything the HTTP layer needs. Redis and CacheStore are
// optional; without them rate limiting and response caching are skipped.
type Deps struct {
	DB          *sql.DB
	Driver      string
	JWTSecret   string
	Auth        *service.AuthService
	Activity    *service.Activity
	Redis       *redis.Client
	CacheStore  middleware.CacheStore
	Cache       config.CacheConfig
	RateLimit   config.RateLimitConfig
	CORSOrigins []string
}

// New builds the Echo server with the shared middleware chain and every
// route registered.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}
	e.Validator = validation.Echo{}
	e.HTTPErrorHandler = httpErrorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Metrics())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: d.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomw.BodyLimit("1M"))

	if d.Activity == nil {
		d.Activity = service.NewActivity(nil)
	}

	RegisterRoutes(e, handler.NewHealthHandler(d.DB, d.Driver))
	purge := middleware.PurgeOnWrite(d.Cache, d.CacheStore)
	RegisterAuth(e, handler.NewAuthHandler(d.Auth), d.JWTSecret,
		middleware.NewAuthLimiter(d.RateLimit, d.Redis), purge)

	cache := []echo.MiddlewareFunc{
		purge,
		middleware.NewResponseCache(d.Cache, d.CacheStore),
	}
	RegisterWildlife(e,
		handler.NewWildlifeHandler(repository.NewSightingRepo(d.DB), repository.NewGateRepo(d.DB), d.Activity),
		d.JWTSecret, cache...)
	RegisterAccommodations(e,
		handler.NewAccommodationHandler(repository.NewAccommodationRepo(d.DB), repository.NewReviewRepo(d.DB), d.Activity),
		d.JWTSecret, cache...)
	RegisterAdmin(e, handler.NewAdminHandler(d.DB), d.JWTSecret, purge)
	return e
}

// RegisterRoutes registers the index, health check and metrics endpoints.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/", handler.Index)
	e.GET("/api/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers the account routes. Register and login sit behind
// the rate limiter; the profile routes need a valid token. A profile edit
// purges cached responses because sightings carry reporter names.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limiter, purge echo.MiddlewareFunc) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register, limiter)
	g.POST("/login", a.Login, limiter)

	auth := middleware.JWTAuth(jwtSecret)
	g.GET("/profile", a.Profile, auth)
	g.PUT("/profile", a.UpdateProfile, auth, purge)
}

// httpErrorHandler renders framework errors (unknown route, bad method,
// oversized body, recovered panic) in the same {error: message} shape the
// handlers use.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := "internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok && code < 500 {
			msg = m
		}
	}
	if code == http.StatusNotFound {
		msg = "route not found"
	}
	if code >= 500 {
		logging.Error().Err(err).Str("path", c.Request().URL.Path).Msg("unhandled error")
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, echo.Map{"error": msg})
}
