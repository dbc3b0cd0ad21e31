package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kruger-gateway/internal/service"
)

// RequireRole rejects the request with 403 unless the role stored by
// JWTAuth is exactly one of roles. There is no hierarchy: an admin token
// does not satisfy RequireRole("ranger").
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !allowed[Role(c)] {
				err := service.ForbiddenError("insufficient permissions")
				return c.JSON(err.Kind.Status(), echo.Map{"error": err.Message})
			}
			return next(c)
		}
	}
}
