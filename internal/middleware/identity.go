package middleware

// identity.go holds the context keys set by JWTAuth and the accessors
// handlers and other middleware use to read them back.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kruger-gateway/internal/utils"
)

const (
	ctxUserID = "user_id"
	ctxEmail  = "email"
	ctxRole   = "role"
	ctxClaims = "claims"
)

// UserID returns the authenticated user's id.
func UserID(c echo.Context) (int64, bool) {
	id, ok := c.Get(ctxUserID).(int64)
	return id, ok && id > 0
}

// Role returns the authenticated user's role, or "" for guests.
func Role(c echo.Context) string {
	r, _ := c.Get(ctxRole).(string)
	return r
}

// Claims returns the parsed token claims, or nil for guests.
func Claims(c echo.Context) *utils.Claims {
	cl, _ := c.Get(ctxClaims).(*utils.Claims)
	return cl
}
