package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kruger-gateway/internal/metrics"
	"github.com/iliyamo/kruger-gateway/internal/middleware"
	"github.com/iliyamo/kruger-gateway/internal/service"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

// ----- DTOs -----

type registerReq struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     *string `json:"phone"`
	Role      string  `json:"role"` // admin | ranger | visitor
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileReq struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     *string `json:"phone"`
}

// Register: create the account and sign the user in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	res, err := h.Auth.Register(ctx, service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      req.Role,
	})
	metrics.RecordAuthAttempt("register", err)
	if err != nil {
		return respondError(c, err, "failed to register user")
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "user registered successfully",
		"token":   res.Token,
		"user":    res.User,
	})
}

// Login: verify credentials and return a fresh token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	res, err := h.Auth.Login(ctx, req.Email, req.Password)
	metrics.RecordAuthAttempt("login", err)
	if err != nil {
		return respondError(c, err, "failed to login")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "login successful",
		"token":   res.Token,
		"user":    res.User,
	})
}

// Profile returns the caller's public user record.
func (h *AuthHandler) Profile(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "access token required"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	u, err := h.Auth.Profile(ctx, uid)
	if err != nil {
		return respondError(c, err, "failed to fetch profile")
	}
	return c.JSON(http.StatusOK, echo.Map{"user": u})
}

// UpdateProfile changes the caller's names and phone.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "access token required"})
	}
	var req profileReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	u, err := h.Auth.UpdateProfile(ctx, uid, req.FirstName, req.LastName, req.Phone)
	if err != nil {
		return respondError(c, err, "failed to update profile")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "profile updated successfully",
		"user":    u,
	})
}
