package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/kruger-gateway/internal/model"
	"github.com/iliyamo/kruger-gateway/internal/repository"
	"github.com/iliyamo/kruger-gateway/internal/utils"
	"github.com/iliyamo/kruger-gateway/internal/validation"
)

// Client-facing messages.
const (
	msgInvalidCredentials = "invalid email or password"
	msgUserNotFound       = "user not found"
)

// AuthConfig carries the secrets and costs used by AuthService.
type AuthConfig struct {
	JWTSecret  string
	BcryptCost int
}

// AuthService implements registration, login and profile management.
type AuthService struct {
	users *repository.UserRepo
	cfg   AuthConfig
}

func NewAuthService(users *repository.UserRepo, cfg AuthConfig) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

// RegisterInput is the data needed to open an account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     *string
	Role      string // empty means visitor
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      model.PublicUser `json:"user"`
}

// Register creates an account and signs the user in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	in.Email = repository.NormalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))

	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" {
		return AuthResult{}, ValidationError("email, password, first name and last name are required")
	}
	if validation.Var(in.Email, "email") != nil {
		return AuthResult{}, ValidationError("email must be a valid email address")
	}
	if len(in.Password) < utils.MinPasswordLength {
		return AuthResult{}, ValidationError("password must be at least 6 characters")
	}
	if len(in.Password) > utils.MaxPasswordBytes {
		return AuthResult{}, ValidationError("password must be at most 72 bytes")
	}
	if in.Role == "" {
		in.Role = model.RoleVisitor
	}
	if !model.ValidRole(in.Role) {
		return AuthResult{}, ValidationError("role must be one of admin, ranger, visitor")
	}

	// friendly pre-check; the unique index still guards the race
	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return AuthResult{}, ConflictError("user already exists with this email")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return AuthResult{}, StorageError("failed to register user", err)
	}

	hash, err := utils.HashPassword(in.Password, s.cfg.BcryptCost)
	if err != nil {
		return AuthResult{}, StorageError("failed to register user", err)
	}
	u := &model.User{
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
		Phone:        normalizePhone(in.Phone),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return AuthResult{}, ConflictError("user already exists with this email")
		}
		return AuthResult{}, StorageError("failed to register user", err)
	}
	return s.issue(*u)
}

// Login checks the credentials and issues a fresh token. Unknown email and
// wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = repository.NormalizeEmail(email)
	if email == "" || password == "" {
		return AuthResult{}, ValidationError("email and password are required")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		utils.BurnPasswordCheck(password, s.cfg.BcryptCost)
		return AuthResult{}, AuthError(msgInvalidCredentials)
	}
	if err != nil {
		return AuthResult{}, StorageError("failed to login", err)
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return AuthResult{}, AuthError(msgInvalidCredentials)
	}
	return s.issue(u)
}

// Profile returns the public projection of a user.
func (s *AuthService) Profile(ctx context.Context, userID int64) (model.PublicUser, error) {
	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return model.PublicUser{}, NotFoundError(msgUserNotFound)
	}
	if err != nil {
		return model.PublicUser{}, StorageError("failed to fetch profile", err)
	}
	return u.Public(), nil
}

// UpdateProfile changes first name, last name and phone. Email and role
// cannot be changed here.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, firstName, lastName string, phone *string) (model.PublicUser, error) {
	firstName, lastName = strings.TrimSpace(firstName), strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return model.PublicUser{}, ValidationError("first name and last name are required")
	}
	u, err := s.users.UpdateProfile(ctx, userID, firstName, lastName, normalizePhone(phone))
	if errors.Is(err, repository.ErrUserNotFound) {
		return model.PublicUser{}, NotFoundError(msgUserNotFound)
	}
	if err != nil {
		return model.PublicUser{}, StorageError("failed to update profile", err)
	}
	return u.Public(), nil
}

func (s *AuthService) issue(u model.User) (AuthResult, error) {
	token, exp, err := utils.IssueToken(s.cfg.JWTSecret, u.ID, u.Email, u.Role, utils.DefaultTokenTTL)
	if err != nil {
		return AuthResult{}, StorageError("failed to issue token", err)
	}
	return AuthResult{Token: token, ExpiresAt: exp, User: u.Public()}, nil
}

func normalizePhone(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
