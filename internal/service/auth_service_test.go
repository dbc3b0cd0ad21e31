package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/kruger-gateway/internal/model"
	"github.com/iliyamo/kruger-gateway/internal/repository"
	"github.com/iliyamo/kruger-gateway/internal/testutil"
	"github.com/iliyamo/kruger-gateway/internal/utils"
)

const secret = "service-test-secret"

func newAuth(t *testing.T) *AuthService {
	t.Helper()
	db := testutil.NewDB(t)
	return NewAuthService(repository.NewUserRepo(db), AuthConfig{JWTSecret: secret, BcryptCost: bcrypt.MinCost})
}

func validInput() RegisterInput {
	return RegisterInput{Email: "Sarah@Example.com", Password: "secret", FirstName: "Sarah", LastName: "Visitor"}
}

func TestRegisterPasswordLength(t *testing.T) {
	auth := newAuth(t)
	ctx := context.Background()

	in := validInput()
	in.Password = "12345"
	_, err := auth.Register(ctx, in)
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))

	in.Password = "123456"
	res, err := auth.Register(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "sarah@example.com", res.User.Email)
	assert.Equal(t, model.RoleVisitor, res.User.Role)
}

func TestRegisterPasswordOverBcryptLimit(t *testing.T) {
	auth := newAuth(t)
	ctx := context.Background()

	in := validInput()
	in.Password = strings.Repeat("a", 80)
	_, err := auth.Register(ctx, in)
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, 400, KindOf(err).Status())

	in.Password = strings.Repeat("a", utils.MaxPasswordBytes)
	_, err = auth.Register(ctx, in)
	require.NoError(t, err)
}

func TestRegisterValidation(t *testing.T) {
	auth := newAuth(t)
	ctx := context.Background()

	cases := map[string]func(*RegisterInput){
		"missing first name": func(in *RegisterInput) { in.FirstName = " " },
		"missing email":      func(in *RegisterInput) { in.Email = "" },
		"malformed email":    func(in *RegisterInput) { in.Email = "sarah-at-example" },
		"unknown role":       func(in *RegisterInput) { in.Role = "warden" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			_, err := auth.Register(ctx, in)
			assert.Equal(t, KindValidation, KindOf(err))
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth := newAuth(t)
	ctx := context.Background()

	first, err := auth.Register(ctx, validInput())
	require.NoError(t, err)

	again := validInput()
	again.Email = "SARAH@example.com"
	again.FirstName = "Impostor"
	_, err = auth.Register(ctx, again)
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, 400, KindOf(err).Status())

	p, err := auth.Profile(ctx, first.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sarah", p.FirstName)
}

func TestRegisterIssuesClaims(t *testing.T) {
	auth := newAuth(t)
	in := validInput()
	in.Role = "Ranger"
	phone := " +27 11 "
	in.Phone = &phone

	res, err := auth.Register(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, res.User.Phone)
	assert.Equal(t, "+27 11", *res.User.Phone)

	claims, err := utils.ParseToken(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, "sarah@example.com", claims.Email)
	assert.Equal(t, model.RoleRanger, claims.Role)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestLoginDoesNotRevealWhichFieldWasWrong(t *testing.T) {
	auth := newAuth(t)
	ctx := context.Background()
	_, err := auth.Register(ctx, validInput())
	require.NoError(t, err)

	_, wrongPassword := auth.Login(ctx, "sarah@example.com", "not-it")
	_, unknownEmail := auth.Login(ctx, "ghost@example.com", "secret")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, KindAuth, KindOf(wrongPassword))
	assert.Equal(t, KindAuth, KindOf(unknownEmail))
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())

	res, err := auth.Login(ctx, " SARAH@example.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = auth.Login(ctx, "", "")
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestProfileUpdate(t *testing.T) {
	auth := newAuth(t)
	ctx := context.Background()
	reg, err := auth.Register(ctx, validInput())
	require.NoError(t, err)

	phone := "082 555 0000"
	u, err := auth.UpdateProfile(ctx, reg.User.ID, "Sally", "Tourist", &phone)
	require.NoError(t, err)
	assert.Equal(t, "Sally", u.FirstName)
	assert.Equal(t, reg.User.Email, u.Email)
	assert.Equal(t, reg.User.Role, u.Role)

	_, err = auth.UpdateProfile(ctx, reg.User.ID, "", "Tourist", nil)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = auth.UpdateProfile(ctx, 9999, "A", "B", nil)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = auth.Profile(ctx, 9999)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestErrorKinds(t *testing.T) {
	assert.Equal(t, 401, AuthError("x").Kind.Status())
	assert.Equal(t, 403, ForbiddenError("x").Kind.Status())
	assert.Equal(t, 404, NotFoundError("x").Kind.Status())
	cause := assert.AnError
	err := StorageError("boom", cause)
	assert.Equal(t, 500, err.Kind.Status())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, Kind(0), KindOf(cause))
}
