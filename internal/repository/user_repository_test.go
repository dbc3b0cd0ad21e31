package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/kruger-gateway/internal/model"
	"github.com/iliyamo/kruger-gateway/internal/testutil"
)

func TestUserCreateAndLookup(t *testing.T) {
	repo := NewUserRepo(testutil.NewDB(t))
	ctx := context.Background()

	u := &model.User{
		Email: "  Sarah@Example.com ", PasswordHash: "hash", FirstName: "Sarah", LastName: "Visitor",
		Role: model.RoleVisitor,
	}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID)
	assert.Equal(t, "sarah@example.com", u.Email)

	got, err := repo.GetByEmail(ctx, "SARAH@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.Nil(t, got.Phone)
	assert.True(t, u.CreatedAt.Equal(got.CreatedAt))

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	repo := NewUserRepo(testutil.NewDB(t))
	ctx := context.Background()

	first := &model.User{Email: "dup@example.com", PasswordHash: "one", FirstName: "A", LastName: "B", Role: model.RoleVisitor}
	require.NoError(t, repo.Create(ctx, first))

	second := &model.User{Email: "DUP@example.com", PasswordHash: "two", FirstName: "C", LastName: "D", Role: model.RoleAdmin}
	assert.ErrorIs(t, repo.Create(ctx, second), ErrEmailExists)

	got, err := repo.GetByEmail(ctx, "dup@example.com")
	require.NoError(t, err)
	assert.Equal(t, "one", got.PasswordHash)
	assert.Equal(t, model.RoleVisitor, got.Role)
}

func TestUserUpdateProfile(t *testing.T) {
	repo := NewUserRepo(testutil.NewDB(t))
	ctx := context.Background()

	u := &model.User{Email: "r@krugerpark.com", PasswordHash: "h", FirstName: "Old", LastName: "Name", Role: model.RoleRanger}
	require.NoError(t, repo.Create(ctx, u))

	phone := "+27 11 000 0000"
	got, err := repo.UpdateProfile(ctx, u.ID, "New", "Surname", &phone)
	require.NoError(t, err)
	assert.Equal(t, "New", got.FirstName)
	assert.Equal(t, "Surname", got.LastName)
	require.NotNil(t, got.Phone)
	assert.Equal(t, phone, *got.Phone)
	assert.Equal(t, model.RoleRanger, got.Role)
	assert.Equal(t, "r@krugerpark.com", got.Email)

	_, err = repo.UpdateProfile(ctx, 999, "X", "Y", nil)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
