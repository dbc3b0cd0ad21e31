package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=admin ranger visitor"`
	Rating   int    `json:"rating" validate:"gte=0,lte=5"`
}

func TestStructUsesJSONNames(t *testing.T) {
	err := Struct(signup{Email: "nope", Password: "12345", Role: "chief", Rating: 9})
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"email", "password", "role", "rating"}, verr.Fields)
	assert.Equal(t, "email must be a valid email address", verr.Messages[0])
	assert.Equal(t, "password must be at least 6 characters", verr.Messages[1])
	assert.Equal(t, "role must be one of: admin ranger visitor", verr.Messages[2])
	assert.Equal(t, "rating must be less than or equal to 5", verr.Messages[3])
}

func TestStructPasses(t *testing.T) {
	assert.NoError(t, Struct(signup{Email: "a@b.co", Password: "123456"}))
	assert.NoError(t, Echo{}.Validate(signup{Email: "a@b.co", Password: "123456", Role: "ranger"}))
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("ranger@krugerpark.com", "email"))
	assert.Error(t, Var("ranger", "email"))
}
