package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type signupPayload struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	err := ValidateStruct(&signupPayload{Email: "alice@x.com"})
	require.Error(t, err)

	failures, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.Len(t, failures, 2)
	require.Equal(t, "name", failures[0].Field)
	require.Equal(t, "required", failures[0].Tag)
	require.Equal(t, "password", failures[1].Field)
}

func TestValidateStructPassesOnValidInput(t *testing.T) {
	err := ValidateStruct(&signupPayload{Name: "Alice", Email: "alice@x.com", Password: "pw"})
	require.NoError(t, err)
}
