package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authclient/pkg/validator"
)

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	var errs validator.ValidationErrors
	assert.True(t, errs.IsEmpty())
	assert.Equal(t, "validation failed", errs.Error())
	assert.Nil(t, errs.Map())

	errs.Add("email", "is required")
	errs.Add("password", "too short")
	errs.Add("email", "is invalid")

	assert.False(t, errs.IsEmpty())
	assert.True(t, errs.Has("email"))
	assert.False(t, errs.Has("phone"))
	assert.Equal(t, []string{"is required", "is invalid"}, errs.Get("email"))
	assert.Equal(t, "is required", errs.First("email"))
	assert.Empty(t, errs.First("phone"))
	assert.Equal(t, []string{"email", "password"}, errs.Fields())
	assert.Equal(t, map[string]string{"email": "is required", "password": "too short"}, errs.Map())
	assert.Equal(t, "validation failed: email: is required; password: too short; email: is invalid", errs.Error())
	assert.ErrorIs(t, errs, validator.ErrValidationFailed)
}

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("passes", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validator.Apply(validator.Required("name", "x", "")))
	})

	t.Run("collects every failure", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.Required("name", "", ""),
			validator.MinLen("name", "", 3, ""),
		)
		errs := validator.ExtractValidationErrors(err)
		require.Len(t, errs, 2)
		assert.Equal(t, "field is required", errs[0].Message)
		assert.Equal(t, "must be at least 3 characters long", errs[1].Message)
	})
}

func TestApplyFirst(t *testing.T) {
	t.Parallel()

	err := validator.ApplyFirst(
		validator.Required("name", "", "Name is required"),
		validator.MinLen("name", "", 3, "Name too short"),
		validator.Required("email", "a@b.co", ""),
		validator.Email("email", "a@b.co", ""),
	)
	errs := validator.ExtractValidationErrors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, validator.ValidationError{Field: "name", Message: "Name is required"}, errs[0])
}

func TestExtractValidationErrors(t *testing.T) {
	t.Parallel()

	assert.Nil(t, validator.ExtractValidationErrors(nil))
	assert.Nil(t, validator.ExtractValidationErrors(errors.New("plain")))
	assert.False(t, validator.IsValidationError(errors.New("plain")))
	assert.False(t, validator.IsValidationError(nil))

	wrapped := fmt.Errorf("register: %w", validator.ValidationErrors{{Field: "phone", Message: "bad"}})
	assert.True(t, validator.IsValidationError(wrapped))
	assert.Equal(t, "bad", validator.ExtractValidationErrors(wrapped).First("phone"))
}
