package validator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/signupkit/pkg/validator"
)

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := validator.ValidationError{Field: "email", Message: "Email is required"}
	assert.Equal(t, "email: Email is required", err.Error())
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	t.Run("empty collection", func(t *testing.T) {
		t.Parallel()
		var errs validator.ValidationErrors
		assert.True(t, errs.IsEmpty())
		assert.Equal(t, "validation failed", errs.Error())
		assert.True(t, errors.Is(errs, validator.ErrValidationFailed))
	})

	t.Run("add and query", func(t *testing.T) {
		t.Parallel()
		var errs validator.ValidationErrors
		errs.Add(validator.ValidationError{Field: "email", Message: "first"})
		errs.Add(validator.ValidationError{Field: "email", Message: "second"})
		errs.Add(validator.ValidationError{Field: "phone", Message: "third"})

		assert.True(t, errs.Has("email"))
		assert.False(t, errs.Has("password"))
		assert.Equal(t, []string{"first", "second"}, errs.Get("email"))
		assert.Equal(t, []string{"email", "phone"}, errs.Fields())
		assert.Equal(t, map[string]string{"email": "first", "phone": "third"}, errs.Map())
		assert.Equal(t, "validation failed: email: first; email: second; phone: third", errs.Error())
	})
}

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("collects every failure", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.Required("name", ""),
			validator.MinLen("name", "", 3),
			validator.Required("email", "a@b.co"),
		)
		require.Error(t, err)
		errs := validator.ExtractValidationErrors(err)
		require.Len(t, errs, 2)
		assert.Equal(t, "validation.required", errs[0].TranslationKey)
		assert.Equal(t, "validation.min_length", errs[1].TranslationKey)
	})

	t.Run("nil when all pass", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validator.Apply(validator.Required("name", "Ann")))
	})
}

func TestFirst(t *testing.T) {
	t.Parallel()

	t.Run("stops at the first failing rule", func(t *testing.T) {
		t.Parallel()
		err := validator.First(
			validator.Required("name", "").WithMessage("Name is required"),
			validator.MinLen("name", "", 3).WithMessage("too short"),
		)
		require.Error(t, err)
		errs := validator.ExtractValidationErrors(err)
		require.Len(t, errs, 1)
		assert.Equal(t, "Name is required", errs[0].Message)
		assert.Equal(t, "Name is required", validator.Message(err))
	})

	t.Run("later rules are not evaluated", func(t *testing.T) {
		t.Parallel()
		called := false
		err := validator.First(
			validator.Required("name", ""),
			validator.Rule{Check: func() bool { called = true; return false }},
		)
		require.Error(t, err)
		assert.False(t, called)
	})

	t.Run("nil when all pass", func(t *testing.T) {
		t.Parallel()
		err := validator.First(validator.Required("name", "Ann"), validator.MinLen("name", "Ann", 3))
		assert.NoError(t, err)
		assert.Empty(t, validator.Message(err))
	})
}

func TestRuleWithMessageDoesNotMutateOriginal(t *testing.T) {
	t.Parallel()

	base := validator.Required("name", "")
	custom := base.WithMessage("Name is required")
	assert.Equal(t, "field is required", base.Error.Message)
	assert.Equal(t, "Name is required", custom.Error.Message)
	assert.Equal(t, base.Error.TranslationKey, custom.Error.TranslationKey)
}

func TestIsValidationError(t *testing.T) {
	t.Parallel()

	assert.False(t, validator.IsValidationError(nil))
	assert.False(t, validator.IsValidationError(errors.New("boom")))
	assert.True(t, validator.IsValidationError(validator.Apply(validator.Required("x", ""))))
	assert.Nil(t, validator.ExtractValidationErrors(errors.New("boom")))
	assert.Empty(t, validator.Message(errors.New("boom")))
}
