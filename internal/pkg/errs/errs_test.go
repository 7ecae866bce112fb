package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	err := errs.NewObjectNotFoundError("delivery person", "5f0c6e1a-9a55-4cf4-8f8f-1f0f6d2e0c11")

	assert.Equal(t, "object not found: delivery person 5f0c6e1a-9a55-4cf4-8f8f-1f0f6d2e0c11", err.Error())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	// Repositories return the error wrapped by the unit of work or a use case.
	wrapped := fmt.Errorf("load courier: %w", err)
	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, wrapped, &notFound)
	assert.Equal(t, "delivery person", notFound.ParamName)
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("payment method", errors.New(`"crypto" is not a known payment method`))

		assert.Equal(t, `value is invalid: payment method (cause: "crypto" is not a known payment method)`, err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("status", nil)

		assert.Equal(t, "value is invalid: status", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("latitude", 91.5, -90, 90)

	assert.Equal(t, "value is out of range: latitude is 91.5, expected [-90, 90]", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.NotErrorIs(t, err, errs.ErrValueIsInvalid)

	open := errs.NewValueIsOutOfRangeError("batch size", 0, 1, "+inf")
	assert.Equal(t, "value is out of range: batch size is 0, expected [1, +inf]", open.Error())
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("line items")

	assert.Equal(t, "value is required: line items", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestErrors_JoinedConstructorErrors(t *testing.T) {
	// Aggregate constructors report every failing field at once.
	err := errors.Join(
		errs.NewValueIsRequiredError("name"),
		errs.NewValueIsOutOfRangeError("max cash limit", "-5", 0, "+inf"),
	)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.NotErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestErrors_SanitizeNewlines(t *testing.T) {
	err := errs.NewValueIsRequiredError("street\r\nInjected: yes")

	assert.Equal(t, "value is required: street Injected: yes", err.Error())
	assert.NotContains(t, err.Error(), "\n")
}
