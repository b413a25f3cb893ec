package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("email", "email must look like local@domain.tld")

	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.Equal(t, "email must look like local@domain.tld", err.Error())

	var custom *CustomError
	assert.True(t, errors.As(err, &custom))
	assert.Equal(t, "email", custom.Details["field"])
}

func TestIs(t *testing.T) {
	wrapped := fmt.Errorf("%w: CS9999", ErrDepartmentNotFound)

	assert.True(t, Is(wrapped, ErrStudentNotFound, ErrDepartmentNotFound))
	assert.False(t, Is(wrapped, ErrStudentNotFound, ErrLectureNotFound))
}

func TestCustomError_JoinedValidation(t *testing.T) {
	err := errors.Join(
		NewValidationError("firstName", "bad first name"),
		NewValidationError("email", "bad email"),
	)

	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.Contains(t, err.Error(), "bad first name")
	assert.Contains(t, err.Error(), "bad email")
}
