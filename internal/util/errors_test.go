package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMessage(t *testing.T) {
	err := NewValidationError("Invalid email format")
	assert.Equal(t, "Validation Error: Invalid email format", err.Error())
}

func TestIsKind(t *testing.T) {
	err := NewError(KindSession, "Tutor is not available at the requested time")
	assert.True(t, IsKind(err, KindSession))
	assert.False(t, IsKind(err, KindValidation))

	// 包装后仍可识别
	wrapped := fmt.Errorf("scheduling failed: %w", err)
	assert.True(t, IsKind(wrapped, KindSession))

	assert.False(t, IsKind(errors.New("plain"), KindSession))
	assert.False(t, IsKind(nil, KindSession))
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(NewValidationError("bad phone")))
	assert.False(t, IsValidationError(NewAuthenticationError("bad login")))
}
