package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("search: %w", Wrap(CodeGeocodeFailed, "An error occurred while fetching the coordinates!", cause))

	assert.True(t, IsCode(err, CodeGeocodeFailed))
	assert.False(t, IsCode(err, CodeForecastFailed))
	assert.Equal(t, CodeGeocodeFailed, Code(err))
	assert.Equal(t, "An error occurred while fetching the coordinates!", UserMessage(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "search: An error occurred while fetching the coordinates!: connection refused", err.Error())
}

func TestAppError_WithoutCause(t *testing.T) {
	err := Wrap(CodeSuperseded, "superseded by a newer search", nil)

	assert.Equal(t, "superseded by a newer search", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestPlainError(t *testing.T) {
	err := errors.New("boom")

	assert.Empty(t, Code(err))
	assert.Empty(t, UserMessage(err))
	assert.False(t, IsCode(err, CodeEmptyQuery))
}
