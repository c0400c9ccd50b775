package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	wrapped := NewUserError("could not open the database", ErrStoreUnavailable)

	assert.Equal(t, "could not open the database: dictionary store unavailable", wrapped.Error())
	assert.True(t, errors.Is(wrapped, ErrStoreUnavailable))

	bare := NewUserError("something went wrong", nil)
	assert.Equal(t, "something went wrong", bare.Error())
}
