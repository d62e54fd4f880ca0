package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Error(t *testing.T) {
	base := errors.New("boom")

	assert.Equal(t, "[io] read menu: boom", IOError("read menu", base).Error())
	assert.Equal(t, "[validation] item has no name", ValidationError("item has no name", nil).Error())
}

func TestDomainError_Unwrap(t *testing.T) {
	base := errors.New("boom")
	err := fmt.Errorf("load content: %w", ContentError("decode menu", base))

	assert.ErrorIs(t, err, base)

	var de *DomainError
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, ErrorTypeContent, de.Type)
}

func TestIsType(t *testing.T) {
	nested := ContentError("load menu", ValidationError("food.sides[0]: missing name", nil))

	assert.True(t, IsType(nested, ErrorTypeContent))
	assert.True(t, IsType(nested, ErrorTypeValidation))
	assert.False(t, IsType(nested, ErrorTypeIO))
	assert.False(t, IsType(errors.New("plain"), ErrorTypeIO))
	assert.False(t, IsType(nil, ErrorTypeIO))
}
