package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBrewRatio(t *testing.T) {
	assert.Equal(t, "1:2.0", FormatBrewRatio(2.0))
	assert.Equal(t, "1:2.5", FormatBrewRatio(2.5))
	assert.Equal(t, "1:1.9", FormatBrewRatio(1.888))
}

func TestFormatGrams(t *testing.T) {
	assert.Equal(t, "18.0g", FormatGrams(18))
	assert.Equal(t, "36.5g", FormatGrams(36.5))
}

func TestFormatGrind(t *testing.T) {
	assert.Equal(t, "9.5", FormatGrind(9.5))
	assert.Equal(t, "10.0", FormatGrind(10))
}
