package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurrle/espresso-helper/internal/domain"
	apperrors "github.com/kurrle/espresso-helper/internal/errors"
)

func TestParseShotLine(t *testing.T) {
	input, err := parseShotLine("9.5 18 36 28")
	require.NoError(t, err)
	assert.Equal(t, 9.5, input.GrindSize)
	assert.Equal(t, 18.0, input.DoseGrams)
	assert.Equal(t, 36.0, input.YieldGrams)
	assert.Equal(t, 28, input.ExtractionSeconds)
}

func TestParseShotLineToleratesExtraSpacing(t *testing.T) {
	input, err := parseShotLine("  9.5   18\t36  28 ")
	require.NoError(t, err)
	assert.Equal(t, 9.5, input.GrindSize)
}

func TestParseShotLineErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few values", "9.5 18 36"},
		{"too many values", "9.5 18 36 28 2"},
		{"empty", ""},
		{"non-numeric grind", "fine 18 36 28"},
		{"non-numeric dose", "9.5 eighteen 36 28"},
		{"fractional seconds", "9.5 18 36 28.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseShotLine(tt.line)
			assert.Error(t, err)
		})
	}
}

func TestParseRoast(t *testing.T) {
	tests := []struct {
		in   string
		want domain.RoastLevel
	}{
		{"light", domain.RoastLight},
		{"Medium-Dark", domain.RoastMediumDark},
		{"MEDIUM DARK", domain.RoastMediumDark},
		{" dark ", domain.RoastDark},
	}
	for _, tt := range tests {
		got, err := parseRoast(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := parseRoast("burnt")
	assert.Error(t, err)
}

func TestSplitCallback(t *testing.T) {
	action, args := splitCallback("main_menu")
	assert.Equal(t, "main_menu", action)
	assert.Empty(t, args)

	action, args = splitCallback("shot:42")
	assert.Equal(t, "shot", action)
	assert.Equal(t, "42", args)

	action, args = splitCallback("profile:42:WATERY_SOUR")
	assert.Equal(t, "profile", action)
	assert.Equal(t, "42:WATERY_SOUR", args)
}

func TestParseID(t *testing.T) {
	id, ok := parseID("42")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	_, ok = parseID("-1")
	assert.False(t, ok)
	_, ok = parseID("abc")
	assert.False(t, ok)
	_, ok = parseID("")
	assert.False(t, ok)
}

// TestTempUint covers the type drift between the in-memory and Redis state
// managers: JSON round-trips turn stored numbers into float64.
func TestTempUint(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  uint
		ok    bool
	}{
		{"uint", uint(7), 7, true},
		{"int", 7, 7, true},
		{"int64", int64(7), 7, true},
		{"float64 from JSON", float64(7), 7, true},
		{"numeric string", "7", 7, true},
		{"negative int", -1, 0, false},
		{"negative float", float64(-1), 0, false},
		{"non-numeric string", "seven", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tempUint(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFriendlyError(t *testing.T) {
	assert.Contains(t, friendlyError(apperrors.NewValidationError("dose must be greater than zero")), "dose must be greater than zero")
	assert.Contains(t, friendlyError(apperrors.ErrShotNotFound), "no longer exists")
	assert.Contains(t, friendlyError(apperrors.ErrNotOwner), "another user")
	assert.Contains(t, friendlyError(apperrors.ErrNoIdentity), "/start")
	assert.Contains(t, friendlyError(assert.AnError), "Something went wrong")
}
