package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate(" 2025-01-15 10:30:00 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("15/01/2025")
	assert.Error(t, err)
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("2025-01-15T08:45:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 15, 8, 45, 0, 0, time.UTC), got)

	got, err = ParseDateTime("2025-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDateTime("soon")
	assert.Error(t, err)
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"24.5", 24.5},
		{"50,000", 50000},
		{" 7 ", 7},
		{"-3.25", -3.25},
	}
	for _, tc := range cases {
		got, err := ParseNumber(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}

	_, err := ParseNumber("not-a-number")
	assert.EqualError(t, err, `cannot parse "not-a-number" as number`)
}

func TestParseInteger(t *testing.T) {
	got, err := ParseInteger("1,234")
	require.NoError(t, err)
	assert.Equal(t, 1234, got)

	_, err = ParseInteger("12.5")
	assert.Error(t, err)
}

func TestNormalizeEnum(t *testing.T) {
	allowed := []string{"Scheduled", "In Progress", "Completed"}

	got, err := NormalizeEnum("completed", allowed)
	require.NoError(t, err)
	assert.Equal(t, "Completed", got)

	got, err = NormalizeEnum("  IN PROGRESS ", allowed)
	require.NoError(t, err)
	assert.Equal(t, "In Progress", got)

	_, err = NormalizeEnum("Done", allowed)
	assert.Error(t, err)
}
