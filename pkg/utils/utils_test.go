package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf(t *testing.T) {
	lima, err := time.LoadLocation("America/Lima")
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    time.Time
		loc      *time.Location
		expected time.Time
	}{
		{
			name:     "strips time of day",
			input:    time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC),
			loc:      time.UTC,
			expected: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "late evening in Lima is still the same local day",
			input:    time.Date(2026, 3, 5, 2, 0, 0, 0, time.UTC), // 21:00 on the 4th in Lima
			loc:      lima,
			expected: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "nil location falls back to UTC",
			input:    time.Date(2026, 3, 5, 2, 0, 0, 0, time.UTC),
			loc:      nil,
			expected: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.expected.Equal(DateOf(tt.input, tt.loc)))
		})
	}
}

func TestParseAndFormatDate(t *testing.T) {
	day, err := ParseDate("2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-31", FormatDate(day))
	assert.Equal(t, "2026-02-01", FormatDate(AddDays(day, 1)))

	_, err = ParseDate("31/01/2026")
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysBetween(start, start))
	assert.Equal(t, 9, DaysBetween(start, start.AddDate(0, 0, 9)))
	assert.Equal(t, -3, DaysBetween(start, start.AddDate(0, 0, -3)))
	assert.Equal(t, 1, DaysBetween(start, time.Date(2026, 1, 2, 23, 59, 0, 0, time.UTC)))
}

func TestPercentOf(t *testing.T) {
	tests := []struct {
		name     string
		part     int
		whole    int
		expected decimal.Decimal
	}{
		{name: "full", part: 3, whole: 3, expected: decimal.NewFromInt(100)},
		{name: "half", part: 1, whole: 2, expected: decimal.NewFromInt(50)},
		{name: "zero whole", part: 1, whole: 0, expected: decimal.Zero},
		{name: "thirds", part: 1, whole: 3, expected: decimal.RequireFromString("33.33")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PercentOf(tt.part, tt.whole).Round(2)
			assert.True(t, result.Equal(tt.expected), "expected %s, got %s", tt.expected, result)
		})
	}
}

func TestSumDecimals(t *testing.T) {
	total := SumDecimals([]decimal.Decimal{
		decimal.RequireFromString("10.50"),
		decimal.RequireFromString("4.50"),
	})
	assert.True(t, total.Equal(decimal.NewFromInt(15)))
	assert.True(t, SumDecimals(nil).IsZero())
}
