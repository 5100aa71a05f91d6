package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "May 12, 2025", FormatDate("2025-05-12"))
	assert.Equal(t, "Unknown", FormatDate("  "))
	assert.Equal(t, "soon", FormatDate("soon"))
}

func TestFormatDateHuman(t *testing.T) {
	now := time.Date(2025, 5, 12, 15, 0, 0, 0, time.UTC)
	tests := map[string]string{
		"2025-05-12": "Today",
		"2025-05-11": "Yesterday",
		"2025-05-09": "3d ago",
		"2025-01-15": "Jan 15",
		"2024-12-31": "Dec 31 '24",
		"":           "Unknown",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatDateHuman(in, now), in)
	}
}

func TestParseDateInput(t *testing.T) {
	for _, in := range []string{"2025-05-12", "May 12, 2025", "5/12/2025", "05/12/2025", "May 12, 2025"} {
		got, err := ParseDateInput(in)
		require.NoError(t, err, in)
		assert.Equal(t, "2025-05-12", got)
	}
	_, err := ParseDateInput("yesterday")
	assert.Error(t, err)
	_, err = ParseDateInput("")
	assert.Error(t, err)
}

func TestParseMoney(t *testing.T) {
	tests := map[string]float64{
		"$156.99":    156.99,
		"$45,231.89": 45231.89,
		"-$12.50":    -12.5,
		"€3":         3,
		"7.25":       7.25,
	}
	for in, want := range tests {
		got, err := ParseMoney(in)
		require.NoError(t, err, in)
		assert.InDelta(t, want, got, 1e-9, in)
	}
	_, err := ParseMoney("$")
	assert.Error(t, err)
	_, err = ParseMoney("free")
	assert.Error(t, err)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$45,231.89", FormatMoney(45231.89))
	assert.Equal(t, "$156.90", FormatMoney(156.9))
	assert.Equal(t, "-$12.50", FormatMoney(-12.5))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "1,283", FormatCount(1283))
	assert.Equal(t, "8", FormatCount(8))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "low stock", StatusLabel("low_stock"))
	assert.Equal(t, "out of_stock", StatusLabel("out_of_stock"))
	assert.Equal(t, "active", StatusLabel("active"))
}
