package cliutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDateRange(t *testing.T) {
	start, end, err := ParseDateRange("2025-01-01", "2025-12-31")
	require.NoError(t, err)
	require.True(t, start.Before(end))

	_, _, err = ParseDateRange("01-01-2025", "2025-12-31")
	require.Error(t, err)

	_, _, err = ParseDateRange("2025-01-01", "garbage")
	require.Error(t, err)

	_, _, err = ParseDateRange("2025-12-31", "2025-01-01")
	require.Error(t, err)

	// same day is a valid, single-day window
	_, _, err = ParseDateRange("2025-06-15", "2025-06-15")
	require.NoError(t, err)
}
