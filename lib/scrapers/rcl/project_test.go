package rcl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const projectPageHTML = `
<html><body>
<div class="small2">Data ostatniej modyfikacji: 10-03-2025</div>
<div class="small2">Data utworzenia: 05-01-2025</div>
<div class="small2">Data ostatniej modyfikacji: 20-03-2025</div>
<div class="small2">Data ostatniej modyfikacji: 99-99-2025</div>
</body></html>`

func TestExtractModificationDates(t *testing.T) {
	doc := parseDoc(t, projectPageHTML)

	dates := ExtractModificationDates(doc)
	require.Len(t, dates, 2)
	require.Equal(t, day(2025, time.March, 10), dates[0])
	require.Equal(t, day(2025, time.March, 20), dates[1])
}

func TestLatestInRange(t *testing.T) {
	dates := []time.Time{
		day(2025, time.March, 10),
		day(2025, time.March, 20),
		day(2025, time.April, 2),
	}

	latest, ok := LatestInRange(dates, day(2025, time.March, 1), day(2025, time.March, 31))
	require.True(t, ok)
	require.Equal(t, day(2025, time.March, 20), latest)

	// both boundaries inclusive
	latest, ok = LatestInRange(dates, day(2025, time.March, 20), day(2025, time.March, 20))
	require.True(t, ok)
	require.Equal(t, day(2025, time.March, 20), latest)

	_, ok = LatestInRange(dates, day(2025, time.May, 1), day(2025, time.May, 31))
	require.False(t, ok)

	_, ok = LatestInRange(nil, day(2025, time.March, 1), day(2025, time.March, 31))
	require.False(t, ok)
}
