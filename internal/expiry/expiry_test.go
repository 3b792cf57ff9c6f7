package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestClassifyExpired(t *testing.T) {
	today := date("2025-06-16")

	status := Classify(date("2025-06-15"), today)
	assert.True(t, status.IsExpired)
	assert.False(t, status.IsUpcoming)
	assert.Equal(t, -1, status.DaysUntil)
	assert.Equal(t, SeverityExpired, status.Severity)
}

func TestClassifyToday(t *testing.T) {
	today := date("2025-06-16")

	// An item expiring today is upcoming, not expired
	status := Classify(today, today)
	assert.False(t, status.IsExpired)
	assert.True(t, status.IsUpcoming)
	assert.Equal(t, 0, status.DaysUntil)
	assert.Equal(t, SeverityUpcoming, status.Severity)
}

func TestClassifyWindowBoundaries(t *testing.T) {
	today := date("2025-06-16")

	// Exactly 7 days out is still inside the upcoming window
	edge := Classify(date("2025-06-23"), today)
	assert.True(t, edge.IsUpcoming)
	assert.Equal(t, 7, edge.DaysUntil)

	// 8 days out is not
	beyond := Classify(date("2025-06-24"), today)
	assert.False(t, beyond.IsUpcoming)
	assert.False(t, beyond.IsExpired)
	assert.Equal(t, 8, beyond.DaysUntil)
	assert.Equal(t, SeverityNormal, beyond.Severity)
}

func TestClassifyIgnoresTimeOfDay(t *testing.T) {
	// 23:59 today against an item expiring tomorrow is still one whole day
	today := time.Date(2025, 6, 16, 23, 59, 0, 0, time.Local)
	item := time.Date(2025, 6, 17, 0, 0, 0, 0, time.Local)

	status := Classify(item, today)
	assert.Equal(t, 1, status.DaysUntil)
	assert.False(t, status.IsExpired)
}

func TestClassifyAcrossDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2025-03-09 is the US spring-forward date; the calendar gap from
	// March 8 to March 10 must still count as exactly 2 days
	today := time.Date(2025, 3, 8, 12, 0, 0, 0, loc)
	item := time.Date(2025, 3, 10, 12, 0, 0, 0, loc)

	status := Classify(item, today)
	assert.Equal(t, 2, status.DaysUntil)
}

func TestParseDateRejectsImpossibleDates(t *testing.T) {
	for _, s := range []string{"2025-02-30", "2025-13-01", "2025-06-31", "not-a-date", "2025/06/16"} {
		_, err := ParseDate(s)
		assert.Error(t, err, s)
	}

	got, err := ParseDate("2025-06-16")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-16", FormatDate(got))
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate(2025, 2, 28))
	assert.True(t, IsValidDate(2024, 2, 29)) // leap year
	assert.False(t, IsValidDate(2025, 2, 29))
	assert.False(t, IsValidDate(2025, 2, 30))
	assert.False(t, IsValidDate(2025, 13, 1))
	assert.False(t, IsValidDate(2025, 0, 10))
	assert.False(t, IsValidDate(2025, 6, 0))
}
