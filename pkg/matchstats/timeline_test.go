package matchstats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newYorkLocation(t *testing.T) *time.Location {
	t.Helper()

	location, err := time.LoadLocation(DefaultTimezone)
	require.NoError(t, err)
	return location
}

// Record the given results on the month, all at 18:00.
func recordMonth(tracker *timeTracker, year int, month time.Month, results ...bool) {
	for day, win := range results {
		start := time.Date(year, month, day+1, 18, 0, 0, 0, tracker.location)
		tracker.record(start.Unix(), win)
	}
}

func TestBetterMonth(t *testing.T) {
	tests := []struct {
		name     string
		a        *MonthWindow
		b        *MonthWindow
		expected bool
	}{
		{
			name:     "no incumbent",
			a:        &MonthWindow{Wins: 0, Losses: 3, Games: 3},
			b:        nil,
			expected: true,
		},
		{
			name:     "greater difference",
			a:        &MonthWindow{Wins: 4, Losses: 1, Games: 5, seen: 1},
			b:        &MonthWindow{Wins: 6, Losses: 4, Games: 10, seen: 0},
			expected: true,
		},
		{
			name:     "same difference more games",
			a:        &MonthWindow{Wins: 3, Losses: 3, Games: 6, seen: 1},
			b:        &MonthWindow{Wins: 2, Losses: 2, Games: 4, seen: 0},
			expected: true,
		},
		{
			name:     "exact tie keeps the month seen first",
			a:        &MonthWindow{Wins: 2, Losses: 1, Games: 3, seen: 1},
			b:        &MonthWindow{Wins: 2, Losses: 1, Games: 3, seen: 0},
			expected: false,
		},
		{
			name:     "smaller difference",
			a:        &MonthWindow{Wins: 1, Losses: 1, Games: 2, seen: 0},
			b:        &MonthWindow{Wins: 2, Losses: 1, Games: 3, seen: 1},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, betterMonth(tt.a, tt.b))
		})
	}
}

func TestBestMonthTieOnDifference(t *testing.T) {
	tracker := newTimeTracker(newYorkLocation(t))
	recordMonth(tracker, 2024, time.February, true, false, true, false)
	recordMonth(tracker, 2024, time.January, true, false, true, false, true, false)

	best := tracker.bestMonth()
	require.NotNil(t, best)
	assert.Equal(t, "2024-01", best.Month)
	assert.Equal(t, "January 2024", best.Label)
	assert.Equal(t, 3, best.Wins)
	assert.Equal(t, 3, best.Losses)
	assert.Equal(t, 6, best.Games)
	assert.Equal(t, 50.0, best.WinRatePercent)
}

func TestBestMonthExactTie(t *testing.T) {
	tracker := newTimeTracker(newYorkLocation(t))
	recordMonth(tracker, 2024, time.May, true, true)
	recordMonth(tracker, 2024, time.April, true, true)

	assert.Equal(t, "2024-05", tracker.bestMonth().Month)
}

func TestBestMonthLeaderLoses(t *testing.T) {
	tracker := newTimeTracker(newYorkLocation(t))
	recordMonth(tracker, 2024, time.January, true, true, true)
	recordMonth(tracker, 2024, time.February, true, true)
	assert.Equal(t, "2024-01", tracker.bestMonth().Month)

	// Same difference as February with more games.
	tracker.record(time.Date(2024, time.January, 20, 18, 0, 0, 0, tracker.location).Unix(), false)
	assert.Equal(t, "2024-01", tracker.bestMonth().Month)

	// February is now ahead.
	tracker.record(time.Date(2024, time.January, 21, 18, 0, 0, 0, tracker.location).Unix(), false)
	assert.Equal(t, "2024-02", tracker.bestMonth().Month)
}

func TestBestMonthFoldMatchesFullScan(t *testing.T) {
	tracker := newTimeTracker(newYorkLocation(t))
	games := []struct {
		month time.Month
		win   bool
	}{
		{time.March, true}, {time.April, true}, {time.March, false}, {time.May, true},
		{time.April, true}, {time.May, true}, {time.April, false}, {time.May, false},
		{time.March, true}, {time.March, true}, {time.May, false}, {time.March, false},
		{time.April, false}, {time.June, true}, {time.March, false}, {time.June, true},
	}

	for i, game := range games {
		start := time.Date(2024, game.month, 1, 12, i, 0, 0, tracker.location)
		require.True(t, tracker.record(start.Unix(), game.win))

		var expected *MonthWindow
		for _, month := range tracker.order {
			if betterMonth(month, expected) {
				expected = month
			}
		}
		assert.Same(t, expected, tracker.best, "after game %d", i)
	}
}

func TestMonthWindowInvariant(t *testing.T) {
	tracker := newTimeTracker(newYorkLocation(t))
	recordMonth(tracker, 2024, time.March, true, false, false, true, true)
	recordMonth(tracker, 2024, time.June, false, false)

	for _, month := range tracker.order {
		assert.Equal(t, month.Games, month.Wins+month.Losses)
	}
}

func TestEpochUnits(t *testing.T) {
	location := newYorkLocation(t)
	start := time.Date(2024, time.July, 4, 22, 30, 0, 0, location)

	seconds := newTimeTracker(location)
	require.True(t, seconds.record(start.Unix(), true))

	millis := newTimeTracker(location)
	require.True(t, millis.record(start.UnixMilli(), true))

	assert.Equal(t, seconds.hours, millis.hours)
	assert.Equal(t, seconds.bestMonth(), millis.bestMonth())
	assert.Equal(t, 1, millis.hours[22])
}

func TestReferenceTimezone(t *testing.T) {
	tracker := newTimeTracker(newYorkLocation(t))

	// 2024-02-01 03:00 UTC is still January 31st in New York.
	tracker.record(time.Date(2024, time.February, 1, 3, 0, 0, 0, time.UTC).Unix(), true)

	assert.Equal(t, "2024-01", tracker.bestMonth().Month)
	assert.Equal(t, 1, tracker.hours[22])
}

func TestMissingTimestamp(t *testing.T) {
	tracker := newTimeTracker(newYorkLocation(t))

	assert.False(t, tracker.record(0, true))
	assert.False(t, tracker.record(-5, true))
	assert.Nil(t, tracker.bestMonth())
	assert.Nil(t, tracker.peakPlayTime("ET"))
}

func TestPeakHourTie(t *testing.T) {
	location := newYorkLocation(t)
	tracker := newTimeTracker(location)

	for day := 1; day <= 4; day++ {
		tracker.record(time.Date(2024, time.March, day, 20, 15, 0, 0, location).Unix(), true)
		tracker.record(time.Date(2024, time.March, day, 9, 45, 0, 0, location).Unix(), false)
	}
	tracker.record(time.Date(2024, time.March, 9, 13, 0, 0, 0, location).Unix(), false)

	peak := tracker.peakPlayTime("ET")
	require.NotNil(t, peak)
	assert.Equal(t, 9, peak.Hour)
	assert.Equal(t, 4, peak.Games)
	assert.Equal(t, "9:00 AM ET", peak.Time)
	assert.Equal(t, "Morning", peak.Period)
}

func TestPeriodOfDay(t *testing.T) {
	tests := []struct {
		hour     int
		expected string
	}{
		{hour: 0, expected: "Late Night"},
		{hour: 4, expected: "Late Night"},
		{hour: 5, expected: "Morning"},
		{hour: 11, expected: "Morning"},
		{hour: 12, expected: "Afternoon"},
		{hour: 16, expected: "Afternoon"},
		{hour: 17, expected: "Evening"},
		{hour: 21, expected: "Evening"},
		{hour: 22, expected: "Late Night"},
		{hour: 23, expected: "Late Night"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, periodOfDay(tt.hour), "hour %d", tt.hour)
	}
}

func TestFormatHour(t *testing.T) {
	assert.Equal(t, "12:00 AM ET", formatHour(0, "ET"))
	assert.Equal(t, "12:00 PM ET", formatHour(12, "ET"))
	assert.Equal(t, "8:00 PM ET", formatHour(20, "ET"))
	assert.Equal(t, "8:00 PM", formatHour(20, ""))
}
