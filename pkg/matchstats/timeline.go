package matchstats

import (
	"fmt"
	"time"
)

// Epoch values above this are in milliseconds.
const millisecondThreshold = 1_000_000_000_000

// Layout of the month keys.
const monthKeyLayout = "2006-01"

// MonthWindow counts the games of a calendar month.
type MonthWindow struct {
	Key    string
	Wins   int
	Losses int
	Games  int

	// Order the month was first seen in, used as the last tie-break.
	seen int
}

// Score used to rank months.
func (m *MonthWindow) diff() int {
	return m.Wins - m.Losses
}

// betterMonth reports whether a should hold the best month title over b.
// Greater wins minus losses first, then more games, then the month seen first.
func betterMonth(a, b *MonthWindow) bool {
	if b == nil {
		return true
	}
	if a.diff() != b.diff() {
		return a.diff() > b.diff()
	}
	if a.Games != b.Games {
		return a.Games > b.Games
	}
	return a.seen < b.seen
}

// Month and hour of day tracking in the reference timezone.
type timeTracker struct {
	location *time.Location
	months   map[string]*MonthWindow
	order    []*MonthWindow
	best     *MonthWindow
	hours    [24]int
}

func newTimeTracker(location *time.Location) *timeTracker {
	return &timeTracker{
		location: location,
		months:   make(map[string]*MonthWindow),
	}
}

// Convert a millisecond epoch to seconds, second epochs are returned untouched.
func epochSeconds(epoch int64) int64 {
	if epoch > millisecondThreshold {
		return epoch / 1000
	}
	return epoch
}

// Record a game started at the given epoch.
// Returns false if the timestamp is missing, in which case nothing is tracked.
func (t *timeTracker) record(epoch int64, win bool) bool {
	seconds := epochSeconds(epoch)
	if seconds <= 0 {
		return false
	}

	at := time.Unix(seconds, 0).In(t.location)
	key := at.Format(monthKeyLayout)

	month, ok := t.months[key]
	if !ok {
		month = &MonthWindow{Key: key, seen: len(t.order)}
		t.months[key] = month
		t.order = append(t.order, month)
	}

	month.Games++
	if win {
		month.Wins++
	} else {
		month.Losses++
	}

	t.foldBest(month, win)
	t.hours[at.Hour()]++
	return true
}

// Update the best month after the given month changed.
// Only the leader losing a game can let another month overtake it, that's the only case that rescans.
func (t *timeTracker) foldBest(updated *MonthWindow, win bool) {
	switch {
	case t.best == nil:
		t.best = updated
	case t.best != updated:
		if betterMonth(updated, t.best) {
			t.best = updated
		}
	case !win:
		t.best = nil
		for _, month := range t.order {
			if betterMonth(month, t.best) {
				t.best = month
			}
		}
	}
}

// Peak hour of the day, ties going to the lowest hour.
// Returns false if no game was tracked.
func (t *timeTracker) peakHour() (int, int, bool) {
	peak, count := 0, 0
	for hour, games := range t.hours {
		if games > count {
			peak, count = hour, games
		}
	}
	return peak, count, count > 0
}

// BestMonth describes the best performing month.
type BestMonth struct {
	Month          string  `json:"month"`
	Label          string  `json:"label"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	Games          int     `json:"games"`
	WinRatePercent float64 `json:"win_rate_percent"`
}

// PeakPlayTime describes the hour of the day most games were started in.
type PeakPlayTime struct {
	Hour   int    `json:"hour"`
	Time   string `json:"time"`
	Period string `json:"period"`
	Games  int    `json:"games"`
}

// Build the best month descriptor, nil if no month was tracked.
func (t *timeTracker) bestMonth() *BestMonth {
	if t.best == nil {
		return nil
	}

	label := t.best.Key
	if parsed, err := time.Parse(monthKeyLayout, t.best.Key); err == nil {
		label = parsed.Format("January 2006")
	}

	return &BestMonth{
		Month:          t.best.Key,
		Label:          label,
		Wins:           t.best.Wins,
		Losses:         t.best.Losses,
		Games:          t.best.Games,
		WinRatePercent: percent(t.best.Wins, t.best.Games),
	}
}

// Build the peak play time descriptor, nil if no game was tracked.
func (t *timeTracker) peakPlayTime(timezoneLabel string) *PeakPlayTime {
	hour, games, ok := t.peakHour()
	if !ok {
		return nil
	}

	return &PeakPlayTime{
		Hour:   hour,
		Time:   formatHour(hour, timezoneLabel),
		Period: periodOfDay(hour),
		Games:  games,
	}
}

// Format the hour as "8:00 PM ET".
func formatHour(hour int, timezoneLabel string) string {
	formatted := time.Date(2000, time.January, 1, hour, 0, 0, 0, time.UTC).Format("3:04 PM")
	if timezoneLabel == "" {
		return formatted
	}
	return fmt.Sprintf("%s %s", formatted, timezoneLabel)
}

// Coarse label of the hour of the day.
func periodOfDay(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Morning"
	case hour >= 12 && hour < 17:
		return "Afternoon"
	case hour >= 17 && hour < 22:
		return "Evening"
	default:
		return "Late Night"
	}
}
