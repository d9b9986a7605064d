package matchstats

// Champion and role labels used when the payload doesn't carry one.
const (
	UnknownChampion = "Unknown"
)

// PerformanceRecord is a single player's measurements for one match.
// Created by the normalizer, consumed once by the aggregator and then discarded.
type PerformanceRecord struct {
	MatchID  string
	Champion string

	// Role is the team position label, empty for modes without positions.
	Role string
	Win  bool

	// GameStart is the game start epoch, either in seconds or milliseconds.
	GameStart int64

	// GameDuration is the game length in seconds.
	GameDuration int64

	// Metrics is every numeric measurement of the match, booleans already coerced to 0/1.
	Metrics map[Metric]float64

	// Items are the resolved names of the final inventory, when an item namer is available.
	Items []string
}

// Logger is the logging surface the package needs.
type Logger interface {
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Logger used when none is provided.
type nopLogger struct{}

func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}
