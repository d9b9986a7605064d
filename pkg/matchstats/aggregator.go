package matchstats

import (
	"math"
	"time"
	_ "time/tzdata"
)

// Defaults used when the options leave a value unset.
const (
	DefaultMinGames      = 5
	DefaultTopN          = 10
	DefaultTimezone      = "America/New_York"
	DefaultTimezoneLabel = "ET"
)

// Options of the aggregator, zero values fall back to the defaults.
type Options struct {
	Logger Logger

	// Location is the reference timezone used to bucket games into months and hours.
	Location      *time.Location
	TimezoneLabel string

	// MinGames is the minimum games for a champion to be ranked.
	MinGames int

	// TopN is how many champions are kept on the summary.
	TopN int
}

// Aggregator keeps the running statistics of one player's match history.
// It is meant to be fed by a single goroutine.
type Aggregator struct {
	logger        Logger
	timezoneLabel string
	minGames      int
	topN          int

	overall   *bucket
	champions *bucketTable
	roles     *bucketTable
	timeline  *timeTracker

	totalSeconds int64
	skipped      int
}

// NewAggregator creates an empty aggregator.
func NewAggregator(opts Options) *Aggregator {
	if opts.Logger == nil {
		opts.Logger = nopLogger{}
	}
	if opts.MinGames <= 0 {
		opts.MinGames = DefaultMinGames
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	if opts.Location == nil {
		opts.Location, opts.TimezoneLabel = defaultLocation()
	}

	return &Aggregator{
		logger:        opts.Logger,
		timezoneLabel: opts.TimezoneLabel,
		minGames:      opts.MinGames,
		topN:          opts.TopN,
		overall:       newBucket(),
		champions:     newBucketTable(),
		roles:         newBucketTable(),
		timeline:      newTimeTracker(opts.Location),
	}
}

// Reference timezone used when none is configured.
func defaultLocation() (*time.Location, string) {
	location, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC, "UTC"
	}
	return location, DefaultTimezoneLabel
}

// Add routes a record into the overall, champion and role buckets and into the time tracking.
// A nil record is a no-op, a record that fails midway is logged and dropped.
func (a *Aggregator) Add(record *PerformanceRecord) {
	if record == nil {
		return
	}

	if !a.addStats(record) {
		a.skipped++
		return
	}

	a.trackTime(record)
}

// Add the record to the three statistic buckets.
func (a *Aggregator) addStats(record *PerformanceRecord) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Errorf("Couldn't aggregate match %s for champion=%s: %v", record.MatchID, record.Champion, r)
			ok = false
		}
	}()

	// Resolve everything before the first bucket changes.
	metrics := a.summable(record)
	items := distinctItems(record.Items)

	champion := record.Champion
	if champion == "" {
		champion = UnknownChampion
	}

	championBucket := a.champions.get(champion)
	roleBucket := a.roles.get(record.Role)

	a.overall.add(record.Win, metrics)
	championBucket.add(record.Win, metrics)
	championBucket.addItems(items)
	roleBucket.add(record.Win, metrics)

	if record.GameDuration > 0 {
		a.totalSeconds += record.GameDuration
	}
	return true
}

// Filter out the ignored metrics and the values that can't be summed.
func (a *Aggregator) summable(record *PerformanceRecord) map[Metric]float64 {
	metrics := make(map[Metric]float64, len(record.Metrics))
	for metric, value := range record.Metrics {
		if metric.Ignored() {
			continue
		}

		if math.IsNaN(value) || math.IsInf(value, 0) {
			a.logger.Warnf("Skipping non finite value for %s on match %s", metric, record.MatchID)
			continue
		}

		metrics[metric] = value
	}
	return metrics
}

// Item names of a game without repeats, in slot order.
func distinctItems(names []string) []string {
	seen := make(map[string]bool, len(names))
	distinct := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		distinct = append(distinct, name)
	}
	return distinct
}

// Track the month and hour of the game, failures never reach the statistic buckets.
func (a *Aggregator) trackTime(record *PerformanceRecord) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Errorf("Couldn't track the start time of match %s: %v", record.MatchID, r)
		}
	}()

	a.timeline.record(record.GameStart, record.Win)
}

// Games returns how many records were aggregated.
func (a *Aggregator) Games() int {
	return a.overall.gamesPlayed
}

// Skipped returns how many records were dropped because of an error.
func (a *Aggregator) Skipped() int {
	return a.skipped
}

// Overall returns the averages across every game.
func (a *Aggregator) Overall() BucketAverages {
	return a.overall.average()
}

// NamedAverages is the averages of a champion or role bucket.
type NamedAverages struct {
	Name string
	BucketAverages
}

// Champions returns the averages of every champion, in the order they were first played.
func (a *Aggregator) Champions() []NamedAverages {
	return namedAverages(a.champions)
}

// Roles returns the averages of every role, in the order they were first played.
func (a *Aggregator) Roles() []NamedAverages {
	return namedAverages(a.roles)
}

// Months returns the tracked months, in the order they were first seen.
func (a *Aggregator) Months() []MonthWindow {
	months := make([]MonthWindow, len(a.timeline.order))
	for i, month := range a.timeline.order {
		months[i] = *month
	}
	return months
}

func namedAverages(table *bucketTable) []NamedAverages {
	named := make([]NamedAverages, 0, table.len())
	table.each(func(key string, b *bucket) {
		named = append(named, NamedAverages{Name: key, BucketAverages: b.average()})
	})
	return named
}
