package matchstats

import (
	"math"
	"sort"
)

// Running sums for a single aggregation key.
type bucket struct {
	gamesPlayed int
	wins        int
	sums        map[Metric]float64

	// Games each item was finished in, with the order items were first seen.
	items     map[string]int
	itemOrder []string
}

func newBucket() *bucket {
	return &bucket{
		sums:  make(map[Metric]float64),
		items: make(map[string]int),
	}
}

// Count one more game on the bucket and add the metric values to the sums.
func (b *bucket) add(win bool, metrics map[Metric]float64) {
	b.gamesPlayed++
	if win {
		b.wins++
	}

	for metric, value := range metrics {
		b.sums[metric] += value
	}
}

// Count one more game for each item name.
func (b *bucket) addItems(names []string) {
	for _, name := range names {
		if _, ok := b.items[name]; !ok {
			b.itemOrder = append(b.itemOrder, name)
		}
		b.items[name]++
	}
}

// ItemCount is how many games an item was finished in.
type ItemCount struct {
	Name  string `json:"name"`
	Games int    `json:"games"`
}

// Items sorted by games, ties going to the item seen first.
func (b *bucket) itemCounts() []ItemCount {
	if len(b.itemOrder) == 0 {
		return nil
	}

	counts := make([]ItemCount, len(b.itemOrder))
	for i, name := range b.itemOrder {
		counts[i] = ItemCount{Name: name, Games: b.items[name]}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Games > counts[j].Games
	})
	return counts
}

// BucketAverages is the per-game view of a bucket.
type BucketAverages struct {
	GamesPlayed    int
	Wins           int
	Losses         int
	WinRatePercent float64
	PerGame        map[Metric]float64

	// Items finished on the bucket's games, most built first.
	Items []ItemCount
}

// Avg returns the per-game average of the metric, zero if it was never seen.
func (a BucketAverages) Avg(metric Metric) float64 {
	return a.PerGame[metric]
}

// Flatten returns the averages keyed the way the summary exposes them.
func (a BucketAverages) Flatten() map[string]float64 {
	flat := make(map[string]float64, len(a.PerGame)+4)
	flat["games_played"] = float64(a.GamesPlayed)
	if a.GamesPlayed == 0 {
		return flat
	}

	flat["wins"] = float64(a.Wins)
	flat["losses"] = float64(a.Losses)
	flat["win_rate_percent"] = a.WinRatePercent
	for metric, value := range a.PerGame {
		flat[metric.AvgKey()] = value
	}
	return flat
}

// Divide every sum by the games played.
// A bucket without games returns zeroed averages.
func (b *bucket) average() BucketAverages {
	if b == nil || b.gamesPlayed == 0 {
		return BucketAverages{PerGame: map[Metric]float64{}}
	}

	games := float64(b.gamesPlayed)
	perGame := make(map[Metric]float64, len(b.sums))
	for metric, sum := range b.sums {
		perGame[metric] = round2(sum / games)
	}

	return BucketAverages{
		GamesPlayed:    b.gamesPlayed,
		Wins:           b.wins,
		Losses:         b.gamesPlayed - b.wins,
		WinRatePercent: percent(b.wins, b.gamesPlayed),
		PerGame:        perGame,
		Items:          b.itemCounts(),
	}
}

// Buckets by key, remembering the order keys were first seen.
type bucketTable struct {
	keys    []string
	buckets map[string]*bucket
}

func newBucketTable() *bucketTable {
	return &bucketTable{buckets: make(map[string]*bucket)}
}

// Get the bucket for the key, creating it on first reference.
func (t *bucketTable) get(key string) *bucket {
	if b, ok := t.buckets[key]; ok {
		return b
	}

	b := newBucket()
	t.buckets[key] = b
	t.keys = append(t.keys, key)
	return b
}

// Walk the buckets in insertion order.
func (t *bucketTable) each(fn func(key string, b *bucket)) {
	for _, key := range t.keys {
		fn(key, t.buckets[key])
	}
}

func (t *bucketTable) len() int {
	return len(t.keys)
}

// Round to two decimal places.
func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// Percentage of part over total with two decimals, zero when total is zero.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) / float64(total) * 100)
}
