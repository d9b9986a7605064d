package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.MatchFetched(true)
	m.MatchFetched(true)
	m.MatchFetched(false)
	m.MatchNormalized(false)
	m.RecapServed(SourceCache, 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.matchesFetched.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.matchesFetched.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.matchesNormalized.WithLabelValues("skipped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.recapRequests.WithLabelValues(SourceCache)))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.MatchFetched(true)
		m.MatchNormalized(true)
		m.RecapServed(SourceError, time.Second)
	})
}
