package metrics

import (
	"testing"
	"time"

	"github.com/poiesic/moodshelf/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New()
	require.NoError(t, m.Register(reg))

	// Second registration of the same collectors must fail.
	assert.Error(t, m.Register(reg))
}

func TestCounters(t *testing.T) {
	m := New()

	m.KeywordAdded(core.OutcomeCreated)
	m.KeywordAdded(core.OutcomeEndorsed)
	m.KeywordAdded(core.OutcomeEndorsed)
	m.VoteCast(core.VoteDown, "deleted")
	m.EmbeddingRequest("ok", 30*time.Millisecond)
	m.ClusterRun("degraded")
	m.Search(core.SearchFuzzy)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.KeywordsTotal.WithLabelValues("created")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.KeywordsTotal.WithLabelValues("endorsed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.VotesTotal.WithLabelValues("down", "deleted")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.EmbeddingRequestsTotal.WithLabelValues("ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ClusterRunsTotal.WithLabelValues("degraded")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SearchesTotal.WithLabelValues("fuzzy")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.KeywordAdded(core.OutcomeCreated)
		m.VoteCast(core.VoteUp, "recorded")
		m.EmbeddingRequest("error", time.Second)
		m.ClusterRun("ok")
		m.Search(core.SearchExact)
	})
	assert.Nil(t, m.CacheCounter())
}
