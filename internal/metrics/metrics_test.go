package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveHTTP("/api/newsroom", "GET", 200, 10*time.Millisecond)
	m.ObserveHTTP("/api/newsroom", "GET", 200, 20*time.Millisecond)
	m.Listing("articles", 14)
	m.Detail("readable", "ok")
	m.Submission("newsletter", "accepted")
	m.Download()
	m.Dataset("news", 25)
	m.Timeout("/api/content/{type}/{id}/download")

	require.InDelta(t, 2, testutil.ToFloat64(m.httpRequests.WithLabelValues("/api/newsroom", "GET", "200")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.listings.WithLabelValues("articles")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.detail.WithLabelValues("readable", "ok")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.submissions.WithLabelValues("newsletter", "accepted")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.downloads), 0)
	require.InDelta(t, 25, testutil.ToFloat64(m.dataset.WithLabelValues("news")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.httpTimeouts.WithLabelValues("/api/content/{type}/{id}/download")), 0)

	n, err := testutil.GatherAndCount(reg, "vocal_http_request_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestMetrics_NilSafe(t *testing.T) {
	t.Parallel()

	var m *Metrics
	require.NotPanics(t, func() {
		m.ObserveHTTP("/", "GET", 500, time.Second)
		m.Listing("newsroom", 0)
		m.Detail("playable", "not_found")
		m.Submission("contact", "throttled")
		m.Download()
		m.Dataset("media", 10)
		m.Timeout("/")
	})
}
