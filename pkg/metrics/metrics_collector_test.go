package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCollector(t *testing.T) {
	m := newMetricsCollector(prometheus.NewRegistry())

	m.RecordHTTPRequest("GET", "/api/post/getposts", 200, 15*time.Millisecond)
	m.RecordHTTPRequest("GET", "/api/post/getposts", 200, 5*time.Millisecond)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/api/post/getposts", "200")))

	m.RecordCacheLookup("posts", true)
	m.RecordCacheLookup("posts", false)
	m.RecordCacheLookup("posts", false)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheHitsTotal.WithLabelValues("posts")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheMissesTotal.WithLabelValues("posts")))

	m.RecordImport(2, 1)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.importRecordsTotal.WithLabelValues("imported")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.importRecordsTotal.WithLabelValues("failed")))

	m.UpdateDBConnections(3, 7)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.dbConnectionsActive))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.dbConnectionsIdle))
}

func TestGetGlobalCollectorIsSingleton(t *testing.T) {
	assert.Same(t, GetGlobalCollector(), GetGlobalCollector())
}
