package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestObserveRequestRecordsCounterAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/", "200", 25*time.Millisecond)
	m.ObserveRequest("GET", "/", "200", 75*time.Millisecond)
	m.ObserveRequest("POST", "/add", "303", 5*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := map[string]*dto.MetricFamily{}
	for _, fam := range families {
		byName[fam.GetName()] = fam
	}

	counter := byName["http_requests_total"]
	require.NotNil(t, counter)
	require.Len(t, counter.GetMetric(), 2)

	var rootCount float64
	for _, metric := range counter.GetMetric() {
		labels := map[string]string{}
		for _, pair := range metric.GetLabel() {
			labels[pair.GetName()] = pair.GetValue()
		}
		if labels["route"] == "/" {
			rootCount = metric.GetCounter().GetValue()
		}
	}
	require.EqualValues(t, 2, rootCount)

	histogram := byName["http_request_duration_seconds"]
	require.NotNil(t, histogram)
	require.EqualValues(t, 2, histogram.GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestNilRegistererIsInert(t *testing.T) {
	m := NewHTTPMetrics(nil)
	m.ObserveRequest("GET", "/", "200", time.Millisecond)

	var nilMetrics *HTTPMetrics
	nilMetrics.ObserveRequest("GET", "/", "200", time.Millisecond)
}

func TestNormalizeLabel(t *testing.T) {
	require.Equal(t, "unknown", normalizeLabel("  "))
	require.Equal(t, "GET", normalizeLabel(" GET "))
}
