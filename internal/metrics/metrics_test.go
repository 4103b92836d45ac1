package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// metricValue reads the current value of a counter or gauge
func metricValue(m prometheus.Metric) float64 {
	out := &dto.Metric{}
	if err := m.Write(out); err != nil {
		return 0
	}
	if out.Counter != nil {
		return out.GetCounter().GetValue()
	}
	return out.GetGauge().GetValue()
}

func TestMetricsRegistry(t *testing.T) {
	// Initialize the registry
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
	assert.Same(t, registry, InitRegistry())
}

func TestRecordSlateBuilt(t *testing.T) {
	InitRegistry()
	before := metricValue(SlatesBuiltTotal.WithLabelValues("request"))

	RecordSlateBuilt("request", 0.002)

	assert.Equal(t, before+1, metricValue(SlatesBuiltTotal.WithLabelValues("request")))
}

func TestRecordPick(t *testing.T) {
	InitRegistry()
	before := metricValue(PicksByTierTotal.WithLabelValues("top_pick"))

	assert.NotPanics(t, func() {
		RecordPick("top_pick", "NBA", 0.81)
	})
	assert.Equal(t, before+1, metricValue(PicksByTierTotal.WithLabelValues("top_pick")))
}

func TestRecordExcludedRecords(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name  string
		count int
		delta float64
	}{
		{name: "positive count", count: 3, delta: 3},
		{name: "zero count", count: 0, delta: 0},
		{name: "negative count", count: -2, delta: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := metricValue(GradedRecordsExcludedTotal.WithLabelValues("invalid_result"))
			RecordExcludedRecords("invalid_result", tt.count)
			after := metricValue(GradedRecordsExcludedTotal.WithLabelValues("invalid_result"))
			assert.Equal(t, tt.delta, after-before)
		})
	}
}

func TestRecordGradingRun(t *testing.T) {
	InitRegistry()

	RecordGradingRun("live", "7d", 61.5, 0.01)

	assert.Equal(t, 61.5, metricValue(ReportWinPercentage.WithLabelValues("live", "7d")))
}

func TestUpdateReportCache(t *testing.T) {
	InitRegistry()

	UpdateReportCache(0.75, 4)

	assert.Equal(t, 0.75, metricValue(ReportCacheHitRatio))
	assert.Equal(t, 4.0, metricValue(ReportCacheItems))
}

func TestHandlerServesMetrics(t *testing.T) {
	InitRegistry()
	RecordHTTPRequest(http.MethodGet, "/health", "200", 0.001)
	RecordUpstreamFetch("ok", 0.2)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pickpulse_http_requests_total")
	assert.Contains(t, rec.Body.String(), "pickpulse_upstream_fetches_total")
}
