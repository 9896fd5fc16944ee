package infrastructure

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loadpv/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestOTelConfigFrom(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.TelemetryConfig
		wantTracing bool
		wantMetrics bool
	}{
		{"disabled", config.TelemetryConfig{Enabled: false, MetricsEnabled: true, TracesExporter: "stdout"}, false, false},
		{"metrics only", config.TelemetryConfig{Enabled: true, MetricsEnabled: true, TracesExporter: "none"}, false, true},
		{"tracing to stdout", config.TelemetryConfig{Enabled: true, TracesExporter: "stdout"}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OTelConfigFrom(tt.cfg)
			assert.Equal(t, tt.wantTracing, got.EnableTracing)
			assert.Equal(t, tt.wantMetrics, got.EnableMetrics)
			assert.Equal(t, config.AppVersion, got.ServiceVersion)
		})
	}
}

func TestInitializeOTel_Disabled(t *testing.T) {
	providers, err := InitializeOTel(&OTelConfig{ServiceName: "loadpv-test"}, discardLogger())
	require.NoError(t, err)

	assert.Nil(t, providers.TracerProvider)
	assert.Nil(t, providers.MeterProvider)
	require.NotNil(t, providers.Tracer)
	require.NotNil(t, providers.Meter)

	_, span := providers.Tracer.Start(context.Background(), "noop")
	assert.False(t, span.IsRecording())
	span.End()

	metrics, err := CreateBusinessMetrics(providers.Meter)
	require.NoError(t, err)
	metrics.RecordExtraction(context.Background(), "load", "", time.Millisecond, 3)

	require.NoError(t, providers.Shutdown(context.Background()))
}

func TestPrometheusEndpoint(t *testing.T) {
	providers, err := InitializeOTel(&OTelConfig{ServiceName: "loadpv-test", EnableMetrics: true, SampleRatio: 1}, discardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := CreateBusinessMetrics(providers.Meter)
	require.NoError(t, err)
	metrics.RecordExtraction(context.Background(), "pv", "", 20*time.Millisecond, 48)
	metrics.RecordExtraction(context.Background(), "load", "SHEET_NOT_FOUND", time.Millisecond, 0)

	w := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "dayseries_extractions_total")
	assert.Contains(t, body, `error_type="SHEET_NOT_FOUND"`)
	assert.Contains(t, body, "dayseries_extraction_points")
}

func TestInitializeOTel_Twice(t *testing.T) {
	for i := 0; i < 2; i++ {
		providers, err := InitializeOTel(&OTelConfig{ServiceName: "loadpv-test", EnableMetrics: true}, discardLogger())
		require.NoError(t, err)
		require.NoError(t, providers.Shutdown(context.Background()))
	}
}

func TestInitializeOTel_UnsupportedExporter(t *testing.T) {
	_, err := InitializeOTel(&OTelConfig{ServiceName: "x", EnableTracing: true, TraceExporter: "zipkin"}, discardLogger())
	assert.Error(t, err)
}

func TestRecordExtraction_NilMetrics(t *testing.T) {
	var m *BusinessMetrics
	assert.NotPanics(t, func() {
		m.RecordExtraction(context.Background(), "load", "", time.Second, 1)
	})
}

func TestRecordError_NoSpan(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordError(context.Background(), assert.AnError)
	})
}
