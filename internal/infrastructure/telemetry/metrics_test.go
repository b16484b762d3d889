package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"

	"github.com/osis/backend/internal/infrastructure/telemetry"
)

func newDisabledMeterProvider(t *testing.T) *telemetry.MeterProvider {
	t.Helper()
	mp, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
		Enabled:           false,
		CollectorEndpoint: "localhost:14317",
		ExportInterval:    60 * time.Second,
		ServiceName:       "parcours-doctoral",
	}, zap.NewNop())
	require.NoError(t, err)
	return mp
}

func TestMeterProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled provider is inert", func(t *testing.T) {
		mp := newDisabledMeterProvider(t)
		assert.False(t, mp.IsEnabled())
		assert.Equal(t, "parcours-doctoral", mp.GetConfig().ServiceName)

		require.NoError(t, mp.ForceFlush(ctx))
		require.NoError(t, mp.Shutdown(ctx))
	})

	t.Run("disabled provider still hands out nop meters", func(t *testing.T) {
		mp := newDisabledMeterProvider(t)
		assert.NotNil(t, mp.Meter("confirmation"))
	})

	t.Run("shutdown survives a cancelled context when disabled", func(t *testing.T) {
		mp := newDisabledMeterProvider(t)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		require.NoError(t, mp.Shutdown(cancelled))
	})

	t.Run("exporting to a collector", func(t *testing.T) {
		// Requires a running OTEL collector, only for local runs
		if testing.Short() {
			t.Skip("skipping integration test in short mode")
		}

		mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
			Enabled:           true,
			CollectorEndpoint: "localhost:14317",
			ExportInterval:    time.Second,
			ServiceName:       "parcours-doctoral",
			Insecure:          true,
		}, zap.NewNop())
		require.NoError(t, err)
		assert.True(t, mp.IsEnabled())

		require.NoError(t, mp.ForceFlush(ctx))
		require.NoError(t, mp.Shutdown(ctx))
	})
}

func TestInstruments(t *testing.T) {
	ctx := context.Background()
	mp := newDisabledMeterProvider(t)
	meter := mp.Meter("doctoral-training")

	t.Run("counter", func(t *testing.T) {
		counter, err := telemetry.NewCounter(meter, "activities_submitted_total", "Submitted training activities", "{activity}")
		require.NoError(t, err)

		counter.Add(ctx, 5, attribute.String("category", "CONFERENCE"))
		counter.Inc(ctx, attribute.String("category", "SEMINAR"))
	})

	t.Run("histogram with custom boundaries", func(t *testing.T) {
		histogram, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
			Name:        "confirmation_review_duration_seconds",
			Description: "Time spent reviewing a confirmation paper",
			Unit:        "s",
			Boundaries:  []float64{0.1, 0.5, 1.0, 5.0, 10.0},
		})
		require.NoError(t, err)

		histogram.Record(ctx, 0.25)
		histogram.RecordDuration(ctx, 100*time.Millisecond, attribute.String("decision", "SUCCESS"))
	})

	t.Run("histogram without boundaries uses SDK defaults", func(t *testing.T) {
		histogram, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
			Name:        "jury_round_duration_seconds",
			Description: "Duration of a jury signature round",
			Unit:        "s",
		})
		require.NoError(t, err)
		histogram.Record(ctx, 1.5)
	})

	t.Run("gauges", func(t *testing.T) {
		gauge, err := telemetry.NewGauge(meter, "active_connections", "Number of active connections", "{connection}")
		require.NoError(t, err)
		gauge.Record(ctx, 10, attribute.String("pool", "db"))

		floatGauge, err := telemetry.NewFloatGauge(meter, "cpu_usage_percent", "CPU usage percentage", "%")
		require.NoError(t, err)
		floatGauge.Record(ctx, 45.5)
	})
}

func TestCounterRecordsThroughSDK(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer provider.Shutdown(ctx)

	counter, err := telemetry.NewCounter(provider.Meter("trajectory"),
		"trajectories_initialized_total", "Initialized trajectories", "{trajectory}")
	require.NoError(t, err)

	counter.Add(ctx, 2, attribute.String("type", "ADMISSION"))
	counter.Inc(ctx, attribute.String("type", "PRE_ADMISSION"))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)

	sum, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
	require.True(t, ok)

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	assert.Equal(t, int64(3), total)
}

func TestCommonAttributes(t *testing.T) {
	assert.Equal(t, "user_id", string(telemetry.AttrUserID))
	assert.Equal(t, "http.method", string(telemetry.AttrHTTPMethod))
	assert.Equal(t, "http.status_code", string(telemetry.AttrHTTPStatusCode))
	assert.Equal(t, "http.route", string(telemetry.AttrHTTPRoute))
	assert.Equal(t, "db.operation", string(telemetry.AttrDBOperation))
	assert.Equal(t, "db.table", string(telemetry.AttrDBTable))
	assert.Equal(t, "db.pool.state", string(telemetry.AttrDBState))
	assert.Equal(t, "trajectory_status", string(telemetry.AttrTrajectoryStatus))
	assert.Equal(t, "decision", string(telemetry.AttrDecision))
	assert.Equal(t, "activity_category", string(telemetry.AttrActivityCategory))
	assert.Equal(t, "task_kind", string(telemetry.AttrTaskKind))
	assert.Equal(t, "task_state", string(telemetry.AttrTaskState))
}

func TestDefaultBuckets(t *testing.T) {
	assert.Equal(t, []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, telemetry.HTTPDurationBuckets)
	assert.Equal(t, []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}, telemetry.DBDurationBuckets)
	assert.Equal(t, []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1}, telemetry.SmallDurationBuckets)
}
