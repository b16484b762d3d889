package telemetry

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func newManualMeter(t *testing.T) (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return reader, provider
}

func findMetric(rm metricdata.ResourceMetrics, name string) bool {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return true
			}
		}
	}
	return false
}

func TestDBMetricsConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := DefaultDBMetricsConfig()
		assert.True(t, cfg.Enabled)
		assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThreshold)
		assert.Equal(t, 15*time.Second, cfg.PoolStatsInterval)
	})

	t.Run("zero values fall back to the defaults", func(t *testing.T) {
		_, provider := newManualMeter(t)
		metrics, err := NewDBMetrics(provider.Meter("db"), DBMetricsConfig{}, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, 200*time.Millisecond, metrics.config.SlowQueryThreshold)
		assert.Equal(t, 15*time.Second, metrics.config.PoolStatsInterval)
	})

	t.Run("nil logger falls back to nop", func(t *testing.T) {
		_, provider := newManualMeter(t)
		metrics, err := NewDBMetrics(provider.Meter("db"), DefaultDBMetricsConfig(), nil)
		require.NoError(t, err)
		require.NotNil(t, metrics.logger)
	})
}

func TestDBMetricsRecordQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("records query count and duration", func(t *testing.T) {
		reader, provider := newManualMeter(t)
		metrics, err := NewDBMetrics(provider.Meter("db"), DBMetricsConfig{
			Enabled:            true,
			SlowQueryThreshold: 200 * time.Millisecond,
		}, zap.NewNop())
		require.NoError(t, err)

		metrics.RecordQuery(ctx, "SELECT", "doctoral_trajectories", 50*time.Millisecond, nil)

		var rm metricdata.ResourceMetrics
		require.NoError(t, reader.Collect(ctx, &rm))
		assert.True(t, findMetric(rm, "db_query_total"))
		assert.True(t, findMetric(rm, "db_query_duration_seconds"))
	})

	t.Run("queries over the threshold count as slow", func(t *testing.T) {
		reader, provider := newManualMeter(t)
		metrics, err := NewDBMetrics(provider.Meter("db"), DBMetricsConfig{
			Enabled:            true,
			SlowQueryThreshold: 100 * time.Millisecond,
		}, zap.NewNop())
		require.NoError(t, err)

		metrics.RecordQuery(ctx, "SELECT", "confirmation_papers", 250*time.Millisecond, nil)

		var rm metricdata.ResourceMetrics
		require.NoError(t, reader.Collect(ctx, &rm))
		assert.True(t, findMetric(rm, "db_slow_query_total"))
	})

	t.Run("queries under the threshold do not", func(t *testing.T) {
		reader, provider := newManualMeter(t)
		metrics, err := NewDBMetrics(provider.Meter("db"), DBMetricsConfig{
			Enabled:            true,
			SlowQueryThreshold: 200 * time.Millisecond,
		}, zap.NewNop())
		require.NoError(t, err)

		metrics.RecordQuery(ctx, "SELECT", "training_activities", 50*time.Millisecond, nil)

		var rm metricdata.ResourceMetrics
		require.NoError(t, reader.Collect(ctx, &rm))
		for _, sm := range rm.ScopeMetrics {
			for _, m := range sm.Metrics {
				if m.Name == "db_slow_query_total" {
					sum := m.Data.(metricdata.Sum[int64])
					for _, dp := range sum.DataPoints {
						assert.Equal(t, int64(0), dp.Value)
					}
				}
			}
		}
	})

	t.Run("missing operation and table get placeholders", func(t *testing.T) {
		reader, provider := newManualMeter(t)
		metrics, err := NewDBMetrics(provider.Meter("db"), DBMetricsConfig{
			Enabled:            true,
			SlowQueryThreshold: 50 * time.Millisecond,
		}, zap.NewNop())
		require.NoError(t, err)

		metrics.RecordQuery(ctx, "", "", 100*time.Millisecond, nil)

		var rm metricdata.ResourceMetrics
		require.NoError(t, reader.Collect(ctx, &rm))
		assert.True(t, findMetric(rm, "db_query_total"))
		assert.True(t, findMetric(rm, "db_slow_query_total"))
	})

	t.Run("concurrent recording is safe", func(t *testing.T) {
		reader, provider := newManualMeter(t)
		metrics, err := NewDBMetrics(provider.Meter("db"), DefaultDBMetricsConfig(), zap.NewNop())
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				operation := []string{"SELECT", "INSERT", "UPDATE", "DELETE"}[i%4]
				table := []string{"persons", "doctoral_trajectories", "training_activities", "confirmation_papers"}[i%4]
				metrics.RecordQuery(ctx, operation, table, time.Duration(i)*time.Millisecond, nil)
			}(i)
		}
		wg.Wait()

		var rm metricdata.ResourceMetrics
		require.NoError(t, reader.Collect(ctx, &rm))
		assert.True(t, findMetric(rm, "db_query_total"))
	})
}

func TestDBMetricsPoolStats(t *testing.T) {
	ctx := context.Background()

	t.Run("collects pool stats periodically", func(t *testing.T) {
		reader, provider := newManualMeter(t)

		mockDB, _, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		metrics, err := NewDBMetrics(provider.Meter("db"), DBMetricsConfig{
			Enabled:           true,
			PoolStatsInterval: 50 * time.Millisecond,
		}, zap.NewNop())
		require.NoError(t, err)
		metrics.SetSQLDB(mockDB)

		collectCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		metrics.StartPoolStatsCollection(collectCtx)
		time.Sleep(100 * time.Millisecond)
		metrics.Stop()

		var rm metricdata.ResourceMetrics
		require.NoError(t, reader.Collect(ctx, &rm))
		assert.True(t, findMetric(rm, "db_pool_connections_max"))
		assert.True(t, findMetric(rm, "db_pool_connections"))
	})

	t.Run("does nothing without a sql db", func(t *testing.T) {
		_, provider := newManualMeter(t)
		metrics, err := NewDBMetrics(provider.Meter("db"), DefaultDBMetricsConfig(), zap.NewNop())
		require.NoError(t, err)

		collectCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		metrics.StartPoolStatsCollection(collectCtx)
		metrics.Stop()
	})

	t.Run("stop does not block and is idempotent", func(t *testing.T) {
		_, provider := newManualMeter(t)

		mockDB, _, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		metrics, err := NewDBMetrics(provider.Meter("db"), DBMetricsConfig{
			Enabled:           true,
			PoolStatsInterval: 100 * time.Millisecond,
		}, zap.NewNop())
		require.NoError(t, err)
		metrics.SetSQLDB(mockDB)

		collectCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		metrics.StartPoolStatsCollection(collectCtx)

		done := make(chan struct{})
		go func() {
			metrics.Stop()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("Stop blocked for too long")
		}

		assert.NotPanics(t, func() { metrics.Stop() })
	})
}

func TestDBMetricsPlugin(t *testing.T) {
	t.Run("plugin name", func(t *testing.T) {
		_, provider := newManualMeter(t)
		metrics, err := NewDBMetrics(provider.Meter("db"), DefaultDBMetricsConfig(), zap.NewNop())
		require.NoError(t, err)

		plugin := NewDBMetricsPlugin(metrics, zap.NewNop())
		assert.Equal(t, "db_metrics", plugin.Name())
	})

	t.Run("initializes against a gorm instance", func(t *testing.T) {
		_, provider := newManualMeter(t)
		metrics, err := NewDBMetrics(provider.Meter("db"), DefaultDBMetricsConfig(), zap.NewNop())
		require.NoError(t, err)

		db, _, mockDB := newMockGormDB(t)
		defer mockDB.Close()

		plugin := NewDBMetricsPlugin(metrics, zap.NewNop())
		require.NoError(t, plugin.Initialize(db))
	})
}

func TestDetectOperationType(t *testing.T) {
	tests := []struct {
		sql      string
		expected string
	}{
		{"SELECT * FROM doctoral_trajectories", "SELECT"},
		{"  select id from persons", "SELECT"},
		{"INSERT INTO training_activities (category) VALUES ('CONFERENCE')", "INSERT"},
		{"update confirmation_papers set status = 'SOUMISE'", "UPDATE"},
		{"DELETE FROM supervision_members WHERE id = 1", "DELETE"},
		{"CREATE TABLE juries", "OTHER"},
		{"TRUNCATE TABLE persons", "OTHER"},
		{"", "OTHER"},
	}

	for _, tc := range tests {
		t.Run(tc.sql, func(t *testing.T) {
			assert.Equal(t, tc.expected, detectOperationType(tc.sql))
		})
	}
}

func TestRegisterDBMetrics(t *testing.T) {
	logger := zap.NewNop()

	t.Run("returns nil when disabled", func(t *testing.T) {
		db, _, mockDB := newMockGormDB(t)
		defer mockDB.Close()

		metrics, err := RegisterDBMetrics(db, nil, DBMetricsConfig{Enabled: false}, logger)
		require.NoError(t, err)
		assert.Nil(t, metrics)
	})

	t.Run("returns nil without a meter provider", func(t *testing.T) {
		db, _, mockDB := newMockGormDB(t)
		defer mockDB.Close()

		metrics, err := RegisterDBMetrics(db, nil, DBMetricsConfig{Enabled: true}, logger)
		require.NoError(t, err)
		assert.Nil(t, metrics)
	})

	t.Run("registers when enabled", func(t *testing.T) {
		_, sdkProvider := newManualMeter(t)
		mp := &MeterProvider{
			provider: sdkProvider,
			logger:   logger,
			config:   MetricsConfig{Enabled: true},
		}

		db, _, mockDB := newMockGormDB(t)
		defer mockDB.Close()

		metrics, err := RegisterDBMetrics(db, mp, DBMetricsConfig{
			Enabled:            true,
			SlowQueryThreshold: 200 * time.Millisecond,
			PoolStatsInterval:  15 * time.Second,
		}, logger)
		require.NoError(t, err)
		require.NotNil(t, metrics)
	})
}
