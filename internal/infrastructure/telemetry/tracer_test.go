package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/osis/backend/internal/infrastructure/telemetry"
)

func TestTracerProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled provider is inert", func(t *testing.T) {
		cfg := telemetry.Config{
			Enabled:           false,
			CollectorEndpoint: "localhost:14317",
			SamplingRatio:     1.0,
			ServiceName:       "parcours-doctoral",
		}
		tp, err := telemetry.NewTracerProvider(ctx, cfg, zap.NewNop())
		require.NoError(t, err)
		assert.False(t, tp.IsEnabled())
		assert.Equal(t, "parcours-doctoral", tp.GetConfig().ServiceName)

		require.NoError(t, tp.ForceFlush(ctx))
		require.NoError(t, tp.Shutdown(ctx))
	})

	t.Run("disabled provider still hands out nop tracers", func(t *testing.T) {
		tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
			ServiceName: "parcours-doctoral",
		}, zap.NewNop())
		require.NoError(t, err)

		tracer := tp.Tracer("confirmation")
		require.NotNil(t, tracer)
		_, span := tracer.Start(ctx, "SubmitPaper")
		span.End()
	})

	t.Run("sampling ratio does not affect a disabled provider", func(t *testing.T) {
		for _, ratio := range []float64{0.0, 0.5, 1.0} {
			tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
				Enabled:       false,
				SamplingRatio: ratio,
				ServiceName:   "parcours-doctoral",
			}, zap.NewNop())
			require.NoError(t, err)
			assert.False(t, tp.IsEnabled())
			require.NoError(t, tp.Shutdown(ctx))
		}
	})

	t.Run("shutdown survives a cancelled context when disabled", func(t *testing.T) {
		tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
			ServiceName: "parcours-doctoral",
		}, zap.NewNop())
		require.NoError(t, err)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		require.NoError(t, tp.Shutdown(cancelled))
	})

	t.Run("exporting to a collector", func(t *testing.T) {
		// Requires a running OTEL collector, only for local runs
		if testing.Short() {
			t.Skip("skipping integration test in short mode")
		}

		tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
			Enabled:           true,
			CollectorEndpoint: "localhost:14317",
			SamplingRatio:     1.0,
			ServiceName:       "parcours-doctoral",
		}, zap.NewNop())
		require.NoError(t, err)
		assert.True(t, tp.IsEnabled())

		_, span := tp.Tracer("trajectory").Start(ctx, "InitializeTrajectory")
		span.End()

		require.NoError(t, tp.ForceFlush(ctx))
		require.NoError(t, tp.Shutdown(ctx))
	})
}
