package telemetry

import (
	"context"
	"errors"

	otelpyroscope "github.com/grafana/otel-profiling-go"
	"github.com/rentals/backend/internal/infrastructure/config"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// Providers bundles the trace, metric and log providers and the profiler of one process
type Providers struct {
	Tracer   *TracerProvider
	Meter    *MeterProvider
	Logs     *LoggerProvider
	Profiler *Profiler
}

// Setup creates every provider from cfg. Providers created before a failure
// are shut down again.
func Setup(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*Providers, error) {
	tp, err := NewTracerProvider(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	mp, err := NewMeterProvider(ctx, cfg, logger)
	if err != nil {
		return nil, errors.Join(err, tp.Shutdown(ctx))
	}
	lp, err := NewLoggerProvider(ctx, cfg, logger)
	if err != nil {
		return nil, errors.Join(err, mp.Shutdown(ctx), tp.Shutdown(ctx))
	}
	prof, err := NewProfiler(cfg.Profiling, logger)
	if err != nil {
		return nil, errors.Join(err, lp.Shutdown(ctx), mp.Shutdown(ctx), tp.Shutdown(ctx))
	}

	// Link spans to profiles so slow requests can be opened as flame graphs
	if tp.IsEnabled() && prof.IsEnabled() {
		otel.SetTracerProvider(otelpyroscope.NewTracerProvider(tp.provider))
	}
	return &Providers{Tracer: tp, Meter: mp, Logs: lp, Profiler: prof}, nil
}

// Shutdown stops profiling, then flushes logs, metrics and traces
func (p *Providers) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return errors.Join(
		p.Profiler.Stop(),
		p.Logs.Shutdown(ctx),
		p.Meter.Shutdown(ctx),
		p.Tracer.Shutdown(ctx),
	)
}
