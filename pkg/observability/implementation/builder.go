package implementation

import (
	"context"

	"github.com/jt828/log-metrics/pkg/observability"
)

type Config struct {
	ServiceName  string
	LogLevel     string
	OTLPEndpoint string
	MetricsAddr  string
}

func NewObservability(ctx context.Context, cfg Config) (observability.Observability, error) {
	log, err := NewZapLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	meter := NewPrometheusMeter()

	tracer, shutdown, err := NewOtelTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		return nil, err
	}

	return &observabilityImplementation{
		log:         log,
		meter:       meter,
		tracer:      tracer,
		traceClose:  shutdown,
		metricsAddr: cfg.MetricsAddr,
	}, nil
}
