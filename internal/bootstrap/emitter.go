package bootstrap

import (
	"github.com/jt828/log-metrics/pkg/metrics"
	metricsImpl "github.com/jt828/log-metrics/pkg/metrics/implementation"
	"github.com/jt828/log-metrics/pkg/observability"
)

// InitializeSink builds the process-wide stdout sink. Call it once and share
// the result between emitters.
func InitializeSink(meter observability.Meter) metrics.Sink {
	return metricsImpl.NewInstrumentedSink(metricsImpl.NewConsoleSink(), meter)
}

func InitializeEmitter(cfg Config, mode metrics.Mode, sink metrics.Sink, log observability.Logger) *metrics.Emitter {
	mc := cfg.Metrics(mode)
	log.Debug("metrics emitter ready",
		observability.String("source", mc.Source),
		observability.String("prefix", mc.Prefix),
		observability.String("mode", mc.Mode.String()),
	)
	return metrics.New(mc, sink)
}
