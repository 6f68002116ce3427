package implementation

import (
	"context"
	"net/http"

	"github.com/jt828/log-metrics/pkg/observability"
)

type observabilityImplementation struct {
	log    observability.Logger
	meter  observability.Meter
	tracer observability.Tracer

	metricsAddr   string
	metricsServer *http.Server
	traceClose    func(context.Context) error
}

func (o *observabilityImplementation) Close(ctx context.Context) error {
	var err error
	if o.metricsServer != nil {
		err = o.metricsServer.Shutdown(ctx)
	}
	if o.traceClose != nil {
		if e := o.traceClose(ctx); err == nil {
			err = e
		}
	}
	// stderr reports EINVAL on sync under most terminals.
	_ = o.log.Sync()
	return err
}
func (o *observabilityImplementation) Logger() observability.Logger { return o.log }
func (o *observabilityImplementation) Meter() observability.Meter   { return o.meter }
func (o *observabilityImplementation) Start(ctx context.Context) error {
	if o.metricsAddr == "" {
		return nil
	}
	if pm, ok := o.meter.(*prometheusMeter); ok {
		o.metricsServer = StartMetricsServer(o.metricsAddr, pm.Registry())
		o.log.Info("metrics listener started", observability.String("addr", o.metricsAddr))
	}
	return nil
}
func (o *observabilityImplementation) Tracer() observability.Tracer { return o.tracer }
