package observability

import "context"

// Observability bundles the diagnostic logger, the meter that counts the
// emitter's own output, and the tracer used around emissions. Start opens the
// optional /metrics listener; Close shuts it down and flushes spans.
type Observability interface {
	Close(ctx context.Context) error
	Logger() Logger
	Meter() Meter
	Start(ctx context.Context) error
	Tracer() Tracer
}
