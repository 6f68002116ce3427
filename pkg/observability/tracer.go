package observability

import "context"

// Tracer opens a span around a guarded region, such as one CLI emission.
type Tracer interface {
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span records the region's failure, if any, before it ends.
type Span interface {
	End()
	RecordError(err error)
}
