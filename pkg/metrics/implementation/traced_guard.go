package implementation

import (
	"context"

	"github.com/jt828/log-metrics/pkg/guard"
	"github.com/jt828/log-metrics/pkg/observability"
)

// NewTracedGuard opens a span named name on entry and ends it on exit,
// recording the region's failure on the span. Enter returns the span's
// context. It never suppresses.
func NewTracedGuard(ctx context.Context, tracer observability.Tracer, name string) *guard.Guard {
	var span observability.Span
	return guard.New(
		guard.WithBefore(func() any {
			var spanCtx context.Context
			spanCtx, span = tracer.Start(ctx, name)
			return spanCtx
		}),
		guard.WithAfter(func(err error) (bool, error) {
			if span == nil {
				return false, nil
			}
			if err != nil {
				span.RecordError(err)
			}
			span.End()
			span = nil
			return false, nil
		}),
	)
}
