package implementation

import (
	"strings"

	"github.com/jt828/log-metrics/pkg/metrics"
	"github.com/jt828/log-metrics/pkg/observability"
)

type instrumentedSink struct {
	next metrics.Sink

	linesTotal    observability.Counter
	eventsTotal   observability.Counter
	errorsTotal   observability.Counter
	eventsPerLine observability.Histogram
}

// NewInstrumentedSink counts what passes through next. It measures the
// emitter itself, not the values of the emitted metrics.
func NewInstrumentedSink(next metrics.Sink, meter observability.Meter) metrics.EventSink {
	return &instrumentedSink{
		next: next,
		linesTotal: meter.Counter("log_metrics_lines_total", observability.MetricOpt{
			Help: "Total number of metric lines written to the sink",
		}),
		eventsTotal: meter.Counter("log_metrics_events_total", observability.MetricOpt{
			Help:      "Total number of metric events written, by kind",
			LabelKeys: []string{"kind"},
		}),
		errorsTotal: meter.Counter("log_metrics_sink_errors_total", observability.MetricOpt{
			Help: "Total number of failed sink writes",
		}),
		eventsPerLine: meter.Histogram("log_metrics_events_per_line", observability.MetricOpt{
			Help:    "Number of metric events carried by one line",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64},
		}),
	}
}

// WriteEvents uses the kinds reported by the Emitter, so values that contain
// spaces or '#' never count as extra events.
func (s *instrumentedSink) WriteEvents(line string, kinds []metrics.Kind) error {
	var err error
	if es, ok := s.next.(metrics.EventSink); ok {
		err = es.WriteEvents(line, kinds)
	} else {
		err = s.next.WriteLine(line)
	}
	if err != nil {
		s.errorsTotal.Inc(1)
		return err
	}

	s.linesTotal.Inc(1)
	for _, kind := range kinds {
		s.eventsTotal.Inc(1, observability.Label{Key: "kind", Value: string(kind)})
	}
	s.eventsPerLine.Observe(float64(len(kinds)))
	return nil
}

// WriteLine serves callers that write pre-built lines. Only tokens starting
// with a known kind are counted.
func (s *instrumentedSink) WriteLine(line string) error {
	var kinds []metrics.Kind
	for _, token := range strings.Fields(line) {
		kind, _, ok := strings.Cut(token, "#")
		if ok && knownKinds[metrics.Kind(kind)] {
			kinds = append(kinds, metrics.Kind(kind))
		}
	}
	return s.WriteEvents(line, kinds)
}

var knownKinds = map[metrics.Kind]bool{
	metrics.CountKind:   true,
	metrics.SampleKind:  true,
	metrics.MeasureKind: true,
	metrics.UniqueKind:  true,
}
