package metrics

type Kind string

const (
	CountKind   Kind = "count"
	SampleKind  Kind = "sample"
	MeasureKind Kind = "measure"
	UniqueKind  Kind = "unique"
)

type Mode int

const (
	Immediate Mode = iota
	Grouping
)

func (m Mode) String() string {
	switch m {
	case Immediate:
		return "immediate"
	case Grouping:
		return "grouping"
	default:
		return "unknown"
	}
}

// Config is resolved by the caller before construction. Empty Source or
// Prefix omits that segment from the output.
type Config struct {
	Source string
	Prefix string
	Mode   Mode
}

// Sink accepts one finished line per call.
type Sink interface {
	WriteLine(line string) error
}

// EventSink is implemented by sinks that also want the kind of every event
// carried by a line. The Emitter calls WriteEvents instead of WriteLine for
// such sinks; kinds are in line order.
type EventSink interface {
	Sink
	WriteEvents(line string, kinds []Kind) error
}

type SinkFunc func(line string) error

func (f SinkFunc) WriteLine(line string) error {
	return f(line)
}
