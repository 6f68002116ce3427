package metrics

import (
	"time"

	"github.com/jt828/log-metrics/pkg/guard"
)

type Option func(*Emitter)

// WithClock replaces time.Now as the source of wall-clock time for Timers.
func WithClock(now func() time.Time) Option {
	return func(e *Emitter) {
		e.now = now
	}
}

type Emitter struct {
	cfg      Config
	sink     Sink
	delivery delivery
	now      func() time.Time
	scope    *guard.Guard
}

// New panics when sink is nil.
func New(cfg Config, sink Sink, opts ...Option) *Emitter {
	if sink == nil {
		panic("metrics: nil sink")
	}

	e := &Emitter{
		cfg:      cfg,
		sink:     sink,
		delivery: newDelivery(cfg.Mode),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.scope = guard.New(
		guard.WithBefore(func() any { return e }),
		guard.WithAfter(func(error) (bool, error) { return false, e.Emit() }),
	)
	return e
}

func NewImmediate(cfg Config, sink Sink, opts ...Option) *Emitter {
	cfg.Mode = Immediate
	return New(cfg, sink, opts...)
}

func NewGrouping(cfg Config, sink Sink, opts ...Option) *Emitter {
	cfg.Mode = Grouping
	return New(cfg, sink, opts...)
}

func (e *Emitter) Config() Config { return e.cfg }

func (e *Emitter) Timer(name string) *Timer {
	return newTimer(name, e)
}

func (e *Emitter) Increment(name string) error {
	return e.record(CountKind, name, 1)
}

// IncrementBy records a count of val. Zero is emitted as zero.
func (e *Emitter) IncrementBy(name string, val any) error {
	return e.record(CountKind, name, val)
}

func (e *Emitter) Sample(name string, val any) error {
	return e.record(SampleKind, name, val)
}

func (e *Emitter) Measure(name string, val any) error {
	return e.record(MeasureKind, name, val)
}

func (e *Emitter) Unique(name string, val any) error {
	return e.record(UniqueKind, name, val)
}

// Emit writes all pending events as one line and clears the group. It does
// nothing when the group is empty or the Emitter is in Immediate mode.
func (e *Emitter) Emit() error {
	return e.delivery.emit(e.sink, e.cfg.Source)
}

// Reset drops pending events without writing them.
func (e *Emitter) Reset() {
	e.delivery.reset()
}

func (e *Emitter) Pending() int {
	return e.delivery.pending()
}

// Enter opens a grouping scope. Pair it with a deferred Exit:
//
//	g := emitter.Enter()
//	defer g.Exit(&err)
func (e *Emitter) Enter() *Emitter {
	e.scope.Enter()
	return e
}

// Exit emits pending events. Failures of the scope are never suppressed; an
// Emit failure is joined to the scope's error.
func (e *Emitter) Exit(errp *error) {
	e.scope.Release(errp, recover())
}

// Scope runs fn inside a grouping scope.
func (e *Emitter) Scope(fn func(*Emitter) error) error {
	return e.scope.Run(func() error {
		return fn(e)
	})
}

func (e *Emitter) record(kind Kind, name string, val any) error {
	encoded, err := Format(kind, e.cfg.Prefix, name, val)
	if err != nil {
		return err
	}
	return e.delivery.record(e.sink, e.cfg.Source, encodedEvent{kind: kind, text: encoded})
}
