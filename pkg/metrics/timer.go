package metrics

import (
	"time"

	"github.com/jt828/log-metrics/pkg/guard"
	"github.com/shopspring/decimal"
)

// Timer records one "<name>.ms" measurement per guarded region. Use it as a
// scope (Enter / defer Exit) or around a function (Time, guard.Wrap).
type Timer struct {
	*guard.Guard

	name    string
	emitter *Emitter
	start   time.Time
}

func newTimer(name string, e *Emitter) *Timer {
	t := &Timer{name: name, emitter: e}
	t.Guard = guard.New(
		guard.WithBefore(t.before),
		guard.WithAfter(t.after),
	)
	return t
}

func (t *Timer) Name() string { return t.name }

func (t *Timer) Time(fn func() error) error {
	return t.Run(fn)
}

func (t *Timer) before() any {
	t.start = t.emitter.now()
	return t.start
}

// after never suppresses.
func (t *Timer) after(error) (bool, error) {
	elapsed := t.emitter.now().Sub(t.start)
	return false, t.emitter.Measure(t.name+".ms", Milliseconds(elapsed))
}

// Milliseconds renders d in milliseconds with exactly two decimal digits.
func Milliseconds(d time.Duration) string {
	return decimal.New(int64(d), -6).StringFixed(2)
}
