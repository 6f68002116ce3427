// Package guard runs a region of work between a before hook and an after
// hook. The after hook runs exactly once per invocation, whether the region
// returned normally, returned an error, or panicked.
package guard

import (
	"errors"
	"fmt"
)

type BeforeFunc func() any

// AfterFunc receives the failure of the guarded region, nil when there was
// none. Returning suppress=true stops that failure from propagating. hookErr
// reports a failure of the hook itself and is always propagated.
type AfterFunc func(err error) (suppress bool, hookErr error)

type Option func(*Guard)

func WithBefore(fn BeforeFunc) Option {
	return func(g *Guard) {
		g.before = fn
	}
}

func WithAfter(fn AfterFunc) Option {
	return func(g *Guard) {
		g.after = fn
	}
}

type Guard struct {
	before BeforeFunc
	after  AfterFunc
}

func New(opts ...Option) *Guard {
	g := &Guard{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// PanicError is handed to the after hook when the guarded region panicked.
type PanicError struct {
	Value any
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", p.Value)
}

func (p *PanicError) Unwrap() error {
	if err, ok := p.Value.(error); ok {
		return err
	}
	return nil
}

// Enter runs the before hook and returns its value.
func (g *Guard) Enter() any {
	if g.before == nil {
		return nil
	}
	return g.before()
}

// Exit runs the after hook. It must be deferred directly:
//
//	v := g.Enter()
//	defer g.Exit(&err)
//
// errp may be nil when the scope has no error result.
func (g *Guard) Exit(errp *error) {
	g.Release(errp, recover())
}

// Run invokes fn between the hooks.
func (g *Guard) Run(fn func() error) (err error) {
	g.Enter()
	defer func() {
		g.Release(&err, recover())
	}()
	return fn()
}

// Wrap returns fn guarded by g. A suppressed failure yields the zero value
// and a nil error.
func Wrap[T any](g *Guard, fn func() (T, error)) func() (T, error) {
	return func() (result T, err error) {
		g.Enter()
		defer func() {
			if g.Release(&err, recover()) {
				var zero T
				result = zero
			}
		}()
		return fn()
	}
}

// Release runs the after hook for a scope that ended with *errp or with the
// recovered panic value. Types that wrap a Guard call it from their own
// deferred method, passing recover() directly. It reports whether a failure
// was suppressed.
func (g *Guard) Release(errp *error, recovered any) bool {
	var failure error
	switch {
	case recovered != nil:
		failure = &PanicError{Value: recovered}
	case errp != nil:
		failure = *errp
	}

	suppress := false
	var hookErr error
	if g.after != nil {
		suppress, hookErr = g.after(failure)
	}
	suppress = suppress && failure != nil

	if recovered != nil && !suppress {
		panic(recovered)
	}

	if errp == nil {
		if hookErr != nil {
			panic(hookErr)
		}
		return suppress
	}

	switch {
	case suppress:
		*errp = hookErr
	case hookErr == nil:
	case *errp == nil:
		*errp = hookErr
	default:
		*errp = errors.Join(*errp, hookErr)
	}
	return suppress
}
