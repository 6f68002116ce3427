package guard_test

import (
	"errors"
	"testing"

	"github.com/jt828/log-metrics/pkg/guard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hookLog struct {
	befores int
	afters  int
	seen    []error
}

func (h *hookLog) guard(suppress bool, hookErr error) *guard.Guard {
	return guard.New(
		guard.WithBefore(func() any {
			h.befores++
			return "entered"
		}),
		guard.WithAfter(func(err error) (bool, error) {
			h.afters++
			h.seen = append(h.seen, err)
			return suppress, hookErr
		}),
	)
}

func TestWrap(t *testing.T) {
	t.Run("without hooks returns the original result", func(t *testing.T) {
		fn := guard.Wrap(guard.New(), func() (int, error) {
			return 42, nil
		})

		result, err := fn()

		require.NoError(t, err)
		assert.Equal(t, 42, result)
	})

	t.Run("without hooks propagates the original error", func(t *testing.T) {
		expected := errors.New("boom")
		fn := guard.Wrap(guard.New(), func() (string, error) {
			return "partial", expected
		})

		result, err := fn()

		assert.Same(t, expected, err)
		assert.Equal(t, "partial", result)
	})

	t.Run("runs before and after once on success", func(t *testing.T) {
		h := &hookLog{}
		fn := guard.Wrap(h.guard(false, nil), func() (int, error) {
			assert.Equal(t, 1, h.befores)
			assert.Equal(t, 0, h.afters)
			return 7, nil
		})

		result, err := fn()

		require.NoError(t, err)
		assert.Equal(t, 7, result)
		assert.Equal(t, 1, h.befores)
		assert.Equal(t, 1, h.afters)
		assert.Equal(t, []error{nil}, h.seen)
	})

	t.Run("passes the failure to after and re-raises it", func(t *testing.T) {
		h := &hookLog{}
		expected := errors.New("fail")
		fn := guard.Wrap(h.guard(false, nil), func() (int, error) {
			return 0, expected
		})

		_, err := fn()

		assert.Same(t, expected, err)
		assert.Equal(t, 1, h.afters)
		assert.Same(t, expected, h.seen[0])
	})

	t.Run("suppressed failure yields zero value", func(t *testing.T) {
		h := &hookLog{}
		fn := guard.Wrap(h.guard(true, nil), func() (int, error) {
			return 5, errors.New("ignored")
		})

		result, err := fn()

		require.NoError(t, err)
		assert.Equal(t, 0, result)
		assert.Equal(t, 1, h.afters)
	})

	t.Run("suppress is ignored when nothing failed", func(t *testing.T) {
		h := &hookLog{}
		fn := guard.Wrap(h.guard(true, nil), func() (int, error) {
			return 5, nil
		})

		result, err := fn()

		require.NoError(t, err)
		assert.Equal(t, 5, result)
	})

	t.Run("re-panics with the original value", func(t *testing.T) {
		h := &hookLog{}
		value := errors.New("panic value")
		fn := guard.Wrap(h.guard(false, nil), func() (int, error) {
			panic(value)
		})

		defer func() {
			r := recover()
			assert.Same(t, value, r)
			require.Len(t, h.seen, 1)

			var pe *guard.PanicError
			require.ErrorAs(t, h.seen[0], &pe)
			assert.Same(t, value, pe.Value)
			assert.ErrorIs(t, h.seen[0], value)
		}()
		_, _ = fn()
		t.Fatal("panic was not propagated")
	})

	t.Run("suppressed panic returns zero value", func(t *testing.T) {
		h := &hookLog{}
		fn := guard.Wrap(h.guard(true, nil), func() (string, error) {
			panic("oops")
		})

		result, err := fn()

		require.NoError(t, err)
		assert.Empty(t, result)
		assert.Equal(t, 1, h.afters)
	})

	t.Run("hook error is joined with the region's error", func(t *testing.T) {
		h := &hookLog{}
		regionErr := errors.New("region")
		hookErr := errors.New("hook")
		fn := guard.Wrap(h.guard(false, hookErr), func() (int, error) {
			return 0, regionErr
		})

		_, err := fn()

		assert.ErrorIs(t, err, regionErr)
		assert.ErrorIs(t, err, hookErr)
	})

	t.Run("hook error is returned on success", func(t *testing.T) {
		h := &hookLog{}
		hookErr := errors.New("hook")
		fn := guard.Wrap(h.guard(false, hookErr), func() (int, error) {
			return 1, nil
		})

		_, err := fn()

		assert.Same(t, hookErr, err)
	})
}

func TestGuard_Run(t *testing.T) {
	t.Run("returns nil without hooks", func(t *testing.T) {
		calls := 0
		err := guard.New().Run(func() error {
			calls++
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("suppression clears the error", func(t *testing.T) {
		h := &hookLog{}
		err := h.guard(true, nil).Run(func() error {
			return errors.New("fail")
		})

		require.NoError(t, err)
		assert.Equal(t, 1, h.afters)
	})
}

func TestGuard_Scope(t *testing.T) {
	t.Run("enter returns the before value", func(t *testing.T) {
		h := &hookLog{}
		g := h.guard(false, nil)

		var got any
		func() {
			got = g.Enter()
			defer g.Exit(nil)
		}()

		assert.Equal(t, "entered", got)
		assert.Equal(t, 1, h.afters)
	})

	t.Run("enter without before returns nil", func(t *testing.T) {
		g := guard.New()
		assert.Nil(t, g.Enter())
		g.Exit(nil)
	})

	t.Run("exit sees and keeps the scope error", func(t *testing.T) {
		h := &hookLog{}
		g := h.guard(false, nil)
		expected := errors.New("scope failed")

		scope := func() (err error) {
			g.Enter()
			defer g.Exit(&err)
			return expected
		}

		err := scope()

		assert.Same(t, expected, err)
		assert.Same(t, expected, h.seen[0])
	})

	t.Run("exit suppresses the scope error", func(t *testing.T) {
		h := &hookLog{}
		g := h.guard(true, nil)

		scope := func() (err error) {
			g.Enter()
			defer g.Exit(&err)
			return errors.New("scope failed")
		}

		require.NoError(t, scope())
	})

	t.Run("exit runs after a panic and propagates it", func(t *testing.T) {
		h := &hookLog{}
		g := h.guard(false, nil)

		scope := func() (err error) {
			g.Enter()
			defer g.Exit(&err)
			panic("scope panic")
		}

		assert.PanicsWithValue(t, "scope panic", func() { _ = scope() })
		assert.Equal(t, 1, h.afters)
		var pe *guard.PanicError
		require.ErrorAs(t, h.seen[0], &pe)
		assert.Equal(t, "panic: scope panic", pe.Error())
	})

	t.Run("exit can swallow a panic", func(t *testing.T) {
		h := &hookLog{}
		g := h.guard(true, nil)

		scope := func() (err error) {
			g.Enter()
			defer g.Exit(&err)
			panic("swallowed")
		}

		assert.NotPanics(t, func() {
			assert.NoError(t, scope())
		})
	})

	t.Run("hook error panics when the scope has no error result", func(t *testing.T) {
		hookErr := errors.New("hook")
		h := &hookLog{}
		g := h.guard(false, hookErr)

		assert.PanicsWithError(t, "hook", func() {
			g.Enter()
			defer g.Exit(nil)
		})
	})
}
