package besteffort_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rentadmin/pkg/besteffort"
)

func TestPolicy_Do(t *testing.T) {
	t.Parallel()

	t.Run("success is counted as attempt only", func(t *testing.T) {
		t.Parallel()

		p := besteffort.New("test")
		ok := p.Do(context.Background(), "op", func(context.Context) error { return nil })

		assert.True(t, ok)
		assert.Equal(t, besteffort.Stats{Attempts: 1, Failures: 0}, p.Stats())
	})

	t.Run("error is swallowed and logged", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))
		p := besteffort.New("events", besteffort.WithLogger(log))

		ok := p.Do(context.Background(), "store_event", func(context.Context) error {
			return errors.New("connection refused")
		})

		assert.False(t, ok)
		assert.Equal(t, uint64(1), p.Stats().Failures)
		assert.Contains(t, buf.String(), "store_event")
		assert.Contains(t, buf.String(), "connection refused")
		assert.Contains(t, buf.String(), "component=events")
	})

	t.Run("panic is recovered", func(t *testing.T) {
		t.Parallel()

		var hookErr error
		p := besteffort.New("test",
			besteffort.WithLogger(slog.New(slog.DiscardHandler)),
			besteffort.WithFailureHook(func(_ context.Context, _ string, err error) {
				hookErr = err
			}),
		)

		require.NotPanics(t, func() {
			p.Do(context.Background(), "op", func(context.Context) error {
				panic("boom")
			})
		})

		require.Error(t, hookErr)
		assert.ErrorIs(t, hookErr, besteffort.ErrPanicked)
		assert.Contains(t, hookErr.Error(), "boom")
	})

	t.Run("panicking hook does not escape", func(t *testing.T) {
		t.Parallel()

		p := besteffort.New("test",
			besteffort.WithLogger(slog.New(slog.DiscardHandler)),
			besteffort.WithFailureHook(func(context.Context, string, error) {
				panic("hook")
			}),
		)

		assert.NotPanics(t, func() {
			p.Do(context.Background(), "op", func(context.Context) error {
				return errors.New("fail")
			})
		})
	})

	t.Run("counters are per instance", func(t *testing.T) {
		t.Parallel()

		a := besteffort.New("a", besteffort.WithLogger(slog.New(slog.DiscardHandler)))
		b := besteffort.New("b")

		a.Do(context.Background(), "op", func(context.Context) error { return errors.New("x") })

		assert.Equal(t, uint64(1), a.Stats().Failures)
		assert.Equal(t, besteffort.Stats{}, b.Stats())
	})

	t.Run("concurrent use", func(t *testing.T) {
		t.Parallel()

		p := besteffort.New("test", besteffort.WithLogger(slog.New(slog.DiscardHandler)))

		var wg sync.WaitGroup
		for i := range 100 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				p.Do(context.Background(), "op", func(context.Context) error {
					if i%2 == 0 {
						return errors.New("even")
					}
					return nil
				})
			}()
		}
		wg.Wait()

		assert.Equal(t, besteffort.Stats{Attempts: 100, Failures: 50}, p.Stats())
	})
}
