package live_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rentadmin/pkg/live"
)

// recorder is an Emitter that remembers what it received.
type recorder struct {
	mu   sync.Mutex
	msgs []string
	err  error
}

func (r *recorder) Emit(_ context.Context, msg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *recorder) received() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.msgs...)
}

func newRegistry(opts ...live.Option) *live.Registry[string] {
	opts = append([]live.Option{live.WithLogger(slog.New(slog.DiscardHandler))}, opts...)
	return live.New[string](opts...)
}

func register(t *testing.T, reg *live.Registry[string], subject, role string, e live.Emitter[string]) func() {
	t.Helper()
	unregister, err := reg.Register(live.Connection[string]{SubjectID: subject, AudienceRole: role, Emitter: e})
	require.NoError(t, err)
	return unregister
}

func TestRegistry_Broadcast(t *testing.T) {
	t.Parallel()

	t.Run("delivers exactly once to matching connection", func(t *testing.T) {
		t.Parallel()

		reg := newRegistry()
		a, b := &recorder{}, &recorder{}
		register(t, reg, "u1", "", a)
		register(t, reg, "u2", "", b)

		n := reg.Broadcast(context.Background(), live.Criteria{SubjectID: "u1"}, "approved")

		assert.Equal(t, 1, n)
		assert.Equal(t, []string{"approved"}, a.received())
		assert.Empty(t, b.received())
	})

	t.Run("role broadcast reaches connection without subject", func(t *testing.T) {
		t.Parallel()

		reg := newRegistry()
		c := &recorder{}
		register(t, reg, "", "manager", c)

		reg.Broadcast(context.Background(), live.Criteria{AudienceRole: "manager"}, "heads up")

		assert.Equal(t, []string{"heads up"}, c.received())
	})

	t.Run("empty criteria reach every connection", func(t *testing.T) {
		t.Parallel()

		reg := newRegistry()
		conns := []*recorder{{}, {}, {}}
		register(t, reg, "u1", "manager", conns[0])
		register(t, reg, "", "", conns[1])
		register(t, reg, "u2", "", conns[2])

		n := reg.Broadcast(context.Background(), live.Criteria{}, "all")

		assert.Equal(t, 3, n)
		for _, c := range conns {
			assert.Equal(t, []string{"all"}, c.received())
		}
	})

	t.Run("connection with same subject on two tabs gets both", func(t *testing.T) {
		t.Parallel()

		reg := newRegistry()
		tab1, tab2 := &recorder{}, &recorder{}
		register(t, reg, "u1", "", tab1)
		register(t, reg, "u1", "", tab2)

		assert.Equal(t, 2, reg.Broadcast(context.Background(), live.Criteria{SubjectID: "u1"}, "x"))
	})

	t.Run("no connections is not an error", func(t *testing.T) {
		t.Parallel()

		reg := newRegistry()
		assert.Equal(t, 0, reg.Broadcast(context.Background(), live.Criteria{SubjectID: "u1"}, "x"))
	})

	t.Run("failing emitter does not affect others", func(t *testing.T) {
		t.Parallel()

		reg := newRegistry()
		bad := &recorder{err: errors.New("broken pipe")}
		good1, good2 := &recorder{}, &recorder{}
		register(t, reg, "u1", "", good1)
		register(t, reg, "u1", "", bad)
		register(t, reg, "u1", "", good2)

		n := reg.Broadcast(context.Background(), live.Criteria{SubjectID: "u1"}, "x")

		assert.Equal(t, 2, n)
		assert.Equal(t, []string{"x"}, good1.received())
		assert.Equal(t, []string{"x"}, good2.received())
		assert.Equal(t, uint64(1), reg.Stats().Failures)
	})

	t.Run("panicking emitter is contained", func(t *testing.T) {
		t.Parallel()

		reg := newRegistry()
		good := &recorder{}
		register(t, reg, "", "", live.EmitterFunc[string](func(context.Context, string) error {
			panic("emitter exploded")
		}))
		register(t, reg, "", "", good)

		require.NotPanics(t, func() {
			reg.Broadcast(context.Background(), live.Criteria{}, "x")
		})
		assert.Equal(t, []string{"x"}, good.received())
	})

	t.Run("stalled emitter is bounded by emit timeout", func(t *testing.T) {
		t.Parallel()

		reg := newRegistry(live.WithEmitTimeout(20 * time.Millisecond))
		good := &recorder{}
		register(t, reg, "", "", live.EmitterFunc[string](func(ctx context.Context, _ string) error {
			<-ctx.Done()
			return ctx.Err()
		}))
		register(t, reg, "", "", good)

		start := time.Now()
		n := reg.Broadcast(context.Background(), live.Criteria{}, "x")

		assert.Equal(t, 1, n)
		assert.Less(t, time.Since(start), time.Second)
		assert.Equal(t, []string{"x"}, good.received())
	})

	t.Run("per connection order follows broadcast order", func(t *testing.T) {
		t.Parallel()

		reg := newRegistry()
		c := &recorder{}
		register(t, reg, "u1", "", c)

		for _, m := range []string{"1", "2", "3", "4"} {
			reg.Broadcast(context.Background(), live.Criteria{SubjectID: "u1"}, m)
		}

		assert.Equal(t, []string{"1", "2", "3", "4"}, c.received())
	})

	t.Run("match all mode", func(t *testing.T) {
		t.Parallel()

		reg := newRegistry(live.WithMatchMode(live.MatchAll))
		manager, other := &recorder{}, &recorder{}
		register(t, reg, "u1", "manager", manager)
		register(t, reg, "u1", "admin", other)

		reg.Broadcast(context.Background(), live.Criteria{SubjectID: "u1", AudienceRole: "manager"}, "x")

		assert.Equal(t, []string{"x"}, manager.received())
		assert.Empty(t, other.received())
	})
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	t.Run("unregister stops delivery and is idempotent", func(t *testing.T) {
		t.Parallel()

		reg := newRegistry()
		c := &recorder{}
		unregister := register(t, reg, "u1", "", c)
		require.Equal(t, 1, reg.Len())

		unregister()
		unregister()
		unregister()

		assert.Equal(t, 0, reg.Len())
		reg.Broadcast(context.Background(), live.Criteria{SubjectID: "u1"}, "x")
		assert.Empty(t, c.received())
	})

	t.Run("unregister only removes its own entry", func(t *testing.T) {
		t.Parallel()

		reg := newRegistry()
		first, second := &recorder{}, &recorder{}
		unregister := register(t, reg, "u1", "", first)
		register(t, reg, "u1", "", second)

		unregister()
		unregister()

		assert.Equal(t, 1, reg.Len())
		reg.Broadcast(context.Background(), live.Criteria{SubjectID: "u1"}, "x")
		assert.Empty(t, first.received())
		assert.Equal(t, []string{"x"}, second.received())
	})

	t.Run("nil emitter is rejected", func(t *testing.T) {
		t.Parallel()

		reg := newRegistry()
		_, err := reg.Register(live.Connection[string]{SubjectID: "u1"})
		assert.ErrorIs(t, err, live.ErrNilEmitter)
	})

	t.Run("closed registry rejects registrations", func(t *testing.T) {
		t.Parallel()

		reg := newRegistry()
		c := &recorder{}
		unregister := register(t, reg, "u1", "", c)

		require.NoError(t, reg.Shutdown(context.Background()))
		require.NoError(t, reg.Shutdown(context.Background()))

		select {
		case <-reg.Done():
		default:
			t.Fatal("done channel should be closed")
		}

		_, err := reg.Register(live.Connection[string]{Emitter: &recorder{}})
		assert.ErrorIs(t, err, live.ErrRegistryClosed)
		assert.Equal(t, 0, reg.Len())
		assert.Equal(t, 0, reg.Broadcast(context.Background(), live.Criteria{}, "x"))

		assert.NotPanics(t, unregister)
	})
}

func TestRegistry_Concurrency(t *testing.T) {
	t.Parallel()

	reg := newRegistry()
	var delivered atomic.Int64
	counter := live.EmitterFunc[string](func(context.Context, string) error {
		delivered.Add(1)
		return nil
	})

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			unregister, err := reg.Register(live.Connection[string]{SubjectID: "u1", Emitter: counter})
			if err != nil {
				return
			}
			time.Sleep(time.Millisecond)
			unregister()
		}()
		go func() {
			defer wg.Done()
			reg.Broadcast(context.Background(), live.Criteria{SubjectID: "u1"}, "x")
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, reg.Len())
}
