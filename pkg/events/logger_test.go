package events_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rentadmin/pkg/events"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Store(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

var discard = slog.New(slog.DiscardHandler)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		events.NewLogger(nil)
	})
	assert.NotNil(t, events.NewLogger(events.NewMemoryStorage()))
}

func TestLogger_LogEvent(t *testing.T) {
	t.Parallel()

	t.Run("stores event with generated fields", func(t *testing.T) {
		t.Parallel()

		at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
		storage := events.NewMemoryStorage()
		l := events.NewLogger(storage,
			events.WithLogger(discard),
			events.WithClock(func() time.Time { return at }),
		)

		l.LogEvent(context.Background(), events.Input{
			UserID:    "u1",
			Type:      "booking.viewed",
			Context:   map[string]any{"booking_id": "b1"},
			IP:        "10.0.0.1",
			UserAgent: "test-agent",
		})

		got := storage.Events()
		require.Len(t, got, 1)
		assert.NotEmpty(t, got[0].ID)
		assert.Equal(t, "u1", got[0].UserID)
		assert.Equal(t, "booking.viewed", got[0].Type)
		assert.Equal(t, "b1", got[0].Context["booking_id"])
		assert.Equal(t, "10.0.0.1", got[0].IP)
		assert.Equal(t, "test-agent", got[0].UserAgent)
		assert.Equal(t, at, got[0].CreatedAt)
	})

	t.Run("failing storage returns normally", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		storage.On("Store", mock.Anything, mock.Anything).Return(errors.New("db down"))
		l := events.NewLogger(storage, events.WithLogger(discard))

		assert.NotPanics(t, func() {
			l.LogEvent(context.Background(), events.Input{Type: "login"})
		})

		stats := l.Stats()
		assert.Equal(t, uint64(1), stats.Attempts)
		assert.Equal(t, uint64(1), stats.Failures)
		storage.AssertExpectations(t)
	})

	t.Run("panicking storage is contained", func(t *testing.T) {
		t.Parallel()

		storage := events.StorageFunc(func(context.Context, events.Event) error {
			panic("driver bug")
		})
		l := events.NewLogger(storage, events.WithLogger(discard))

		assert.NotPanics(t, func() {
			l.LogEvent(context.Background(), events.Input{Type: "login"})
		})
		assert.Equal(t, uint64(1), l.Stats().Failures)
	})

	t.Run("missing type is dropped", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		l := events.NewLogger(storage, events.WithLogger(discard))

		l.LogEvent(context.Background(), events.Input{Type: "  "})

		storage.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
		assert.Equal(t, uint64(0), l.Stats().Attempts)
	})

	t.Run("write survives canceled request context", func(t *testing.T) {
		t.Parallel()

		storage := events.StorageFunc(func(ctx context.Context, _ events.Event) error {
			return ctx.Err()
		})
		l := events.NewLogger(storage, events.WithLogger(discard))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		l.LogEvent(ctx, events.Input{Type: "logout"})

		assert.Equal(t, uint64(0), l.Stats().Failures)
	})

	t.Run("write is bounded by timeout", func(t *testing.T) {
		t.Parallel()

		storage := events.StorageFunc(func(ctx context.Context, _ events.Event) error {
			<-ctx.Done()
			return ctx.Err()
		})
		l := events.NewLogger(storage, events.WithLogger(discard), events.WithTimeout(20*time.Millisecond))

		start := time.Now()
		l.LogEvent(context.Background(), events.Input{Type: "slow"})

		assert.Less(t, time.Since(start), time.Second)
		assert.Equal(t, uint64(1), l.Stats().Failures)
	})

	t.Run("extractors fill empty fields", func(t *testing.T) {
		t.Parallel()

		storage := events.NewMemoryStorage()
		l := events.NewLogger(storage,
			events.WithLogger(discard),
			events.WithRequestIDExtractor(func(context.Context) (string, bool) { return "req-1", true }),
			events.WithUserIDExtractor(func(context.Context) (string, bool) { return "ctx-user", true }),
			events.WithIPExtractor(func(context.Context) (string, bool) { return "", false }),
		)

		l.LogEvent(context.Background(), events.Input{Type: "a", UserID: "explicit"})

		got := storage.Events()
		require.Len(t, got, 1)
		assert.Equal(t, "req-1", got[0].RequestID)
		assert.Equal(t, "explicit", got[0].UserID)
		assert.Empty(t, got[0].IP)
	})
}

func TestLogger_Async(t *testing.T) {
	t.Parallel()

	t.Run("does not block caller and drains on close", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		var stored atomic.Int32
		storage := events.StorageFunc(func(context.Context, events.Event) error {
			<-release
			stored.Add(1)
			return nil
		})
		l := events.NewLogger(storage, events.WithLogger(discard), events.WithAsync())

		for range 5 {
			l.LogEvent(context.Background(), events.Input{Type: "click"})
		}
		assert.Equal(t, int32(0), stored.Load())

		close(release)
		require.NoError(t, l.Close(context.Background()))
		assert.Equal(t, int32(5), stored.Load())
	})

	t.Run("close honors context", func(t *testing.T) {
		t.Parallel()

		block := make(chan struct{})
		t.Cleanup(func() { close(block) })
		storage := events.StorageFunc(func(context.Context, events.Event) error {
			<-block
			return nil
		})
		l := events.NewLogger(storage, events.WithLogger(discard), events.WithAsync())
		l.LogEvent(context.Background(), events.Input{Type: "click"})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, l.Close(ctx), context.DeadlineExceeded)
	})

	t.Run("events after close are dropped", func(t *testing.T) {
		t.Parallel()

		storage := events.NewMemoryStorage()
		l := events.NewLogger(storage, events.WithLogger(discard), events.WithAsync())
		require.NoError(t, l.Close(context.Background()))

		l.LogEvent(context.Background(), events.Input{Type: "late"})

		assert.Empty(t, storage.Events())
	})
}
