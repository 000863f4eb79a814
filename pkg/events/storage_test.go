package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rentadmin/pkg/events"
)

func TestMultiStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("writes to every target even when one fails", func(t *testing.T) {
		t.Parallel()

		a, b := events.NewMemoryStorage(), events.NewMemoryStorage()
		failing := events.StorageFunc(func(context.Context, events.Event) error {
			return errors.New("boom")
		})
		m := events.NewMultiStorage(a, failing, nil, b)

		err := m.Store(ctx, events.Event{ID: "1", Type: "x"})

		assert.ErrorContains(t, err, "boom")
		assert.Len(t, a.Events(), 1)
		assert.Len(t, b.Events(), 1)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		err := events.NewMultiStorage().Store(ctx, events.Event{ID: "1"})
		assert.ErrorIs(t, err, events.ErrStorageNotAvailable)
	})
}

// transportFunc implements opensearchapi.Transport.
type transportFunc func(*http.Request) (*http.Response, error)

func (f transportFunc) Perform(req *http.Request) (*http.Response, error) {
	return f(req)
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestOpenSearchStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	event := events.Event{
		ID:        "evt-1",
		Type:      "booking.viewed",
		UserID:    "u1",
		Context:   map[string]any{"booking_id": "b1"},
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	t.Run("indexes document by id", func(t *testing.T) {
		t.Parallel()

		var path string
		var doc map[string]any
		s := events.NewOpenSearchStorage(transportFunc(func(req *http.Request) (*http.Response, error) {
			path = req.URL.Path
			require.NoError(t, json.NewDecoder(req.Body).Decode(&doc))
			return response(http.StatusCreated, `{"result":"created"}`), nil
		}), "")

		require.NoError(t, s.Store(ctx, event))
		assert.Equal(t, "/events/_doc/evt-1", path)
		assert.Equal(t, "booking.viewed", doc["type"])
		assert.Equal(t, "u1", doc["user_id"])
	})

	t.Run("error status", func(t *testing.T) {
		t.Parallel()

		s := events.NewOpenSearchStorage(transportFunc(func(*http.Request) (*http.Response, error) {
			return response(http.StatusBadRequest, `{"error":"mapper_parsing_exception"}`), nil
		}), "audit")

		err := s.Store(ctx, event)
		assert.ErrorIs(t, err, events.ErrIndexFailed)
		assert.ErrorContains(t, err, "mapper_parsing_exception")
	})

	t.Run("transport failure", func(t *testing.T) {
		t.Parallel()

		s := events.NewOpenSearchStorage(transportFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("dial tcp: connection refused")
		}), "")

		err := s.Store(ctx, event)
		assert.ErrorIs(t, err, events.ErrStorageNotAvailable)
	})
}
