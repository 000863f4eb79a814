package opensearch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rentadmin/pkg/opensearch"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("disabled without addresses", func(t *testing.T) {
		t.Parallel()
		_, err := opensearch.New(context.Background(), opensearch.Config{})
		assert.ErrorIs(t, err, opensearch.ErrDisabled)
	})

	t.Run("healthy cluster", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"version":{"number":"2.11.0","distribution":"opensearch"}}`))
		}))
		t.Cleanup(srv.Close)

		client, err := opensearch.New(context.Background(), opensearch.Config{Addresses: []string{srv.URL}})
		require.NoError(t, err)
		assert.NoError(t, opensearch.Healthcheck(client)(context.Background()))
	})

	t.Run("unhealthy cluster", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		t.Cleanup(srv.Close)

		_, err := opensearch.New(context.Background(), opensearch.Config{
			Addresses:    []string{srv.URL},
			DisableRetry: true,
		})
		assert.ErrorIs(t, err, opensearch.ErrConnectionFailed)
		assert.ErrorIs(t, err, opensearch.ErrHealthcheckFailed)
	})
}
