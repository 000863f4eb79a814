package binder_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rentadmin/pkg/binder"
)

func TestQuery(t *testing.T) {
	t.Parallel()

	type listQuery struct {
		Limit    int      `query:"limit"`
		Page     uint     `query:"page"`
		Unread   bool     `query:"unread"`
		Types    []string `query:"type"`
		Search   *string  `query:"q"`
		Internal string   `query:"-"`
		Sort     string
	}

	t.Run("binds all supported kinds", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/?limit=5&page=2&unread=1&type=A,B&type=C&q=ann&sort=new", nil)

		var got listQuery
		require.NoError(t, binder.Query()(req, &got))

		assert.Equal(t, 5, got.Limit)
		assert.Equal(t, uint(2), got.Page)
		assert.True(t, got.Unread)
		assert.Equal(t, []string{"A", "B", "C"}, got.Types)
		require.NotNil(t, got.Search)
		assert.Equal(t, "ann", *got.Search)
		assert.Equal(t, "new", got.Sort)
	})

	t.Run("skips dash and missing fields", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/?internal=secret", nil)

		got := listQuery{Internal: "original", Limit: 20}
		require.NoError(t, binder.Query()(req, &got))

		assert.Equal(t, "original", got.Internal)
		assert.Equal(t, 20, got.Limit)
		assert.Nil(t, got.Types)
	})

	t.Run("invalid number", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/?limit=ten", nil)

		var got listQuery
		err := binder.Query()(req, &got)
		require.ErrorIs(t, err, binder.ErrFailedToParseQuery)
		assert.Contains(t, err.Error(), "limit")
	})

	t.Run("target must be a struct pointer", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/?limit=1", nil)

		var got listQuery
		assert.ErrorIs(t, binder.Query()(req, got), binder.ErrFailedToParseQuery)
	})
}

func TestJSON(t *testing.T) {
	t.Parallel()

	type body struct {
		IDs []string `json:"ids"`
	}

	newReq := func(payload, contentType string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		return req
	}

	tests := []struct {
		name    string
		payload string
		ctype   string
		want    []string
		wantErr error
	}{
		{name: "valid", payload: `{"ids":["a","b"]}`, ctype: "application/json", want: []string{"a", "b"}},
		{name: "charset parameter", payload: `{"ids":["a"]}`, ctype: "application/json; charset=utf-8", want: []string{"a"}},
		{name: "empty body", payload: "", ctype: "application/json", wantErr: binder.ErrBinderNotApplicable},
		{name: "whitespace body", payload: " \n", ctype: "", wantErr: binder.ErrBinderNotApplicable},
		{name: "missing content type", payload: `{"ids":[]}`, wantErr: binder.ErrMissingContentType},
		{name: "wrong content type", payload: `{"ids":[]}`, ctype: "text/plain", wantErr: binder.ErrUnsupportedMediaType},
		{name: "malformed", payload: `{"ids":`, ctype: "application/json", wantErr: binder.ErrFailedToParseJSON},
		{name: "unknown field", payload: `{"all":true}`, ctype: "application/json", wantErr: binder.ErrFailedToParseJSON},
		{name: "trailing data", payload: `{"ids":[]}{}`, ctype: "application/json", wantErr: binder.ErrFailedToParseJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got body
			err := binder.JSON()(newReq(tt.payload, tt.ctype), &got)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.IDs)
		})
	}

	t.Run("size limit", func(t *testing.T) {
		t.Parallel()

		var got body
		err := binder.LimitedJSON(8)(newReq(`{"ids":["abcdef"]}`, "application/json"), &got)
		require.ErrorIs(t, err, binder.ErrFailedToParseJSON)
		assert.Contains(t, err.Error(), "too large")
	})
}
