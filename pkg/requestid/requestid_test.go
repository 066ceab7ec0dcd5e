package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authclient/pkg/requestid"
)

func TestEnsure(t *testing.T) {
	t.Parallel()

	t.Run("generates an id for a bare context", func(t *testing.T) {
		t.Parallel()
		ctx, id := requestid.Ensure(context.Background())
		require.NotEmpty(t, id)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, requestid.FromContext(ctx))
	})

	t.Run("keeps an existing id", func(t *testing.T) {
		t.Parallel()
		base := requestid.WithContext(context.Background(), "call-1")
		ctx, id := requestid.Ensure(base)
		assert.Equal(t, "call-1", id)
		assert.Equal(t, base, ctx)
	})
}

func TestFromContext_Nil(t *testing.T) {
	t.Parallel()
	//nolint:staticcheck // nil context is part of the contract
	assert.Empty(t, requestid.FromContext(nil))
}

func TestValid(t *testing.T) {
	t.Parallel()

	assert.True(t, requestid.Valid("abc-DEF_123"))
	assert.False(t, requestid.Valid(""))
	assert.False(t, requestid.Valid("with space"))
	assert.False(t, requestid.Valid("a/b"))
	assert.False(t, requestid.Valid(strings.Repeat("a", 129)))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("generates new request ID when not provided", func(t *testing.T) {
		t.Parallel()
		handler := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NotEmpty(t, requestid.FromContext(r.Context()))
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(requestid.Header))
	})

	t.Run("uses existing request ID from header", func(t *testing.T) {
		t.Parallel()
		handler := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "req-123", requestid.FromContext(r.Context()))
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestid.Header, "req-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "req-123", rec.Header().Get(requestid.Header))
	})

	t.Run("replaces invalid request ID", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestid.Header, "bad id\n")
		rec := httptest.NewRecorder()
		requestid.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rec, req)

		got := rec.Header().Get(requestid.Header)
		assert.NotEqual(t, "bad id\n", got)
		assert.True(t, requestid.Valid(got))
	})
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := requestid.LoggerExtractor()

	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(requestid.WithContext(context.Background(), "abc"))
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.String())
}
