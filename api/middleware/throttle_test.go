package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeThrottleStore struct {
	counts map[string]int64
	err    error
}

func (f *fakeThrottleStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.counts == nil {
		f.counts = map[string]int64{}
	}
	f.counts[key]++
	return f.counts[key], nil
}

func throttledHandler(store *fakeThrottleStore, limit int) http.Handler {
	policy := NewThrottlePolicy("research", time.Minute, limit)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return Throttle(policy, store, nil)(next)
}

func TestThrottleAllowsUnderLimit(t *testing.T) {
	store := &fakeThrottleStore{}
	handler := throttledHandler(store, 2)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/research", nil)
		req.RemoteAddr = "10.0.0.1:4567"
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
}

func TestThrottleBlocksOverLimit(t *testing.T) {
	store := &fakeThrottleStore{}
	handler := throttledHandler(store, 1)

	req := func() *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/research", nil)
		r.RemoteAddr = "10.0.0.1:4567"
		return r
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req())
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req())
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "RATE_LIMIT_EXCEEDED")
}

func TestThrottleSeparatesClients(t *testing.T) {
	store := &fakeThrottleStore{}
	handler := throttledHandler(store, 1)

	first := httptest.NewRequest(http.MethodPost, "/research", nil)
	first.RemoteAddr = "10.0.0.1:4567"
	second := httptest.NewRequest(http.MethodPost, "/research", nil)
	second.RemoteAddr = "10.0.0.2:4567"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	assert.Equal(t, http.StatusNoContent, rec.Code, "a different IP has its own window")
}

func TestThrottleForwardedForWins(t *testing.T) {
	store := &fakeThrottleStore{}
	handler := throttledHandler(store, 1)

	req := httptest.NewRequest(http.MethodPost, "/research", nil)
	req.RemoteAddr = "127.0.0.1:9999"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, store.counts, "rl:ip:research:203.0.113.9")
}

func TestThrottleStoreErrorFailsClosed(t *testing.T) {
	store := &fakeThrottleStore{err: errors.New("redis down")}
	handler := throttledHandler(store, 1)

	req := httptest.NewRequest(http.MethodPost, "/research", nil)
	req.RemoteAddr = "10.0.0.1:4567"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestThrottleDisabledPolicyPassesThrough(t *testing.T) {
	store := &fakeThrottleStore{}
	policy := NewThrottlePolicy("research", 0, 0)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := Throttle(policy, store, nil)(next)

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/research", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
	assert.Empty(t, store.counts)
}
