package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestFetcher() *Fetcher {
	return NewFetcher(FetcherOptions{
		UserAgent:  "test-agent",
		Timeout:    5 * time.Second,
		MaxRetries: 3,
		Limiter:    rate.NewLimiter(rate.Inf, 1),
	})
}

func TestFetchPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Write([]byte("<html><body>schools</body></html>"))
	}))
	defer srv.Close()

	f := newTestFetcher()
	page, err := f.FetchPage(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, page, "schools")
}

func TestFetchPageNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := newTestFetcher()
	_, err := f.FetchPage(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestFetchPageRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := newTestFetcher()
	page, err := f.FetchPage(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", page)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchPageExhaustsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := newTestFetcher()
	_, err := f.FetchPage(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestFetchPageUnreachable(t *testing.T) {
	f := NewFetcher(FetcherOptions{
		Timeout:    time.Second,
		MaxRetries: 1,
		Limiter:    rate.NewLimiter(rate.Inf, 1),
	})
	_, err := f.FetchPage(context.Background(), "http://127.0.0.1:1/schools")
	assert.Error(t, err)
}
