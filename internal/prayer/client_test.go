package prayer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
	"code": 200,
	"data": {
		"timings": {
			"Fajr": "05:12",
			"Sunrise": "06:40",
			"Dhuhr": "12:30",
			"Asr": "15:55",
			"Maghrib": "18:20",
			"Isha": "19:45"
		},
		"date": {"readable": "30 Aug 2026"}
	}
}`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(zerolog.Nop())
	c.baseURL = srv.URL
	return c
}

func TestLookupParsesTimings(t *testing.T) {
	var captured *http.Request
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(context.Background())
		_, _ = w.Write([]byte(sampleResponse))
	}))

	times := c.Lookup(context.Background(), "Morocco", "Rabat")
	require.NotNil(t, times)
	assert.Equal(t, "05:12", times.Fajr)
	assert.Equal(t, "19:45", times.Isha)
	assert.Equal(t, "30 Aug 2026", times.Date)

	require.NotNil(t, captured)
	q := captured.URL.Query()
	assert.Equal(t, "Rabat", q.Get("city"))
	assert.Equal(t, "Morocco", q.Get("country"))
	assert.Equal(t, "4", q.Get("method"))
}

func TestLookupEmptyLocation(t *testing.T) {
	c := New(zerolog.Nop())

	assert.Nil(t, c.Lookup(context.Background(), "", "Rabat"))
	assert.Nil(t, c.Lookup(context.Background(), "Morocco", ""))
}

func TestLookupNonOKStatus(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))

	assert.Nil(t, c.Lookup(context.Background(), "Morocco", "Rabat"))
}

func TestLookupMalformedBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code": 200, "data": {}}`))
	}))

	assert.Nil(t, c.Lookup(context.Background(), "Morocco", "Rabat"))
}

func TestLookupServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := New(zerolog.Nop())
	c.baseURL = srv.URL

	assert.Nil(t, c.Lookup(context.Background(), "Morocco", "Rabat"))
}
