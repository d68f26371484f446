// opensky/client_test.go
package opensky

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const departuresBody = `[
  {"callsign": "QFA1  ", "estDepartureAirport": "YSSY", "estArrivalAirport": "YMML", "firstSeen": 1705307400, "lastSeen": 1705311000},
  {"callsign": null, "estDepartureAirport": "YSSY", "estArrivalAirport": null, "firstSeen": 1705307500, "lastSeen": 1705311100}
]`

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts = append([]Option{WithBaseURL(srv.URL)}, opts...)
	return NewClient(zap.NewNop(), opts...), srv
}

func TestFetchDepartures(t *testing.T) {
	var gotQuery string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/flights/departure", r.URL.Path)
		w.Write([]byte(departuresBody))
	})

	records, err := c.FetchDepartures(context.Background(), "YSSY", 1705300000, 1705390000)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Contains(t, gotQuery, "airport=YSSY")
	assert.Contains(t, gotQuery, "begin=1705300000")
	assert.Contains(t, gotQuery, "end=1705390000")

	require.NotNil(t, records[0].Callsign)
	assert.Equal(t, "QFA1  ", *records[0].Callsign)
	assert.Nil(t, records[1].Callsign)
	assert.Nil(t, records[1].EstArrivalAirport)
	require.NotNil(t, records[1].FirstSeen)
	assert.Equal(t, int64(1705307500), *records[1].FirstSeen)
}

func TestFetchDeparturesNotFoundIsEmpty(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})

	records, err := c.FetchDepartures(context.Background(), "YSSY", 1, 2)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFetchDeparturesServerError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.FetchDepartures(context.Background(), "YSSY", 1, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestFetchDeparturesMalformedBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"`))
	})

	_, err := c.FetchDepartures(context.Background(), "YSSY", 1, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestFetchDeparturesUsesCache(t *testing.T) {
	hits := 0
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(departuresBody))
	}, WithCacheTTL(time.Hour))

	for i := 0; i < 3; i++ {
		records, err := c.FetchDepartures(context.Background(), "YSSY", 1, 2)
		require.NoError(t, err)
		assert.Len(t, records, 2)
	}
	assert.Equal(t, 1, hits, "identical queries within the TTL share one upstream call")

	// A different window is a different cache key.
	_, err := c.FetchDepartures(context.Background(), "YSSY", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, hits)
}

func TestFetchDeparturesZeroTTLDisablesCache(t *testing.T) {
	hits := 0
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(departuresBody))
	}, WithCacheTTL(0))

	for i := 0; i < 2; i++ {
		_, err := c.FetchDepartures(context.Background(), "YSSY", 1, 2)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, hits)
}
