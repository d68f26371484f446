// handlers/analysis_handler_test.go
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skyden/airdemand/airports"
	"github.com/skyden/airdemand/config"
	"github.com/skyden/airdemand/models"
	"github.com/skyden/airdemand/opensky"
	"github.com/skyden/airdemand/services"
)

type stubSource struct {
	records []models.RawFlightRecord
	err     error
}

func (s *stubSource) FetchDepartures(ctx context.Context, airport string, begin, end int64) ([]models.RawFlightRecord, error) {
	return s.records, s.err
}

func strPtr(s string) *string { return &s }
func i64Ptr(n int64) *int64   { return &n }

func testRecords() []models.RawFlightRecord {
	return []models.RawFlightRecord{
		{
			Callsign:            strPtr("QF1"),
			EstDepartureAirport: strPtr("YSSY"),
			EstArrivalAirport:   strPtr("YMML"),
			FirstSeen:           i64Ptr(1705307400),
			LastSeen:            i64Ptr(1705311000),
		},
	}
}

func newTestMux(src *stubSource) *http.ServeMux {
	logger := zap.NewNop()
	registry := airports.NewRegistry()
	cfg := config.Config{
		Analysis: config.AnalysisConfig{
			DefaultPriceMin:   0,
			DefaultPriceMax:   100000,
			DefaultMinFlights: 1,
		},
	}
	svc := services.NewAnalysisService(src, registry, services.NewPricingModel(rand.NewSource(1)), logger)

	mux := http.NewServeMux()
	NewAnalysisHandler(svc, registry, cfg, logger).RegisterRoutes(mux)
	return mux
}

func postAnalyze(t *testing.T, mux *http.ServeMux, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeHappyPath(t *testing.T) {
	mux := newTestMux(&stubSource{records: testRecords()})

	rec := postAnalyze(t, mux, `{"airport":"YSSY","start_time":1705300000,"end_time":1705390000}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var report models.AnalysisReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "YSSY", report.Airport)
	assert.Equal(t, "Sydney", report.City)
	assert.Equal(t, 1, report.TotalFlights)
	assert.NotEmpty(t, report.RunID)
	assert.NotEmpty(t, report.Insights)
}

func TestAnalyzeMethodNotAllowed(t *testing.T) {
	mux := newTestMux(&stubSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/analyze", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAnalyzeValidation(t *testing.T) {
	mux := newTestMux(&stubSource{records: testRecords()})

	tests := []struct {
		name string
		body string
	}{
		{"missing airport", `{"start_time":1,"end_time":2}`},
		{"unknown airport", `{"airport":"ZZZZ","start_time":1,"end_time":2}`},
		{"window reversed", `{"airport":"YSSY","start_time":2,"end_time":1}`},
		{"negative price min", `{"airport":"YSSY","start_time":1,"end_time":2,"price_min":-5,"price_max":100}`},
		{"price min above max", `{"airport":"YSSY","start_time":1,"end_time":2,"price_min":300,"price_max":100}`},
		{"negative min flights", `{"airport":"YSSY","start_time":1,"end_time":2,"min_flights":-1}`},
		{"malformed body", `{"airport":`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := postAnalyze(t, mux, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAnalyzeSourceUnavailable(t *testing.T) {
	mux := newTestMux(&stubSource{
		err: fmt.Errorf("%w: connection refused", opensky.ErrSourceUnavailable),
	})

	rec := postAnalyze(t, mux, `{"airport":"YSSY","start_time":1,"end_time":2}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "unavailable")
}

func TestExportReturnsCSVAttachment(t *testing.T) {
	mux := newTestMux(&stubSource{records: testRecords()})

	req := httptest.NewRequest(http.MethodGet,
		"/api/export?airport=yssy&start_time=1705300000&end_time=1705390000", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "flight_demand_YSSY_")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "callsign")
	assert.Contains(t, lines[1], "QF1")
}

func TestExportMissingParams(t *testing.T) {
	mux := newTestMux(&stubSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/export?airport=YSSY", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAirportsListing(t *testing.T) {
	mux := newTestMux(&stubSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/airports", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.AirportRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 10)
	assert.Equal(t, "YBBN", list[0].Code)
}
