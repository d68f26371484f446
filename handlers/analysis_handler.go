// handlers/analysis_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/skyden/airdemand/airports"
	"github.com/skyden/airdemand/config"
	"github.com/skyden/airdemand/export"
	"github.com/skyden/airdemand/models"
	"github.com/skyden/airdemand/opensky"
	"github.com/skyden/airdemand/services"
)

// AnalysisHandler serves the analysis, export, and airport-listing
// endpoints.
type AnalysisHandler struct {
	service  *services.AnalysisService
	registry *airports.Registry
	cfg      config.Config
	logger   *zap.Logger
}

func NewAnalysisHandler(service *services.AnalysisService, registry *airports.Registry, cfg config.Config, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{service: service, registry: registry, cfg: cfg, logger: logger}
}

func (h *AnalysisHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/analyze", h.Analyze)
	mux.HandleFunc("/api/export", h.Export)
	mux.HandleFunc("/api/airports", h.Airports)
}

// Analyze handles POST /api/analyze. It validates the request, runs one
// synchronous analysis, and returns the full report.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(h.logger, w, http.StatusMethodNotAllowed, "only POST method is allowed")
		return
	}

	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	params, err := h.buildParams(req)
	if err != nil {
		respondWithError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.service.Run(r.Context(), params)
	if err != nil {
		h.respondRunError(w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, report)
}

// Export handles GET /api/export. It runs the same analysis as /api/analyze
// (parameters come from the query string) and streams the final table as a
// CSV attachment.
func (h *AnalysisHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(h.logger, w, http.StatusMethodNotAllowed, "only GET method is allowed")
		return
	}

	req, err := requestFromQuery(r)
	if err != nil {
		respondWithError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}
	params, err := h.buildParams(req)
	if err != nil {
		respondWithError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.service.Run(r.Context(), params)
	if err != nil {
		h.respondRunError(w, err)
		return
	}

	data, err := export.Marshal(report.Flights)
	if err != nil {
		respondWithError(h.logger, w, http.StatusInternalServerError, "failed to export analysis table")
		return
	}

	filename := export.Filename(report.Airport, time.Now().UTC())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Airports handles GET /api/airports and lists the registry.
func (h *AnalysisHandler) Airports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(h.logger, w, http.StatusMethodNotAllowed, "only GET method is allowed")
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, h.registry.All())
}

// buildParams applies configured defaults and validates the configuration
// surface: registered airport, ordered time window, sane price range, and a
// positive min-flights threshold.
func (h *AnalysisHandler) buildParams(req models.AnalyzeRequest) (services.AnalysisParams, error) {
	if req.Airport == "" {
		return services.AnalysisParams{}, errors.New("missing 'airport' in request")
	}
	airport := airports.Normalize(req.Airport)
	if !h.registry.Contains(airport) {
		return services.AnalysisParams{}, fmt.Errorf("unknown airport code %q", req.Airport)
	}
	if req.StartTime <= 0 || req.EndTime <= 0 {
		return services.AnalysisParams{}, errors.New("'start_time' and 'end_time' must be positive epoch seconds")
	}
	if req.StartTime >= req.EndTime {
		return services.AnalysisParams{}, errors.New("'start_time' must be before 'end_time'")
	}

	priceMin, priceMax := req.PriceMin, req.PriceMax
	if priceMin == 0 && priceMax == 0 {
		priceMin = h.cfg.Analysis.DefaultPriceMin
		priceMax = h.cfg.Analysis.DefaultPriceMax
	}
	if priceMin < 0 || priceMin > priceMax {
		return services.AnalysisParams{}, fmt.Errorf("invalid price range [%v, %v]", priceMin, priceMax)
	}

	minFlights := req.MinFlights
	if minFlights == 0 {
		minFlights = h.cfg.Analysis.DefaultMinFlights
	}
	if minFlights < 1 {
		return services.AnalysisParams{}, fmt.Errorf("'min_flights' must be positive, got %d", req.MinFlights)
	}

	return services.AnalysisParams{
		Airport:    airport,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		PriceMin:   priceMin,
		PriceMax:   priceMax,
		MinFlights: minFlights,
	}, nil
}

func (h *AnalysisHandler) respondRunError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, opensky.ErrSourceUnavailable):
		respondWithError(h.logger, w, http.StatusBadGateway,
			"flight data source unavailable, try again later")
	case errors.Is(err, services.ErrSchemaMismatch):
		respondWithError(h.logger, w, http.StatusBadGateway,
			"flight data source returned records with required fields missing")
	default:
		h.logger.Error("analysis run failed", zap.Error(err))
		respondWithError(h.logger, w, http.StatusInternalServerError, "analysis run failed")
	}
}

// requestFromQuery maps /api/export query parameters onto the same request
// shape the analyze endpoint accepts as JSON.
func requestFromQuery(r *http.Request) (models.AnalyzeRequest, error) {
	q := r.URL.Query()
	req := models.AnalyzeRequest{Airport: q.Get("airport")}

	var err error
	if req.StartTime, err = parseInt64Param(q.Get("start_time"), "start_time"); err != nil {
		return models.AnalyzeRequest{}, err
	}
	if req.EndTime, err = parseInt64Param(q.Get("end_time"), "end_time"); err != nil {
		return models.AnalyzeRequest{}, err
	}
	if v := q.Get("price_min"); v != "" {
		if req.PriceMin, err = strconv.ParseFloat(v, 64); err != nil {
			return models.AnalyzeRequest{}, fmt.Errorf("invalid 'price_min': %q", v)
		}
	}
	if v := q.Get("price_max"); v != "" {
		if req.PriceMax, err = strconv.ParseFloat(v, 64); err != nil {
			return models.AnalyzeRequest{}, fmt.Errorf("invalid 'price_max': %q", v)
		}
	}
	if v := q.Get("min_flights"); v != "" {
		if req.MinFlights, err = strconv.Atoi(v); err != nil {
			return models.AnalyzeRequest{}, fmt.Errorf("invalid 'min_flights': %q", v)
		}
	}
	return req, nil
}

func parseInt64Param(v, name string) (int64, error) {
	if v == "" {
		return 0, fmt.Errorf("missing '%s' query parameter", name)
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid '%s': %q", name, v)
	}
	return n, nil
}
