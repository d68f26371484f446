// services/analysis_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skyden/airdemand/airports"
	"github.com/skyden/airdemand/models"
)

// FlightSource fetches raw departure records for an airport and time
// window. Implemented by opensky.Client; faked in tests.
type FlightSource interface {
	FetchDepartures(ctx context.Context, airport string, begin, end int64) ([]models.RawFlightRecord, error)
}

// AnalysisParams configures one analysis run. Validation happens at the
// HTTP boundary; the service assumes a registered airport, an ordered time
// window, and 0 <= PriceMin <= PriceMax.
type AnalysisParams struct {
	Airport    string
	StartTime  int64
	EndTime    int64
	PriceMin   float64
	PriceMax   float64
	MinFlights int
}

// AnalysisService orchestrates the enrichment pipeline: fetch, normalize,
// enrich with distance and price, filter by price range, then summarize.
// Each run builds a fresh table; nothing is shared across runs except the
// gateway's response cache.
type AnalysisService struct {
	source     FlightSource
	registry   *airports.Registry
	normalizer *Normalizer
	pricing    *PricingModel
	insights   *InsightService
	logger     *zap.Logger
}

func NewAnalysisService(source FlightSource, registry *airports.Registry, pricing *PricingModel, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		source:     source,
		registry:   registry,
		normalizer: NewNormalizer(registry, logger),
		pricing:    pricing,
		insights:   NewInsightService(registry),
		logger:     logger,
	}
}

// Run executes one synchronous analysis. Gateway and schema failures abort
// the run; an empty result is not an error and yields an empty table with a
// "no data" insight.
func (s *AnalysisService) Run(ctx context.Context, p AnalysisParams) (*models.AnalysisReport, error) {
	raw, err := s.source.FetchDepartures(ctx, p.Airport, p.StartTime, p.EndTime)
	if err != nil {
		return nil, fmt.Errorf("fetching departures for %s: %w", p.Airport, err)
	}

	flights, err := s.normalizer.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("normalizing departures for %s: %w", p.Airport, err)
	}

	enriched := s.enrich(flights, p.PriceMin, p.PriceMax)

	report := &models.AnalysisReport{
		RunID:        uuid.NewString(),
		Airport:      p.Airport,
		City:         s.registry.CityName(p.Airport),
		StartTime:    p.StartTime,
		EndTime:      p.EndTime,
		GeneratedAt:  time.Now().UTC(),
		TotalFlights: len(enriched),
		Flights:      enriched,
		Aggregates:   BuildAggregates(enriched, s.registry, p.MinFlights),
		Insights:     s.insights.Generate(enriched),
	}

	s.logger.Info("analysis run complete",
		zap.String("run_id", report.RunID),
		zap.String("airport", p.Airport),
		zap.Int("flights", report.TotalFlights))
	return report, nil
}

// enrich attaches distance, price, and price-per-km to each record, then
// applies the inclusive price-range filter. A departure airport outside the
// registry degrades to a nil distance and a fallback random price rather
// than failing the record.
func (s *AnalysisService) enrich(flights []models.FlightRecord, priceMin, priceMax float64) []models.EnrichedFlightRecord {
	out := make([]models.EnrichedFlightRecord, 0, len(flights))
	for _, f := range flights {
		distance := s.registry.DistanceKM(f.DepartureAirport, f.ArrivalAirport)
		price := s.pricing.FinalPrice(distance, f.Hour)
		if price < priceMin || price > priceMax {
			continue
		}

		var pricePerKM *float64
		if distance != nil && *distance > 0 {
			ppk := price / *distance
			pricePerKM = &ppk
		}

		out = append(out, models.EnrichedFlightRecord{
			FlightRecord: f,
			DistanceKM:   distance,
			Price:        price,
			PricePerKM:   pricePerKM,
		})
	}
	return out
}
