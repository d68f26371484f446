// services/insight_service.go
package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/skyden/airdemand/airports"
	"github.com/skyden/airdemand/models"
)

// InsightService derives ranked textual findings from a final analysis
// table. All orderings are deterministic: destination ties break on airport
// code, hour ties on the lowest hour number.
type InsightService struct {
	registry *airports.Registry
}

func NewInsightService(registry *airports.Registry) *InsightService {
	return &InsightService{registry: registry}
}

// Generate produces the ordered insight sequence for one origin airport's
// table. An empty table yields exactly one "no data" insight; no aggregate
// is attempted.
func (s *InsightService) Generate(flights []models.EnrichedFlightRecord) []models.Insight {
	if len(flights) == 0 {
		return []models.Insight{{
			Category: models.InsightNoData,
			Summary:  "No data available to generate insights",
		}}
	}

	insights := []models.Insight{
		s.topRoutes(flights),
		s.pricing(flights),
		s.peakDemand(flights),
	}
	insights = append(insights, s.routeExtremes(flights)...)
	if best, ok := s.bestValue(flights); ok {
		insights = append(insights, best)
	}
	return insights
}

func (s *InsightService) topRoutes(flights []models.EnrichedFlightRecord) models.Insight {
	counts := map[string]int{}
	for _, f := range flights {
		counts[f.ArrivalAirport]++
	}

	codes := make([]string, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		if counts[codes[i]] != counts[codes[j]] {
			return counts[codes[i]] > counts[codes[j]]
		}
		return codes[i] < codes[j]
	})
	if len(codes) > 3 {
		codes = codes[:3]
	}

	descs := make([]string, 0, len(codes))
	for _, code := range codes {
		descs = append(descs, fmt.Sprintf("%s (%s)", s.registry.CityName(code), code))
	}
	return models.Insight{
		Category: models.InsightTopRoutes,
		Summary:  "Top routes: " + strings.Join(descs, ", "),
	}
}

func (s *InsightService) pricing(flights []models.EnrichedFlightRecord) models.Insight {
	var sum float64
	for _, f := range flights {
		sum += f.Price
	}
	avg := sum / float64(len(flights))

	comparison := "below"
	if avg > ReferenceAvgPrice {
		comparison = "above"
	}
	return models.Insight{
		Category: models.InsightPricing,
		Summary:  fmt.Sprintf("Average ticket price $%.2f AUD (%s industry average)", avg, comparison),
	}
}

func (s *InsightService) peakDemand(flights []models.EnrichedFlightRecord) models.Insight {
	var perHour [24]int
	for _, f := range flights {
		if f.Hour >= 0 && f.Hour < 24 {
			perHour[f.Hour]++
		}
	}

	// Scanning 0..23 makes the lowest hour win ties.
	peakHour, peakCount := 0, 0
	for h, c := range perHour {
		if c > peakCount {
			peakHour, peakCount = h, c
		}
	}
	return models.Insight{
		Category: models.InsightPeakDemand,
		Summary:  fmt.Sprintf("Highest demand at %d:00 (%d flights)", peakHour, peakCount),
	}
}

// routeExtremes reports the longest and shortest routes by distance. Both
// require at least one record with a resolved distance.
func (s *InsightService) routeExtremes(flights []models.EnrichedFlightRecord) []models.Insight {
	var longest, shortest *models.EnrichedFlightRecord
	for i := range flights {
		f := &flights[i]
		if f.DistanceKM == nil {
			continue
		}
		if longest == nil || *f.DistanceKM > *longest.DistanceKM {
			longest = f
		}
		if shortest == nil || *f.DistanceKM < *shortest.DistanceKM {
			shortest = f
		}
	}
	if longest == nil {
		return nil
	}

	return []models.Insight{
		{
			Category: models.InsightLongestRoute,
			Summary: fmt.Sprintf("Longest route: %s (%.2f km)",
				s.registry.CityName(longest.ArrivalAirport), *longest.DistanceKM),
		},
		{
			Category: models.InsightShortestRoute,
			Summary: fmt.Sprintf("Shortest route: %s (%.2f km)",
				s.registry.CityName(shortest.ArrivalAirport), *shortest.DistanceKM),
		},
	}
}

// bestValue finds the record with the lowest price per kilometer. Records
// with nil or zero distance are excluded from the ranking.
func (s *InsightService) bestValue(flights []models.EnrichedFlightRecord) (models.Insight, bool) {
	var best *models.EnrichedFlightRecord
	for i := range flights {
		f := &flights[i]
		if f.PricePerKM == nil {
			continue
		}
		if best == nil || *f.PricePerKM < *best.PricePerKM {
			best = f
		}
	}
	if best == nil {
		return models.Insight{}, false
	}

	return models.Insight{
		Category: models.InsightBestValue,
		Summary: fmt.Sprintf("Best value: %s at $%.2f (%.2f km)",
			s.registry.CityName(best.ArrivalAirport), best.Price, *best.DistanceKM),
	}, true
}
