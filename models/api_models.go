// models/api_models.go
package models

import "time"

// AnalyzeRequest is the expected JSON body for the /api/analyze endpoint.
// Zero-valued price bounds and min-flights fall back to configured defaults.
type AnalyzeRequest struct {
	Airport    string  `json:"airport"`     // e.g. "YSSY", must be a registry key
	StartTime  int64   `json:"start_time"`  // epoch seconds, inclusive
	EndTime    int64   `json:"end_time"`    // epoch seconds, exclusive
	PriceMin   float64 `json:"price_min"`
	PriceMax   float64 `json:"price_max"`
	MinFlights int     `json:"min_flights"` // presentation-side route threshold
}

// AnalysisReport is the full result of one analysis run. It is rebuilt from
// scratch on every invocation and never mutated afterwards.
type AnalysisReport struct {
	RunID        string                 `json:"run_id"`
	Airport      string                 `json:"airport"`
	City         string                 `json:"city"`
	StartTime    int64                  `json:"start_time"`
	EndTime      int64                  `json:"end_time"`
	GeneratedAt  time.Time              `json:"generated_at"`
	TotalFlights int                    `json:"total_flights"`
	Flights      []EnrichedFlightRecord `json:"flights"`
	Aggregates   Aggregates             `json:"aggregates"`
	Insights     []Insight              `json:"insights"`
}
