// models/insight.go
package models

// Insight categories, in the order the summarizer emits them.
const (
	InsightTopRoutes     = "top_routes"
	InsightPricing       = "pricing"
	InsightPeakDemand    = "peak_demand"
	InsightLongestRoute  = "longest_route"
	InsightShortestRoute = "shortest_route"
	InsightBestValue     = "best_value"
	InsightNoData        = "no_data"
)

// Insight is a labeled textual finding derived from the analysis table.
// Insights are recomputed on every run and never persisted.
type Insight struct {
	Category string `json:"category"`
	Summary  string `json:"summary"`
}
