// models/aggregate.go
package models

// RouteCount is the number of analyzed flights to one arrival airport.
type RouteCount struct {
	Airport string `json:"airport"`
	City    string `json:"city"`
	Flights int    `json:"flights"`
}

// RouteEfficiency holds per-route means used by the efficiency table.
type RouteEfficiency struct {
	Airport         string  `json:"airport"`
	City            string  `json:"city"`
	MeanDistanceKM  float64 `json:"mean_distance_km"`
	MeanDurationMin float64 `json:"mean_duration_min"`
	MeanPrice       float64 `json:"mean_price"`
	PricePerKM      float64 `json:"price_per_km"`
}

// HourlyDemand is the departure count for one hour of day.
type HourlyDemand struct {
	Hour    int `json:"hour"`
	Flights int `json:"flights"`
}

// HourlyPrice is the average ticket price for one hour of day.
type HourlyPrice struct {
	Hour     int     `json:"hour"`
	AvgPrice float64 `json:"avg_price"`
}

// DailyDemand is the departure count for one weekday.
type DailyDemand struct {
	Day     string `json:"day"`
	Flights int    `json:"flights"`
}

// Aggregates bundles the chart-feeding summaries computed over the final
// analysis table. The presentation layer consumes these read-only.
type Aggregates struct {
	RouteCounts     []RouteCount      `json:"route_counts"`
	RouteEfficiency []RouteEfficiency `json:"route_efficiency"`
	HourlyDemand    []HourlyDemand    `json:"hourly_demand"`
	HourlyPrices    []HourlyPrice     `json:"hourly_prices"`
	DailyDemand     []DailyDemand     `json:"daily_demand"`
}
