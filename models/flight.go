// models/flight.go
package models

import "time"

// RawFlightRecord mirrors one element of the OpenSky departures response.
// All fields are pointers so a null or absent value in the source JSON is
// distinguishable from a zero value; the normalizer relies on this to apply
// its schema check and per-record drops.
type RawFlightRecord struct {
	Callsign            *string `json:"callsign"`
	EstDepartureAirport *string `json:"estDepartureAirport"`
	EstArrivalAirport   *string `json:"estArrivalAirport"`
	FirstSeen           *int64  `json:"firstSeen"`
	LastSeen            *int64  `json:"lastSeen"`
}

// FlightRecord is the canonical per-flight record produced by the
// normalizer. All required fields are non-null; derived time fields are
// computed from the first-seen timestamp.
type FlightRecord struct {
	Callsign         string    `json:"callsign" csv:"callsign"`
	DepartureAirport string    `json:"departure_airport" csv:"departure_airport"`
	ArrivalAirport   string    `json:"arrival_airport" csv:"arrival_airport"`
	DepartureTime    time.Time `json:"departure_time" csv:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time" csv:"arrival_time"`

	// DurationMin may be negative when the source reports last-seen before
	// first-seen; such records are passed through unclamped.
	DurationMin float64 `json:"duration_min" csv:"duration_min"`
	Hour        int     `json:"hour" csv:"hour"`
	DayOfWeek   string  `json:"day_of_week" csv:"day_of_week"`
	Date        string  `json:"date" csv:"date"`
}

// EnrichedFlightRecord is a FlightRecord with the derived distance and
// pricing attributes attached by the enrichment pipeline. DistanceKM is nil
// when the departure airport is not in the registry; PricePerKM is set only
// when the distance is positive.
type EnrichedFlightRecord struct {
	FlightRecord

	DistanceKM *float64 `json:"distance_km" csv:"distance_km"`
	Price      float64  `json:"price" csv:"price"`
	PricePerKM *float64 `json:"price_per_km" csv:"price_per_km"`
}
