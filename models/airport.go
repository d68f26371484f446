// models/airport.go
package models

// AirportRecord is one entry of the static airport registry.
// Records are loaded once at startup and never mutated.
type AirportRecord struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
