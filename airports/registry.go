// airports/registry.go
package airports

import (
	"math"
	"sort"
	"strings"

	"github.com/skypies/geo"

	"github.com/skyden/airdemand/models"
)

// Registry is the static lookup table of known airports. It is built once
// at startup and read-only thereafter, so it is safe for concurrent use.
type Registry struct {
	byCode map[string]models.AirportRecord
}

// defaultAirports covers the major Australian airports served by the
// dashboard.
var defaultAirports = []models.AirportRecord{
	{Code: "YSSY", Name: "Sydney Kingsford Smith", City: "Sydney", Latitude: -33.9461, Longitude: 151.1772},
	{Code: "YMML", Name: "Melbourne Airport", City: "Melbourne", Latitude: -37.6733, Longitude: 144.8433},
	{Code: "YBBN", Name: "Brisbane Airport", City: "Brisbane", Latitude: -27.3842, Longitude: 153.1175},
	{Code: "YPPH", Name: "Perth Airport", City: "Perth", Latitude: -31.9403, Longitude: 115.9669},
	{Code: "YPAD", Name: "Adelaide Airport", City: "Adelaide", Latitude: -34.9450, Longitude: 138.5306},
	{Code: "YBCG", Name: "Gold Coast Airport", City: "Gold Coast", Latitude: -28.1644, Longitude: 153.5047},
	{Code: "YSCB", Name: "Canberra Airport", City: "Canberra", Latitude: -35.3069, Longitude: 149.1950},
	{Code: "YMHB", Name: "Hobart Airport", City: "Hobart", Latitude: -42.8361, Longitude: 147.5103},
	{Code: "YPDN", Name: "Darwin Airport", City: "Darwin", Latitude: -12.4083, Longitude: 130.8728},
	{Code: "YBCS", Name: "Cairns Airport", City: "Cairns", Latitude: -16.8858, Longitude: 145.7553},
}

// NewRegistry builds the default registry.
func NewRegistry() *Registry {
	byCode := make(map[string]models.AirportRecord, len(defaultAirports))
	for _, a := range defaultAirports {
		byCode[a.Code] = a
	}
	return &Registry{byCode: byCode}
}

// Normalize uppercases and trims an airport code so lookups are tolerant of
// the casing and padding seen in source data.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Lookup resolves a 4-letter ICAO code to its registry entry.
func (r *Registry) Lookup(code string) (models.AirportRecord, bool) {
	a, ok := r.byCode[Normalize(code)]
	return a, ok
}

// Contains reports whether the code is a registry key.
func (r *Registry) Contains(code string) bool {
	_, ok := r.byCode[Normalize(code)]
	return ok
}

// CityName resolves a code to its display city, or "Unknown" when the code
// is not registered.
func (r *Registry) CityName(code string) string {
	if a, ok := r.Lookup(code); ok {
		return a.City
	}
	return "Unknown"
}

// All returns every registry entry in code order.
func (r *Registry) All() []models.AirportRecord {
	out := make([]models.AirportRecord, 0, len(r.byCode))
	for _, a := range r.byCode {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// DistanceKM computes the great-circle distance between two registered
// airports, rounded to 2 decimal places. It returns nil when either code is
// unregistered; callers must treat nil as "unknown", not zero.
func (r *Registry) DistanceKM(depCode, arrCode string) *float64 {
	dep, ok := r.Lookup(depCode)
	if !ok {
		return nil
	}
	arr, ok := r.Lookup(arrCode)
	if !ok {
		return nil
	}

	from := geo.Latlong{Lat: dep.Latitude, Long: dep.Longitude}
	to := geo.Latlong{Lat: arr.Latitude, Long: arr.Longitude}
	km := math.Round(from.DistKM(to)*100) / 100
	return &km
}
