// services/aggregate.go
package services

import (
	"sort"

	"github.com/skyden/airdemand/airports"
	"github.com/skyden/airdemand/models"
)

var weekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

const routeEfficiencyLimit = 5

// BuildAggregates computes the chart-feeding summaries over a final
// analysis table. minFlights only gates the route-count listing; the table
// itself is never filtered by it. An empty table yields empty aggregates.
func BuildAggregates(flights []models.EnrichedFlightRecord, registry *airports.Registry, minFlights int) models.Aggregates {
	return models.Aggregates{
		RouteCounts:     routeCounts(flights, registry, minFlights),
		RouteEfficiency: routeEfficiency(flights, registry),
		HourlyDemand:    hourlyDemand(flights),
		HourlyPrices:    hourlyPrices(flights),
		DailyDemand:     dailyDemand(flights),
	}
}

func routeCounts(flights []models.EnrichedFlightRecord, registry *airports.Registry, minFlights int) []models.RouteCount {
	counts := map[string]int{}
	for _, f := range flights {
		counts[f.ArrivalAirport]++
	}

	out := make([]models.RouteCount, 0, len(counts))
	for code, n := range counts {
		if n < minFlights {
			continue
		}
		out = append(out, models.RouteCount{
			Airport: code,
			City:    registry.CityName(code),
			Flights: n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Flights != out[j].Flights {
			return out[i].Flights > out[j].Flights
		}
		return out[i].Airport < out[j].Airport
	})
	return out
}

// routeEfficiency ranks routes by mean price per kilometer, cheapest first.
// Distance means ignore records whose distance could not be resolved;
// routes with no resolved distance at all are left out.
func routeEfficiency(flights []models.EnrichedFlightRecord, registry *airports.Registry) []models.RouteEfficiency {
	type acc struct {
		distSum  float64
		distN    int
		durSum   float64
		priceSum float64
		n        int
	}
	byRoute := map[string]*acc{}
	for _, f := range flights {
		a, ok := byRoute[f.ArrivalAirport]
		if !ok {
			a = &acc{}
			byRoute[f.ArrivalAirport] = a
		}
		a.durSum += f.DurationMin
		a.priceSum += f.Price
		a.n++
		if f.DistanceKM != nil {
			a.distSum += *f.DistanceKM
			a.distN++
		}
	}

	out := make([]models.RouteEfficiency, 0, len(byRoute))
	for code, a := range byRoute {
		if a.distN == 0 {
			continue
		}
		meanDist := a.distSum / float64(a.distN)
		if meanDist <= 0 {
			continue
		}
		meanPrice := a.priceSum / float64(a.n)
		out = append(out, models.RouteEfficiency{
			Airport:         code,
			City:            registry.CityName(code),
			MeanDistanceKM:  meanDist,
			MeanDurationMin: a.durSum / float64(a.n),
			MeanPrice:       meanPrice,
			PricePerKM:      meanPrice / meanDist,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PricePerKM != out[j].PricePerKM {
			return out[i].PricePerKM < out[j].PricePerKM
		}
		return out[i].Airport < out[j].Airport
	})
	if len(out) > routeEfficiencyLimit {
		out = out[:routeEfficiencyLimit]
	}
	return out
}

func hourlyDemand(flights []models.EnrichedFlightRecord) []models.HourlyDemand {
	var perHour [24]int
	for _, f := range flights {
		if f.Hour >= 0 && f.Hour < 24 {
			perHour[f.Hour]++
		}
	}
	out := []models.HourlyDemand{}
	for h, n := range perHour {
		if n > 0 {
			out = append(out, models.HourlyDemand{Hour: h, Flights: n})
		}
	}
	return out
}

func hourlyPrices(flights []models.EnrichedFlightRecord) []models.HourlyPrice {
	var sums [24]float64
	var counts [24]int
	for _, f := range flights {
		if f.Hour >= 0 && f.Hour < 24 {
			sums[f.Hour] += f.Price
			counts[f.Hour]++
		}
	}
	out := []models.HourlyPrice{}
	for h, n := range counts {
		if n > 0 {
			out = append(out, models.HourlyPrice{Hour: h, AvgPrice: sums[h] / float64(n)})
		}
	}
	return out
}

func dailyDemand(flights []models.EnrichedFlightRecord) []models.DailyDemand {
	counts := map[string]int{}
	for _, f := range flights {
		counts[f.DayOfWeek]++
	}
	out := []models.DailyDemand{}
	for _, day := range weekdayOrder {
		if n, ok := counts[day]; ok {
			out = append(out, models.DailyDemand{Day: day, Flights: n})
		}
	}
	return out
}
