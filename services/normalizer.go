// services/normalizer.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/skyden/airdemand/airports"
	"github.com/skyden/airdemand/models"
)

// ErrSchemaMismatch signals that the raw data is structurally unusable: at
// least one required field is absent from every record in the batch. This
// aborts the run before normalization completes.
var ErrSchemaMismatch = errors.New("required fields missing from flight data")

// Normalizer validates raw departure records and reshapes them into
// canonical FlightRecords with derived time fields.
type Normalizer struct {
	registry *airports.Registry
	logger   *zap.Logger
}

func NewNormalizer(registry *airports.Registry, logger *zap.Logger) *Normalizer {
	return &Normalizer{registry: registry, logger: logger}
}

// Normalize converts a batch of raw records into FlightRecords.
//
// The schema check runs once per batch: a required field that is null in
// every record means the source response is malformed, and the whole run
// fails with ErrSchemaMismatch. Individual records are then dropped when
// any required field is null or when the arrival code is not registered.
// Surviving records keep their original relative order.
func (n *Normalizer) Normalize(raw []models.RawFlightRecord) ([]models.FlightRecord, error) {
	if len(raw) == 0 {
		return []models.FlightRecord{}, nil
	}

	if missing := missingFields(raw); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}

	out := make([]models.FlightRecord, 0, len(raw))
	dropped := 0
	negativeDurations := 0

	for _, r := range raw {
		if r.Callsign == nil || r.EstDepartureAirport == nil || r.EstArrivalAirport == nil ||
			r.FirstSeen == nil || r.LastSeen == nil {
			dropped++
			continue
		}
		if !n.registry.Contains(*r.EstArrivalAirport) {
			dropped++
			continue
		}

		dep := time.Unix(*r.FirstSeen, 0).UTC()
		arr := time.Unix(*r.LastSeen, 0).UTC()
		duration := arr.Sub(dep).Minutes()
		if duration < 0 {
			// Inconsistent source timing is passed through unclamped, but
			// counted so the anomaly stays visible.
			negativeDurations++
		}

		out = append(out, models.FlightRecord{
			Callsign:         *r.Callsign,
			DepartureAirport: airports.Normalize(*r.EstDepartureAirport),
			ArrivalAirport:   airports.Normalize(*r.EstArrivalAirport),
			DepartureTime:    dep,
			ArrivalTime:      arr,
			DurationMin:      duration,
			Hour:             dep.Hour(),
			DayOfWeek:        dep.Weekday().String(),
			Date:             dep.Format("2006-01-02"),
		})
	}

	if negativeDurations > 0 {
		n.logger.Warn("records with last-seen before first-seen",
			zap.Int("count", negativeDurations))
	}
	n.logger.Info("normalized flight records",
		zap.Int("input", len(raw)),
		zap.Int("kept", len(out)),
		zap.Int("dropped", dropped))

	return out, nil
}

// missingFields reports which required fields are null across the entire
// batch.
func missingFields(raw []models.RawFlightRecord) []string {
	var haveCallsign, haveDep, haveArr, haveFirst, haveLast bool
	for _, r := range raw {
		haveCallsign = haveCallsign || r.Callsign != nil
		haveDep = haveDep || r.EstDepartureAirport != nil
		haveArr = haveArr || r.EstArrivalAirport != nil
		haveFirst = haveFirst || r.FirstSeen != nil
		haveLast = haveLast || r.LastSeen != nil
	}

	var missing []string
	if !haveCallsign {
		missing = append(missing, "callsign")
	}
	if !haveDep {
		missing = append(missing, "estDepartureAirport")
	}
	if !haveArr {
		missing = append(missing, "estArrivalAirport")
	}
	if !haveFirst {
		missing = append(missing, "firstSeen")
	}
	if !haveLast {
		missing = append(missing, "lastSeen")
	}
	return missing
}
