// export/csv.go
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jszwec/csvutil"

	"github.com/skyden/airdemand/models"
)

// Marshal renders the analysis table as CSV: a header row of field names
// followed by one row per record. Nullable fields (distance, price-per-km)
// serialize as empty cells.
func Marshal(records []models.EnrichedFlightRecord) ([]byte, error) {
	data, err := csvutil.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshalling analysis table to CSV: %w", err)
	}
	return data, nil
}

// Parse reads a CSV export back into records. Together with Marshal it
// round-trips the table.
func Parse(r io.Reader) ([]models.EnrichedFlightRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading CSV data: %w", err)
	}

	var records []models.EnrichedFlightRecord
	if err := csvutil.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding CSV data: %w", err)
	}
	return records, nil
}

// Filename names a download after its airport and generation time,
// e.g. "flight_demand_YSSY_20260115_0930.csv".
func Filename(airport string, t time.Time) string {
	return fmt.Sprintf("flight_demand_%s_%s.csv", airport, t.Format("20060102_1504"))
}
