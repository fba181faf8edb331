package services

import (
	"strconv"
	"strings"
	"time"

	"shipment-dashboard/internal/models"
)

const (
	fieldDelimiter   = ","
	recordFieldCount = 9
)

// Timestamp layouts the data producer is known to emit. Tried in order;
// a value matching none of them parses to the zero time.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseRecords converts a raw delimited payload into shipment records. The
// first line is a header and is discarded without validation; its field count
// becomes the expected width for every data line. Lines with a different
// field count are dropped silently. Parsing never fails — malformed input
// degrades to fewer records, and empty input yields an empty slice.
func ParseRecords(raw string) []models.ShipmentRecord {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	if len(lines) == 0 {
		return []models.ShipmentRecord{}
	}

	header := strings.Split(lines[0], fieldDelimiter)
	fieldCount := len(header)
	if fieldCount < recordFieldCount {
		// Header narrower than the field-order contract: no data line can
		// populate a record, so the whole payload degrades to zero records.
		return []models.ShipmentRecord{}
	}

	records := make([]models.ShipmentRecord, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, fieldDelimiter)
		if len(fields) != fieldCount {
			continue
		}
		records = append(records, parseRecord(fields))
	}
	return records
}

// parseRecord builds a record from a well-sized field slice. Field order is a
// contract with the data producer: shipment_id, source_location,
// destination_location, departed_at, expected_arrival, arrived_at, status,
// sku, quantity. Unparsable quantities default to zero rather than failing
// the row; unparsable timestamps become the zero time.
func parseRecord(fields []string) models.ShipmentRecord {
	quantity, err := strconv.Atoi(strings.TrimSpace(fields[8]))
	if err != nil || quantity < 0 {
		quantity = 0
	}

	return models.ShipmentRecord{
		ID:              strings.TrimSpace(fields[0]),
		Source:          strings.TrimSpace(fields[1]),
		Destination:     strings.TrimSpace(fields[2]),
		DepartedAt:      parseTimestamp(fields[3]),
		ExpectedArrival: parseTimestamp(fields[4]),
		ArrivedAt:       parseTimestamp(fields[5]),
		Status:          strings.ToLower(strings.TrimSpace(fields[6])),
		SKU:             strings.TrimSpace(fields[7]),
		Quantity:        quantity,
	}
}

func parseTimestamp(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}
