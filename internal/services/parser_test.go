package services

import (
	"testing"
	"time"
)

const csvHeader = "shipment_id,source_location,destination_location,departed_at,expected_arrival,arrived_at,status,sku,quantity"

func TestParseRecords_ValidData(t *testing.T) {
	raw := csvHeader + "\n" +
		"SHP-0000001,IN-DEL,US-LAX,2025-06-01 08:00:00,2025-06-10 08:00:00,2025-06-09 12:00:00,ARRIVED,SKU-0001,120\n" +
		"SHP-0000002,TH-BKK,SG-SIN,2025-06-02 09:30:00,2025-06-08 09:30:00,,IN_TRANSIT,SKU-0002,45"

	records := ParseRecords(raw)

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.ID != "SHP-0000001" {
		t.Errorf("expected ID SHP-0000001, got %q", first.ID)
	}
	if first.Source != "IN-DEL" || first.Destination != "US-LAX" {
		t.Errorf("unexpected route fields: %q -> %q", first.Source, first.Destination)
	}
	if first.Status != "arrived" {
		t.Errorf("status should be normalized to lowercase, got %q", first.Status)
	}
	if first.Quantity != 120 {
		t.Errorf("expected quantity 120, got %d", first.Quantity)
	}
	if first.ExpectedArrival.IsZero() || first.ArrivedAt.IsZero() {
		t.Error("timestamps should have parsed")
	}

	second := records[1]
	if !second.ArrivedAt.IsZero() {
		t.Error("empty arrived_at should parse to the zero time")
	}
	if second.Status != "in_transit" {
		t.Errorf("expected status in_transit, got %q", second.Status)
	}
}

func TestParseRecords_MalformedRowDropped(t *testing.T) {
	// One short row interleaved among five well-formed rows: scenario C.
	raw := csvHeader + "\n" +
		"SHP-1,A,B,2025-06-01,2025-06-05,2025-06-05,ARRIVED,SKU-1,10\n" +
		"SHP-2,A,B,2025-06-01,2025-06-05,2025-06-06,ARRIVED,SKU-1,20\n" +
		"SHP-3,A,B,only,four,fields\n" +
		"SHP-4,A,C,2025-06-01,2025-06-07,,IN_TRANSIT,SKU-2,30\n" +
		"SHP-5,B,C,2025-06-01,2025-06-07,2025-06-07,ARRIVED,SKU-2,40\n" +
		"SHP-6,B,C,2025-06-01,2025-06-07,,IN_TRANSIT,SKU-3,50"

	records := ParseRecords(raw)

	if len(records) != 5 {
		t.Errorf("expected exactly 5 records after dropping the malformed row, got %d", len(records))
	}
}

func TestParseRecords_EmptyInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty string", raw: ""},
		{name: "header only", raw: csvHeader},
		{name: "header and blank lines", raw: csvHeader + "\n\n\n"},
		{name: "header narrower than contract", raw: "a,b,c\n1,2,3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := ParseRecords(tt.raw)
			if records == nil {
				t.Error("ParseRecords() should return an empty slice, not nil")
			}
			if len(records) != 0 {
				t.Errorf("expected 0 records, got %d", len(records))
			}
		})
	}
}

func TestParseRecords_UnparsableQuantityDefaultsToZero(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		want     int
	}{
		{name: "not a number", quantity: "lots", want: 0},
		{name: "empty", quantity: "", want: 0},
		{name: "negative clamps to zero", quantity: "-5", want: 0},
		{name: "valid", quantity: "42", want: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := csvHeader + "\n" +
				"SHP-1,A,B,2025-06-01,2025-06-05,2025-06-05,ARRIVED,SKU-1," + tt.quantity

			records := ParseRecords(raw)
			if len(records) != 1 {
				t.Fatalf("expected 1 record, got %d", len(records))
			}
			if records[0].Quantity != tt.want {
				t.Errorf("expected quantity %d, got %d", tt.want, records[0].Quantity)
			}
		})
	}
}

func TestParseRecords_CRLFLineEndings(t *testing.T) {
	raw := csvHeader + "\r\n" +
		"SHP-1,A,B,2025-06-01,2025-06-05,2025-06-05,ARRIVED,SKU-1,10\r\n"

	records := ParseRecords(raw)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].SKU != "SKU-1" {
		t.Errorf("expected SKU-1, got %q", records[0].SKU)
	}
}

func TestParseTimestamp_Layouts(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{
			name:  "date only",
			value: "2025-06-01",
			want:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "date and time",
			value: "2025-06-01 08:30:00",
			want:  time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC),
		},
		{
			name:  "microseconds",
			value: "2025-06-01 08:30:00.123456",
			want:  time.Date(2025, 6, 1, 8, 30, 0, 123456000, time.UTC),
		},
		{
			name:  "rfc3339",
			value: "2025-06-01T08:30:00Z",
			want:  time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC),
		},
		{
			name:  "garbage parses to zero time",
			value: "not-a-date",
			want:  time.Time{},
		},
		{
			name:  "empty parses to zero time",
			value: "",
			want:  time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTimestamp(tt.value)
			if !got.Equal(tt.want) {
				t.Errorf("parseTimestamp(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
