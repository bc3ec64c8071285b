package mapper

import (
	"testing"
	"time"
)

func TestParseDateLayouts(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2024-03-17 09:30:00", time.Date(2024, 3, 17, 9, 30, 0, 0, time.Local)},
		{"2024-03-17", time.Date(2024, 3, 17, 0, 0, 0, 0, time.Local)},
		{"1/2/2006", time.Date(2006, 1, 2, 0, 0, 0, 0, time.Local)},
		{"01/02/2006 15:04:05", time.Date(2006, 1, 2, 15, 4, 5, 0, time.Local)},
	}

	for _, tt := range tests {
		got, ok := ParseDate(tt.raw)
		if !ok {
			t.Errorf("ParseDate(%q) did not parse", tt.raw)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestParseDateSerial(t *testing.T) {
	// Serial 45292 is 2024-01-01 in the 1900 date system; the fraction
	// carries the time of day.
	got, ok := ParseDate("45292.75")
	if !ok {
		t.Fatal("serial date did not parse")
	}
	want := time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate(45292.75) = %v, want %v", got, want)
	}
}

func TestParseDateRejects(t *testing.T) {
	for _, raw := range []string{"", "   ", "not a date", "0", "-3"} {
		if _, ok := ParseDate(raw); ok {
			t.Errorf("ParseDate(%q) parsed, want rejection", raw)
		}
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"3.5", 3.5},
		{"$4.25", 4.25},
		{"$1,234.50", 1234.5},
		{"  2.00  ", 2},
		{"", 0},
		{"abc", 0},
	}

	for _, tt := range tests {
		if got := ParsePrice(tt.raw); got != tt.want {
			t.Errorf("ParsePrice(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"3", 3},
		{"2.7", 2},
		{" 5 ", 5},
		{"", 1},
		{"many", 1},
	}

	for _, tt := range tests {
		if got := ParseQuantity(tt.raw); got != tt.want {
			t.Errorf("ParseQuantity(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
