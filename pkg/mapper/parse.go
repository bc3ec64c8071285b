package mapper

import (
	"strconv"
	"strings"
	"time"
)

// Cell layouts seen in real workbooks. excelize renders date cells
// through their number format, so several shapes show up even within one
// file.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01-02-06 15:04",
	"1/2/06 15:04",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"02/01/2006",
	"02-Jan-06",
}

// excelEpoch is day zero of the 1900 date system.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseDate coerces a raw cell to a timestamp. Numeric cells are treated
// as Excel serial dates (days since the 1900 epoch, fraction = time of
// day). Returns ok=false when nothing parses.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if serial <= 0 {
			return time.Time{}, false
		}
		days := int(serial)
		frac := serial - float64(days)
		t := excelEpoch.AddDate(0, 0, days).
			Add(time.Duration(frac * 24 * float64(time.Hour)))
		return t, true
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseDate applies the missing-date default: the mapping-time clock.
func (rm *RowMapper) parseDate(raw string) time.Time {
	if t, ok := ParseDate(raw); ok {
		return t
	}
	return rm.now()
}

// ParsePrice coerces a raw cell to a unit price, defaulting to 0 when the
// value is absent or not parseable. Currency decoration and thousands
// separators are stripped first.
func ParsePrice(raw string) float64 {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return f
}

// ParseQuantity coerces a raw cell to a quantity, defaulting to 1 when
// the value is absent or not parseable. Fractional quantities truncate.
func ParseQuantity(raw string) int {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 1
	}

	if n, err := strconv.Atoi(cleaned); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return int(f)
	}
	return 1
}

// dateOnly drops the time-of-day component in the timestamp's location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
