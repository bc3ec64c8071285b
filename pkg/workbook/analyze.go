package workbook

import (
	"regexp"
	"strconv"
	"strings"
)

// ValueKind classifies the dominant value type observed in a column.
type ValueKind string

const (
	KindText    ValueKind = "text"
	KindInteger ValueKind = "integer"
	KindNumeric ValueKind = "numeric"
	KindDate    ValueKind = "date"
)

// ColumnProfile summarizes one column of a sheet.
type ColumnProfile struct {
	Header  string    `json:"header"`
	Kind    ValueKind `json:"kind"`
	NonNull int       `json:"non_null"`
	Total   int       `json:"total"`
}

// SheetAnalysis summarizes the structure of one sheet.
type SheetAnalysis struct {
	Name     string          `json:"name"`
	Headers  []string        `json:"headers"`
	RowCount int             `json:"row_count"`
	Samples  [][]string      `json:"samples"`
	Columns  []ColumnProfile `json:"columns"`
}

const (
	sampleRows   = 3
	profileDepth = 20
)

var datePattern = regexp.MustCompile(`\d{1,4}[-/]\d{1,2}[-/]\d{1,4}`)

// Analyze profiles every sheet of the workbook: headers, row counts,
// leading sample rows, and per-column type inference over the first
// profileDepth values.
func (w *Workbook) Analyze() ([]SheetAnalysis, error) {
	sheets, err := w.Sheets()
	if err != nil {
		return nil, err
	}

	analyses := make([]SheetAnalysis, 0, len(sheets))
	for _, sheet := range sheets {
		analyses = append(analyses, analyzeSheet(sheet))
	}
	return analyses, nil
}

func analyzeSheet(sheet *Sheet) SheetAnalysis {
	a := SheetAnalysis{
		Name:     sheet.Name,
		Headers:  sheet.Headers,
		RowCount: len(sheet.Rows),
	}

	n := min(sampleRows, len(sheet.Rows))
	a.Samples = sheet.Rows[:n]

	for i, header := range sheet.Headers {
		profile := ColumnProfile{Header: header, Total: len(sheet.Rows)}

		var values []string
		for _, row := range sheet.Rows {
			cell := Cell(row, i)
			if strings.TrimSpace(cell) == "" {
				continue
			}
			profile.NonNull++
			if len(values) < profileDepth {
				values = append(values, cell)
			}
		}

		profile.Kind = inferKind(header, values)
		a.Columns = append(a.Columns, profile)
	}

	return a
}

// inferKind mirrors the header heuristics used by the field matchers:
// name hints win over data shape, then the sampled values decide.
func inferKind(header string, values []string) ValueKind {
	lower := strings.ToLower(header)

	switch {
	case strings.Contains(lower, "price"), strings.Contains(lower, "amount"),
		strings.Contains(lower, "total"), strings.Contains(lower, "cost"):
		return KindNumeric
	case strings.Contains(lower, "quantity"), strings.Contains(lower, "count"),
		strings.Contains(lower, "number"):
		return KindInteger
	case strings.Contains(lower, "date"), strings.Contains(lower, "time"),
		strings.Contains(lower, "fecha"):
		return KindDate
	}

	if len(values) == 0 {
		return KindText
	}

	numeric := true
	integral := true
	for _, v := range values {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			numeric = false
			break
		}
		if f != float64(int64(f)) {
			integral = false
		}
	}
	if numeric {
		if integral {
			return KindInteger
		}
		return KindNumeric
	}

	for _, v := range values {
		if datePattern.MatchString(v) {
			return KindDate
		}
	}

	return KindText
}
