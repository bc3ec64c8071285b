package mapper

import (
	"strings"

	"github.com/dataroast/coffeesales/pkg/workbook"
)

// Field identifies one logical field extracted from a source row.
type Field int

const (
	FieldDate Field = iota
	FieldProduct
	FieldCategory
	FieldPrice
	FieldQuantity
	FieldClient
	FieldPayment
	FieldStore

	numFields
)

// Matchers holds, per logical field, the ranked list of recognized header
// substrings. Earlier entries take priority over later ones.
type Matchers map[Field][]string

// DefaultMatchers returns the shipped header vocabulary. The Spanish terms
// come from the data this tool was built against; matching is substring
// based and case-insensitive, so partial and decorated headers still bind.
func DefaultMatchers() Matchers {
	return Matchers{
		FieldDate:     {"fecha", "date", "día"},
		FieldProduct:  {"producto", "product", "item", "coffee"},
		FieldCategory: {"categoria", "category", "tipo"},
		FieldPrice:    {"precio", "price", "total", "amount"},
		FieldQuantity: {"cantidad", "quantity", "qty"},
		FieldClient:   {"cliente", "customer", "client"},
		FieldPayment:  {"pago", "payment", "método", "method"},
		FieldStore:    {"sucursal", "store", "location", "branch"},
	}
}

// Binding is a fixed field-to-column mapping for one sheet, computed once
// from the header row and reused for every data row.
type Binding struct {
	candidates [numFields][]int
}

// Bind evaluates the matchers against a header list. For each field it
// records, per recognized substring in priority order, the first header
// containing that substring. Which candidate wins for a given row depends
// on which cells are populated; see Value.
func Bind(headers []string, matchers Matchers) *Binding {
	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(h)
	}

	b := &Binding{}
	for field, substrings := range matchers {
		seen := make(map[int]bool)
		for _, sub := range substrings {
			for i, h := range lowered {
				if h == "" || !strings.Contains(h, sub) {
					continue
				}
				if !seen[i] {
					seen[i] = true
					b.candidates[field] = append(b.candidates[field], i)
				}
				break
			}
		}
	}
	return b
}

// Value extracts a field from a row: the first candidate column holding a
// non-empty cell wins. Returns "" when the field is absent from this row.
func (b *Binding) Value(field Field, row []string) string {
	for _, i := range b.candidates[field] {
		if cell := workbook.Cell(row, i); strings.TrimSpace(cell) != "" {
			return cell
		}
	}
	return ""
}

// Bound reports whether any header matched the field at all.
func (b *Binding) Bound(field Field) bool {
	return len(b.candidates[field]) > 0
}
