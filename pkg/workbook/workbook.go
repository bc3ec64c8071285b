// Package workbook reads tabular xlsx workbooks: sheet enumeration,
// header/data row splitting, and structure analysis.
package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Workbook wraps an open xlsx file.
type Workbook struct {
	path string
	file *excelize.File
}

// Sheet is the materialized content of one worksheet: the header row and
// the data rows that follow it. Cells are aligned to headers by index;
// trailing empty cells may be absent.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// Open opens a workbook file.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return &Workbook{path: path, file: f}, nil
}

// Path returns the file path the workbook was opened from.
func (w *Workbook) Path() string {
	return w.path
}

// SheetNames returns the worksheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Sheet reads one worksheet. A sheet with no rows at all yields empty
// headers and no data rows.
func (w *Workbook) Sheet(name string) (*Sheet, error) {
	rows, err := w.file.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
	}

	sheet := &Sheet{Name: name}
	if len(rows) > 0 {
		sheet.Headers = rows[0]
		sheet.Rows = rows[1:]
	}
	return sheet, nil
}

// Sheets reads every worksheet in workbook order.
func (w *Workbook) Sheets() ([]*Sheet, error) {
	names := w.SheetNames()
	sheets := make([]*Sheet, 0, len(names))
	for _, name := range names {
		sheet, err := w.Sheet(name)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Cell returns the cell at column index i of a row, or "" when the row is
// shorter than the header it is aligned to.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
