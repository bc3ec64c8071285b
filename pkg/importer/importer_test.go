package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dataroast/coffeesales/pkg/mapper"
	"github.com/dataroast/coffeesales/pkg/salesdb"
	"github.com/dataroast/coffeesales/pkg/workbook"
)

// failingResolver resolves everything except product names listed in bad.
type failingResolver struct {
	bad map[string]bool
}

func (r *failingResolver) Product(_ context.Context, name, _ string, _ *float64) (int64, error) {
	if r.bad[name] {
		return 0, fmt.Errorf("no product %q", name)
	}
	return 1, nil
}

func (r *failingResolver) Client(_ context.Context, code, _ string) (int64, bool, error) {
	if code == "" {
		return 0, false, nil
	}
	return 2, true, nil
}

func (r *failingResolver) Store(context.Context, string, string, string) (int64, error) {
	return 3, nil
}

func (r *failingResolver) PaymentMethod(context.Context, string, string) (int64, error) {
	return 4, nil
}

// recordingReporter captures every event for assertions.
type recordingReporter struct {
	starts     []string
	skips      []string
	progress   []int
	rowErrors  []int
	errs       []error
	suppressed int
	done       []SheetSummary
}

func (r *recordingReporter) SheetStart(sheet string, _ int, _ []string) {
	r.starts = append(r.starts, sheet)
}
func (r *recordingReporter) SheetSkipped(sheet string) { r.skips = append(r.skips, sheet) }
func (r *recordingReporter) Progress(_ string, done, _ int) {
	r.progress = append(r.progress, done)
}
func (r *recordingReporter) RowError(_ string, row int, err error) {
	r.rowErrors = append(r.rowErrors, row)
	r.errs = append(r.errs, err)
}
func (r *recordingReporter) ErrorsSuppressed(string)  { r.suppressed++ }
func (r *recordingReporter) SheetDone(s SheetSummary) { r.done = append(r.done, s) }

func testSheet(name string, n int, badRows map[int]bool) *workbook.Sheet {
	sheet := &workbook.Sheet{
		Name:    name,
		Headers: []string{"Date", "Product", "Price", "Quantity", "Payment", "Store"},
	}
	for i := 0; i < n; i++ {
		product := "Latte"
		if badRows[i] {
			product = "Unknown"
		}
		sheet.Rows = append(sheet.Rows, []string{"2024-03-17 09:00:00", product, "3.5", "1", "cash", "Centro"})
	}
	return sheet
}

func noopInsert(context.Context, *mapper.Sale) error { return nil }

func TestImportSheetCountsFailures(t *testing.T) {
	rep := &recordingReporter{}
	rm := mapper.New(&failingResolver{bad: map[string]bool{"Unknown": true}})
	imp := New(nil, rm, WithReporter(rep))

	sheet := testSheet("ventas", 100, map[int]bool{4: true, 49: true})
	summary := imp.importSheet(context.Background(), sheet, noopInsert)

	if summary.Rows != 100 || summary.Succeeded != 98 || summary.Failed != 2 {
		t.Errorf("summary = %d/%d/%d, want 100 rows, 98 succeeded, 2 failed",
			summary.Rows, summary.Succeeded, summary.Failed)
	}
	if len(rep.rowErrors) != 2 || rep.rowErrors[0] != 5 || rep.rowErrors[1] != 50 {
		t.Errorf("reported row errors = %v, want [5 50] (1-based)", rep.rowErrors)
	}
	if rep.suppressed != 0 {
		t.Errorf("suppression notice fired below the cap")
	}

	// The reported error is self-describing: it names the sheet and row
	// itself, so reporters print it without adding their own position.
	var rowErr *salesdb.RowError
	if !errors.As(rep.errs[0], &rowErr) {
		t.Fatalf("reported error %T is not a RowError", rep.errs[0])
	}
	if rowErr.Sheet != "ventas" || rowErr.Row != 5 {
		t.Errorf("RowError position = %q/%d, want ventas/5", rowErr.Sheet, rowErr.Row)
	}
	msg := rep.errs[0].Error()
	if !strings.Contains(msg, `"ventas"`) || !strings.Contains(msg, "row 5") {
		t.Errorf("reported error message %q should carry sheet and row", msg)
	}
}

func TestImportSheetErrorCap(t *testing.T) {
	rep := &recordingReporter{}
	rm := mapper.New(&failingResolver{bad: map[string]bool{"Unknown": true}})
	imp := New(nil, rm, WithReporter(rep))

	bad := make(map[int]bool)
	for i := 0; i < 25; i++ {
		bad[i] = true
	}
	summary := imp.importSheet(context.Background(), testSheet("ventas", 30, bad), noopInsert)

	if summary.Failed != 25 {
		t.Fatalf("failed = %d, want 25", summary.Failed)
	}
	if len(rep.rowErrors) != errorReportCap {
		t.Errorf("reported errors = %d, want capped at %d", len(rep.rowErrors), errorReportCap)
	}
	if rep.suppressed != 1 {
		t.Errorf("suppression notice fired %d times, want once", rep.suppressed)
	}
}

func TestImportSheetInsertFailureCountsAsRowFailure(t *testing.T) {
	rep := &recordingReporter{}
	rm := mapper.New(&failingResolver{})
	imp := New(nil, rm, WithReporter(rep))

	insertErr := errors.New("duplicate key")
	calls := 0
	insert := func(context.Context, *mapper.Sale) error {
		calls++
		if calls == 2 {
			return insertErr
		}
		return nil
	}

	summary := imp.importSheet(context.Background(), testSheet("ventas", 3, nil), insert)

	if summary.Succeeded != 2 || summary.Failed != 1 {
		t.Errorf("summary = %d/%d, want 2 succeeded, 1 failed", summary.Succeeded, summary.Failed)
	}
	if len(rep.rowErrors) != 1 || rep.rowErrors[0] != 2 {
		t.Errorf("reported row errors = %v, want [2]", rep.rowErrors)
	}
}

func TestImportSheetProgressInterval(t *testing.T) {
	rep := &recordingReporter{}
	rm := mapper.New(&failingResolver{})
	imp := New(nil, rm, WithReporter(rep))

	imp.importSheet(context.Background(), testSheet("ventas", 250, nil), noopInsert)

	want := []int{100, 200}
	if len(rep.progress) != len(want) {
		t.Fatalf("progress events = %v, want %v", rep.progress, want)
	}
	for i, d := range want {
		if rep.progress[i] != d {
			t.Errorf("progress[%d] = %d, want %d", i, rep.progress[i], d)
		}
	}
}

func TestSummaryTotals(t *testing.T) {
	s := &Summary{Sheets: []SheetSummary{
		{Sheet: "a", Succeeded: 10, Failed: 1},
		{Sheet: "b", Succeeded: 5, Failed: 2},
		{Sheet: "c", Skipped: true},
	}}

	if s.Succeeded() != 15 {
		t.Errorf("Succeeded() = %d, want 15", s.Succeeded())
	}
	if s.Failed() != 3 {
		t.Errorf("Failed() = %d, want 3", s.Failed())
	}
}

func TestInsertArgsAnonymousClient(t *testing.T) {
	sale := &mapper.Sale{ProductID: 1, PaymentID: 2, StoreID: 3}
	args := insertArgs(sale)

	if len(args) != len(saleColumns) {
		t.Fatalf("args = %d values, want %d", len(args), len(saleColumns))
	}
	if args[5] != nil {
		t.Errorf("anonymous client arg = %v, want nil", args[5])
	}

	id := int64(9)
	sale.ClientID = &id
	if got := insertArgs(sale)[5]; got != int64(9) {
		t.Errorf("client arg = %v, want 9", got)
	}
}
