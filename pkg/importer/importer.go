// Package importer drives the normalization-and-load pipeline: it walks
// every sheet of a workbook, maps rows through the resolver-backed row
// mapper, persists sales through a prepared insert, isolates per-row
// failures, and finishes with the client aggregation pass.
package importer

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dataroast/coffeesales/pkg/mapper"
	"github.com/dataroast/coffeesales/pkg/salesdb"
	"github.com/dataroast/coffeesales/pkg/schema"
	"github.com/dataroast/coffeesales/pkg/workbook"
)

const (
	// errorReportCap limits individually reported row errors per sheet;
	// beyond it errors are counted but not reported.
	errorReportCap = 10

	// progressEvery is the row interval between progress reports.
	progressEvery = 100

	saleInsertStmt = "sale_insert"
)

// saleColumns is the insert column list for the sales table, aligned
// with insertArgs.
var saleColumns = []string{
	"sale_date", "sold_at", "time_of_day",
	"product_id", "payment_method_id", "client_id", "store_id",
	"unit_price", "quantity", "total_amount",
	"day_period", "weekday_name", "month_name",
	"weekday_index", "month_index",
}

// Reporter receives pipeline progress events. Implementations must not
// retain the arguments past the call.
type Reporter interface {
	SheetStart(sheet string, rows int, headers []string)
	SheetSkipped(sheet string)
	Progress(sheet string, done, total int)
	RowError(sheet string, row int, err error)
	ErrorsSuppressed(sheet string)
	SheetDone(summary SheetSummary)
}

// NopReporter discards all events.
type NopReporter struct{}

func (NopReporter) SheetStart(string, int, []string) {}
func (NopReporter) SheetSkipped(string)              {}
func (NopReporter) Progress(string, int, int)        {}
func (NopReporter) RowError(string, int, error)      {}
func (NopReporter) ErrorsSuppressed(string)          {}
func (NopReporter) SheetDone(SheetSummary)           {}

// SheetSummary holds the per-sheet outcome counters.
type SheetSummary struct {
	Sheet     string `json:"sheet"`
	Rows      int    `json:"rows"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Skipped   bool   `json:"skipped"`
}

// Summary holds the outcome of a full run.
type Summary struct {
	Sheets            []SheetSummary `json:"sheets"`
	ClientsAggregated int64          `json:"clients_aggregated"`
	AggregationErr    error          `json:"-"`
}

// Succeeded returns the total successfully imported rows across sheets.
func (s *Summary) Succeeded() int {
	n := 0
	for _, sheet := range s.Sheets {
		n += sheet.Succeeded
	}
	return n
}

// Failed returns the total failed rows across sheets.
func (s *Summary) Failed() int {
	n := 0
	for _, sheet := range s.Sheets {
		n += sheet.Failed
	}
	return n
}

// Importer orchestrates one import run. It is single-threaded by design:
// the resolver's cache-then-lookup-then-create sequence is race-free only
// while no two rows can chase the same natural key concurrently, so rows
// are processed strictly in source order.
type Importer struct {
	pool     *pgxpool.Pool
	mapper   *mapper.RowMapper
	reporter Reporter
}

// Option configures an Importer.
type Option func(*Importer)

// WithReporter sets the progress reporter.
func WithReporter(r Reporter) Option {
	return func(imp *Importer) { imp.reporter = r }
}

// New creates an Importer over an open pool and a bound row mapper.
func New(pool *pgxpool.Pool, rm *mapper.RowMapper, opts ...Option) *Importer {
	imp := &Importer{
		pool:     pool,
		mapper:   rm,
		reporter: NopReporter{},
	}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}

// insertFunc persists one mapped sale.
type insertFunc func(ctx context.Context, sale *mapper.Sale) error

// Run imports every sheet of the workbook, then runs the aggregation
// pass exactly once. Sheet counters are independent. A nil error with a
// non-nil Summary.AggregationErr means all rows were processed but the
// client statistics could not be recomputed.
func (imp *Importer) Run(ctx context.Context, wb *workbook.Workbook) (*Summary, error) {
	sheets, err := wb.Sheets()
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}

	conn, err := imp.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", salesdb.ErrNoConnection, err)
	}
	defer conn.Release()

	insertSQL := schema.InsertSQL(&schema.Sales, saleColumns)
	summary := &Summary{}

	for _, sheet := range sheets {
		if sheet.Headers == nil || len(sheet.Rows) == 0 {
			imp.reporter.SheetSkipped(sheet.Name)
			summary.Sheets = append(summary.Sheets, SheetSummary{Sheet: sheet.Name, Skipped: true})
			continue
		}

		if _, err := conn.Conn().Prepare(ctx, saleInsertStmt, insertSQL); err != nil {
			return nil, fmt.Errorf("failed to prepare sale insert: %w", err)
		}

		insert := func(ctx context.Context, sale *mapper.Sale) error {
			_, err := conn.Exec(ctx, saleInsertStmt, insertArgs(sale)...)
			return err
		}

		summary.Sheets = append(summary.Sheets, imp.importSheet(ctx, sheet, insert))

		if err := conn.Conn().Deallocate(ctx, saleInsertStmt); err != nil {
			return nil, fmt.Errorf("failed to close sale insert: %w", err)
		}
	}

	summary.ClientsAggregated, summary.AggregationErr = AggregateClients(ctx, imp.pool)
	return summary, nil
}

// importSheet runs the row loop for one sheet: map, insert, count, with
// per-row failures isolated and reported up to the cap.
func (imp *Importer) importSheet(ctx context.Context, sheet *workbook.Sheet, insert insertFunc) SheetSummary {
	summary := SheetSummary{Sheet: sheet.Name, Rows: len(sheet.Rows)}
	imp.reporter.SheetStart(sheet.Name, len(sheet.Rows), sheet.Headers)

	binding := imp.mapper.Bind(sheet.Headers)

	for i, row := range sheet.Rows {
		if i > 0 && i%progressEvery == 0 {
			imp.reporter.Progress(sheet.Name, i, len(sheet.Rows))
		}

		sale, err := imp.mapper.MapRow(ctx, binding, row)
		if err == nil {
			err = insert(ctx, sale)
		}
		if err != nil {
			summary.Failed++
			if summary.Failed <= errorReportCap {
				imp.reporter.RowError(sheet.Name, i+1, &salesdb.RowError{Sheet: sheet.Name, Row: i + 1, Err: err})
				if summary.Failed == errorReportCap {
					imp.reporter.ErrorsSuppressed(sheet.Name)
				}
			}
			continue
		}

		summary.Succeeded++
	}

	imp.reporter.SheetDone(summary)
	return summary
}

// insertArgs flattens a sale into the saleColumns order.
func insertArgs(sale *mapper.Sale) []interface{} {
	var clientID interface{}
	if sale.ClientID != nil {
		clientID = *sale.ClientID
	}

	return []interface{}{
		sale.SaleDate, sale.SoldAt, sale.TimeOfDay,
		sale.ProductID, sale.PaymentID, clientID, sale.StoreID,
		sale.UnitPrice, sale.Quantity, sale.TotalAmount,
		sale.DayPeriod, sale.WeekdayName, sale.MonthName,
		sale.WeekdayIndex, sale.MonthIndex,
	}
}
