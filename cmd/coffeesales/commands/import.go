package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/dataroast/coffeesales/cmd/coffeesales/output"
	"github.com/dataroast/coffeesales/pkg/importer"
	"github.com/dataroast/coffeesales/pkg/mapper"
	"github.com/dataroast/coffeesales/pkg/report"
	"github.com/dataroast/coffeesales/pkg/resolver"
	"github.com/dataroast/coffeesales/pkg/salesdb"
	"github.com/dataroast/coffeesales/pkg/schema"
	"github.com/dataroast/coffeesales/pkg/workbook"
)

var (
	// Import flags
	defaultStore   string
	defaultPayment string
	skipReport     bool
)

// importCmd runs the full normalization-and-load pipeline.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the workbook into the sales database",
	Long: `Drop and recreate the five sales tables, then normalize and load every
sheet of the workbook: reference entities are deduplicated by natural key,
sales get derived calendar fields, and per-row failures are counted without
aborting the run. Finishes by recomputing client purchase statistics.

Examples:
  coffeesales import --file sales.xlsx --db postgres://localhost/coffee
  coffeesales import --default-store "Airport Kiosk"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport()
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&defaultStore, "default-store", "", "Store name used when a row has none")
	importCmd.Flags().StringVar(&defaultPayment, "default-payment", "", "Payment type used when a row has none")
	importCmd.Flags().BoolVar(&skipReport, "skip-report", false, "Skip the post-import report")
}

func runImport() error {
	if err := requireDB(); err != nil {
		return err
	}

	ctx := context.Background()

	db, err := salesdb.ConnectWithURL(ctx, dbURL)
	if err != nil {
		return err
	}
	defer db.Close()
	pool := db.Pool()

	wb, err := workbook.Open(workbookPath)
	if err != nil {
		return err
	}
	defer func() { _ = wb.Close() }()

	output.Primary("Importing %s", workbookPath)

	output.Section("Creating Schema")
	if err := schema.Ensure(ctx, pool); err != nil {
		return err
	}
	output.Success("Created %d tables with indexes", len(schema.Tables()))

	defaults := resolver.DefaultPolicy()
	if defaultStore != "" {
		defaults.StoreName = defaultStore
	}
	if defaultPayment != "" {
		defaults.PaymentType = defaultPayment
	}

	res := resolver.NewWithDefaults(db, defaults)
	rm := mapper.New(res)

	imp := importer.New(pool, rm, importer.WithReporter(&consoleReporter{}))

	output.Section("Importing Data")
	summary, err := imp.Run(ctx, wb)
	if err != nil {
		return err
	}

	printRunSummary(res, summary)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	if !skipReport {
		if err := printReport(ctx, pool); err != nil {
			output.Warning("Report generation failed: %v", err)
		}
	}

	fmt.Println()
	output.Success("Import completed: %d rows imported, %d failed", summary.Succeeded(), summary.Failed())
	output.Muted("Use \"coffeesales query\" to explore the data")
	return nil
}

func printRunSummary(res *resolver.Resolver, summary *importer.Summary) {
	fmt.Println()
	for _, sheet := range summary.Sheets {
		switch {
		case sheet.Skipped:
			fmt.Printf("  %s %s: skipped (no data)\n", output.StatusIcon("skipped"), sheet.Sheet)
		case sheet.Failed > 0:
			fmt.Printf("  %s %s: %d imported, %d failed\n", output.StatusIcon("failed"), sheet.Sheet, sheet.Succeeded, sheet.Failed)
		default:
			fmt.Printf("  %s %s: %d imported\n", output.StatusIcon("imported"), sheet.Sheet, sheet.Succeeded)
		}
	}

	products, clients, stores, payments := res.CachedKeys()
	output.Muted("  Entities: %d products, %d clients, %d stores, %d payment methods", products, clients, stores, payments)

	if summary.AggregationErr != nil {
		output.Warning("Client statistics could not be updated: %v", summary.AggregationErr)
	} else {
		output.Success("Client statistics updated (%d clients)", summary.ClientsAggregated)
	}
}

func printReport(ctx context.Context, pool *pgxpool.Pool) error {
	overview, err := report.GetOverview(ctx, pool)
	if err != nil {
		return err
	}

	output.Section("Database Report")
	output.Info("Sales: %d  Products: %d  Clients: %d  Stores: %d  Payment methods: %d",
		overview.Sales, overview.Products, overview.Clients, overview.Stores, overview.PaymentMethods)
	output.Info("Total revenue: $%.2f  Average sale: $%.2f", overview.TotalRevenue, overview.AverageSale)
	if overview.FirstSale != nil && overview.LastSale != nil {
		output.Muted("Date range: %s to %s",
			overview.FirstSale.Format("2006-01-02"), overview.LastSale.Format("2006-01-02"))
	}

	if products, err := report.TopProducts(ctx, pool, 5); err == nil && len(products) > 0 {
		fmt.Println()
		output.Primary("Top products")
		for i, p := range products {
			fmt.Printf("  %d. %s: %d sales, $%.2f\n", i+1, p.Name, p.SalesCount, p.Revenue)
		}
	}

	if clients, err := report.TopClients(ctx, pool, 5); err == nil {
		fmt.Println()
		output.Primary("Top clients")
		if len(clients) == 0 {
			output.Muted("  No client data (anonymous sales)")
		}
		for i, c := range clients {
			fmt.Printf("  %d. %s: %d purchases, $%.2f\n", i+1, c.Code, c.Purchases, c.Spent)
		}
	}

	if stores, err := report.StorePerformance(ctx, pool); err == nil && len(stores) > 0 {
		fmt.Println()
		output.Primary("Store performance")
		for i, s := range stores {
			fmt.Printf("  %d. %s: %d sales, $%.2f\n", i+1, s.Name, s.SalesCount, s.Revenue)
		}
	}

	if months, err := report.MonthlyTrends(ctx, pool); err == nil && len(months) > 0 {
		fmt.Println()
		output.Primary("Monthly sales")
		for _, m := range months {
			fmt.Printf("  %s: %d sales, $%.2f\n", m.Month, m.SalesCount, m.Revenue)
		}
	}

	return nil
}

// consoleReporter prints pipeline events through the output package.
type consoleReporter struct{}

func (consoleReporter) SheetStart(sheet string, rows int, headers []string) {
	output.Info("Processing %d rows from sheet %q", rows, sheet)
	if verbose {
		output.Muted("  Headers: %v", headers)
	}
}

func (consoleReporter) SheetSkipped(sheet string) {
	output.Warning("No data found in sheet %q", sheet)
}

func (consoleReporter) Progress(sheet string, done, total int) {
	if verbose {
		output.Progress(done, total)
	}
}

func (consoleReporter) RowError(sheet string, row int, err error) {
	// err is a salesdb.RowError and already names the sheet and row.
	output.Warning("%v", err)
}

func (consoleReporter) ErrorsSuppressed(sheet string) {
	output.Muted("  Further errors in %q will be counted but not shown", sheet)
}

func (consoleReporter) SheetDone(summary importer.SheetSummary) {
	if summary.Failed > 0 {
		output.Warning("Sheet %q done: %d imported, %d failed", summary.Sheet, summary.Succeeded, summary.Failed)
		return
	}
	output.Success("Sheet %q done: %d imported", summary.Sheet, summary.Succeeded)
}
