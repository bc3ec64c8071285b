package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/dataroast/coffeesales/cmd/coffeesales/output"
	"github.com/dataroast/coffeesales/cmd/coffeesales/tui"
	"github.com/dataroast/coffeesales/pkg/report"
	"github.com/dataroast/coffeesales/pkg/salesdb"
)

var (
	// Query flags
	presetID    int
	adhocSQL    string
	listPresets bool
	interactive bool
)

// queryCmd explores the imported database.
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the sales database",
	Long: `Run preset aggregate queries or ad-hoc read-only SQL against the five
sales tables. With no flags, lists the tables and their row counts.

Examples:
  coffeesales query                       # show tables and row counts
  coffeesales query --list                # list preset queries
  coffeesales query --preset 4            # run "Top sellers"
  coffeesales query --sql "SELECT COUNT(*) FROM sales"
  coffeesales query --interactive         # browse presets in a TUI`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery()
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().IntVar(&presetID, "preset", 0, "Run a preset query by number")
	queryCmd.Flags().StringVar(&adhocSQL, "sql", "", "Run an ad-hoc read-only SQL query")
	queryCmd.Flags().BoolVar(&listPresets, "list", false, "List available preset queries")
	queryCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Browse presets in an interactive TUI")
}

func runQuery() error {
	if listPresets {
		printPresetList()
		return nil
	}

	if err := requireDB(); err != nil {
		return err
	}

	if interactive {
		return tui.RunQueryUI(dbURL)
	}

	ctx := context.Background()
	db, err := salesdb.ConnectWithURL(ctx, dbURL)
	if err != nil {
		return err
	}
	defer db.Close()
	pool := db.Pool()

	switch {
	case presetID != 0:
		preset, ok := report.PresetByID(presetID)
		if !ok {
			return fmt.Errorf("unknown preset %d, run with --list to see them", presetID)
		}
		output.Primary("%s", preset.Name)
		output.Muted("%s", preset.Description)
		return runAndPrint(ctx, pool, preset.SQL)

	case adhocSQL != "":
		return runAndPrint(ctx, pool, adhocSQL)

	default:
		return printTables(ctx, pool)
	}
}

func printPresetList() {
	output.Section("Preset Queries")
	for _, p := range report.Presets() {
		fmt.Printf("  %2d. %s\n", p.ID, p.Name)
		output.Muted("      %s", p.Description)
	}
	fmt.Println()
	output.Muted("Run one with --preset N")
}

func runAndPrint(ctx context.Context, pool *pgxpool.Pool, sql string) error {
	result, err := report.Run(ctx, pool, sql)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if len(result.Rows) == 0 {
		output.Warning("No rows")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, strings.ToUpper(strings.Join(result.Columns, "\t")))
	for _, row := range result.Rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()

	output.Muted("%d row(s)", len(result.Rows))
	return nil
}

func printTables(ctx context.Context, pool *pgxpool.Pool) error {
	infos, err := report.ListTables(ctx, pool)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	output.Section("Tables")
	for _, info := range infos {
		output.Info("%s (%d rows)", info.Name, info.RowCount)
		if verbose {
			output.Muted("  %s", strings.Join(info.Columns, ", "))
		}
	}
	fmt.Println()
	output.Muted("Run \"coffeesales query --list\" to see preset queries")
	return nil
}
