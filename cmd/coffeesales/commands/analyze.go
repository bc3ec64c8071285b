package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dataroast/coffeesales/cmd/coffeesales/output"
	"github.com/dataroast/coffeesales/pkg/workbook"
)

// analyzeCmd inspects workbook structure before an import.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Inspect the workbook structure",
	Long: `Print every sheet's headers, row counts, sample rows, and per-column
type inference, so you can sanity-check a workbook before importing it.

Examples:
  coffeesales analyze --file sales.xlsx
  coffeesales analyze --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze()
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze() error {
	wb, err := workbook.Open(workbookPath)
	if err != nil {
		return err
	}
	defer func() { _ = wb.Close() }()

	analyses, err := wb.Analyze()
	if err != nil {
		return fmt.Errorf("failed to analyze workbook: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(analyses)
	}

	output.Primary("Analyzing %s", workbookPath)
	output.Info("Found %d sheet(s)", len(analyses))

	for _, a := range analyses {
		output.Section("Sheet: " + a.Name)

		if len(a.Headers) == 0 {
			output.Warning("Empty sheet")
			continue
		}

		output.Info("%d column(s), %d data row(s)", len(a.Headers), a.RowCount)
		output.Muted("Headers: %s", strings.Join(a.Headers, ", "))

		if len(a.Samples) > 0 {
			fmt.Println()
			for i, row := range a.Samples {
				output.Muted("Row %d: %s", i+1, strings.Join(row, " | "))
			}
		}

		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "COLUMN\tTYPE\tNON-NULL")
		for _, col := range a.Columns {
			ratio := "0%"
			if col.Total > 0 {
				ratio = fmt.Sprintf("%d%%", col.NonNull*100/col.Total)
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%d (%s)\n", col.Header, col.Kind, col.NonNull, ratio)
		}
		_ = w.Flush()
	}

	fmt.Println()
	output.Muted("Run \"coffeesales import\" to load this workbook")
	return nil
}
