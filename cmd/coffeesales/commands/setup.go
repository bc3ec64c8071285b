package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dataroast/coffeesales/cmd/coffeesales/output"
	"github.com/dataroast/coffeesales/pkg/salesdb"
	"github.com/dataroast/coffeesales/pkg/workbook"
)

// setupCmd verifies preconditions before an import run.
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Verify the workbook and database are reachable",
	Long: `Verify that the source workbook exists and can be read, and that the
database accepts connections. Performs no data transformation.

Examples:
  coffeesales setup --file sales.xlsx --db postgres://localhost/coffee
  coffeesales setup                      # uses SALES_WORKBOOK and DATABASE_URL`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup()
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup() error {
	output.Section("Checking Prerequisites")

	if err := checkWorkbook(); err != nil {
		return err
	}

	if err := checkDatabase(); err != nil {
		return err
	}

	fmt.Println()
	output.Success("Setup checks passed")
	output.Muted("Run \"coffeesales analyze\" to inspect the workbook, then \"coffeesales import\" to load it")
	return nil
}

func checkWorkbook() error {
	if _, err := os.Stat(workbookPath); err != nil {
		output.Error("Workbook not found: %s", workbookPath)

		// Point at likely candidates next to the missing path.
		dir := filepath.Dir(workbookPath)
		entries, dirErr := os.ReadDir(dir)
		if dirErr == nil {
			var candidates []string
			for _, entry := range entries {
				name := strings.ToLower(entry.Name())
				if strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xls") {
					candidates = append(candidates, entry.Name())
				}
			}
			if len(candidates) > 0 {
				output.Info("Found these workbook files in %s:", dir)
				for _, c := range candidates {
					output.Muted("  • %s", c)
				}
				output.Muted("Pass one with --file or set SALES_WORKBOOK")
			}
		}

		return fmt.Errorf("workbook file not found: %s", workbookPath)
	}

	wb, err := workbook.Open(workbookPath)
	if err != nil {
		output.Error("Workbook is not readable: %v", err)
		return err
	}
	defer func() { _ = wb.Close() }()

	sheets := wb.SheetNames()
	output.Success("Workbook readable: %s (%d sheet(s))", workbookPath, len(sheets))
	if verbose {
		for _, name := range sheets {
			output.Muted("  • %s", name)
		}
	}
	return nil
}

func checkDatabase() error {
	if err := requireDB(); err != nil {
		return err
	}

	ctx := context.Background()
	db, err := salesdb.ConnectWithURL(ctx, dbURL)
	if err != nil {
		output.Error("Database unreachable: %v", err)
		return err
	}
	db.Close()

	output.Success("Database reachable")
	return nil
}
