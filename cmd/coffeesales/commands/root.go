package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dbURL        string
	workbookPath string
	verbose      bool
	jsonOutput   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "coffeesales",
	Short: "Coffee sales workbook importer and query tool",
	Long: `coffeesales turns a flat sales workbook into a normalized PostgreSQL
database and lets you explore it afterwards.

Workflow:
  setup    - Verify the workbook and database are reachable
  analyze  - Inspect the workbook structure before importing
  import   - Normalize and load every sheet into the five sales tables
  query    - Run preset or ad-hoc read-only queries against the result`,
	Version: "1.2.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional; flags win over the environment.
		_ = godotenv.Load()
		if dbURL == "" {
			dbURL = os.Getenv("DATABASE_URL")
		}
		if workbookPath == "" {
			if env := os.Getenv("SALES_WORKBOOK"); env != "" {
				workbookPath = env
			}
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (defaults to DATABASE_URL)")
	rootCmd.PersistentFlags().StringVarP(&workbookPath, "file", "f", "Coffe_sales.xlsx", "Workbook file to read (defaults to SALES_WORKBOOK)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

func requireDB() error {
	if dbURL == "" {
		return fmt.Errorf("--db flag or DATABASE_URL is required")
	}
	return nil
}
