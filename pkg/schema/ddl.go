package schema

import (
	"fmt"
	"strings"
)

// CreateTableSQL generates the CREATE TABLE statement for a table.
func CreateTableSQL(table *TableMetadata) string {
	var parts []string

	// Single-column primary keys are declared inline.
	var singlePKColumn string
	if table.PrimaryKey != nil && len(table.PrimaryKey.Columns) == 1 {
		singlePKColumn = table.PrimaryKey.Columns[0]
	}

	for _, col := range table.Columns {
		colDef := columnDefinition(col)
		if singlePKColumn != "" && col.Name == singlePKColumn {
			colDef += " PRIMARY KEY"
		}
		parts = append(parts, "    "+colDef)
	}

	if table.PrimaryKey != nil && len(table.PrimaryKey.Columns) > 1 {
		pkCols := strings.Join(table.PrimaryKey.Columns, ", ")
		parts = append(parts, fmt.Sprintf("    CONSTRAINT %s PRIMARY KEY (%s)", table.PrimaryKey.Name, pkCols))
	}

	for _, fk := range table.ForeignKeys {
		parts = append(parts, "    "+foreignKeyDefinition(fk))
	}

	return fmt.Sprintf("CREATE TABLE %s (\n%s\n);", table.Name, strings.Join(parts, ",\n"))
}

// DropTableSQL generates the DROP TABLE statement for a table. CASCADE
// removes dependent foreign keys so creation order does not constrain
// drop order.
func DropTableSQL(table *TableMetadata) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE;", table.Name)
}

// CreateIndexSQL generates a CREATE INDEX statement for one index.
func CreateIndexSQL(tableName string, idx IndexMetadata) string {
	var parts []string

	if idx.Unique {
		parts = append(parts, "CREATE UNIQUE INDEX")
	} else {
		parts = append(parts, "CREATE INDEX")
	}

	parts = append(parts, "IF NOT EXISTS", idx.Name, "ON", tableName)

	if idx.Expression != "" {
		parts = append(parts, fmt.Sprintf("(%s)", idx.Expression))
	} else {
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(idx.Columns, ", ")))
	}

	return strings.Join(parts, " ") + ";"
}

// InsertSQL generates a parameterized INSERT statement for the given
// columns of a table, with placeholders $1..$n.
func InsertSQL(table *TableMetadata, columns []string) string {
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table.Name,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)
}

func columnDefinition(col ColumnMetadata) string {
	parts := []string{col.Name, col.SQLType}

	if !col.Nullable {
		parts = append(parts, "NOT NULL")
	}

	if col.Default != nil {
		parts = append(parts, "DEFAULT", *col.Default)
	}

	if col.Unique {
		parts = append(parts, "UNIQUE")
	}

	return strings.Join(parts, " ")
}

func foreignKeyDefinition(fk ForeignKeyMetadata) string {
	localCols := strings.Join(fk.Columns, ", ")
	refCols := strings.Join(fk.ReferencedColumns, ", ")

	parts := []string{
		fmt.Sprintf("CONSTRAINT %s FOREIGN KEY (%s)", fk.Name, localCols),
		fmt.Sprintf("REFERENCES %s (%s)", fk.ReferencedTable, refCols),
	}

	if fk.OnDelete != NoAction && fk.OnDelete != "" {
		parts = append(parts, "ON DELETE "+string(fk.OnDelete))
	}

	return strings.Join(parts, " ")
}
