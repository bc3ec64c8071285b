// Package schema declares the relational schema for the normalized sales
// database: five tables, their constraints, and the indexes that back the
// read-side query patterns.
package schema

// ReferentialAction represents a foreign key referential action.
type ReferentialAction string

const (
	NoAction ReferentialAction = "NO ACTION"
	Restrict ReferentialAction = "RESTRICT"
	Cascade  ReferentialAction = "CASCADE"
	SetNull  ReferentialAction = "SET NULL"
)

// ColumnMetadata describes a single table column.
type ColumnMetadata struct {
	Name     string
	SQLType  string
	Nullable bool
	Unique   bool
	Default  *string
}

// PrimaryKeyMetadata describes a table's primary key.
type PrimaryKeyMetadata struct {
	Name    string
	Columns []string
}

// ForeignKeyMetadata describes a foreign key constraint.
type ForeignKeyMetadata struct {
	Name              string
	Columns           []string
	ReferencedTable   string
	ReferencedColumns []string
	OnDelete          ReferentialAction
}

// IndexMetadata describes a secondary index. Expression indexes set
// Expression instead of Columns.
type IndexMetadata struct {
	Name       string
	Columns    []string
	Expression string
	Unique     bool
}

// TableMetadata describes a table: columns, primary key, foreign keys,
// and secondary indexes.
type TableMetadata struct {
	Name        string
	Columns     []ColumnMetadata
	PrimaryKey  *PrimaryKeyMetadata
	ForeignKeys []ForeignKeyMetadata
	Indexes     []IndexMetadata
}

// ColumnNames returns the names of all columns in declaration order.
func (t *TableMetadata) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

func defaultExpr(expr string) *string {
	return &expr
}
