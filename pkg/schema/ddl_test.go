package schema

import (
	"strings"
	"testing"
)

func TestCreateTableSQLSales(t *testing.T) {
	sql := CreateTableSQL(&Sales)

	wantFragments := []string{
		"CREATE TABLE sales (",
		"id bigserial NOT NULL PRIMARY KEY",
		"sale_date date NOT NULL",
		"client_id bigint",
		"quantity integer NOT NULL DEFAULT 1",
		"total_amount numeric(10,2) NOT NULL",
		"CONSTRAINT fk_sales_product FOREIGN KEY (product_id) REFERENCES products (id)",
		"CONSTRAINT fk_sales_payment_method FOREIGN KEY (payment_method_id) REFERENCES payment_methods (id)",
		"CONSTRAINT fk_sales_client FOREIGN KEY (client_id) REFERENCES clients (id)",
		"CONSTRAINT fk_sales_store FOREIGN KEY (store_id) REFERENCES stores (id)",
	}
	for _, fragment := range wantFragments {
		if !strings.Contains(sql, fragment) {
			t.Errorf("generated SQL missing %q:\n%s", fragment, sql)
		}
	}

	if strings.Contains(sql, "client_id bigint NOT NULL") {
		t.Error("client_id must be nullable")
	}
}

func TestCreateTableSQLDefaults(t *testing.T) {
	sql := CreateTableSQL(&Products)

	if !strings.Contains(sql, "active boolean NOT NULL DEFAULT true") {
		t.Errorf("missing active default:\n%s", sql)
	}
	if !strings.Contains(sql, "created_at timestamptz NOT NULL DEFAULT NOW()") {
		t.Errorf("missing created_at default:\n%s", sql)
	}
}

func TestDropTableSQL(t *testing.T) {
	if got := DropTableSQL(&Sales); got != "DROP TABLE IF EXISTS sales CASCADE;" {
		t.Errorf("DropTableSQL = %q", got)
	}
}

func TestCreateIndexSQL(t *testing.T) {
	tests := []struct {
		name  string
		table string
		idx   IndexMetadata
		want  string
	}{
		{
			name:  "single column",
			table: TableSales,
			idx:   IndexMetadata{Name: "idx_sales_date", Columns: []string{"sale_date"}},
			want:  "CREATE INDEX IF NOT EXISTS idx_sales_date ON sales (sale_date);",
		},
		{
			name:  "composite",
			table: TableSales,
			idx:   IndexMetadata{Name: "idx_sales_date_store", Columns: []string{"sale_date", "store_id"}},
			want:  "CREATE INDEX IF NOT EXISTS idx_sales_date_store ON sales (sale_date, store_id);",
		},
		{
			name:  "expression",
			table: TableProducts,
			idx:   IndexMetadata{Name: "idx_products_name", Expression: "lower(name)"},
			want:  "CREATE INDEX IF NOT EXISTS idx_products_name ON products (lower(name));",
		},
		{
			name:  "unique",
			table: TableClients,
			idx:   IndexMetadata{Name: "idx_clients_code", Columns: []string{"code"}, Unique: true},
			want:  "CREATE UNIQUE INDEX IF NOT EXISTS idx_clients_code ON clients (code);",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CreateIndexSQL(tt.table, tt.idx); got != tt.want {
				t.Errorf("CreateIndexSQL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInsertSQL(t *testing.T) {
	got := InsertSQL(&Products, []string{"name", "category", "base_price"})
	want := "INSERT INTO products (name, category, base_price) VALUES ($1, $2, $3)"
	if got != want {
		t.Errorf("InsertSQL = %q, want %q", got, want)
	}
}

func TestTablesOrderRespectsReferences(t *testing.T) {
	tables := Tables()
	if len(tables) != 5 {
		t.Fatalf("Tables() returned %d tables, want 5", len(tables))
	}

	pos := make(map[string]int)
	for i, table := range tables {
		pos[table.Name] = i
	}

	for _, fk := range Sales.ForeignKeys {
		if pos[fk.ReferencedTable] >= pos[TableSales] {
			t.Errorf("referenced table %s must precede sales", fk.ReferencedTable)
		}
	}
}

func TestColumnNames(t *testing.T) {
	names := Sales.ColumnNames()
	if len(names) != len(Sales.Columns) {
		t.Fatalf("ColumnNames() = %d names, want %d", len(names), len(Sales.Columns))
	}
	if names[0] != "id" || names[1] != "sale_date" {
		t.Errorf("unexpected leading columns: %v", names[:2])
	}
}
