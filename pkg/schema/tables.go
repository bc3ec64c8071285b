package schema

// Table and column names are fixed identifiers; the reporting tool binds
// to them directly.
const (
	TableProducts       = "products"
	TableClients        = "clients"
	TablePaymentMethods = "payment_methods"
	TableStores         = "stores"
	TableSales          = "sales"
)

// Products holds one row per distinct product name.
var Products = TableMetadata{
	Name: TableProducts,
	Columns: []ColumnMetadata{
		{Name: "id", SQLType: "bigserial"},
		{Name: "name", SQLType: "text"},
		{Name: "category", SQLType: "text", Nullable: true},
		{Name: "base_price", SQLType: "numeric(10,2)", Nullable: true},
		{Name: "active", SQLType: "boolean", Default: defaultExpr("true")},
		{Name: "created_at", SQLType: "timestamptz", Default: defaultExpr("NOW()")},
		{Name: "updated_at", SQLType: "timestamptz", Default: defaultExpr("NOW()")},
	},
	PrimaryKey: &PrimaryKeyMetadata{Name: "products_pkey", Columns: []string{"id"}},
	Indexes: []IndexMetadata{
		{Name: "idx_products_name", Expression: "lower(name)"},
	},
}

// Clients holds one row per distinct anonymous client code. The purchase
// statistics columns are a materialized view over sales, rewritten by the
// aggregation pass and never authored directly.
var Clients = TableMetadata{
	Name: TableClients,
	Columns: []ColumnMetadata{
		{Name: "id", SQLType: "bigserial"},
		{Name: "code", SQLType: "text"},
		{Name: "client_type", SQLType: "text", Nullable: true},
		{Name: "first_purchase_at", SQLType: "date", Nullable: true},
		{Name: "last_purchase_at", SQLType: "date", Nullable: true},
		{Name: "purchase_count", SQLType: "integer", Default: defaultExpr("0")},
		{Name: "total_spent", SQLType: "numeric(10,2)", Default: defaultExpr("0")},
		{Name: "created_at", SQLType: "timestamptz", Default: defaultExpr("NOW()")},
	},
	PrimaryKey: &PrimaryKeyMetadata{Name: "clients_pkey", Columns: []string{"id"}},
	Indexes: []IndexMetadata{
		{Name: "idx_clients_code", Columns: []string{"code"}},
	},
}

// PaymentMethods holds one row per distinct payment type.
var PaymentMethods = TableMetadata{
	Name: TablePaymentMethods,
	Columns: []ColumnMetadata{
		{Name: "id", SQLType: "bigserial"},
		{Name: "pay_type", SQLType: "text"},
		{Name: "description", SQLType: "text", Nullable: true},
		{Name: "active", SQLType: "boolean", Default: defaultExpr("true")},
	},
	PrimaryKey: &PrimaryKeyMetadata{Name: "payment_methods_pkey", Columns: []string{"id"}},
	Indexes: []IndexMetadata{
		{Name: "idx_payment_methods_type", Expression: "lower(pay_type)"},
	},
}

// Stores holds one row per distinct store name.
var Stores = TableMetadata{
	Name: TableStores,
	Columns: []ColumnMetadata{
		{Name: "id", SQLType: "bigserial"},
		{Name: "name", SQLType: "text"},
		{Name: "address", SQLType: "text", Nullable: true},
		{Name: "city", SQLType: "text", Nullable: true},
		{Name: "active", SQLType: "boolean", Default: defaultExpr("true")},
		{Name: "opened_at", SQLType: "date", Nullable: true},
		{Name: "created_at", SQLType: "timestamptz", Default: defaultExpr("NOW()")},
	},
	PrimaryKey: &PrimaryKeyMetadata{Name: "stores_pkey", Columns: []string{"id"}},
	Indexes: []IndexMetadata{
		{Name: "idx_stores_name", Expression: "lower(name)"},
	},
}

// Sales holds one row per imported transaction. Client is nullable;
// anonymous sales carry no client reference.
var Sales = TableMetadata{
	Name: TableSales,
	Columns: []ColumnMetadata{
		{Name: "id", SQLType: "bigserial"},
		{Name: "sale_date", SQLType: "date"},
		{Name: "sold_at", SQLType: "timestamptz"},
		{Name: "time_of_day", SQLType: "time", Nullable: true},
		{Name: "product_id", SQLType: "bigint"},
		{Name: "payment_method_id", SQLType: "bigint"},
		{Name: "client_id", SQLType: "bigint", Nullable: true},
		{Name: "store_id", SQLType: "bigint"},
		{Name: "unit_price", SQLType: "numeric(10,2)"},
		{Name: "quantity", SQLType: "integer", Default: defaultExpr("1")},
		{Name: "total_amount", SQLType: "numeric(10,2)"},
		{Name: "day_period", SQLType: "text", Nullable: true},
		{Name: "weekday_name", SQLType: "text", Nullable: true},
		{Name: "month_name", SQLType: "text", Nullable: true},
		{Name: "weekday_index", SQLType: "integer", Nullable: true},
		{Name: "month_index", SQLType: "integer", Nullable: true},
		{Name: "created_at", SQLType: "timestamptz", Default: defaultExpr("NOW()")},
	},
	PrimaryKey: &PrimaryKeyMetadata{Name: "sales_pkey", Columns: []string{"id"}},
	ForeignKeys: []ForeignKeyMetadata{
		{
			Name:              "fk_sales_product",
			Columns:           []string{"product_id"},
			ReferencedTable:   TableProducts,
			ReferencedColumns: []string{"id"},
		},
		{
			Name:              "fk_sales_payment_method",
			Columns:           []string{"payment_method_id"},
			ReferencedTable:   TablePaymentMethods,
			ReferencedColumns: []string{"id"},
		},
		{
			Name:              "fk_sales_client",
			Columns:           []string{"client_id"},
			ReferencedTable:   TableClients,
			ReferencedColumns: []string{"id"},
		},
		{
			Name:              "fk_sales_store",
			Columns:           []string{"store_id"},
			ReferencedTable:   TableStores,
			ReferencedColumns: []string{"id"},
		},
	},
	Indexes: []IndexMetadata{
		{Name: "idx_sales_date", Columns: []string{"sale_date"}},
		{Name: "idx_sales_sold_at", Columns: []string{"sold_at"}},
		{Name: "idx_sales_product", Columns: []string{"product_id"}},
		{Name: "idx_sales_client", Columns: []string{"client_id"}},
		{Name: "idx_sales_store", Columns: []string{"store_id"}},
		{Name: "idx_sales_payment_method", Columns: []string{"payment_method_id"}},
		{Name: "idx_sales_month", Columns: []string{"month_index"}},
		{Name: "idx_sales_date_store", Columns: []string{"sale_date", "store_id"}},
		{Name: "idx_sales_product_date", Columns: []string{"product_id", "sale_date"}},
	},
}

// Tables returns all tables in creation order. Referenced tables come
// before sales so foreign keys can be declared at creation time.
func Tables() []TableMetadata {
	return []TableMetadata{Clients, Products, PaymentMethods, Stores, Sales}
}
