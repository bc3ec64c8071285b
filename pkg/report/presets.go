package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dataroast/coffeesales/pkg/salesdb"
	"github.com/dataroast/coffeesales/pkg/schema"
)

// Preset is a canned aggregate query over the sales schema.
type Preset struct {
	ID          int
	Name        string
	Description string
	SQL         string
}

// Presets returns the canned queries in menu order.
func Presets() []Preset {
	return []Preset{
		{
			ID:          1,
			Name:        "Recent sales",
			Description: "Latest 20 sales with product, store, and payment names",
			SQL: `SELECT s.sale_date, s.time_of_day, p.name AS product, st.name AS store,
       pm.pay_type AS payment, s.quantity, s.total_amount
FROM sales s
JOIN products p ON s.product_id = p.id
JOIN stores st ON s.store_id = st.id
JOIN payment_methods pm ON s.payment_method_id = pm.id
ORDER BY s.sold_at DESC
LIMIT 20`,
		},
		{
			ID:          2,
			Name:        "Sales by product",
			Description: "Count, quantity, and revenue per product",
			SQL: `SELECT p.name, p.category, COUNT(*) AS sales, SUM(s.quantity) AS units,
       SUM(s.total_amount) AS revenue
FROM sales s
JOIN products p ON s.product_id = p.id
GROUP BY p.id, p.name, p.category
ORDER BY revenue DESC`,
		},
		{
			ID:          3,
			Name:        "Daily totals",
			Description: "Sales count and revenue per day",
			SQL: `SELECT sale_date, COUNT(*) AS sales, SUM(total_amount) AS revenue
FROM sales
GROUP BY sale_date
ORDER BY sale_date`,
		},
		{
			ID:          4,
			Name:        "Top sellers",
			Description: "Ten best products by revenue",
			SQL: `SELECT p.name, COUNT(*) AS sales, SUM(s.total_amount) AS revenue
FROM sales s
JOIN products p ON s.product_id = p.id
GROUP BY p.id, p.name
ORDER BY revenue DESC
LIMIT 10`,
		},
		{
			ID:          5,
			Name:        "Monthly trends",
			Description: "Revenue per calendar month",
			SQL: `SELECT month_name, month_index, COUNT(*) AS sales, SUM(total_amount) AS revenue
FROM sales
GROUP BY month_index, month_name
ORDER BY month_index`,
		},
		{
			ID:          6,
			Name:        "Client analysis",
			Description: "Clients ranked by aggregated spend",
			SQL: `SELECT code, client_type, purchase_count, total_spent,
       first_purchase_at, last_purchase_at
FROM clients
WHERE purchase_count > 0
ORDER BY total_spent DESC
LIMIT 20`,
		},
		{
			ID:          7,
			Name:        "Store performance",
			Description: "Sales count and revenue per store",
			SQL: `SELECT st.name, st.city, COUNT(s.id) AS sales, COALESCE(SUM(s.total_amount), 0) AS revenue
FROM stores st
LEFT JOIN sales s ON st.id = s.store_id
GROUP BY st.id, st.name, st.city
ORDER BY revenue DESC`,
		},
		{
			ID:          8,
			Name:        "Payment mix",
			Description: "Sales count and revenue per payment method",
			SQL: `SELECT pm.pay_type, COUNT(*) AS sales, SUM(s.total_amount) AS revenue
FROM sales s
JOIN payment_methods pm ON s.payment_method_id = pm.id
GROUP BY pm.id, pm.pay_type
ORDER BY sales DESC`,
		},
		{
			ID:          9,
			Name:        "Time of day",
			Description: "Sales distribution across day periods",
			SQL: `SELECT day_period, COUNT(*) AS sales, SUM(total_amount) AS revenue,
       ROUND(AVG(total_amount), 2) AS avg_sale
FROM sales
GROUP BY day_period
ORDER BY CASE day_period WHEN 'Morning' THEN 1 WHEN 'Afternoon' THEN 2 ELSE 3 END`,
		},
		{
			ID:          10,
			Name:        "Category analysis",
			Description: "Revenue per product category",
			SQL: `SELECT COALESCE(p.category, 'Uncategorized') AS category,
       COUNT(*) AS sales, SUM(s.total_amount) AS revenue
FROM sales s
JOIN products p ON s.product_id = p.id
GROUP BY p.category
ORDER BY revenue DESC`,
		},
	}
}

// PresetByID looks up a preset by its menu number.
func PresetByID(id int) (Preset, bool) {
	for _, p := range Presets() {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// Result is a generic tabular query result rendered as strings.
type Result struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ValidateReadOnly rejects anything but a single SELECT (or WITH)
// statement. The query surface is strictly read-only.
func ValidateReadOnly(sql string) error {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sql), ";"))
	if trimmed == "" {
		return fmt.Errorf("%w: empty statement", salesdb.ErrReadOnly)
	}
	if strings.Contains(trimmed, ";") {
		return fmt.Errorf("%w: multiple statements", salesdb.ErrReadOnly)
	}

	upper := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return fmt.Errorf("%w: statement must start with SELECT", salesdb.ErrReadOnly)
	}
	return nil
}

// Run executes a read-only query and renders every value as a string.
func Run(ctx context.Context, pool *pgxpool.Pool, sql string) (*Result, error) {
	if err := ValidateReadOnly(sql); err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, sql)
	if err != nil {
		return nil, &salesdb.QueryError{Query: sql, Err: err}
	}
	defer rows.Close()

	result := &Result{}
	for _, field := range rows.FieldDescriptions() {
		result.Columns = append(result.Columns, field.Name)
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		rendered := make([]string, len(values))
		for i, v := range values {
			rendered[i] = renderValue(v)
		}
		result.Rows = append(result.Rows, rendered)
	}

	return result, rows.Err()
}

// TableInfo describes one table for the schema listing.
type TableInfo struct {
	Name     string   `json:"name"`
	Columns  []string `json:"columns"`
	RowCount int64    `json:"row_count"`
}

// ListTables reports every schema table with its columns and row count.
func ListTables(ctx context.Context, pool *pgxpool.Pool) ([]TableInfo, error) {
	var infos []TableInfo
	for _, table := range schema.Tables() {
		info := TableInfo{Name: table.Name, Columns: table.ColumnNames()}
		if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table.Name).Scan(&info.RowCount); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table.Name, err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func renderValue(v interface{}) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
