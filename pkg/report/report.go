// Package report issues read-only aggregate queries against the five
// sales tables. It binds only to the column names and relationships fixed
// by the schema package, never to insertion order or resolver state.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dataroast/coffeesales/pkg/schema"
)

// Overview holds headline counts for the whole database.
type Overview struct {
	Sales          int64      `json:"sales"`
	Products       int64      `json:"products"`
	Clients        int64      `json:"clients"`
	Stores         int64      `json:"stores"`
	PaymentMethods int64      `json:"payment_methods"`
	TotalRevenue   float64    `json:"total_revenue"`
	AverageSale    float64    `json:"average_sale"`
	FirstSale      *time.Time `json:"first_sale,omitempty"`
	LastSale       *time.Time `json:"last_sale,omitempty"`
}

// ProductStat is one row of the top-products report.
type ProductStat struct {
	Name       string  `json:"name"`
	SalesCount int64   `json:"sales_count"`
	Revenue    float64 `json:"revenue"`
}

// ClientStat is one row of the top-clients report, read from the
// aggregated client statistics.
type ClientStat struct {
	Code      string  `json:"code"`
	Purchases int64   `json:"purchases"`
	Spent     float64 `json:"spent"`
}

// StoreStat is one row of the store-performance report.
type StoreStat struct {
	Name       string  `json:"name"`
	SalesCount int64   `json:"sales_count"`
	Revenue    float64 `json:"revenue"`
}

// MonthStat is one row of the monthly-trends report.
type MonthStat struct {
	Month      string  `json:"month"`
	MonthIndex int     `json:"month_index"`
	SalesCount int64   `json:"sales_count"`
	Revenue    float64 `json:"revenue"`
}

// GetOverview reads the headline counts and revenue summary.
func GetOverview(ctx context.Context, pool *pgxpool.Pool) (*Overview, error) {
	o := &Overview{}

	counts := map[string]*int64{
		schema.TableSales:          &o.Sales,
		schema.TableProducts:       &o.Products,
		schema.TableClients:        &o.Clients,
		schema.TableStores:         &o.Stores,
		schema.TablePaymentMethods: &o.PaymentMethods,
	}
	for table, dest := range counts {
		if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(dest); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
	}

	err := pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount), 0),
		       COALESCE(AVG(total_amount), 0),
		       MIN(sale_date),
		       MAX(sale_date)
		FROM sales
	`).Scan(&o.TotalRevenue, &o.AverageSale, &o.FirstSale, &o.LastSale)
	if err != nil {
		return nil, fmt.Errorf("failed to read sales summary: %w", err)
	}

	return o, nil
}

// TopProducts returns the highest-revenue products.
func TopProducts(ctx context.Context, pool *pgxpool.Pool, limit int) ([]ProductStat, error) {
	rows, err := pool.Query(ctx, `
		SELECT p.name,
		       COUNT(*) AS sales_count,
		       SUM(s.total_amount) AS revenue
		FROM sales s
		JOIN products p ON s.product_id = p.id
		GROUP BY p.id, p.name
		ORDER BY revenue DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}
	defer rows.Close()

	var stats []ProductStat
	for rows.Next() {
		var s ProductStat
		if err := rows.Scan(&s.Name, &s.SalesCount, &s.Revenue); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// TopClients returns the highest-spending clients, excluding clients with
// no recorded purchases.
func TopClients(ctx context.Context, pool *pgxpool.Pool, limit int) ([]ClientStat, error) {
	rows, err := pool.Query(ctx, `
		SELECT code, purchase_count, total_spent
		FROM clients
		WHERE purchase_count > 0
		ORDER BY total_spent DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top clients: %w", err)
	}
	defer rows.Close()

	var stats []ClientStat
	for rows.Next() {
		var s ClientStat
		if err := rows.Scan(&s.Code, &s.Purchases, &s.Spent); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// StorePerformance returns per-store sales counts and revenue, including
// stores with no sales.
func StorePerformance(ctx context.Context, pool *pgxpool.Pool) ([]StoreStat, error) {
	rows, err := pool.Query(ctx, `
		SELECT st.name,
		       COUNT(s.id) AS sales_count,
		       COALESCE(SUM(s.total_amount), 0) AS revenue
		FROM stores st
		LEFT JOIN sales s ON st.id = s.store_id
		GROUP BY st.id, st.name
		ORDER BY revenue DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query store performance: %w", err)
	}
	defer rows.Close()

	var stats []StoreStat
	for rows.Next() {
		var s StoreStat
		if err := rows.Scan(&s.Name, &s.SalesCount, &s.Revenue); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// MonthlyTrends returns sales counts and revenue per calendar month.
func MonthlyTrends(ctx context.Context, pool *pgxpool.Pool) ([]MonthStat, error) {
	rows, err := pool.Query(ctx, `
		SELECT month_name,
		       month_index,
		       COUNT(*) AS sales_count,
		       SUM(total_amount) AS revenue
		FROM sales
		GROUP BY month_index, month_name
		ORDER BY month_index
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly trends: %w", err)
	}
	defer rows.Close()

	var stats []MonthStat
	for rows.Next() {
		var s MonthStat
		if err := rows.Scan(&s.Month, &s.MonthIndex, &s.SalesCount, &s.Revenue); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
