package importer

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// aggregateClientsSQL recomputes the derived client statistics from the
// current sale set. It touches only clients with at least one sale, and
// rerunning it with no intervening sale changes is a no-op.
const aggregateClientsSQL = `
UPDATE clients SET
    purchase_count = (
        SELECT COUNT(*)
        FROM sales
        WHERE sales.client_id = clients.id
    ),
    total_spent = (
        SELECT COALESCE(SUM(total_amount), 0)
        FROM sales
        WHERE sales.client_id = clients.id
    ),
    first_purchase_at = (
        SELECT MIN(sale_date)
        FROM sales
        WHERE sales.client_id = clients.id
    ),
    last_purchase_at = (
        SELECT MAX(sale_date)
        FROM sales
        WHERE sales.client_id = clients.id
    )
WHERE id IN (SELECT DISTINCT client_id FROM sales WHERE client_id IS NOT NULL)
`

// AggregateClients recomputes client purchase statistics. Returns the
// number of client rows updated.
func AggregateClients(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	tag, err := pool.Exec(ctx, aggregateClientsSQL)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate client statistics: %w", err)
	}
	return tag.RowsAffected(), nil
}
