package postgres

import (
	"context"
	"database/sql"

	"garmentloop-backend/internal/domain"
	"garmentloop-backend/internal/repository"
)

type cartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

// ListLines loads the user's cart joined with product state, variant stock
// and the price currently in effect, in one round trip. A missing price
// row leaves UnitPriceCents nil for the service to reject.
func (r *cartRepository) ListLines(ctx context.Context, userID int32) ([]domain.CartLine, error) {
	query := `SELECT ci.id, ci.product_id, p.name, p.status, (p.deleted_on IS NOT NULL),
	                 ci.variant_id, (v.id IS NOT NULL), COALESCE(v.stock_quantity, 0), ci.quantity, pr.sale_price_cents
	          FROM cart_items ci
	          JOIN products p ON p.id = ci.product_id
	          LEFT JOIN product_variants v ON v.id = ci.variant_id
	          LEFT JOIN LATERAL (
	              SELECT sale_price_cents FROM product_pricing pp
	              WHERE pp.product_id = ci.product_id AND pp.effective_from <= NOW()
	              ORDER BY pp.effective_from DESC LIMIT 1
	          ) pr ON true
	          WHERE ci.user_id = $1
	          ORDER BY ci.id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var ln domain.CartLine
		if err := rows.Scan(&ln.CartItemID, &ln.ProductID, &ln.ProductName, &ln.ProductStatus,
			&ln.ProductDeleted, &ln.VariantID, &ln.VariantFound, &ln.StockQuantity, &ln.Quantity, &ln.UnitPriceCents); err != nil {
			return nil, err
		}
		lines = append(lines, ln)
	}
	return lines, rows.Err()
}
