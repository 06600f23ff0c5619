package postgres

import (
	"context"
	"database/sql"
	"errors"

	"garmentloop-backend/internal/domain"
	"garmentloop-backend/internal/repository"
)

type stockRepository struct {
	db *sql.DB
}

func NewStockRepository(db *sql.DB) repository.StockRepository {
	return &stockRepository{db: db}
}

// ReserveForRental holds qty units against pending rentals. The guard in
// the WHERE clause makes check and increment one atomic statement.
func (r *stockRepository) ReserveForRental(ctx context.Context, variantID, qty int32) error {
	query := `UPDATE product_variants
	          SET stock_allocated = stock_allocated + $1
	          WHERE id = $2 AND stock_quantity - stock_allocated >= $1`
	return r.guarded(ctx, query, variantID, qty, domain.ErrInsufficientStock)
}

// ReleaseRentalHold gives back a hold, clamped at zero.
func (r *stockRepository) ReleaseRentalHold(ctx context.Context, variantID, qty int32) error {
	query := `UPDATE product_variants
	          SET stock_allocated = GREATEST(stock_allocated - $1, 0)
	          WHERE id = $2`
	return r.guarded(ctx, query, variantID, qty, nil)
}

func (r *stockRepository) AddStock(ctx context.Context, variantID, qty int32) error {
	query := `UPDATE product_variants
	          SET stock_quantity = stock_quantity + $1
	          WHERE id = $2`
	return r.guarded(ctx, query, variantID, qty, nil)
}

// DecrementForSale permanently removes units from the pool when a sale
// completes, dropping any rental hold that can no longer be covered.
func (r *stockRepository) DecrementForSale(ctx context.Context, variantID, qty int32) error {
	return decrementForSale(ctx, r.db, variantID, qty)
}

// guarded runs a stock UPDATE and maps zero rows affected to either the
// missing-variant error or the supplied conflict error.
func (r *stockRepository) guarded(ctx context.Context, query string, variantID, qty int32, conflict error) error {
	res, err := r.db.ExecContext(ctx, query, qty, variantID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		if conflict == nil {
			// No guard on the statement, so zero rows means no such row.
			return domain.ErrVariantNotFound
		}
		return disambiguate(ctx, r.db, variantID, conflict)
	}
	return nil
}

// decrementForSale is shared with the order-creation transaction.
func decrementForSale(ctx context.Context, q interface {
	execer
	querier
}, variantID, qty int32) error {
	query := `UPDATE product_variants
	          SET stock_quantity = stock_quantity - $1,
	              stock_allocated = GREATEST(stock_allocated - $1, 0)
	          WHERE id = $2 AND stock_quantity >= $1`
	res, err := q.ExecContext(ctx, query, qty, variantID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return disambiguate(ctx, q, variantID, domain.ErrInsufficientStock)
	}
	return nil
}

// disambiguate tells a guard failure apart from a missing row.
func disambiguate(ctx context.Context, q querier, variantID int32, conflict error) error {
	var exists bool
	err := q.QueryRowContext(ctx, `SELECT true FROM product_variants WHERE id = $1`, variantID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrVariantNotFound
	}
	if err != nil {
		return err
	}
	return conflict
}
