package postgres

import (
	"context"
	"database/sql"
	"errors"

	"garmentloop-backend/internal/domain"
	"garmentloop-backend/internal/repository"
)

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	p := &domain.Product{}
	query := `SELECT id, name, description, category, is_rentable, is_sellable, status, created_on, deleted_on
	          FROM products WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.IsRentable, &p.IsSellable,
		&p.Status, &p.CreatedOn, &p.DeletedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) GetVariantByID(ctx context.Context, id int32) (*domain.ProductVariant, error) {
	v := &domain.ProductVariant{}
	query := `SELECT id, product_id, sku, size, color, stock_quantity, stock_allocated
	          FROM product_variants WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.ProductID, &v.SKU, &v.Size, &v.Color, &v.StockQuantity, &v.StockAllocated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrVariantNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// GetCurrentPricing returns the most recent pricing row in effect now.
func (r *productRepository) GetCurrentPricing(ctx context.Context, productID int32) (*domain.PricingSnapshot, error) {
	s := &domain.PricingSnapshot{}
	query := `SELECT id, product_id, daily_rate_cents, security_deposit_cents, sale_price_cents, effective_from
	          FROM product_pricing
	          WHERE product_id = $1 AND effective_from <= NOW()
	          ORDER BY effective_from DESC LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, productID).Scan(
		&s.ID, &s.ProductID, &s.DailyRateCents, &s.SecurityDepositCents, &s.SalePriceCents, &s.EffectiveFrom)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPricingMissing
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
