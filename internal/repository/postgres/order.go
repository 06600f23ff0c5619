package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"garmentloop-backend/internal/domain"
	"garmentloop-backend/internal/repository"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, order_number, user_id, type, status, subtotal_cents, tax_cents,
	shipping_cents, discount_cents, total_cents, shipping_address, billing_address,
	payment_method, notes, created_on, updated_on`

// CreateWithItems commits the whole sale as one transaction: order row,
// item rows, per-line stock decrement and cart clearing. Stock never drops
// without the order committing, and vice versa.
func (r *orderRepository) CreateWithItems(ctx context.Context, order *domain.Order, items []domain.OrderItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	orderQuery := `INSERT INTO orders (order_number, user_id, type, status, subtotal_cents, tax_cents,
	               shipping_cents, discount_cents, total_cents, shipping_address, billing_address,
	               payment_method, notes, created_on, updated_on)
	               VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	err = tx.QueryRowContext(ctx, orderQuery,
		order.OrderNumber, order.UserID, order.Type, order.Status, order.SubtotalCents, order.TaxCents,
		order.ShippingCents, order.DiscountCents, order.TotalCents, order.ShippingAddress,
		order.BillingAddress, order.PaymentMethod, order.Notes, now, now).Scan(&order.ID)
	if err != nil {
		return err
	}

	itemQuery := `INSERT INTO order_items (order_id, product_id, variant_id, quantity, unit_price_cents, line_total_cents)
	              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	for i := range items {
		items[i].OrderID = order.ID
		if items[i].VariantID != nil {
			if err := decrementForSale(ctx, tx, *items[i].VariantID, items[i].Quantity); err != nil {
				return err
			}
		}
		err = tx.QueryRowContext(ctx, itemQuery,
			items[i].OrderID, items[i].ProductID, items[i].VariantID,
			items[i].Quantity, items[i].UnitPriceCents, items[i].LineTotalCents).Scan(&items[i].ID)
		if err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, order.UserID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	order.CreatedOn = now
	order.UpdatedOn = now
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	o := &domain.Order{}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.Type, &o.Status, &o.SubtotalCents, &o.TaxCents,
		&o.ShippingCents, &o.DiscountCents, &o.TotalCents, &o.ShippingAddress, &o.BillingAddress,
		&o.PaymentMethod, &o.Notes, &o.CreatedOn, &o.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) GetItems(ctx context.Context, orderID int32) ([]domain.OrderItem, error) {
	query := `SELECT id, order_id, product_id, variant_id, quantity, unit_price_cents, line_total_cents
	          FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.VariantID, &it.Quantity, &it.UnitPriceCents, &it.LineTotalCents); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Order, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM orders WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.UserID, &o.Type, &o.Status, &o.SubtotalCents, &o.TaxCents,
			&o.ShippingCents, &o.DiscountCents, &o.TotalCents, &o.ShippingAddress, &o.BillingAddress,
			&o.PaymentMethod, &o.Notes, &o.CreatedOn, &o.UpdatedOn); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, count, rows.Err()
}

// Cancel flips the order to CANCELLED and undoes its side effects in the
// same transaction: sale orders restock their lines, rental orders cancel
// the attached rental so the dates free up.
func (r *orderRepository) Cancel(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = 'CANCELLED', updated_on = $1 WHERE id = $2 AND status IN ('PENDING', 'CONFIRMED')`,
		time.Now(), order.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrOrderNotCancellable
	}

	switch order.Type {
	case domain.OrderTypeSale:
		_, err = tx.ExecContext(ctx,
			`UPDATE product_variants v
			 SET stock_quantity = v.stock_quantity + oi.quantity
			 FROM order_items oi
			 WHERE oi.order_id = $1 AND oi.variant_id = v.id`, order.ID)
		if err != nil {
			return err
		}
	case domain.OrderTypeRental:
		_, err = tx.ExecContext(ctx,
			`UPDATE rentals
			 SET status = 'CANCELLED', version = version + 1, updated_on = $1
			 WHERE order_id = $2 AND status NOT IN ('CANCELLED', 'COMPLETED', 'RETURNED')`,
			time.Now(), order.ID)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown order type %q", order.Type)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	order.Status = domain.OrderStatusCancelled
	return nil
}
