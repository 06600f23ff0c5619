package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"garmentloop-backend/internal/domain"
	"garmentloop-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, order_id, user_id, product_id, variant_id, start_date, end_date,
	actual_return_date, rental_days, daily_rate_cents, total_rental_cents, security_deposit_cents,
	late_fee_cents, damage_charges_cents, refund_cents, status, deposit_status, delivery_type,
	is_extended, extension_count, version, created_on, updated_on`

// CreateWithOrder runs the booking insert at SERIALIZABLE isolation and
// repeats the overlap count inside the transaction, so two concurrent
// bookings for the same unit cannot both commit. A serialization failure
// surfaces as ErrTxConflict for the service to retry.
func (r *rentalRepository) CreateWithOrder(ctx context.Context, order *domain.Order, rental *domain.Rental) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	count, err := countOverlapping(ctx, tx, rental.ProductID, rental.VariantID, rental.StartDate, rental.EndDate, 0)
	if err != nil {
		return mapTxConflict(err)
	}
	if count > 0 {
		return domain.ErrNotAvailable
	}

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
		return mapTxConflict(err)
	}

	rental.OrderID = order.ID
	rentalQuery := `INSERT INTO rentals (order_id, user_id, product_id, variant_id, start_date, end_date,
	                rental_days, daily_rate_cents, total_rental_cents, security_deposit_cents, status,
	                deposit_status, delivery_type, version, created_on, updated_on)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 1, $14, $15) RETURNING id`
	err = tx.QueryRowContext(ctx, rentalQuery,
		rental.OrderID, rental.UserID, rental.ProductID, rental.VariantID, rental.StartDate, rental.EndDate,
		rental.RentalDays, rental.DailyRateCents, rental.TotalRentalCents, rental.SecurityDepositCents,
		rental.Status, rental.DepositStatus, rental.DeliveryType, now, now).Scan(&rental.ID)
	if err != nil {
		return mapTxConflict(err)
	}

	if err := tx.Commit(); err != nil {
		return mapTxConflict(err)
	}
	rental.Version = 1
	rental.CreatedOn = now
	rental.UpdatedOn = now
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRentalNotFound
	}
	return rt, err
}

// Update writes every mutable field and bumps the version column. The
// version predicate rejects writes against a row mutated since the read.
func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals
	          SET end_date = $1, actual_return_date = $2, rental_days = $3, total_rental_cents = $4,
	              late_fee_cents = $5, damage_charges_cents = $6, refund_cents = $7, status = $8,
	              deposit_status = $9, is_extended = $10, extension_count = $11,
	              version = version + 1, updated_on = $12
	          WHERE id = $13 AND version = $14`
	res, err := r.db.ExecContext(ctx, query,
		rt.EndDate, rt.ActualReturnDate, rt.RentalDays, rt.TotalRentalCents,
		rt.LateFeeCents, rt.DamageChargesCents, rt.RefundCents, rt.Status,
		rt.DepositStatus, rt.IsExtended, rt.ExtensionCount,
		time.Now(), rt.ID, rt.Version)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		var exists bool
		err := r.db.QueryRowContext(ctx, `SELECT true FROM rentals WHERE id = $1`, rt.ID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrRentalNotFound
		}
		if err != nil {
			return err
		}
		return domain.ErrVersionConflict
	}
	rt.Version++
	return nil
}

func (r *rentalRepository) CountOverlapping(ctx context.Context, productID int32, variantID *int32, start, end time.Time, excludeRentalID int32) (int32, error) {
	return countOverlapping(ctx, r.db, productID, variantID, start, end, excludeRentalID)
}

// countOverlapping counts non-terminal rentals for the same unit whose date
// interval intersects [start, end]. Boundaries are inclusive: a rental
// ending the day another starts still counts, since a garment cannot be
// handed to two renters the same day.
func countOverlapping(ctx context.Context, q querier, productID int32, variantID *int32, start, end time.Time, excludeRentalID int32) (int32, error) {
	query := `SELECT COUNT(*) FROM rentals
	          WHERE product_id = $1
	            AND variant_id IS NOT DISTINCT FROM $2
	            AND status NOT IN ('CANCELLED', 'COMPLETED', 'RETURNED')
	            AND id <> $3
	            AND start_date <= $5
	            AND end_date >= $4`
	var count int32
	err := q.QueryRowContext(ctx, query, productID, variantID, excludeRentalID, start, end).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *rentalRepository) ListByUser(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE user_id = $1`
	args := []interface{}{userID}
	argIdx := 2
	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, 0, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, count, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRental(row rowScanner) (*domain.Rental, error) {
	rt := &domain.Rental{}
	err := row.Scan(
		&rt.ID, &rt.OrderID, &rt.UserID, &rt.ProductID, &rt.VariantID, &rt.StartDate, &rt.EndDate,
		&rt.ActualReturnDate, &rt.RentalDays, &rt.DailyRateCents, &rt.TotalRentalCents, &rt.SecurityDepositCents,
		&rt.LateFeeCents, &rt.DamageChargesCents, &rt.RefundCents, &rt.Status, &rt.DepositStatus, &rt.DeliveryType,
		&rt.IsExtended, &rt.ExtensionCount, &rt.Version, &rt.CreatedOn, &rt.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// mapTxConflict folds Postgres serialization failures and exclusion
// violations into the retryable conflict error.
func mapTxConflict(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "23P01": // serialization_failure, exclusion_violation
			return fmt.Errorf("%w: %v", domain.ErrTxConflict, err)
		}
	}
	return err
}
