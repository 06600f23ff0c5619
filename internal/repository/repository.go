package repository

import (
	"context"
	"time"

	"garmentloop-backend/internal/domain"
)

type ProductRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Product, error)
	GetVariantByID(ctx context.Context, id int32) (*domain.ProductVariant, error)
	GetCurrentPricing(ctx context.Context, productID int32) (*domain.PricingSnapshot, error)
}

// StockRepository holds the two stock-accounting conventions. The rental
// path only ever moves stock_allocated (ReserveForRental/ReleaseRentalHold);
// the sale path decrements stock_quantity directly (DecrementForSale). Each
// operation is a single atomic UPDATE, never read-then-write.
type StockRepository interface {
	ReserveForRental(ctx context.Context, variantID, qty int32) error
	ReleaseRentalHold(ctx context.Context, variantID, qty int32) error
	AddStock(ctx context.Context, variantID, qty int32) error
	DecrementForSale(ctx context.Context, variantID, qty int32) error
}

type RentalRepository interface {
	// CreateWithOrder inserts the order and its rental in one SERIALIZABLE
	// transaction, re-counting overlaps inside it. Returns ErrNotAvailable
	// when the in-transaction recheck finds an overlap and ErrTxConflict
	// when a concurrent booking forces a serialization failure.
	CreateWithOrder(ctx context.Context, order *domain.Order, rental *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	// Update persists all mutable rental fields guarded by the version
	// column; returns ErrVersionConflict when the row moved underneath.
	Update(ctx context.Context, rental *domain.Rental) error
	CountOverlapping(ctx context.Context, productID int32, variantID *int32, start, end time.Time, excludeRentalID int32) (int32, error)
	ListByUser(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)
}

type OrderRepository interface {
	// CreateWithItems inserts the order and its items, decrements sale
	// stock per line and clears the user's cart, all in one transaction.
	CreateWithItems(ctx context.Context, order *domain.Order, items []domain.OrderItem) error
	GetByID(ctx context.Context, id int32) (*domain.Order, error)
	GetItems(ctx context.Context, orderID int32) ([]domain.OrderItem, error)
	ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Order, int32, error)
	// Cancel marks the order cancelled and, in the same transaction,
	// restocks sale items or cancels the attached rental.
	Cancel(ctx context.Context, order *domain.Order) error
}

type CartRepository interface {
	ListLines(ctx context.Context, userID int32) ([]domain.CartLine, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
