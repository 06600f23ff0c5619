package service

import (
	"context"
	"time"

	"garmentloop-backend/internal/domain"
)

type RentalService interface {
	CheckAvailability(ctx context.Context, productID int32, variantID *int32, start, end time.Time) (bool, error)
	CreateRental(ctx context.Context, userID, productID int32, variantID *int32, start, end time.Time, delivery domain.DeliveryType) (*domain.Rental, error)
	ReturnRental(ctx context.Context, rentalID, userID int32) (*domain.Rental, error)
	ExtendRental(ctx context.Context, rentalID, userID int32, newEndDate time.Time) (*domain.Rental, error)
	GetRental(ctx context.Context, userID, rentalID int32) (*domain.Rental, error)
	ListUserRentals(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)

	// Admin paths: lifecycle transitions and inspection charges.
	UpdateRentalStatus(ctx context.Context, rentalID int32, next domain.RentalStatus) (*domain.Rental, error)
	RecordDamageCharges(ctx context.Context, rentalID, amountCents int32) (*domain.Rental, error)
}

type OrderService interface {
	CreateOrder(ctx context.Context, userID int32, shippingAddress, billingAddress, paymentMethod, notes string) (*domain.Order, error)
	GetOrder(ctx context.Context, userID, orderID int32) (*domain.Order, []domain.OrderItem, error)
	ListUserOrders(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Order, int32, error)
	CancelOrder(ctx context.Context, userID, orderID int32) (*domain.Order, error)
}

type InventoryService interface {
	GetVariant(ctx context.Context, variantID int32) (*domain.ProductVariant, error)
	AddStock(ctx context.Context, variantID, qty int32) error
	ReserveForRental(ctx context.Context, variantID, qty int32) error
	ReleaseRentalHold(ctx context.Context, variantID, qty int32) error
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

// EventPublisher delivers booking/order events to the notification side.
// Implementations are fire-and-forget: failures are logged and never
// propagate into the mutation that triggered them.
type EventPublisher interface {
	RentalBooked(ctx context.Context, rental *domain.Rental)
	RentalExtended(ctx context.Context, rental *domain.Rental)
	RentalReturned(ctx context.Context, rental *domain.Rental)
	OrderPlaced(ctx context.Context, order *domain.Order)
	OrderCancelled(ctx context.Context, order *domain.Order)
}

type EmailService interface {
	SendBookingConfirmation(ctx context.Context, email, name string, rental *domain.Rental) error
	SendExtensionConfirmation(ctx context.Context, email, name string, rental *domain.Rental) error
	SendReturnReceipt(ctx context.Context, email, name string, rental *domain.Rental) error
	SendOrderConfirmation(ctx context.Context, email, name string, order *domain.Order) error
	SendOrderCancellation(ctx context.Context, email, name string, order *domain.Order) error
	SendOverdueReminder(ctx context.Context, email, name string, rental *domain.Rental) error
}
