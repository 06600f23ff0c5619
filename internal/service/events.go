package service

import (
	"context"
	"fmt"

	"garmentloop-backend/internal/domain"
	"garmentloop-backend/internal/logger"
	"garmentloop-backend/internal/repository"
)

// notifier is the in-process event publisher: an in-app notification row
// plus an email per event. Both are best-effort; a booking or order never
// fails because a notification did.
type notifier struct {
	userRepo repository.UserRepository
	noteRepo repository.NotificationRepository
	emailSvc EmailService
}

func NewEventPublisher(
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) EventPublisher {
	return &notifier{userRepo: userRepo, noteRepo: noteRepo, emailSvc: emailSvc}
}

func (n *notifier) RentalBooked(ctx context.Context, rt *domain.Rental) {
	n.notify(ctx, rt.UserID, "Rental Booked",
		fmt.Sprintf("Your rental from %s to %s is booked", rt.StartDate.Format("2006-01-02"), rt.EndDate.Format("2006-01-02")),
		map[string]string{"type": "RENTAL_BOOKED", "rental_id": fmt.Sprintf("%d", rt.ID)},
		func(email, name string) error {
			return n.emailSvc.SendBookingConfirmation(ctx, email, name, rt)
		})
}

func (n *notifier) RentalExtended(ctx context.Context, rt *domain.Rental) {
	n.notify(ctx, rt.UserID, "Rental Extended",
		fmt.Sprintf("Your rental now ends on %s", rt.EndDate.Format("2006-01-02")),
		map[string]string{"type": "RENTAL_EXTENDED", "rental_id": fmt.Sprintf("%d", rt.ID)},
		func(email, name string) error {
			return n.emailSvc.SendExtensionConfirmation(ctx, email, name, rt)
		})
}

func (n *notifier) RentalReturned(ctx context.Context, rt *domain.Rental) {
	n.notify(ctx, rt.UserID, "Return Processed",
		fmt.Sprintf("Your return was processed; deposit refund is %d cents", rt.RefundCents),
		map[string]string{"type": "RENTAL_RETURNED", "rental_id": fmt.Sprintf("%d", rt.ID)},
		func(email, name string) error {
			return n.emailSvc.SendReturnReceipt(ctx, email, name, rt)
		})
}

func (n *notifier) OrderPlaced(ctx context.Context, o *domain.Order) {
	n.notify(ctx, o.UserID, "Order Placed",
		fmt.Sprintf("Order %s was placed", o.OrderNumber),
		map[string]string{"type": "ORDER_PLACED", "order_id": fmt.Sprintf("%d", o.ID)},
		func(email, name string) error {
			return n.emailSvc.SendOrderConfirmation(ctx, email, name, o)
		})
}

func (n *notifier) OrderCancelled(ctx context.Context, o *domain.Order) {
	n.notify(ctx, o.UserID, "Order Cancelled",
		fmt.Sprintf("Order %s was cancelled", o.OrderNumber),
		map[string]string{"type": "ORDER_CANCELLED", "order_id": fmt.Sprintf("%d", o.ID)},
		func(email, name string) error {
			return n.emailSvc.SendOrderCancellation(ctx, email, name, o)
		})
}

func (n *notifier) notify(ctx context.Context, userID int32, title, message string, attrs map[string]string, send func(email, name string) error) {
	note := &domain.Notification{
		UserID:     userID,
		Title:      title,
		Message:    message,
		Attributes: attrs,
	}
	if err := n.noteRepo.Create(ctx, note); err != nil {
		logger.ErrorContext(ctx, "Failed to create notification", "user_id", userID, "title", title, "error", err)
	}

	user, err := n.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load notification recipient", "user_id", userID, "error", err)
		return
	}
	if err := send(user.Email, user.Name); err != nil {
		logger.ErrorContext(ctx, "Failed to send notification email", "user_id", userID, "title", title, "error", err)
	}
}
