package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"garmentloop-backend/internal/domain"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{apiKey: apiKey, fromEmail: fromEmail, fromName: fromName}
}

func (s *emailService) send(to, toName, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendBookingConfirmation(ctx context.Context, email, name string, rt *domain.Rental) error {
	body := fmt.Sprintf("Hello %s,\n\nYour rental is booked from %s to %s (%d days).\nRental total: %s. Security deposit held: %s.\n\nThe Garmentloop Team",
		name, rt.StartDate.Format("2006-01-02"), rt.EndDate.Format("2006-01-02"), rt.RentalDays,
		formatCents(rt.TotalRentalCents), formatCents(rt.SecurityDepositCents))
	return s.send(email, name, "Rental Booking Confirmed", body)
}

func (s *emailService) SendExtensionConfirmation(ctx context.Context, email, name string, rt *domain.Rental) error {
	body := fmt.Sprintf("Hello %s,\n\nYour rental was extended and now ends on %s.\nUpdated rental total: %s.\n\nThe Garmentloop Team",
		name, rt.EndDate.Format("2006-01-02"), formatCents(rt.TotalRentalCents))
	return s.send(email, name, "Rental Extension Confirmed", body)
}

func (s *emailService) SendReturnReceipt(ctx context.Context, email, name string, rt *domain.Rental) error {
	body := fmt.Sprintf("Hello %s,\n\nWe received your return.\nLate fee: %s. Damage charges: %s. Deposit refund: %s.\n\nThe Garmentloop Team",
		name, formatCents(rt.LateFeeCents), formatCents(rt.DamageChargesCents), formatCents(rt.RefundCents))
	return s.send(email, name, "Return Processed", body)
}

func (s *emailService) SendOrderConfirmation(ctx context.Context, email, name string, o *domain.Order) error {
	body := fmt.Sprintf("Hello %s,\n\nOrder %s was placed.\nSubtotal: %s. Tax: %s. Total: %s.\n\nThe Garmentloop Team",
		name, o.OrderNumber, formatCents(o.SubtotalCents), formatCents(o.TaxCents), formatCents(o.TotalCents))
	return s.send(email, name, "Order Confirmation", body)
}

func (s *emailService) SendOrderCancellation(ctx context.Context, email, name string, o *domain.Order) error {
	body := fmt.Sprintf("Hello %s,\n\nOrder %s was cancelled.\n\nThe Garmentloop Team", name, o.OrderNumber)
	return s.send(email, name, "Order Cancelled", body)
}

func (s *emailService) SendOverdueReminder(ctx context.Context, email, name string, rt *domain.Rental) error {
	body := fmt.Sprintf("Hello %s,\n\nYour rental was due back on %s. Late fees accrue daily until it is returned.\n\nThe Garmentloop Team",
		name, rt.EndDate.Format("2006-01-02"))
	return s.send(email, name, "Rental Overdue", body)
}

func formatCents(cents int32) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
