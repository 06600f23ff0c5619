package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"garmentloop-backend/internal/domain"
	"garmentloop-backend/internal/logger"
	"garmentloop-backend/internal/pricing"
	"garmentloop-backend/internal/repository"
)

// RentalPolicy carries the tunable booking rules. Values come from
// configuration rather than package-level state.
type RentalPolicy struct {
	// LateFeePercent is the share of the daily rate charged per late day.
	LateFeePercent int32
	// BookingAttempts bounds retries when concurrent bookings collide.
	BookingAttempts int
}

type rentalService struct {
	rentalRepo   repository.RentalRepository
	productRepo  repository.ProductRepository
	availability *AvailabilityChecker
	events       EventPublisher
	policy       RentalPolicy
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	productRepo repository.ProductRepository,
	availability *AvailabilityChecker,
	events EventPublisher,
	policy RentalPolicy,
) RentalService {
	if policy.BookingAttempts < 1 {
		policy.BookingAttempts = 3
	}
	if policy.LateFeePercent <= 0 {
		policy.LateFeePercent = 50
	}
	return &rentalService{
		rentalRepo:   rentalRepo,
		productRepo:  productRepo,
		availability: availability,
		events:       events,
		policy:       policy,
	}
}

func (s *rentalService) CheckAvailability(ctx context.Context, productID int32, variantID *int32, start, end time.Time) (bool, error) {
	return s.availability.IsAvailable(ctx, productID, variantID, start, end, 0)
}

func (s *rentalService) CreateRental(ctx context.Context, userID, productID int32, variantID *int32, start, end time.Time, delivery domain.DeliveryType) (*domain.Rental, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.DeletedOn != nil {
		return nil, domain.ErrProductNotFound
	}
	if !product.IsRentable || product.Status != domain.ProductStatusActive {
		return nil, domain.ErrProductNotRentable
	}

	if variantID != nil {
		variant, err := s.productRepo.GetVariantByID(ctx, *variantID)
		if err != nil {
			return nil, err
		}
		if variant.ProductID != productID {
			return nil, domain.ErrVariantNotFound
		}
		if variant.Available() < 1 {
			return nil, domain.ErrOutOfStock
		}
	}

	available, err := s.availability.IsAvailable(ctx, productID, variantID, start, end, 0)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, domain.ErrNotAvailable
	}

	days := pricing.RentalDays(start, end)
	if days < 1 {
		return nil, domain.ErrInvalidDateRange
	}

	snapshot, err := s.productRepo.GetCurrentPricing(ctx, productID)
	if err != nil {
		return nil, err
	}
	total := pricing.RentalCost(snapshot.DailyRateCents, days)

	if delivery == "" {
		delivery = domain.DeliveryTypeStandard
	}

	order := &domain.Order{
		OrderNumber:   uuid.NewString(),
		UserID:        userID,
		Type:          domain.OrderTypeRental,
		Status:        domain.OrderStatusPending,
		SubtotalCents: total,
		TotalCents:    total + snapshot.SecurityDepositCents,
	}
	rental := &domain.Rental{
		UserID:               userID,
		ProductID:            productID,
		VariantID:            variantID,
		StartDate:            start,
		EndDate:              end,
		RentalDays:           days,
		DailyRateCents:       snapshot.DailyRateCents,
		TotalRentalCents:     total,
		SecurityDepositCents: snapshot.SecurityDepositCents,
		Status:               domain.RentalStatusBooked,
		DepositStatus:        domain.DepositStatusHeld,
		DeliveryType:         delivery,
	}

	// The repository re-checks availability inside a SERIALIZABLE
	// transaction; a concurrent booking shows up as ErrTxConflict and is
	// retried here before giving up as NotAvailable.
	for attempt := 1; ; attempt++ {
		err = s.rentalRepo.CreateWithOrder(ctx, order, rental)
		if !errors.Is(err, domain.ErrTxConflict) {
			break
		}
		if attempt >= s.policy.BookingAttempts {
			logger.WarnContext(ctx, "Booking conflicted repeatedly, giving up",
				"product_id", productID, "attempts", attempt)
			return nil, domain.ErrNotAvailable
		}
	}
	if err != nil {
		return nil, err
	}

	s.events.RentalBooked(ctx, rental)
	return rental, nil
}

func (s *rentalService) ReturnRental(ctx context.Context, rentalID, userID int32) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.UserID != userID {
		return nil, domain.ErrAccessDenied
	}
	switch rt.Status {
	case domain.RentalStatusCompleted, domain.RentalStatusReturned:
		return nil, domain.ErrAlreadyReturned
	case domain.RentalStatusCancelled:
		return nil, domain.ErrInvalidRentalState
	}

	now := time.Now()
	rt.ActualReturnDate = &now
	if now.After(rt.EndDate) {
		daysLate := pricing.DaysLate(rt.EndDate, now)
		rt.LateFeeCents = pricing.LateFee(rt.DailyRateCents, daysLate, s.policy.LateFeePercent)
	} else {
		rt.LateFeeCents = 0
	}
	rt.RefundCents = pricing.Refund(rt.SecurityDepositCents, rt.LateFeeCents, rt.DamageChargesCents)
	rt.DepositStatus = pricing.DepositStatusAfterReturn(rt.LateFeeCents, rt.DamageChargesCents)
	rt.Status = domain.RentalStatusReturned

	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return nil, err
	}

	s.events.RentalReturned(ctx, rt)
	return rt, nil
}

func (s *rentalService) ExtendRental(ctx context.Context, rentalID, userID int32, newEndDate time.Time) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.UserID != userID {
		return nil, domain.ErrAccessDenied
	}
	if rt.Status.IsTerminal() {
		return nil, domain.ErrInvalidRentalState
	}
	if !newEndDate.After(rt.EndDate) {
		return nil, domain.ErrInvalidDateRange
	}

	available, err := s.availability.IsAvailable(ctx, rt.ProductID, rt.VariantID, rt.EndDate, newEndDate, rt.ID)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, domain.ErrNotAvailable
	}

	additionalDays := pricing.RentalDays(rt.EndDate, newEndDate)
	additionalCost := pricing.RentalCost(rt.DailyRateCents, additionalDays)

	rt.EndDate = newEndDate
	rt.RentalDays += additionalDays
	rt.TotalRentalCents += additionalCost
	rt.IsExtended = true
	rt.ExtensionCount++

	// The version predicate in Update rejects the second of two racing
	// extensions; the loser surfaces as a Conflict for the caller.
	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return nil, err
	}

	s.events.RentalExtended(ctx, rt)
	return rt, nil
}

func (s *rentalService) GetRental(ctx context.Context, userID, rentalID int32) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.UserID != userID {
		return nil, domain.ErrAccessDenied
	}
	return rt, nil
}

func (s *rentalService) ListUserRentals(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return s.rentalRepo.ListByUser(ctx, userID, status, page, pageSize)
}

func (s *rentalService) UpdateRentalStatus(ctx context.Context, rentalID int32, next domain.RentalStatus) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !rt.Status.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}
	rt.Status = next
	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

// RecordDamageCharges stores the inspection outcome. It must land before
// the deposit is settled, so completed rentals are rejected.
func (s *rentalService) RecordDamageCharges(ctx context.Context, rentalID, amountCents int32) (*domain.Rental, error) {
	if amountCents < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.Status == domain.RentalStatusCompleted || rt.Status == domain.RentalStatusCancelled {
		return nil, domain.ErrInvalidRentalState
	}
	rt.DamageChargesCents = amountCents
	if rt.ActualReturnDate != nil {
		// Returned already: recompute the settlement with the new charges.
		rt.RefundCents = pricing.Refund(rt.SecurityDepositCents, rt.LateFeeCents, rt.DamageChargesCents)
		rt.DepositStatus = pricing.DepositStatusAfterReturn(rt.LateFeeCents, rt.DamageChargesCents)
	}
	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}
