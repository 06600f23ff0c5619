package service

import (
	"context"
	"time"

	"garmentloop-backend/internal/repository"
)

// AvailabilityChecker answers whether a (product, variant) unit is free for
// a date interval. It is a point-in-time read; the booking transaction in
// RentalRepository.CreateWithOrder repeats the check under SERIALIZABLE
// isolation to close the check-then-act window.
type AvailabilityChecker struct {
	rentals repository.RentalRepository
}

func NewAvailabilityChecker(rentals repository.RentalRepository) *AvailabilityChecker {
	return &AvailabilityChecker{rentals: rentals}
}

// IsAvailable returns true iff no non-terminal rental for the same unit
// overlaps [start, end], boundaries inclusive. excludeRentalID lets an
// extension check without colliding with itself; pass 0 otherwise.
func (c *AvailabilityChecker) IsAvailable(ctx context.Context, productID int32, variantID *int32, start, end time.Time, excludeRentalID int32) (bool, error) {
	count, err := c.rentals.CountOverlapping(ctx, productID, variantID, start, end, excludeRentalID)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
