package domain

import "time"

type RentalStatus string

const (
	RentalStatusBooked          RentalStatus = "BOOKED"
	RentalStatusConfirmed       RentalStatus = "CONFIRMED"
	RentalStatusOutForDelivery  RentalStatus = "OUT_FOR_DELIVERY"
	RentalStatusActive          RentalStatus = "ACTIVE"
	RentalStatusOverdue         RentalStatus = "OVERDUE"
	RentalStatusReturnRequested RentalStatus = "RETURN_REQUESTED"
	RentalStatusPickupScheduled RentalStatus = "PICKUP_SCHEDULED"
	RentalStatusReturned        RentalStatus = "RETURNED"
	RentalStatusInspecting      RentalStatus = "INSPECTING"
	RentalStatusCompleted       RentalStatus = "COMPLETED"
	RentalStatusCancelled       RentalStatus = "CANCELLED"
)

// IsTerminal reports whether the status excludes a rental from overlap and
// stock-hold checks.
func (s RentalStatus) IsTerminal() bool {
	switch s {
	case RentalStatusCompleted, RentalStatusReturned, RentalStatusCancelled:
		return true
	}
	return false
}

// rentalTransitions encodes the forward path of the status machine.
// OVERDUE is entered from ACTIVE by the scheduled job; CANCELLED is
// reachable from any non-terminal state and handled separately.
var rentalTransitions = map[RentalStatus][]RentalStatus{
	RentalStatusBooked:          {RentalStatusConfirmed},
	RentalStatusConfirmed:       {RentalStatusOutForDelivery},
	RentalStatusOutForDelivery:  {RentalStatusActive},
	RentalStatusActive:          {RentalStatusReturnRequested, RentalStatusOverdue},
	RentalStatusOverdue:         {RentalStatusReturnRequested},
	RentalStatusReturnRequested: {RentalStatusPickupScheduled},
	RentalStatusPickupScheduled: {RentalStatusReturned},
	RentalStatusReturned:        {RentalStatusInspecting},
	RentalStatusInspecting:      {RentalStatusCompleted},
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s RentalStatus) CanTransitionTo(next RentalStatus) bool {
	if next == RentalStatusCancelled {
		return !s.IsTerminal()
	}
	for _, allowed := range rentalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type DepositStatus string

const (
	DepositStatusHeld              DepositStatus = "HELD"
	DepositStatusRefunded          DepositStatus = "REFUNDED"
	DepositStatusPartiallyRefunded DepositStatus = "PARTIALLY_REFUNDED"
	DepositStatusForfeited         DepositStatus = "FORFEITED"
)

type DeliveryType string

const (
	DeliveryTypeStandard DeliveryType = "STANDARD"
	DeliveryTypeExpress  DeliveryType = "EXPRESS"
	DeliveryTypePickup   DeliveryType = "PICKUP"
)

// Rental is one booking of one product (optionally one variant) for one
// user over [StartDate, EndDate]. Never physically deleted; terminal states
// are CANCELLED, COMPLETED and RETURNED.
type Rental struct {
	ID        int32  `json:"id"`
	OrderID   int32  `json:"order_id"`
	UserID    int32  `json:"user_id"`
	ProductID int32  `json:"product_id"`
	VariantID *int32 `json:"variant_id,omitempty"`

	StartDate        time.Time  `json:"rental_start_date"`
	EndDate          time.Time  `json:"rental_end_date"`
	ActualReturnDate *time.Time `json:"actual_return_date,omitempty"`
	RentalDays       int32      `json:"rental_days"`

	// Price snapshot fields, captured from the catalog at booking time.
	// All later cost calculations use these, not live prices.
	DailyRateCents       int32 `json:"daily_rate_cents"`
	TotalRentalCents     int32 `json:"total_rental_cents"`
	SecurityDepositCents int32 `json:"security_deposit_cents"`
	LateFeeCents         int32 `json:"late_fee_cents"`
	DamageChargesCents   int32 `json:"damage_charges_cents"`
	RefundCents          int32 `json:"refund_cents"`

	Status         RentalStatus  `json:"rental_status"`
	DepositStatus  DepositStatus `json:"deposit_status"`
	DeliveryType   DeliveryType  `json:"delivery_type"`
	IsExtended     bool          `json:"is_extended"`
	ExtensionCount int32         `json:"extension_count"`

	// Version guards concurrent mutation; every update increments it.
	Version   int32     `json:"version"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}
