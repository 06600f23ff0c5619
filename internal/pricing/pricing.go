package pricing

import (
	"time"

	"garmentloop-backend/internal/domain"
)

const hoursPerDay = 24

// RentalDays returns ceil((end-start)/1 day). A non-positive range yields 0;
// callers treat anything below 1 as an invalid date range.
func RentalDays(start, end time.Time) int32 {
	diff := end.Sub(start)
	if diff <= 0 {
		return 0
	}
	days := int32(diff / (hoursPerDay * time.Hour))
	if diff%(hoursPerDay*time.Hour) > 0 {
		days++
	}
	return days
}

// RentalCost is the booked amount: daily rate times whole rental days.
func RentalCost(dailyRateCents, days int32) int32 {
	return dailyRateCents * days
}

// DaysLate returns ceil((returned-due)/1 day), or 0 when returned on time.
func DaysLate(due, returned time.Time) int32 {
	return RentalDays(due, returned)
}

// LateFee charges a percentage of the daily rate per late day.
func LateFee(dailyRateCents, daysLate, percentOfDailyRate int32) int32 {
	return dailyRateCents * percentOfDailyRate * daysLate / 100
}

// Refund computes the deposit refund, never negative.
func Refund(depositCents, lateFeeCents, damageCents int32) int32 {
	refund := depositCents - lateFeeCents - damageCents
	if refund < 0 {
		return 0
	}
	return refund
}

// DepositStatusAfterReturn is REFUNDED only when nothing was withheld.
func DepositStatusAfterReturn(lateFeeCents, damageCents int32) domain.DepositStatus {
	if lateFeeCents == 0 && damageCents == 0 {
		return domain.DepositStatusRefunded
	}
	return domain.DepositStatusPartiallyRefunded
}

// OrderTotals applies the tax rate to the subtotal. Shipping and discounts
// are currently always zero and omitted here.
func OrderTotals(subtotalCents, taxPercent int32) (taxCents, totalCents int32) {
	taxCents = subtotalCents * taxPercent / 100
	return taxCents, subtotalCents + taxCents
}
