package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"garmentloop-backend/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRentalDays(t *testing.T) {
	t.Run("WholeDays", func(t *testing.T) {
		assert.Equal(t, int32(4), RentalDays(date(2024, 1, 1), date(2024, 1, 5)))
		assert.Equal(t, int32(1), RentalDays(date(2024, 1, 1), date(2024, 1, 2)))
	})

	t.Run("PartialDayRoundsUp", func(t *testing.T) {
		start := date(2024, 1, 1)
		end := start.Add(25 * time.Hour)
		assert.Equal(t, int32(2), RentalDays(start, end))
	})

	t.Run("NonPositiveRange", func(t *testing.T) {
		assert.Equal(t, int32(0), RentalDays(date(2024, 1, 5), date(2024, 1, 5)))
		assert.Equal(t, int32(0), RentalDays(date(2024, 1, 5), date(2024, 1, 1)))
	})
}

func TestRentalCost(t *testing.T) {
	// 4 days at 500 cents/day
	assert.Equal(t, int32(2000), RentalCost(500, 4))
}

func TestLateFee(t *testing.T) {
	t.Run("TwoDaysLateAtHalfRate", func(t *testing.T) {
		due := date(2024, 1, 5)
		returned := date(2024, 1, 7)
		daysLate := DaysLate(due, returned)
		assert.Equal(t, int32(2), daysLate)
		assert.Equal(t, int32(500), LateFee(500, daysLate, 50))
	})

	t.Run("OnTime", func(t *testing.T) {
		assert.Equal(t, int32(0), DaysLate(date(2024, 1, 5), date(2024, 1, 5)))
	})
}

func TestRefund(t *testing.T) {
	assert.Equal(t, int32(1500), Refund(2000, 500, 0))
	assert.Equal(t, int32(0), Refund(2000, 1500, 1000), "refund never goes negative")
	assert.Equal(t, int32(2000), Refund(2000, 0, 0))
}

func TestDepositStatusAfterReturn(t *testing.T) {
	assert.Equal(t, domain.DepositStatusRefunded, DepositStatusAfterReturn(0, 0))
	assert.Equal(t, domain.DepositStatusPartiallyRefunded, DepositStatusAfterReturn(500, 0))
	assert.Equal(t, domain.DepositStatusPartiallyRefunded, DepositStatusAfterReturn(0, 300))
}

func TestOrderTotals(t *testing.T) {
	tax, total := OrderTotals(10000, 18)
	assert.Equal(t, int32(1800), tax)
	assert.Equal(t, int32(11800), total)
}
