package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garmentloop-backend/internal/domain"
)

type stubEmailService struct {
	reminders []int32
	fail      bool
}

func (s *stubEmailService) SendBookingConfirmation(ctx context.Context, email, name string, rental *domain.Rental) error {
	return nil
}

func (s *stubEmailService) SendExtensionConfirmation(ctx context.Context, email, name string, rental *domain.Rental) error {
	return nil
}

func (s *stubEmailService) SendReturnReceipt(ctx context.Context, email, name string, rental *domain.Rental) error {
	return nil
}

func (s *stubEmailService) SendOrderConfirmation(ctx context.Context, email, name string, order *domain.Order) error {
	return nil
}

func (s *stubEmailService) SendOrderCancellation(ctx context.Context, email, name string, order *domain.Order) error {
	return nil
}

func (s *stubEmailService) SendOverdueReminder(ctx context.Context, email, name string, rental *domain.Rental) error {
	if s.fail {
		return errors.New("sendgrid unavailable")
	}
	s.reminders = append(s.reminders, rental.ID)
	return nil
}

func TestMarkOverdueRentals(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("UPDATE rentals").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "end_date"}).
			AddRow(42, 7, time.Now().Add(-48*time.Hour)).
			AddRow(43, 8, time.Now().Add(-24*time.Hour)))

	jr := NewJobRunner(db, nil, &stubEmailService{}, nil)
	jr.MarkOverdueRentals()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendOverdueReminders(t *testing.T) {
	t.Run("SendsOnePerOverdueRental", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT (.+) FROM rentals r").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "end_date", "daily_rate_cents", "email", "name"}).
				AddRow(42, 7, time.Now().Add(-48*time.Hour), 500, "a@example.com", "Alex").
				AddRow(43, 8, time.Now().Add(-24*time.Hour), 700, "b@example.com", "Bo"))

		emailSvc := &stubEmailService{}
		jr := NewJobRunner(db, nil, emailSvc, nil)
		jr.SendOverdueReminders()

		assert.Equal(t, []int32{42, 43}, emailSvc.reminders)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("EmailFailureDoesNotPanic", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT (.+) FROM rentals r").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "end_date", "daily_rate_cents", "email", "name"}).
				AddRow(42, 7, time.Now(), 500, "a@example.com", "Alex"))

		jr := NewJobRunner(db, nil, &stubEmailService{fail: true}, nil)
		jr.SendOverdueReminders()
	})
}
