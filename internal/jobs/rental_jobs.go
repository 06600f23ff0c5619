package jobs

import (
	"context"
	"time"

	"garmentloop-backend/internal/domain"
	"garmentloop-backend/internal/logger"
)

// MarkOverdueRentals flips ACTIVE rentals past their end date to OVERDUE.
// This is the scheduled collaborator behind the ACTIVE → OVERDUE side
// transition; booking and return logic never drive it.
func (jr *JobRunner) MarkOverdueRentals() {
	jr.runWithRecovery("MarkOverdueRentals", func() {
		ctx := context.Background()

		query := `
			UPDATE rentals
			SET status = 'OVERDUE',
			    version = version + 1,
			    updated_on = NOW()
			WHERE status = 'ACTIVE'
			  AND end_date < $1
			RETURNING id, user_id, end_date
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now())
		if err != nil {
			logger.Error("Failed to mark overdue rentals", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var id, userID int32
			var endDate time.Time
			if err := rows.Scan(&id, &userID, &endDate); err != nil {
				logger.Error("Failed to scan overdue rental", "error", err)
				continue
			}
			count++
			logger.Debug("Marked rental as overdue",
				"rental_id", id, "user_id", userID, "end_date", endDate.Format("2006-01-02"))
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue rentals", "error", err)
			return
		}

		logger.Info("Marked rentals as overdue", "count", count)
	})
}

// SendOverdueReminders emails every renter holding an OVERDUE rental.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		query := `
			SELECT r.id, r.user_id, r.end_date, r.daily_rate_cents, u.email, u.name
			FROM rentals r
			JOIN users u ON u.id = r.user_id
			WHERE r.status = 'OVERDUE'
		`

		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to load overdue rentals", "error", err)
			return
		}
		defer rows.Close()

		sent := 0
		for rows.Next() {
			var rt domain.Rental
			var email, name string
			if err := rows.Scan(&rt.ID, &rt.UserID, &rt.EndDate, &rt.DailyRateCents, &email, &name); err != nil {
				logger.Error("Failed to scan overdue rental", "error", err)
				continue
			}
			if err := jr.emailSvc.SendOverdueReminder(ctx, email, name, &rt); err != nil {
				logger.Error("Failed to send overdue reminder", "rental_id", rt.ID, "error", err)
				continue
			}
			sent++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue rentals", "error", err)
		}

		logger.Info("Sent overdue reminders", "count", sent)
	})
}
