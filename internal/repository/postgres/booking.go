package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/moeenhealth/clinic-api/internal/model"
	"github.com/moeenhealth/clinic-api/internal/repository"
)

// Create inserts the booking behind an overlap guard: the row is only
// written when no occupying booking for the same therapist and date
// intersects the half-open window [start_time, end_time). Zero rows
// affected means another request won the slot first.
func (r *bookingRepository) Create(ctx context.Context, b *model.Booking) error {
	query := `
		INSERT INTO bookings (
			id, therapist_id, session_type_id, patient_name, patient_email,
			date, start_time, end_time, duration_minutes, status, notes,
			created_at, updated_at
		)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		WHERE NOT EXISTS (
			SELECT 1 FROM bookings
			WHERE therapist_id = $2
			AND date = $6
			AND status IN ('scheduled', 'confirmed', 'in_progress')
			AND start_time < $8
			AND end_time > $7
		)
	`
	b.ID = uuid.New()
	b.CreatedAt = time.Now()
	b.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.TherapistID,
		b.SessionTypeID,
		b.PatientName,
		b.PatientEmail,
		b.Date,
		b.StartTime,
		b.EndTime,
		b.DurationMinutes,
		b.Status,
		b.Notes,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrSlotTaken
	}

	return nil
}

func (r *bookingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `
		SELECT id, therapist_id, session_type_id, patient_name, patient_email,
			   date, start_time, end_time, duration_minutes, status, notes,
			   cancel_reason, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`
	var b model.Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &b, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *model.Booking) error {
	query := `
		UPDATE bookings
		SET status = $1, notes = $2, cancel_reason = $3, updated_at = $4
		WHERE id = $5
	`
	b.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		b.Status,
		b.Notes,
		b.CancelReason,
		b.UpdatedAt,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("booking not found")
	}

	return nil
}

func (r *bookingRepository) List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	query := `
		SELECT id, therapist_id, session_type_id, patient_name, patient_email,
			   date, start_time, end_time, duration_minutes, status, notes,
			   cancel_reason, created_at, updated_at
		FROM bookings
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filters.TherapistID != nil {
		query += fmt.Sprintf(" AND therapist_id = $%d", argCount)
		args = append(args, *filters.TherapistID)
		argCount++
	}

	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}

	if filters.Date != "" {
		query += fmt.Sprintf(" AND date = $%d", argCount)
		args = append(args, filters.Date)
		argCount++
	}

	query += " ORDER BY date ASC, start_time ASC"

	var bookings []*model.Booking
	err := r.db.SelectContext(ctx, &bookings, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) ListOccupying(ctx context.Context, therapistIDs []uuid.UUID, date string) ([]*model.Booking, error) {
	if len(therapistIDs) == 0 {
		return nil, nil
	}

	ids := make([]string, len(therapistIDs))
	for i, id := range therapistIDs {
		ids[i] = id.String()
	}

	query := `
		SELECT id, therapist_id, session_type_id, patient_name, patient_email,
			   date, start_time, end_time, duration_minutes, status, notes,
			   cancel_reason, created_at, updated_at
		FROM bookings
		WHERE therapist_id = ANY($1)
		AND date = $2
		AND status IN ('scheduled', 'confirmed', 'in_progress')
		ORDER BY start_time ASC
	`
	var bookings []*model.Booking
	err := r.db.SelectContext(ctx, &bookings, query, pq.Array(ids), date)
	if err != nil {
		return nil, fmt.Errorf("failed to list occupying bookings: %w", err)
	}
	return bookings, nil
}
