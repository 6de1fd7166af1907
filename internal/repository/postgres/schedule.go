package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moeenhealth/clinic-api/internal/model"
)

func (r *scheduleRepository) Upsert(ctx context.Context, s *model.TherapistSchedule) error {
	query := `
		INSERT INTO therapist_schedules (
			id, therapist_id, day_of_week, start_time, end_time, is_available,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (therapist_id, day_of_week, start_time)
		DO UPDATE SET end_time = EXCLUDED.end_time,
					  is_available = EXCLUDED.is_available,
					  updated_at = EXCLUDED.updated_at
	`
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
		s.CreatedAt = time.Now()
	}
	s.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.TherapistID,
		s.DayOfWeek,
		s.StartTime,
		s.EndTime,
		s.IsAvailable,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert schedule: %w", err)
	}
	return nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM therapist_schedules
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("schedule not found")
	}

	return nil
}

func (r *scheduleRepository) ListForTherapist(ctx context.Context, therapistID uuid.UUID) ([]*model.TherapistSchedule, error) {
	query := `
		SELECT id, therapist_id, day_of_week, start_time, end_time, is_available,
			   created_at, updated_at
		FROM therapist_schedules
		WHERE therapist_id = $1
		ORDER BY day_of_week ASC, start_time ASC
	`
	var schedules []*model.TherapistSchedule
	err := r.db.SelectContext(ctx, &schedules, query, therapistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

func (r *scheduleRepository) ListQualifiedWindows(ctx context.Context, sessionTypeID uuid.UUID, dayOfWeek int, therapistID *uuid.UUID) ([]*model.ScheduleWindow, error) {
	query := `
		SELECT t.id AS therapist_id, t.name AS therapist_name,
			   s.start_time, s.end_time
		FROM therapist_schedules s
		JOIN therapists t ON t.id = s.therapist_id
		JOIN therapist_session_types q
			ON q.therapist_id = s.therapist_id AND q.session_type_id = $1
		WHERE s.day_of_week = $2
		AND s.is_available = true
		AND t.status = 'active'
	`
	args := []interface{}{sessionTypeID, dayOfWeek}

	if therapistID != nil {
		query += " AND s.therapist_id = $3"
		args = append(args, *therapistID)
	}

	query += " ORDER BY t.id ASC, s.start_time ASC"

	var windows []*model.ScheduleWindow
	err := r.db.SelectContext(ctx, &windows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list qualified windows: %w", err)
	}
	return windows, nil
}
