package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moeenhealth/clinic-api/internal/model"
)

func (r *therapistRepository) Create(ctx context.Context, t *model.Therapist) error {
	query := `
		INSERT INTO therapists (
			id, name, email, specialty, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Name,
		t.Email,
		t.Specialty,
		t.Status,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create therapist: %w", err)
	}
	return nil
}

func (r *therapistRepository) Get(ctx context.Context, id uuid.UUID) (*model.Therapist, error) {
	query := `
		SELECT id, name, email, specialty, status, created_at, updated_at
		FROM therapists
		WHERE id = $1
	`
	var t model.Therapist
	err := r.db.GetContext(ctx, &t, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get therapist: %w", err)
	}
	return &t, nil
}

func (r *therapistRepository) Update(ctx context.Context, t *model.Therapist) error {
	query := `
		UPDATE therapists
		SET name = $1, email = $2, specialty = $3, status = $4, updated_at = $5
		WHERE id = $6
	`
	t.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		t.Name,
		t.Email,
		t.Specialty,
		t.Status,
		t.UpdatedAt,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update therapist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("therapist not found")
	}

	return nil
}

func (r *therapistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM therapists
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete therapist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("therapist not found")
	}

	return nil
}

func (r *therapistRepository) List(ctx context.Context) ([]*model.Therapist, error) {
	query := `
		SELECT id, name, email, specialty, status, created_at, updated_at
		FROM therapists
		ORDER BY name ASC
	`
	var therapists []*model.Therapist
	err := r.db.SelectContext(ctx, &therapists, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list therapists: %w", err)
	}
	return therapists, nil
}

func (r *therapistRepository) AddQualification(ctx context.Context, q *model.TherapistSessionType) error {
	query := `
		INSERT INTO therapist_session_types (therapist_id, session_type_id, proficiency_level)
		VALUES ($1, $2, $3)
		ON CONFLICT (therapist_id, session_type_id)
		DO UPDATE SET proficiency_level = EXCLUDED.proficiency_level
	`
	_, err := r.db.ExecContext(ctx, query, q.TherapistID, q.SessionTypeID, q.ProficiencyLevel)
	if err != nil {
		return fmt.Errorf("failed to add qualification: %w", err)
	}
	return nil
}

func (r *therapistRepository) RemoveQualification(ctx context.Context, therapistID, sessionTypeID uuid.UUID) error {
	query := `
		DELETE FROM therapist_session_types
		WHERE therapist_id = $1 AND session_type_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, therapistID, sessionTypeID)
	if err != nil {
		return fmt.Errorf("failed to remove qualification: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("qualification not found")
	}

	return nil
}

func (r *therapistRepository) ListQualifications(ctx context.Context, therapistID uuid.UUID) ([]*model.TherapistSessionType, error) {
	query := `
		SELECT therapist_id, session_type_id, proficiency_level
		FROM therapist_session_types
		WHERE therapist_id = $1
	`
	var quals []*model.TherapistSessionType
	err := r.db.SelectContext(ctx, &quals, query, therapistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list qualifications: %w", err)
	}
	return quals, nil
}
