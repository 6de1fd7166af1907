package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moeenhealth/clinic-api/internal/model"
)

func (r *sessionTypeRepository) Create(ctx context.Context, st *model.SessionType) error {
	query := `
		INSERT INTO session_types (
			id, name_ar, name_en, duration_minutes, price, active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	st.ID = uuid.New()
	st.CreatedAt = time.Now()
	st.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		st.ID,
		st.NameAr,
		st.NameEn,
		st.DurationMinutes,
		st.Price,
		st.Active,
		st.CreatedAt,
		st.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session type: %w", err)
	}
	return nil
}

func (r *sessionTypeRepository) Get(ctx context.Context, id uuid.UUID) (*model.SessionType, error) {
	query := `
		SELECT id, name_ar, name_en, duration_minutes, price, active,
			   created_at, updated_at
		FROM session_types
		WHERE id = $1
	`
	var st model.SessionType
	err := r.db.GetContext(ctx, &st, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session type: %w", err)
	}
	return &st, nil
}

func (r *sessionTypeRepository) Update(ctx context.Context, st *model.SessionType) error {
	query := `
		UPDATE session_types
		SET name_ar = $1, name_en = $2, duration_minutes = $3, price = $4, active = $5, updated_at = $6
		WHERE id = $7
	`
	st.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		st.NameAr,
		st.NameEn,
		st.DurationMinutes,
		st.Price,
		st.Active,
		st.UpdatedAt,
		st.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session type: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("session type not found")
	}

	return nil
}

func (r *sessionTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM session_types
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete session type: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("session type not found")
	}

	return nil
}

func (r *sessionTypeRepository) List(ctx context.Context, activeOnly bool) ([]*model.SessionType, error) {
	query := `
		SELECT id, name_ar, name_en, duration_minutes, price, active,
			   created_at, updated_at
		FROM session_types
	`
	if activeOnly {
		query += " WHERE active = true"
	}
	query += " ORDER BY name_en ASC"

	var types []*model.SessionType
	err := r.db.SelectContext(ctx, &types, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list session types: %w", err)
	}
	return types, nil
}
