package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moeenhealth/clinic-api/internal/model"
)

func (r *staffRepository) Create(ctx context.Context, u *model.StaffUser) error {
	query := `
		INSERT INTO staff_users (
			id, email, name, password_hash, role, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.Email,
		u.Name,
		u.PasswordHash,
		u.Role,
		u.Status,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create staff user: %w", err)
	}
	return nil
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*model.StaffUser, error) {
	query := `
		SELECT id, email, name, password_hash, role, status, created_at, updated_at
		FROM staff_users
		WHERE email = $1
	`
	var u model.StaffUser
	err := r.db.GetContext(ctx, &u, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff user: %w", err)
	}
	return &u, nil
}
