package model

import (
	"time"

	"github.com/google/uuid"
)

type Therapist struct {
	Base
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Specialty string    `db:"specialty" json:"specialty"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// TherapistSessionType links a therapist to a session type they are
// qualified to deliver. A therapist without a row for a session type is
// never offered for it.
type TherapistSessionType struct {
	TherapistID      uuid.UUID `db:"therapist_id" json:"therapist_id"`
	SessionTypeID    uuid.UUID `db:"session_type_id" json:"session_type_id"`
	ProficiencyLevel string    `db:"proficiency_level" json:"proficiency_level"`
}

type CreateTherapistRequest struct {
	Name      string `json:"name" binding:"required,max=200"`
	Email     string `json:"email" binding:"required,email"`
	Specialty string `json:"specialty" binding:"max=200"`
}

type UpdateTherapistRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=200"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Specialty *string `json:"specialty" binding:"omitempty,max=200"`
	Status    *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

type AddQualificationRequest struct {
	SessionTypeID    uuid.UUID `json:"session_type_id" binding:"required"`
	ProficiencyLevel string    `json:"proficiency_level" binding:"omitempty,oneof=junior standard senior"`
}
