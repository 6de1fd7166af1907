package model

import (
	"github.com/google/uuid"
)

// TherapistSchedule is one recurring weekly shift. A therapist may have
// zero, one, or several rows for the same weekday; each row is an
// independent working window and is never merged with its siblings.
type TherapistSchedule struct {
	Base
	TherapistID uuid.UUID `db:"therapist_id" json:"therapist_id"`
	DayOfWeek   int       `db:"day_of_week" json:"day_of_week"` // 0 = Sunday .. 6 = Saturday
	StartTime   string    `db:"start_time" json:"start_time"`   // "HH:MM"
	EndTime     string    `db:"end_time" json:"end_time"`       // "HH:MM"
	IsAvailable bool      `db:"is_available" json:"is_available"`
}

// ScheduleWindow is a resolved working window for one therapist shift on a
// concrete date, joined with the therapist display name. Output of schedule
// resolution, input to slot generation.
type ScheduleWindow struct {
	TherapistID   uuid.UUID `db:"therapist_id" json:"therapist_id"`
	TherapistName string    `db:"therapist_name" json:"therapist_name"`
	StartTime     string    `db:"start_time" json:"start_time"`
	EndTime       string    `db:"end_time" json:"end_time"`
}

type UpsertScheduleRequest struct {
	DayOfWeek   int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime   string `json:"start_time" binding:"required,hhmm"`
	EndTime     string `json:"end_time" binding:"required,hhmm"`
	IsAvailable bool   `json:"is_available"`
}
