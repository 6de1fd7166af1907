package model

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusScheduled  BookingStatus = "scheduled"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusNoShow     BookingStatus = "no_show"
)

// OccupyingStatuses are the statuses that block a time slot. Completed,
// cancelled and no-show bookings never conflict with new ones.
var OccupyingStatuses = []BookingStatus{
	BookingStatusScheduled,
	BookingStatusConfirmed,
	BookingStatusInProgress,
}

type Booking struct {
	Base
	TherapistID     uuid.UUID     `db:"therapist_id" json:"therapist_id"`
	SessionTypeID   uuid.UUID     `db:"session_type_id" json:"session_type_id"`
	PatientName     string        `db:"patient_name" json:"patient_name"`
	PatientEmail    string        `db:"patient_email" json:"patient_email"`
	Date            string        `db:"date" json:"date"`             // "YYYY-MM-DD"
	StartTime       string        `db:"start_time" json:"start_time"` // "HH:MM"
	EndTime         string        `db:"end_time" json:"end_time"`     // "HH:MM", exclusive
	DurationMinutes int           `db:"duration_minutes" json:"duration_minutes"`
	Status          BookingStatus `db:"status" json:"status"`
	Notes           string        `db:"notes" json:"notes,omitempty"`
	CancelReason    *string       `db:"cancel_reason" json:"cancel_reason,omitempty"`
}

type CreateBookingRequest struct {
	TherapistID   uuid.UUID `json:"therapist_id" binding:"required"`
	SessionTypeID uuid.UUID `json:"session_type_id" binding:"required"`
	PatientName   string    `json:"patient_name" binding:"required,max=200"`
	PatientEmail  string    `json:"patient_email" binding:"required,email"`
	Date          string    `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime     string    `json:"start_time" binding:"required,datetime=15:04"`
	Notes         string    `json:"notes" binding:"max=1000"`
}

type BookingFilters struct {
	TherapistID *uuid.UUID
	Status      BookingStatus
	Date        string
}
