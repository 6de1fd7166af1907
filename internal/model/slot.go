package model

import (
	"github.com/google/uuid"
)

// SessionTypeInfo is the denormalized session type attached to each slot.
type SessionTypeInfo struct {
	ID     uuid.UUID `json:"id"`
	NameAr string    `json:"nameAr"`
	NameEn string    `json:"nameEn"`
	Price  float64   `json:"price"`
}

// SessionTypeSummary is the top-level session type block of the
// availability response.
type SessionTypeSummary struct {
	ID       uuid.UUID `json:"id"`
	NameAr   string    `json:"nameAr"`
	NameEn   string    `json:"nameEn"`
	Duration int       `json:"duration"`
	Price    float64   `json:"price"`
}

// AvailableSlot is one bookable window. Slots exist only inside a single
// availability computation; they are never persisted.
type AvailableSlot struct {
	TherapistID   uuid.UUID       `json:"therapistId"`
	TherapistName string          `json:"therapistName"`
	Date          string          `json:"date"`
	StartTime     string          `json:"startTime"`
	EndTime       string          `json:"endTime"`
	Duration      int             `json:"duration"`
	SessionType   SessionTypeInfo `json:"sessionType"`
}

// AvailableSlotsResponse is the wire contract of the availability endpoint.
// An empty Slots list is a valid success response.
type AvailableSlotsResponse struct {
	Success     bool               `json:"success"`
	Slots       []AvailableSlot    `json:"slots"`
	SessionType SessionTypeSummary `json:"sessionType"`
	Message     string             `json:"message,omitempty"`
}
