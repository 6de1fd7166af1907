package model

// SessionType is a bookable offering with a fixed duration and price.
// Reference data managed by administrators; the availability engine only reads it.
type SessionType struct {
	Base
	NameAr          string  `db:"name_ar" json:"name_ar"`
	NameEn          string  `db:"name_en" json:"name_en"`
	DurationMinutes int     `db:"duration_minutes" json:"duration_minutes"`
	Price           float64 `db:"price" json:"price"`
	Active          bool    `db:"active" json:"active"`
}

type CreateSessionTypeRequest struct {
	NameAr          string  `json:"name_ar" binding:"required,max=200"`
	NameEn          string  `json:"name_en" binding:"required,max=200"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gt=0,lte=480"`
	Price           float64 `json:"price" binding:"gte=0"`
}

type UpdateSessionTypeRequest struct {
	NameAr          *string  `json:"name_ar" binding:"omitempty,max=200"`
	NameEn          *string  `json:"name_en" binding:"omitempty,max=200"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,gt=0,lte=480"`
	Price           *float64 `json:"price" binding:"omitempty,gte=0"`
	Active          *bool    `json:"active"`
}
