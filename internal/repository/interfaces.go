package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/moeenhealth/clinic-api/internal/model"
)

// ErrSlotTaken is returned by BookingRepository.Create when the requested
// window overlaps an occupying booking at insert time. Availability results
// are advisory; the conditional insert is what actually prevents a
// double-booking.
var ErrSlotTaken = errors.New("time slot already taken")

// All repository interfaces in one file
type (
	SessionTypeRepository interface {
		Create(ctx context.Context, st *model.SessionType) error
		Get(ctx context.Context, id uuid.UUID) (*model.SessionType, error)
		Update(ctx context.Context, st *model.SessionType) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, activeOnly bool) ([]*model.SessionType, error)
	}

	TherapistRepository interface {
		Create(ctx context.Context, t *model.Therapist) error
		Get(ctx context.Context, id uuid.UUID) (*model.Therapist, error)
		Update(ctx context.Context, t *model.Therapist) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Therapist, error)
		AddQualification(ctx context.Context, q *model.TherapistSessionType) error
		RemoveQualification(ctx context.Context, therapistID, sessionTypeID uuid.UUID) error
		ListQualifications(ctx context.Context, therapistID uuid.UUID) ([]*model.TherapistSessionType, error)
	}

	ScheduleRepository interface {
		Upsert(ctx context.Context, s *model.TherapistSchedule) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListForTherapist(ctx context.Context, therapistID uuid.UUID) ([]*model.TherapistSchedule, error)
		// ListQualifiedWindows resolves, in one query, every working window of
		// every therapist qualified for the session type on the given weekday.
		// One row per shift, ordered by therapist id then start time.
		ListQualifiedWindows(ctx context.Context, sessionTypeID uuid.UUID, dayOfWeek int, therapistID *uuid.UUID) ([]*model.ScheduleWindow, error)
	}

	BookingRepository interface {
		// Create inserts the booking only if no occupying booking overlaps it;
		// returns ErrSlotTaken otherwise.
		Create(ctx context.Context, b *model.Booking) error
		Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
		Update(ctx context.Context, b *model.Booking) error
		List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error)
		// ListOccupying fetches all occupying bookings for the whole therapist
		// set on one date in a single round trip.
		ListOccupying(ctx context.Context, therapistIDs []uuid.UUID, date string) ([]*model.Booking, error)
	}

	StaffRepository interface {
		Create(ctx context.Context, u *model.StaffUser) error
		GetByEmail(ctx context.Context, email string) (*model.StaffUser, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEventsWithLock(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		BeginTx(ctx context.Context) (*sql.Tx, error)
		UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uuid.UUID, status string, errorMessage *string, retryAt *time.Time) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
