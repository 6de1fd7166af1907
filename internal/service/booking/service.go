package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/moeenhealth/clinic-api/internal/clock"
	"github.com/moeenhealth/clinic-api/internal/email"
	"github.com/moeenhealth/clinic-api/internal/model"
	"github.com/moeenhealth/clinic-api/internal/repository"
	apperrors "github.com/moeenhealth/clinic-api/pkg/errors"
)

const minutesPerDay = 24 * 60

type Service struct {
	repo         repository.BookingRepository
	sessionTypes repository.SessionTypeRepository
	outbox       repository.OutboxRepository
	emailSvc     email.Service
}

func NewService(repo repository.BookingRepository, sessionTypes repository.SessionTypeRepository, outbox repository.OutboxRepository, emailSvc email.Service) *Service {
	return &Service{
		repo:         repo,
		sessionTypes: sessionTypes,
		outbox:       outbox,
		emailSvc:     emailSvc,
	}
}

// CreateBooking writes a booking for the requested window. The availability
// endpoint only advises; the conditional insert in the repository is the
// authority on whether the slot is still free, so two requests racing for
// the same window resolve here, not in the engine.
func (s *Service) CreateBooking(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error) {
	st, err := s.sessionTypes.Get(ctx, req.SessionTypeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("session type", err)
		}
		return nil, apperrors.Dependency("session type lookup", err)
	}

	start, err := clock.Parse(req.StartTime)
	if err != nil {
		return nil, apperrors.BadRequest("invalid start time", err)
	}

	end := start + st.DurationMinutes
	if end > minutesPerDay {
		return nil, apperrors.BadRequest("session extends past end of day", nil)
	}

	b := &model.Booking{
		TherapistID:     req.TherapistID,
		SessionTypeID:   req.SessionTypeID,
		PatientName:     req.PatientName,
		PatientEmail:    req.PatientEmail,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         clock.Format(end),
		DurationMinutes: st.DurationMinutes,
		Status:          model.BookingStatusScheduled,
		Notes:           req.Notes,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, apperrors.Conflict("time slot is no longer available", err)
		}
		return nil, apperrors.Dependency("booking write", err)
	}

	s.publishEvent(ctx, model.EventBookingCreated, b)

	if err := s.emailSvc.SendBookingConfirmation(ctx, b.PatientEmail, b); err != nil {
		log.Warn().Err(err).Str("booking_id", b.ID.String()).Msg("failed to send booking confirmation")
	}

	return b, nil
}

func (s *Service) GetBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("booking", err)
		}
		return nil, apperrors.Dependency("booking lookup", err)
	}
	return b, nil
}

func (s *Service) ListBookings(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	bookings, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, apperrors.Dependency("booking list", err)
	}
	return bookings, nil
}

func (s *Service) CancelBooking(ctx context.Context, id uuid.UUID, reason string) (*model.Booking, error) {
	b, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	switch b.Status {
	case model.BookingStatusCancelled:
		return nil, apperrors.BadRequest("booking is already cancelled", nil)
	case model.BookingStatusCompleted:
		return nil, apperrors.BadRequest("cannot cancel a completed booking", nil)
	}

	b.Status = model.BookingStatusCancelled
	b.CancelReason = &reason

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, apperrors.Dependency("booking update", err)
	}

	s.publishEvent(ctx, model.EventBookingCancelled, b)

	if err := s.emailSvc.SendBookingCancellation(ctx, b.PatientEmail, b, reason); err != nil {
		log.Warn().Err(err).Str("booking_id", b.ID.String()).Msg("failed to send cancellation notice")
	}

	return b, nil
}

// UpdateStatus moves a booking through its lifecycle (confirmed,
// in_progress, completed, no_show). Cancellation goes through
// CancelBooking so a reason is always recorded.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) (*model.Booking, error) {
	switch status {
	case model.BookingStatusConfirmed, model.BookingStatusInProgress,
		model.BookingStatusCompleted, model.BookingStatusNoShow:
	default:
		return nil, apperrors.BadRequest(fmt.Sprintf("invalid status transition to %q", status), nil)
	}

	b, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.Status == model.BookingStatusCancelled {
		return nil, apperrors.BadRequest("cannot update a cancelled booking", nil)
	}

	b.Status = status
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, apperrors.Dependency("booking update", err)
	}

	return b, nil
}

// publishEvent appends a booking event to the outbox; the worker relays it
// to the broker. Event loss is tolerable, a failed booking write is not, so
// outbox failures are logged rather than propagated.
func (s *Service) publishEvent(ctx context.Context, eventType string, b *model.Booking) {
	payload, err := json.Marshal(b)
	if err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal booking event")
		return
	}

	event := &model.OutboxEvent{
		EventType: eventType,
		Payload:   payload,
	}
	if err := s.outbox.Create(ctx, event); err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to enqueue booking event")
	}
}
