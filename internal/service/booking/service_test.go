package booking

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moeenhealth/clinic-api/internal/model"
	"github.com/moeenhealth/clinic-api/internal/repository"
	apperrors "github.com/moeenhealth/clinic-api/pkg/errors"
)

type fakeBookingRepo struct {
	created  []*model.Booking
	updated  []*model.Booking
	byID     map[uuid.UUID]*model.Booking
	slotFull bool
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *model.Booking) error {
	if f.slotFull {
		return repository.ErrSlotTaken
	}
	b.ID = uuid.New()
	f.created = append(f.created, b)
	return nil
}

func (f *fakeBookingRepo) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("failed to get booking: %w", sql.ErrNoRows)
	}
	return b, nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, b *model.Booking) error {
	f.updated = append(f.updated, b)
	return nil
}

func (f *fakeBookingRepo) List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) ListOccupying(ctx context.Context, therapistIDs []uuid.UUID, date string) ([]*model.Booking, error) {
	return nil, nil
}

type fakeSessionTypes struct {
	types map[uuid.UUID]*model.SessionType
}

func (f *fakeSessionTypes) Create(ctx context.Context, st *model.SessionType) error { return nil }
func (f *fakeSessionTypes) Update(ctx context.Context, st *model.SessionType) error { return nil }
func (f *fakeSessionTypes) Delete(ctx context.Context, id uuid.UUID) error          { return nil }
func (f *fakeSessionTypes) List(ctx context.Context, activeOnly bool) ([]*model.SessionType, error) {
	return nil, nil
}

func (f *fakeSessionTypes) Get(ctx context.Context, id uuid.UUID) (*model.SessionType, error) {
	st, ok := f.types[id]
	if !ok {
		return nil, fmt.Errorf("failed to get session type: %w", sql.ErrNoRows)
	}
	return st, nil
}

type fakeOutbox struct {
	events []*model.OutboxEvent
}

func (f *fakeOutbox) Create(ctx context.Context, event *model.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutbox) GetPendingEventsWithLock(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) BeginTx(ctx context.Context) (*sql.Tx, error) { return nil, nil }
func (f *fakeOutbox) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uuid.UUID, status string, errorMessage *string, retryAt *time.Time) error {
	return nil
}
func (f *fakeOutbox) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

type fakeEmail struct {
	confirmations int
	cancellations int
}

func (f *fakeEmail) SendBookingConfirmation(ctx context.Context, to string, b *model.Booking) error {
	f.confirmations++
	return nil
}

func (f *fakeEmail) SendBookingCancellation(ctx context.Context, to string, b *model.Booking, reason string) error {
	f.cancellations++
	return nil
}

func (f *fakeEmail) SendCustom(ctx context.Context, to, subject, content string) error { return nil }

var typeID = uuid.MustParse("11111111-1111-1111-1111-111111111111")

func newTestService() (*Service, *fakeBookingRepo, *fakeOutbox, *fakeEmail) {
	st := &model.SessionType{DurationMinutes: 60, Price: 250, NameEn: "Therapy Session"}
	st.ID = typeID

	repo := &fakeBookingRepo{byID: map[uuid.UUID]*model.Booking{}}
	outbox := &fakeOutbox{}
	mail := &fakeEmail{}
	svc := NewService(repo, &fakeSessionTypes{types: map[uuid.UUID]*model.SessionType{typeID: st}}, outbox, mail)
	return svc, repo, outbox, mail
}

func validRequest() *model.CreateBookingRequest {
	return &model.CreateBookingRequest{
		TherapistID:   uuid.New(),
		SessionTypeID: typeID,
		PatientName:   "Layla Hassan",
		PatientEmail:  "layla@example.com",
		Date:          "2026-09-07",
		StartTime:     "10:00",
	}
}

func TestCreateBooking(t *testing.T) {
	svc, repo, outbox, mail := newTestService()

	b, err := svc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "10:00", b.StartTime)
	assert.Equal(t, "11:00", b.EndTime)
	assert.Equal(t, 60, b.DurationMinutes)
	assert.Equal(t, model.BookingStatusScheduled, b.Status)
	assert.Len(t, repo.created, 1)

	require.Len(t, outbox.events, 1)
	assert.Equal(t, model.EventBookingCreated, outbox.events[0].EventType)
	assert.Equal(t, 1, mail.confirmations)
}

func TestCreateBooking_SlotTaken(t *testing.T) {
	svc, repo, outbox, _ := newTestService()
	repo.slotFull = true

	_, err := svc.CreateBooking(context.Background(), validRequest())
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
	assert.Empty(t, outbox.events, "no event for a rejected booking")
}

func TestCreateBooking_UnknownSessionType(t *testing.T) {
	svc, _, _, _ := newTestService()

	req := validRequest()
	req.SessionTypeID = uuid.New()

	_, err := svc.CreateBooking(context.Background(), req)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestCreateBooking_InvalidStartTime(t *testing.T) {
	svc, _, _, _ := newTestService()

	req := validRequest()
	req.StartTime = "25:00"

	_, err := svc.CreateBooking(context.Background(), req)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestCreateBooking_PastEndOfDay(t *testing.T) {
	svc, _, _, _ := newTestService()

	req := validRequest()
	req.StartTime = "23:30"

	_, err := svc.CreateBooking(context.Background(), req)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestCancelBooking(t *testing.T) {
	svc, repo, outbox, mail := newTestService()

	existing := &model.Booking{Status: model.BookingStatusConfirmed, PatientEmail: "layla@example.com"}
	existing.ID = uuid.New()
	repo.byID[existing.ID] = existing

	b, err := svc.CancelBooking(context.Background(), existing.ID, "patient request")
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusCancelled, b.Status)
	require.NotNil(t, b.CancelReason)
	assert.Equal(t, "patient request", *b.CancelReason)

	require.Len(t, outbox.events, 1)
	assert.Equal(t, model.EventBookingCancelled, outbox.events[0].EventType)
	assert.Equal(t, 1, mail.cancellations)
}

func TestCancelBooking_Guards(t *testing.T) {
	svc, repo, _, _ := newTestService()

	cancelled := &model.Booking{Status: model.BookingStatusCancelled}
	cancelled.ID = uuid.New()
	repo.byID[cancelled.ID] = cancelled

	_, err := svc.CancelBooking(context.Background(), cancelled.ID, "again")
	assert.Error(t, err, "cancelling twice is rejected")

	completed := &model.Booking{Status: model.BookingStatusCompleted}
	completed.ID = uuid.New()
	repo.byID[completed.ID] = completed

	_, err = svc.CancelBooking(context.Background(), completed.ID, "too late")
	assert.Error(t, err, "completed bookings cannot be cancelled")

	_, err = svc.CancelBooking(context.Background(), uuid.New(), "missing")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestUpdateStatus(t *testing.T) {
	svc, repo, _, _ := newTestService()

	existing := &model.Booking{Status: model.BookingStatusScheduled}
	existing.ID = uuid.New()
	repo.byID[existing.ID] = existing

	b, err := svc.UpdateStatus(context.Background(), existing.ID, model.BookingStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, b.Status)

	_, err = svc.UpdateStatus(context.Background(), existing.ID, model.BookingStatusCancelled)
	assert.Error(t, err, "cancellation must go through CancelBooking")

	_, err = svc.UpdateStatus(context.Background(), existing.ID, "nonsense")
	assert.Error(t, err)
}
