package therapist

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moeenhealth/clinic-api/internal/model"
	apperrors "github.com/moeenhealth/clinic-api/pkg/errors"
)

type fakeTherapistRepo struct {
	byID map[uuid.UUID]*model.Therapist
}

func (f *fakeTherapistRepo) Create(ctx context.Context, t *model.Therapist) error {
	t.ID = uuid.New()
	f.byID[t.ID] = t
	return nil
}

func (f *fakeTherapistRepo) Get(ctx context.Context, id uuid.UUID) (*model.Therapist, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("failed to get therapist: %w", sql.ErrNoRows)
	}
	return t, nil
}

func (f *fakeTherapistRepo) Update(ctx context.Context, t *model.Therapist) error {
	f.byID[t.ID] = t
	return nil
}

func (f *fakeTherapistRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeTherapistRepo) List(ctx context.Context) ([]*model.Therapist, error) {
	var out []*model.Therapist
	for _, t := range f.byID {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTherapistRepo) AddQualification(ctx context.Context, q *model.TherapistSessionType) error {
	return nil
}

func (f *fakeTherapistRepo) RemoveQualification(ctx context.Context, therapistID, sessionTypeID uuid.UUID) error {
	return nil
}

func (f *fakeTherapistRepo) ListQualifications(ctx context.Context, therapistID uuid.UUID) ([]*model.TherapistSessionType, error) {
	return nil, nil
}

type fakeScheduleRepo struct {
	upserted []*model.TherapistSchedule
}

func (f *fakeScheduleRepo) Upsert(ctx context.Context, s *model.TherapistSchedule) error {
	f.upserted = append(f.upserted, s)
	return nil
}

func (f *fakeScheduleRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeScheduleRepo) ListForTherapist(ctx context.Context, therapistID uuid.UUID) ([]*model.TherapistSchedule, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) ListQualifiedWindows(ctx context.Context, sessionTypeID uuid.UUID, dayOfWeek int, therapistID *uuid.UUID) ([]*model.ScheduleWindow, error) {
	return nil, nil
}

func newTestService(t *testing.T) (*Service, *fakeTherapistRepo, *fakeScheduleRepo) {
	t.Helper()
	therapists := &fakeTherapistRepo{byID: map[uuid.UUID]*model.Therapist{}}
	schedules := &fakeScheduleRepo{}
	return NewService(therapists, schedules), therapists, schedules
}

func TestCreateTherapist_DefaultsToActive(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.CreateTherapist(context.Background(), &model.CreateTherapistRequest{
		Name:      "Dr. Sara",
		Email:     "sara@clinic.test",
		Specialty: "speech",
	})
	require.NoError(t, err)
	assert.Equal(t, "active", created.Status)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestGetTherapist_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetTherapist(context.Background(), uuid.New())
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestUpdateTherapist_AppliesOnlyProvidedFields(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.CreateTherapist(context.Background(), &model.CreateTherapistRequest{
		Name:      "Dr. Sara",
		Email:     "sara@clinic.test",
		Specialty: "speech",
	})
	require.NoError(t, err)

	newName := "Dr. Sara A."
	updated, err := svc.UpdateTherapist(context.Background(), created.ID, &model.UpdateTherapistRequest{
		Name: &newName,
	})
	require.NoError(t, err)

	assert.Equal(t, "Dr. Sara A.", updated.Name)
	assert.Equal(t, "sara@clinic.test", updated.Email)
	assert.Equal(t, "speech", updated.Specialty)
}

func TestUpsertSchedule(t *testing.T) {
	svc, _, schedules := newTestService(t)

	created, err := svc.CreateTherapist(context.Background(), &model.CreateTherapistRequest{
		Name:  "Dr. Sara",
		Email: "sara@clinic.test",
	})
	require.NoError(t, err)

	schedule, err := svc.UpsertSchedule(context.Background(), created.ID, &model.UpsertScheduleRequest{
		DayOfWeek:   1,
		StartTime:   "09:00",
		EndTime:     "13:00",
		IsAvailable: true,
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, schedule.TherapistID)
	require.Len(t, schedules.upserted, 1)
}

func TestUpsertSchedule_RejectsInvertedWindow(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.CreateTherapist(context.Background(), &model.CreateTherapistRequest{
		Name:  "Dr. Sara",
		Email: "sara@clinic.test",
	})
	require.NoError(t, err)

	cases := []struct {
		name  string
		start string
		end   string
	}{
		{"end before start", "13:00", "09:00"},
		{"zero length", "09:00", "09:00"},
		{"bad start", "9h00", "13:00"},
		{"bad end", "09:00", "25:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpsertSchedule(context.Background(), created.ID, &model.UpsertScheduleRequest{
				DayOfWeek: 1,
				StartTime: tc.start,
				EndTime:   tc.end,
			})
			require.Error(t, err)

			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
		})
	}
}

func TestUpsertSchedule_UnknownTherapist(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.UpsertSchedule(context.Background(), uuid.New(), &model.UpsertScheduleRequest{
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "13:00",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}
