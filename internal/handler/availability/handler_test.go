package availability

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moeenhealth/clinic-api/internal/model"
	availabilityService "github.com/moeenhealth/clinic-api/internal/service/availability"
	"github.com/moeenhealth/clinic-api/pkg/metrics"
)

var (
	testTypeID      = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	testTherapistID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

type fakeSessionTypes struct {
	byID map[uuid.UUID]*model.SessionType
}

func (f *fakeSessionTypes) Create(ctx context.Context, st *model.SessionType) error { return nil }
func (f *fakeSessionTypes) Get(ctx context.Context, id uuid.UUID) (*model.SessionType, error) {
	st, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("failed to get session type: %w", sql.ErrNoRows)
	}
	return st, nil
}
func (f *fakeSessionTypes) Update(ctx context.Context, st *model.SessionType) error { return nil }
func (f *fakeSessionTypes) Delete(ctx context.Context, id uuid.UUID) error          { return nil }
func (f *fakeSessionTypes) List(ctx context.Context, activeOnly bool) ([]*model.SessionType, error) {
	return nil, nil
}

type fakeSchedules struct {
	windows []*model.ScheduleWindow
	err     error
}

func (f *fakeSchedules) Upsert(ctx context.Context, s *model.TherapistSchedule) error { return nil }
func (f *fakeSchedules) Delete(ctx context.Context, id uuid.UUID) error               { return nil }
func (f *fakeSchedules) ListForTherapist(ctx context.Context, therapistID uuid.UUID) ([]*model.TherapistSchedule, error) {
	return nil, nil
}
func (f *fakeSchedules) ListQualifiedWindows(ctx context.Context, sessionTypeID uuid.UUID, dayOfWeek int, therapistID *uuid.UUID) ([]*model.ScheduleWindow, error) {
	return f.windows, f.err
}

type fakeBookings struct {
	bookings []*model.Booking
	err      error
}

func (f *fakeBookings) Create(ctx context.Context, b *model.Booking) error { return nil }
func (f *fakeBookings) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	return nil, sql.ErrNoRows
}
func (f *fakeBookings) Update(ctx context.Context, b *model.Booking) error { return nil }
func (f *fakeBookings) List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	return nil, nil
}
func (f *fakeBookings) ListOccupying(ctx context.Context, therapistIDs []uuid.UUID, date string) ([]*model.Booking, error) {
	return f.bookings, f.err
}

func newTestRouter(t *testing.T, schedules *fakeSchedules, bookings *fakeBookings) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessionTypes := &fakeSessionTypes{byID: map[uuid.UUID]*model.SessionType{
		testTypeID: {
			Base:            model.Base{ID: testTypeID},
			NameAr:          "جلسة علاجية",
			NameEn:          "Therapy Session",
			DurationMinutes: 60,
			Price:           250,
			Active:          true,
		},
	}}

	svc := availabilityService.NewService(sessionTypes, schedules, bookings)
	h := NewHandler(svc, metrics.NewMetrics("clinic_api_test_"+uuid.NewString()[:8], "api"))

	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func doRequest(engine *gin.Engine, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	engine.ServeHTTP(w, req)
	return w
}

func TestGetAvailableSlots_MissingParams(t *testing.T) {
	engine := newTestRouter(t, &fakeSchedules{}, &fakeBookings{})

	for _, url := range []string{
		"/api/v1/appointments/available-slots",
		"/api/v1/appointments/available-slots?date=2026-09-07",
		fmt.Sprintf("/api/v1/appointments/available-slots?sessionTypeId=%s", testTypeID),
	} {
		w := doRequest(engine, url)
		assert.Equal(t, http.StatusBadRequest, w.Code, url)
		assert.JSONEq(t, `{"error":"sessionTypeId and date are required"}`, w.Body.String(), url)
	}
}

func TestGetAvailableSlots_UnknownSessionType(t *testing.T) {
	engine := newTestRouter(t, &fakeSchedules{}, &fakeBookings{})

	url := fmt.Sprintf("/api/v1/appointments/available-slots?sessionTypeId=%s&date=2026-09-07", uuid.New())
	w := doRequest(engine, url)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Session type not found"}`, w.Body.String())
}

func TestGetAvailableSlots_MalformedSessionTypeID(t *testing.T) {
	engine := newTestRouter(t, &fakeSchedules{}, &fakeBookings{})

	w := doRequest(engine, "/api/v1/appointments/available-slots?sessionTypeId=not-a-uuid&date=2026-09-07")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Session type not found"}`, w.Body.String())
}

func TestGetAvailableSlots_InvalidDate(t *testing.T) {
	engine := newTestRouter(t, &fakeSchedules{}, &fakeBookings{})

	url := fmt.Sprintf("/api/v1/appointments/available-slots?sessionTypeId=%s&date=07-09-2026", testTypeID)
	w := doRequest(engine, url)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAvailableSlots_Success(t *testing.T) {
	schedules := &fakeSchedules{windows: []*model.ScheduleWindow{
		{TherapistID: testTherapistID, TherapistName: "Dr. Sara", StartTime: "09:00", EndTime: "11:00"},
	}}
	engine := newTestRouter(t, schedules, &fakeBookings{})

	url := fmt.Sprintf("/api/v1/appointments/available-slots?sessionTypeId=%s&date=2026-09-07", testTypeID)
	w := doRequest(engine, url)

	require.Equal(t, http.StatusOK, w.Code)

	var resp model.AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	require.Len(t, resp.Slots, 5)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime)
	assert.Equal(t, "10:00", resp.Slots[0].EndTime)
	assert.Equal(t, "Dr. Sara", resp.Slots[0].TherapistName)
	assert.Equal(t, "2026-09-07", resp.Slots[0].Date)
	assert.Equal(t, 60, resp.Slots[0].Duration)
	assert.Equal(t, testTypeID, resp.SessionType.ID)
	assert.Equal(t, 60, resp.SessionType.Duration)
	assert.Equal(t, 250.0, resp.SessionType.Price)

	// camelCase keys are part of the contract with the mobile app.
	body := w.Body.String()
	for _, key := range []string{`"therapistId"`, `"therapistName"`, `"startTime"`, `"endTime"`, `"sessionType"`, `"nameAr"`, `"nameEn"`} {
		assert.Contains(t, body, key)
	}
}

func TestGetAvailableSlots_EmptyIsSuccess(t *testing.T) {
	engine := newTestRouter(t, &fakeSchedules{}, &fakeBookings{})

	url := fmt.Sprintf("/api/v1/appointments/available-slots?sessionTypeId=%s&date=2026-09-07", testTypeID)
	w := doRequest(engine, url)

	require.Equal(t, http.StatusOK, w.Code)

	var resp model.AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Slots)
	assert.NotEmpty(t, resp.Message)
}

func TestGetAvailableSlots_BookingFetchFailure(t *testing.T) {
	schedules := &fakeSchedules{windows: []*model.ScheduleWindow{
		{TherapistID: testTherapistID, TherapistName: "Dr. Sara", StartTime: "09:00", EndTime: "11:00"},
	}}
	bookings := &fakeBookings{err: errors.New("connection refused")}
	engine := newTestRouter(t, schedules, bookings)

	url := fmt.Sprintf("/api/v1/appointments/available-slots?sessionTypeId=%s&date=2026-09-07", testTypeID)
	w := doRequest(engine, url)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestGetAvailableSlots_TherapistFilter(t *testing.T) {
	engine := newTestRouter(t, &fakeSchedules{}, &fakeBookings{})

	url := fmt.Sprintf("/api/v1/appointments/available-slots?sessionTypeId=%s&date=2026-09-07&therapistId=junk", testTypeID)
	w := doRequest(engine, url)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
