package availability

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/moeenhealth/clinic-api/internal/clock"
	"github.com/moeenhealth/clinic-api/internal/model"
	"github.com/moeenhealth/clinic-api/internal/repository"
	apperrors "github.com/moeenhealth/clinic-api/pkg/errors"
)

// SlotStepMinutes is the spacing between candidate slot starts. The step is
// fixed regardless of session duration, so candidates overlap on purpose:
// the booking layer may claim any aligned start, which packs the calendar
// tighter than back-to-back duration-aligned slots would.
const SlotStepMinutes = 15

const (
	typeCacheTTL     = 5 * time.Minute
	typeCacheCleanup = 10 * time.Minute
)

// Request identifies one availability computation.
type Request struct {
	SessionTypeID uuid.UUID
	Date          time.Time
	TherapistID   *uuid.UUID
}

// Service computes bookable slots. It is a pure function of its inputs and
// the injected repositories; it never writes and never reserves.
type Service struct {
	sessionTypes repository.SessionTypeRepository
	schedules    repository.ScheduleRepository
	bookings     repository.BookingRepository
	typeCache    *cache.Cache
}

func NewService(sessionTypes repository.SessionTypeRepository, schedules repository.ScheduleRepository, bookings repository.BookingRepository) *Service {
	return &Service{
		sessionTypes: sessionTypes,
		schedules:    schedules,
		bookings:     bookings,
		typeCache:    cache.New(typeCacheTTL, typeCacheCleanup),
	}
}

// AvailableSlots resolves qualified-and-scheduled therapists for the date,
// generates candidate slots per shift window, filters out candidates that
// overlap an occupying booking, and assembles the sorted response.
func (s *Service) AvailableSlots(ctx context.Context, req Request) (*model.AvailableSlotsResponse, error) {
	st, err := s.sessionType(ctx, req.SessionTypeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("session type", err)
		}
		return nil, apperrors.Dependency("session type lookup", err)
	}

	summary := model.SessionTypeSummary{
		ID:       st.ID,
		NameAr:   st.NameAr,
		NameEn:   st.NameEn,
		Duration: st.DurationMinutes,
		Price:    st.Price,
	}

	day := int(req.Date.Weekday())
	windows, err := s.schedules.ListQualifiedWindows(ctx, req.SessionTypeID, day, req.TherapistID)
	if err != nil {
		return nil, apperrors.Dependency("schedule resolution", err)
	}

	if len(windows) == 0 {
		return &model.AvailableSlotsResponse{
			Success:     true,
			Slots:       []model.AvailableSlot{},
			SessionType: summary,
			Message:     "No therapists available for the selected date",
		}, nil
	}

	dateStr := req.Date.Format("2006-01-02")

	occupied, err := s.occupiedSpans(ctx, windows, dateStr)
	if err != nil {
		return nil, err
	}

	info := model.SessionTypeInfo{
		ID:     st.ID,
		NameAr: st.NameAr,
		NameEn: st.NameEn,
		Price:  st.Price,
	}

	slots := make([]model.AvailableSlot, 0)
	for _, w := range windows {
		candidates, err := candidateSpans(w.StartTime, w.EndTime, st.DurationMinutes)
		if err != nil {
			return nil, apperrors.Dependency("schedule window parse", err)
		}

		for _, c := range candidates {
			if overlapsAny(c, occupied[w.TherapistID]) {
				continue
			}
			slots = append(slots, model.AvailableSlot{
				TherapistID:   w.TherapistID,
				TherapistName: w.TherapistName,
				Date:          dateStr,
				StartTime:     clock.Format(c.start),
				EndTime:       clock.Format(c.end),
				Duration:      st.DurationMinutes,
				SessionType:   info,
			})
		}
	}

	// Deterministic order: start time ascending, therapist id breaking ties.
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].StartTime != slots[j].StartTime {
			return slots[i].StartTime < slots[j].StartTime
		}
		return slots[i].TherapistID.String() < slots[j].TherapistID.String()
	})

	return &model.AvailableSlotsResponse{
		Success:     true,
		Slots:       slots,
		SessionType: summary,
	}, nil
}

// sessionType reads through the reference-data cache.
func (s *Service) sessionType(ctx context.Context, id uuid.UUID) (*model.SessionType, error) {
	if cached, ok := s.typeCache.Get(id.String()); ok {
		return cached.(*model.SessionType), nil
	}

	st, err := s.sessionTypes.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.typeCache.Set(id.String(), st, cache.DefaultExpiration)
	return st, nil
}

// occupiedSpans fetches every occupying booking for the whole therapist set
// in one round trip and indexes the busy intervals by therapist. A fetch
// failure fails the computation: assuming "no bookings" here would offer
// slots that may already be taken.
func (s *Service) occupiedSpans(ctx context.Context, windows []*model.ScheduleWindow, date string) (map[uuid.UUID][]span, error) {
	seen := make(map[uuid.UUID]bool, len(windows))
	ids := make([]uuid.UUID, 0, len(windows))
	for _, w := range windows {
		if !seen[w.TherapistID] {
			seen[w.TherapistID] = true
			ids = append(ids, w.TherapistID)
		}
	}

	bookings, err := s.bookings.ListOccupying(ctx, ids, date)
	if err != nil {
		return nil, apperrors.Dependency("booking fetch", err)
	}

	occupied := make(map[uuid.UUID][]span, len(ids))
	for _, b := range bookings {
		start, err := clock.Parse(b.StartTime)
		if err != nil {
			return nil, apperrors.Dependency("booking parse", err)
		}
		end := start + b.DurationMinutes
		occupied[b.TherapistID] = append(occupied[b.TherapistID], span{start: start, end: end})
	}
	return occupied, nil
}

// span is a half-open minute interval [start, end) within one day.
type span struct {
	start int
	end   int
}

// candidateSpans enumerates fixed-duration candidates across one window,
// advancing the cursor by SlotStepMinutes while the full duration still
// fits. A window reaching past midnight simply stops producing candidates
// at the end bound; nothing wraps.
func candidateSpans(windowStart, windowEnd string, duration int) ([]span, error) {
	ws, err := clock.Parse(windowStart)
	if err != nil {
		return nil, err
	}
	we, err := clock.Parse(windowEnd)
	if err != nil {
		return nil, err
	}

	var out []span
	for cur := ws; cur+duration <= we; cur += SlotStepMinutes {
		out = append(out, span{start: cur, end: cur + duration})
	}
	return out, nil
}

// overlapsAny reports whether the candidate intersects any busy interval
// under half-open semantics: touching endpoints do not conflict.
func overlapsAny(c span, busy []span) bool {
	for _, b := range busy {
		if c.start < b.end && c.end > b.start {
			return true
		}
	}
	return false
}
