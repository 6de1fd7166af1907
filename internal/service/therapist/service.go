package therapist

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/moeenhealth/clinic-api/internal/clock"
	"github.com/moeenhealth/clinic-api/internal/model"
	"github.com/moeenhealth/clinic-api/internal/repository"
	apperrors "github.com/moeenhealth/clinic-api/pkg/errors"
)

type Service struct {
	repo      repository.TherapistRepository
	schedules repository.ScheduleRepository
}

func NewService(repo repository.TherapistRepository, schedules repository.ScheduleRepository) *Service {
	return &Service{repo: repo, schedules: schedules}
}

func (s *Service) CreateTherapist(ctx context.Context, req *model.CreateTherapistRequest) (*model.Therapist, error) {
	t := &model.Therapist{
		Name:      req.Name,
		Email:     req.Email,
		Specialty: req.Specialty,
		Status:    "active",
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, apperrors.Dependency("therapist create", err)
	}
	return t, nil
}

func (s *Service) GetTherapist(ctx context.Context, id uuid.UUID) (*model.Therapist, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("therapist", err)
		}
		return nil, apperrors.Dependency("therapist lookup", err)
	}
	return t, nil
}

func (s *Service) UpdateTherapist(ctx context.Context, id uuid.UUID, req *model.UpdateTherapistRequest) (*model.Therapist, error) {
	t, err := s.GetTherapist(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Email != nil {
		t.Email = *req.Email
	}
	if req.Specialty != nil {
		t.Specialty = *req.Specialty
	}
	if req.Status != nil {
		t.Status = *req.Status
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, apperrors.Dependency("therapist update", err)
	}
	return t, nil
}

func (s *Service) DeleteTherapist(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Dependency("therapist delete", err)
	}
	return nil
}

func (s *Service) ListTherapists(ctx context.Context) ([]*model.Therapist, error) {
	therapists, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Dependency("therapist list", err)
	}
	return therapists, nil
}

// UpsertSchedule writes one weekly shift. Multiple shifts per weekday are
// allowed; rows are keyed by (therapist, day, start time).
func (s *Service) UpsertSchedule(ctx context.Context, therapistID uuid.UUID, req *model.UpsertScheduleRequest) (*model.TherapistSchedule, error) {
	start, err := clock.Parse(req.StartTime)
	if err != nil {
		return nil, apperrors.BadRequest("invalid start time", err)
	}
	end, err := clock.Parse(req.EndTime)
	if err != nil {
		return nil, apperrors.BadRequest("invalid end time", err)
	}
	if end <= start {
		return nil, apperrors.BadRequest("end time must be after start time", nil)
	}

	if _, err := s.GetTherapist(ctx, therapistID); err != nil {
		return nil, err
	}

	schedule := &model.TherapistSchedule{
		TherapistID: therapistID,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: req.IsAvailable,
	}

	if err := s.schedules.Upsert(ctx, schedule); err != nil {
		return nil, apperrors.Dependency("schedule upsert", err)
	}
	return schedule, nil
}

func (s *Service) DeleteSchedule(ctx context.Context, id uuid.UUID) error {
	if err := s.schedules.Delete(ctx, id); err != nil {
		return apperrors.Dependency("schedule delete", err)
	}
	return nil
}

func (s *Service) ListSchedules(ctx context.Context, therapistID uuid.UUID) ([]*model.TherapistSchedule, error) {
	schedules, err := s.schedules.ListForTherapist(ctx, therapistID)
	if err != nil {
		return nil, apperrors.Dependency("schedule list", err)
	}
	return schedules, nil
}

func (s *Service) AddQualification(ctx context.Context, therapistID uuid.UUID, req *model.AddQualificationRequest) error {
	if _, err := s.GetTherapist(ctx, therapistID); err != nil {
		return err
	}

	level := req.ProficiencyLevel
	if level == "" {
		level = "standard"
	}

	q := &model.TherapistSessionType{
		TherapistID:      therapistID,
		SessionTypeID:    req.SessionTypeID,
		ProficiencyLevel: level,
	}
	if err := s.repo.AddQualification(ctx, q); err != nil {
		return apperrors.Dependency("qualification add", err)
	}
	return nil
}

func (s *Service) RemoveQualification(ctx context.Context, therapistID, sessionTypeID uuid.UUID) error {
	if err := s.repo.RemoveQualification(ctx, therapistID, sessionTypeID); err != nil {
		return apperrors.Dependency("qualification remove", err)
	}
	return nil
}

func (s *Service) ListQualifications(ctx context.Context, therapistID uuid.UUID) ([]*model.TherapistSessionType, error) {
	quals, err := s.repo.ListQualifications(ctx, therapistID)
	if err != nil {
		return nil, apperrors.Dependency("qualification list", err)
	}
	return quals, nil
}
