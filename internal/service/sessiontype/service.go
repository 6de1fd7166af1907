package sessiontype

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/moeenhealth/clinic-api/internal/model"
	"github.com/moeenhealth/clinic-api/internal/repository"
	apperrors "github.com/moeenhealth/clinic-api/pkg/errors"
)

type Service struct {
	repo repository.SessionTypeRepository
}

func NewService(repo repository.SessionTypeRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateSessionType(ctx context.Context, req *model.CreateSessionTypeRequest) (*model.SessionType, error) {
	st := &model.SessionType{
		NameAr:          req.NameAr,
		NameEn:          req.NameEn,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Active:          true,
	}

	if err := s.repo.Create(ctx, st); err != nil {
		return nil, apperrors.Dependency("session type create", err)
	}
	return st, nil
}

func (s *Service) GetSessionType(ctx context.Context, id uuid.UUID) (*model.SessionType, error) {
	st, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("session type", err)
		}
		return nil, apperrors.Dependency("session type lookup", err)
	}
	return st, nil
}

func (s *Service) UpdateSessionType(ctx context.Context, id uuid.UUID, req *model.UpdateSessionTypeRequest) (*model.SessionType, error) {
	st, err := s.GetSessionType(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.NameAr != nil {
		st.NameAr = *req.NameAr
	}
	if req.NameEn != nil {
		st.NameEn = *req.NameEn
	}
	if req.DurationMinutes != nil {
		st.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		st.Price = *req.Price
	}
	if req.Active != nil {
		st.Active = *req.Active
	}

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, apperrors.Dependency("session type update", err)
	}
	return st, nil
}

func (s *Service) DeleteSessionType(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Dependency("session type delete", err)
	}
	return nil
}

func (s *Service) ListSessionTypes(ctx context.Context, activeOnly bool) ([]*model.SessionType, error) {
	types, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, apperrors.Dependency("session type list", err)
	}
	return types, nil
}
