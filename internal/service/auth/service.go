package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/moeenhealth/clinic-api/internal/model"
	"github.com/moeenhealth/clinic-api/internal/repository"
	apperrors "github.com/moeenhealth/clinic-api/pkg/errors"
	"github.com/moeenhealth/clinic-api/pkg/security"
)

type Config struct {
	Secret      string
	ExpiryHours int
}

type Service struct {
	staff  repository.StaffRepository
	hasher security.PasswordHasher
	cfg    Config
}

func NewService(staff repository.StaffRepository, hasher security.PasswordHasher, cfg Config) *Service {
	return &Service{
		staff:  staff,
		hasher: hasher,
		cfg:    cfg,
	}
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.staff.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Unauthorized(err)
		}
		return nil, apperrors.Dependency("staff lookup", err)
	}

	if user.Status != "active" {
		return nil, apperrors.Unauthorized(fmt.Errorf("account is %s", user.Status))
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	expiry := time.Duration(s.cfg.ExpiryHours) * time.Hour
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(expiry).Unix(),
		"iat":   time.Now().Unix(),
	})

	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to sign token: %w", err))
	}

	return &model.LoginResponse{
		AccessToken: signed,
		ExpiresIn:   int64(expiry.Seconds()),
		User:        user,
	}, nil
}

func (s *Service) ValidateToken(ctx context.Context, tokenStr string) (*model.TokenClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperrors.Unauthorized(errors.New("invalid token claims"))
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return nil, apperrors.Unauthorized(errors.New("token missing subject"))
	}

	return &model.TokenClaims{
		UserID: sub,
		Email:  email,
		Role:   role,
	}, nil
}
