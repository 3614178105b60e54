package user

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"productivity-hub/internal/domain"
	"productivity-hub/internal/pkg/normalize"
	"productivity-hub/internal/repository"
	"productivity-hub/internal/service/skill"
)

type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input domain.UpdateUserInput) (*domain.User, error)
}

type service struct {
	userRepo repository.UserRepository
	skillSvc skill.Service
	log      *zap.Logger
}

func NewService(userRepo repository.UserRepository, skillSvc skill.Service, log *zap.Logger) Service {
	return &service{
		userRepo: userRepo,
		skillSvc: skillSvc,
		log:      log,
	}
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input domain.UpdateUserInput) (*domain.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		name, ok := normalize.Text(*input.FullName)
		if !ok {
			return nil, fmt.Errorf("%w: full name is required", domain.ErrInvalidInput)
		}
		user.FullName = name
	}
	if input.AvatarURL != nil {
		user.AvatarURL = trimmedOrNil(*input.AvatarURL)
	}
	if input.Bio != nil {
		user.Bio = trimmedOrNil(*input.Bio)
	}

	skillsChanged := false
	if input.Skills != nil {
		skills := normalize.Labels(*input.Skills)
		skillsChanged = !slices.Equal(skills, []string(user.Skills))
		user.Skills = skills
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if skillsChanged && s.skillSvc != nil {
		if err := s.skillSvc.InvalidateTopSkills(ctx); err != nil {
			s.log.Warn("failed to invalidate top skills cache", zap.Error(err))
		}
	}

	return user, nil
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
