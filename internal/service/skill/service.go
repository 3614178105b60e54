package skill

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"productivity-hub/internal/domain"
	"productivity-hub/internal/pkg/normalize"
	"productivity-hub/internal/repository"
)

const (
	topSkillsKey  = "skills:top"
	topSkillsTTL  = 5 * time.Minute
	MaxTopSkills  = 50
	defaultTopLen = 10
)

type Service interface {
	Search(ctx context.Context, skill string, requesterID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.PublicProfile], error)
	TopSkills(ctx context.Context, limit int) ([]domain.SkillCount, error)
	InvalidateTopSkills(ctx context.Context) error
}

type service struct {
	userRepo repository.UserRepository
	redis    *redis.Client
}

func NewService(userRepo repository.UserRepository, redis *redis.Client) Service {
	return &service{
		userRepo: userRepo,
		redis:    redis,
	}
}

// Search finds other users holding a matching skill.
func (s *service) Search(ctx context.Context, skill string, requesterID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.PublicProfile], error) {
	labels := normalize.Labels([]string{skill})
	if len(labels) == 0 {
		return domain.PaginatedResponse[domain.PublicProfile]{}, fmt.Errorf("%w: skill is required", domain.ErrInvalidInput)
	}
	params.Validate()

	users, total, err := s.userRepo.SearchBySkill(ctx, labels[0], requesterID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.PublicProfile]{}, err
	}

	profiles := make([]domain.PublicProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Public())
	}
	return domain.NewPaginatedResponse(profiles, params.Page, params.PageSize, total), nil
}

// TopSkills always aggregates MaxTopSkills rows so one cache entry serves
// every limit.
func (s *service) TopSkills(ctx context.Context, limit int) ([]domain.SkillCount, error) {
	if limit <= 0 {
		limit = defaultTopLen
	}
	if limit > MaxTopSkills {
		limit = MaxTopSkills
	}

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, topSkillsKey).Result(); err == nil {
			var skills []domain.SkillCount
			if json.Unmarshal([]byte(cached), &skills) == nil {
				return head(skills, limit), nil
			}
		}
	}

	skills, err := s.userRepo.TopSkills(ctx, MaxTopSkills)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if payload, err := json.Marshal(skills); err == nil {
			_ = s.redis.Set(ctx, topSkillsKey, payload, topSkillsTTL).Err()
		}
	}

	return head(skills, limit), nil
}

func (s *service) InvalidateTopSkills(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Del(ctx, topSkillsKey).Err()
}

func head(skills []domain.SkillCount, n int) []domain.SkillCount {
	if len(skills) > n {
		return skills[:n]
	}
	return skills
}
