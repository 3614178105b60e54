package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"productivity-hub/internal/domain"
	"productivity-hub/internal/mocks"
)

type countingSkills struct {
	invalidations int
	err           error
}

func (c *countingSkills) Search(context.Context, string, uuid.UUID, domain.PaginationParams) (domain.PaginatedResponse[domain.PublicProfile], error) {
	return domain.PaginatedResponse[domain.PublicProfile]{}, nil
}

func (c *countingSkills) TopSkills(context.Context, int) ([]domain.SkillCount, error) {
	return nil, nil
}

func (c *countingSkills) InvalidateTopSkills(context.Context) error {
	c.invalidations++
	return c.err
}

func strPtr(s string) *string { return &s }

func TestUserService_GetProfile(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.UserRepository)
	svc := NewService(repo, nil, zap.NewNop())
	id := uuid.New()

	repo.On("GetByID", ctx, id).Return(nil, nil).Once()

	_, err := svc.GetProfile(ctx, id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	existing := func() *domain.User {
		return &domain.User{ID: id, FullName: "Ada", Skills: pq.StringArray{"go"}}
	}

	t.Run("Normalizes skills and invalidates cache", func(t *testing.T) {
		repo := new(mocks.UserRepository)
		skills := &countingSkills{}
		svc := NewService(repo, skills, zap.NewNop())

		repo.On("GetByID", ctx, id).Return(existing(), nil).Once()
		repo.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return assert.ObjectsAreEqual(pq.StringArray{"go", "distributed systems"}, u.Skills)
		})).Return(nil).Once()

		in := []string{" Go", "distributed   Systems", "go", ""}
		user, err := svc.UpdateProfile(ctx, id, domain.UpdateUserInput{Skills: &in})

		require.NoError(t, err)
		assert.Equal(t, "Ada", user.FullName)
		assert.Equal(t, 1, skills.invalidations)
		repo.AssertExpectations(t)
	})

	t.Run("Unchanged skills keep the cache", func(t *testing.T) {
		repo := new(mocks.UserRepository)
		skills := &countingSkills{}
		svc := NewService(repo, skills, zap.NewNop())

		repo.On("GetByID", ctx, id).Return(existing(), nil).Once()
		repo.On("Update", ctx, mock.Anything).Return(nil).Once()

		in := []string{"GO"}
		_, err := svc.UpdateProfile(ctx, id, domain.UpdateUserInput{Skills: &in})

		require.NoError(t, err)
		assert.Zero(t, skills.invalidations)
	})

	t.Run("Cache failure is not fatal", func(t *testing.T) {
		repo := new(mocks.UserRepository)
		skills := &countingSkills{err: errors.New("redis down")}
		svc := NewService(repo, skills, zap.NewNop())

		repo.On("GetByID", ctx, id).Return(existing(), nil).Once()
		repo.On("Update", ctx, mock.Anything).Return(nil).Once()

		in := []string{"rust"}
		_, err := svc.UpdateProfile(ctx, id, domain.UpdateUserInput{Skills: &in})

		assert.NoError(t, err)
	})

	t.Run("Clears bio", func(t *testing.T) {
		repo := new(mocks.UserRepository)
		svc := NewService(repo, nil, zap.NewNop())
		u := existing()
		u.Bio = strPtr("old")

		repo.On("GetByID", ctx, id).Return(u, nil).Once()
		repo.On("Update", ctx, mock.Anything).Return(nil).Once()

		blank := strPtr("  ")
		user, err := svc.UpdateProfile(ctx, id, domain.UpdateUserInput{Bio: &blank})

		require.NoError(t, err)
		assert.Nil(t, user.Bio)
	})

	t.Run("Blank name", func(t *testing.T) {
		repo := new(mocks.UserRepository)
		svc := NewService(repo, nil, zap.NewNop())
		repo.On("GetByID", ctx, id).Return(existing(), nil).Once()

		_, err := svc.UpdateProfile(ctx, id, domain.UpdateUserInput{FullName: strPtr(" ")})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
