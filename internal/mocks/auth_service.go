package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"productivity-hub/internal/domain"
	"productivity-hub/internal/service/auth"
)

type AuthService struct {
	mock.Mock
}

func (m *AuthService) Register(ctx context.Context, input domain.CreateUserInput) (*domain.User, *domain.TokenPair, error) {
	args := m.Called(ctx, input)
	return userArg(args, 0), tokensArg(args, 1), args.Error(2)
}

func (m *AuthService) Login(ctx context.Context, input domain.LoginInput) (*domain.User, *domain.TokenPair, error) {
	args := m.Called(ctx, input)
	return userArg(args, 0), tokensArg(args, 1), args.Error(2)
}

func (m *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	return tokensArg(args, 0), args.Error(1)
}

func (m *AuthService) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *AuthService) ValidateAccessToken(token string) (*auth.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func (m *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	return userArg(args, 0), args.Error(1)
}

func userArg(args mock.Arguments, i int) *domain.User {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).(*domain.User)
}

func tokensArg(args mock.Arguments, i int) *domain.TokenPair {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).(*domain.TokenPair)
}
