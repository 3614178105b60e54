package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"productivity-hub/internal/domain"
)

type NoteRepository struct {
	mock.Mock
}

func (m *NoteRepository) Create(ctx context.Context, note *domain.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *NoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Note), args.Error(1)
}

func (m *NoteRepository) Update(ctx context.Context, note *domain.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *NoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *NoteRepository) ListByUser(ctx context.Context, userID uuid.UUID, tag string, params domain.PaginationParams) ([]domain.Note, int64, error) {
	args := m.Called(ctx, userID, tag, params)
	return args.Get(0).([]domain.Note), args.Get(1).(int64), args.Error(2)
}

func (m *NoteRepository) ListAllByUser(ctx context.Context, userID uuid.UUID) ([]domain.Note, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Note), args.Error(1)
}
