package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"productivity-hub/internal/domain"
	"productivity-hub/internal/service/reminder"
)

type mockNotificationService struct {
	mock.Mock
}

func (m *mockNotificationService) Create(ctx context.Context, notif *domain.Notification) error {
	return m.Called(ctx, notif).Error(0)
}

func (m *mockNotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, userID, unreadOnly, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *mockNotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *mockNotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *mockNotificationService) DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationService) CheckIncomplete(ctx context.Context, userID uuid.UUID, forceSend bool) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, forceSend)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

type mockTaskService struct {
	mock.Mock
}

func (m *mockTaskService) Create(ctx context.Context, userID uuid.UUID, input domain.CreateTaskInput) (*domain.Task, error) {
	args := m.Called(ctx, userID, input)
	return taskArg(args)
}

func (m *mockTaskService) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id, userID)
	return taskArg(args)
}

func (m *mockTaskService) Update(ctx context.Context, id, userID uuid.UUID, input domain.UpdateTaskInput) (*domain.Task, error) {
	args := m.Called(ctx, id, userID, input)
	return taskArg(args)
}

func (m *mockTaskService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *mockTaskService) List(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *mockTaskService) SetReminderTrigger(trigger reminder.Trigger) {
	m.Called(trigger)
}

func taskArg(args mock.Arguments) (*domain.Task, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}
