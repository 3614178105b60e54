package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"productivity-hub/internal/domain"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, fullName string) error {
	args := m.Called(ctx, toEmail, fullName)
	return args.Error(0)
}

func (m *EmailService) SendReminderDigest(ctx context.Context, toEmail, fullName string, reminders []domain.Notification) error {
	args := m.Called(ctx, toEmail, fullName, reminders)
	return args.Error(0)
}
