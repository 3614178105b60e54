package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"productivity-hub/internal/domain"
	"productivity-hub/internal/repository"
	"productivity-hub/internal/service/reminder"
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input domain.CreateTaskInput) (*domain.Task, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)
	Update(ctx context.Context, id, userID uuid.UUID, input domain.UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]domain.Task, error)
	SetReminderTrigger(trigger reminder.Trigger)
}

type service struct {
	taskRepo repository.TaskRepository
	trigger  reminder.Trigger
}

func NewService(taskRepo repository.TaskRepository) Service {
	return &service{taskRepo: taskRepo}
}

func (s *service) SetReminderTrigger(trigger reminder.Trigger) {
	s.trigger = trigger
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input domain.CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	goals, err := cleanGoals(input.Goals)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: input.Description,
		Goals:       goals,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.itemChanged(userID)
	task.RefreshProgress()
	return task, nil
}

func (s *service) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, domain.ErrForbidden
	}
	task.RefreshProgress()
	return task, nil
}

func (s *service) Update(ctx context.Context, id, userID uuid.UUID, input domain.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = input.Description
	}
	if input.Goals != nil {
		goals, err := cleanGoals(*input.Goals)
		if err != nil {
			return nil, err
		}
		task.Goals = goals
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.itemChanged(userID)
	task.RefreshProgress()
	return task, nil
}

func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	tasks, err := s.taskRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i].RefreshProgress()
	}
	return tasks, nil
}

func (s *service) itemChanged(userID uuid.UUID) {
	if s.trigger != nil {
		s.trigger.ItemChanged(userID)
	}
}

func cleanGoals(in []domain.Goal) (domain.Goals, error) {
	goals := make(domain.Goals, 0, len(in))
	for i, g := range in {
		g.Title = strings.TrimSpace(g.Title)
		if g.Title == "" {
			return nil, fmt.Errorf("%w: goal %d has no title", domain.ErrInvalidInput, i+1)
		}
		goals = append(goals, g)
	}
	return goals, nil
}
