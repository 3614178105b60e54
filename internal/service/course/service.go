package course

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
	Create(ctx context.Context, userID uuid.UUID, input domain.CreateCourseInput) (*domain.Course, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Course, error)
	Update(ctx context.Context, id, userID uuid.UUID, input domain.UpdateCourseInput) (*domain.Course, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]domain.Course, error)
	SetReminderTrigger(trigger reminder.Trigger)
}

type service struct {
	courseRepo repository.CourseRepository
	trigger    reminder.Trigger
}

func NewService(courseRepo repository.CourseRepository) Service {
	return &service{courseRepo: courseRepo}
}

func (s *service) SetReminderTrigger(trigger reminder.Trigger) {
	s.trigger = trigger
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input domain.CreateCourseInput) (*domain.Course, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	lessons, err := cleanLessons(input.Lessons)
	if err != nil {
		return nil, err
	}

	course := &domain.Course{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: input.Description,
		Lessons:     lessons,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.itemChanged(userID)
	course.RefreshProgress()
	return course, nil
}

func (s *service) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course.UserID != userID {
		return nil, domain.ErrForbidden
	}
	course.RefreshProgress()
	return course, nil
}

func (s *service) Update(ctx context.Context, id, userID uuid.UUID, input domain.UpdateCourseInput) (*domain.Course, error) {
	course, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
		}
		course.Title = title
	}
	if input.Description != nil {
		course.Description = input.Description
	}
	if input.Lessons != nil {
		lessons, err := cleanLessons(*input.Lessons)
		if err != nil {
			return nil, err
		}
		course.Lessons = lessons
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	s.itemChanged(userID)
	course.RefreshProgress()
	return course, nil
}

func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}
	return s.courseRepo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]domain.Course, error) {
	courses, err := s.courseRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		courses[i].RefreshProgress()
	}
	return courses, nil
}

func (s *service) itemChanged(userID uuid.UUID) {
	if s.trigger != nil {
		s.trigger.ItemChanged(userID)
	}
}

// cleanLessons numbers lessons by position when the client sent no order.
func cleanLessons(in []domain.Lesson) (domain.Lessons, error) {
	lessons := make(domain.Lessons, 0, len(in))
	for i, l := range in {
		l.Title = strings.TrimSpace(l.Title)
		if l.Title == "" {
			return nil, fmt.Errorf("%w: lesson %d has no title", domain.ErrInvalidInput, i+1)
		}
		if l.Order == 0 {
			l.Order = i + 1
		}
		lessons = append(lessons, l)
	}
	return lessons, nil
}
