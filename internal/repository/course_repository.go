package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"productivity-hub/internal/domain"
)

type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	Update(ctx context.Context, course *domain.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Course, error)
}

type courseRepository struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *domain.Course) error {
	query := `
		INSERT INTO courses (course_id, user_id, title, description, lessons)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		course.ID, course.UserID, course.Title, course.Description, course.Lessons,
	).Scan(&course.CreatedAt, &course.UpdatedAt)
}

func (r *courseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	query := `SELECT * FROM courses WHERE course_id = $1`

	err := r.db.GetContext(ctx, &course, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// Update writes the whole document; the lessons array replaces the stored one.
func (r *courseRepository) Update(ctx context.Context, course *domain.Course) error {
	query := `
		UPDATE courses
		SET title = $2, description = $3, lessons = $4, updated_at = NOW()
		WHERE course_id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		course.ID, course.Title, course.Description, course.Lessons,
	).Scan(&course.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *courseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE course_id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *courseRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Course, error) {
	courses := []domain.Course{}
	query := `SELECT * FROM courses WHERE user_id = $1 ORDER BY updated_at DESC`

	if err := r.db.SelectContext(ctx, &courses, query, userID); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}
