package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"productivity-hub/internal/domain"
)

// UserRepository lookups return (nil, nil) when no live user matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListActive(ctx context.Context, after uuid.UUID, limit int) ([]domain.User, error)
	SearchBySkill(ctx context.Context, skill string, excludeID uuid.UUID, params domain.PaginationParams) ([]domain.User, int64, error)
	TopSkills(ctx context.Context, limit int) ([]domain.SkillCount, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (user_id, email, password_hash, full_name, avatar_url, bio, skills, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	if user.Skills == nil {
		user.Skills = []string{}
	}

	return r.db.QueryRowxContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FullName,
		user.AvatarURL, user.Bio, user.Skills, user.IsActive,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, `SELECT * FROM users WHERE user_id = $1 AND deleted_at IS NULL`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT * FROM users WHERE email = $1 AND deleted_at IS NULL`, email)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET full_name = :full_name, password_hash = :password_hash, avatar_url = :avatar_url,
			bio = :bio, skills = :skills, updated_at = NOW()
		WHERE user_id = :user_id AND deleted_at IS NULL`

	res, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET deleted_at = NOW() WHERE user_id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND deleted_at IS NULL)`
	err := r.db.GetContext(ctx, &exists, query, email)
	return exists, err
}

// ListActive walks active users in user_id order, starting after the given id.
func (r *userRepository) ListActive(ctx context.Context, after uuid.UUID, limit int) ([]domain.User, error) {
	users := []domain.User{}
	query := `
		SELECT * FROM users
		WHERE deleted_at IS NULL AND is_active AND user_id > $1
		ORDER BY user_id
		LIMIT $2`

	err := r.db.SelectContext(ctx, &users, query, after, limit)
	return users, err
}

func (r *userRepository) SearchBySkill(ctx context.Context, skill string, excludeID uuid.UUID, params domain.PaginationParams) ([]domain.User, int64, error) {
	params.Validate()
	skill = escapeLike(skill)

	where := `
		WHERE deleted_at IS NULL AND is_active AND user_id <> $1
		AND EXISTS (SELECT 1 FROM unnest(skills) s WHERE s ILIKE '%' || $2 || '%' ESCAPE '\')`

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`+where, excludeID, skill); err != nil {
		return nil, 0, err
	}

	users := []domain.User{}
	query := `SELECT * FROM users` + where + ` ORDER BY full_name, user_id LIMIT $3 OFFSET $4`
	err := r.db.SelectContext(ctx, &users, query, excludeID, skill, params.PageSize, params.Offset())
	return users, total, err
}

func (r *userRepository) TopSkills(ctx context.Context, limit int) ([]domain.SkillCount, error) {
	skills := []domain.SkillCount{}
	query := `
		SELECT s AS skill, COUNT(*) AS users
		FROM users, unnest(skills) AS s
		WHERE deleted_at IS NULL AND is_active
		GROUP BY s
		ORDER BY users DESC, skill
		LIMIT $1`

	err := r.db.SelectContext(ctx, &skills, query, limit)
	return skills, err
}
