package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type User struct {
	ID           uuid.UUID      `json:"id" db:"user_id"`
	Email        string         `json:"email" db:"email"`
	PasswordHash string         `json:"-" db:"password_hash"`
	FullName     string         `json:"full_name" db:"full_name"`
	AvatarURL    *string        `json:"avatar_url,omitempty" db:"avatar_url"`
	Bio          *string        `json:"bio,omitempty" db:"bio"`
	Skills       pq.StringArray `json:"skills" db:"skills"`
	IsActive     bool           `json:"is_active" db:"is_active"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time     `json:"-" db:"deleted_at"`
}

// PublicProfile is what other users see in skill search results.
type PublicProfile struct {
	ID        uuid.UUID `json:"id" db:"user_id"`
	FullName  string    `json:"full_name" db:"full_name"`
	AvatarURL *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	Bio       *string   `json:"bio,omitempty" db:"bio"`
	Skills    []string  `json:"skills" db:"-"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:        u.ID,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
		Bio:       u.Bio,
		Skills:    []string(u.Skills),
	}
}

type SkillCount struct {
	Skill string `json:"skill" db:"skill"`
	Users int64  `json:"users" db:"users"`
}

type CreateUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2"`
}

type UpdateUserInput struct {
	FullName  *string   `json:"full_name,omitempty" validate:"omitempty,min=2"`
	AvatarURL **string  `json:"avatar_url,omitempty"`
	Bio       **string  `json:"bio,omitempty"`
	Skills    *[]string `json:"skills,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
