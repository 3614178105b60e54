package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Note struct {
	ID        uuid.UUID      `json:"id" db:"note_id"`
	UserID    uuid.UUID      `json:"user_id" db:"user_id"`
	Title     string         `json:"title" db:"title"`
	Content   string         `json:"content" db:"content"`
	Tags      pq.StringArray `json:"tags" db:"tags"`
	IsPinned  bool           `json:"is_pinned" db:"is_pinned"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

type CreateNoteInput struct {
	Title    string   `json:"title" validate:"required,min=1,max=200"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	IsPinned bool     `json:"is_pinned"`
}

type UpdateNoteInput struct {
	Title    *string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content  *string   `json:"content,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
	IsPinned *bool     `json:"is_pinned,omitempty"`
}
