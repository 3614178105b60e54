package domain

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

type Lesson struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content,omitempty"`
	Order   int    `json:"order"`
	Done    bool   `json:"done"`
}

func (l Lesson) IsDone() bool { return l.Done }

type Lessons []Lesson

func (l *Lessons) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func (l Lessons) Value() (driver.Value, error) {
	if l == nil {
		return valueJSON([]Lesson{})
	}
	return valueJSON([]Lesson(l))
}

type Course struct {
	ID          uuid.UUID `json:"id" db:"course_id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	Lessons     Lessons   `json:"lessons" db:"lessons"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	PercentCompleted int `json:"percent_completed" db:"-"`
}

// RefreshProgress recomputes PercentCompleted from the lessons.
func (c *Course) RefreshProgress() {
	c.PercentCompleted = PercentCompleted(c.Lessons)
}

type CreateCourseInput struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Description *string  `json:"description,omitempty"`
	Lessons     []Lesson `json:"lessons"`
}

type UpdateCourseInput struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string   `json:"description,omitempty"`
	Lessons     *[]Lesson `json:"lessons,omitempty"`
}
