package domain

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

type Goal struct {
	Title string `json:"title" validate:"required,max=200"`
	Done  bool   `json:"done"`
}

func (g Goal) IsDone() bool { return g.Done }

// Goals is stored as a single JSONB array and always replaced wholesale.
type Goals []Goal

func (g *Goals) Scan(src interface{}) error {
	return scanJSON(src, g)
}

func (g Goals) Value() (driver.Value, error) {
	if g == nil {
		return valueJSON([]Goal{})
	}
	return valueJSON([]Goal(g))
}

type Task struct {
	ID          uuid.UUID `json:"id" db:"task_id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	Goals       Goals     `json:"goals" db:"goals"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	PercentCompleted int `json:"percent_completed" db:"-"`
}

// RefreshProgress recomputes PercentCompleted from the goals.
func (t *Task) RefreshProgress() {
	t.PercentCompleted = PercentCompleted(t.Goals)
}

type CreateTaskInput struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description,omitempty"`
	Goals       []Goal  `json:"goals"`
}

type UpdateTaskInput struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty"`
	Goals       *[]Goal `json:"goals,omitempty"`
}
