package domain

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID          uuid.UUID        `json:"id" db:"notification_id"`
	RecipientID uuid.UUID        `json:"recipient_id" db:"recipient_id"`
	SenderID    *uuid.UUID       `json:"sender_id,omitempty" db:"sender_id"`
	Type        NotificationType `json:"type" db:"type"`
	Title       string           `json:"title" db:"title"`
	Message     string           `json:"message" db:"message"`
	IsRead      bool             `json:"is_read" db:"is_read"`
	Link        *string          `json:"link,omitempty" db:"link"`
	Metadata    Metadata         `json:"metadata,omitempty" db:"metadata"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}

type NotificationType string

const (
	NotifConnectionRequest  NotificationType = "connection_request"
	NotifConnectionAccepted NotificationType = "connection_accepted"
	NotifMessage            NotificationType = "message"
	NotifProfileView        NotificationType = "profile_view"
	NotifSkillMatch         NotificationType = "skill_match"
	NotifTaskReminder       NotificationType = "task_reminder"
	NotifIncompleteTask     NotificationType = "incomplete_task"
	NotifIncompleteCourse   NotificationType = "incomplete_course"
	NotifSystem             NotificationType = "system"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotifConnectionRequest, NotifConnectionAccepted, NotifMessage, NotifProfileView,
		NotifSkillMatch, NotifTaskReminder, NotifIncompleteTask, NotifIncompleteCourse, NotifSystem:
		return true
	default:
		return false
	}
}

// Metadata is a free-form JSONB payload attached to a notification.
type Metadata map[string]interface{}

func (m *Metadata) Scan(src interface{}) error {
	return scanJSON(src, m)
}

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return valueJSON(map[string]interface{}(m))
}

// NotificationQuery selects a window of a recipient's notifications, newest first.
type NotificationQuery struct {
	RecipientID uuid.UUID
	Limit       int
	Skip        int
	UnreadOnly  bool
}

// SendTestNotificationInput is the optional body of a test notification.
// Empty fields fall back to a system notice.
type SendTestNotificationInput struct {
	Type     NotificationType `json:"type,omitempty"`
	Title    string           `json:"title,omitempty"`
	Message  string           `json:"message,omitempty"`
	Link     *string          `json:"link,omitempty"`
	Metadata Metadata         `json:"metadata,omitempty"`
}
