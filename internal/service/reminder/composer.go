package reminder

import (
	"fmt"

	"github.com/google/uuid"

	"productivity-hub/internal/domain"
)

// Compose builds the notification for an item with incomplete sub-items.
// The result has no ID; the caller assigns one before persisting it.
func Compose(kind Kind, recipientID, subjectID uuid.UUID, title string, incomplete int) *domain.Notification {
	link := kind.LinkPrefix + subjectID.String()

	return &domain.Notification{
		RecipientID: recipientID,
		Type:        kind.Type,
		Title:       "Incomplete " + kind.Label,
		Message:     fmt.Sprintf("%s \"%s\" has %d incomplete %s", kind.Label, title, incomplete, pluralize(kind.Noun, incomplete)),
		Link:        &link,
		Metadata: domain.Metadata{
			kind.SubjectKey: subjectID.String(),
			kind.CountKey:   incomplete,
		},
	}
}

func ComposeIncompleteTask(recipientID, taskID uuid.UUID, title string, incomplete int) *domain.Notification {
	return Compose(TaskKind, recipientID, taskID, title, incomplete)
}

func ComposeIncompleteCourse(recipientID, courseID uuid.UUID, title string, incomplete int) *domain.Notification {
	return Compose(CourseKind, recipientID, courseID, title, incomplete)
}

func pluralize(noun string, count int) string {
	if count == 1 {
		return noun
	}
	return noun + "s"
}
