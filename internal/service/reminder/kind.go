// Package reminder turns unfinished tasks and courses into notifications.
//
// Tasks and courses go through the same pipeline, parameterized by Kind:
// detect incomplete sub-items, check recent history for a duplicate, then
// compose and store a notification.
package reminder

import "productivity-hub/internal/domain"

// Kind describes one completable collection (tasks with goals, courses with lessons).
type Kind struct {
	Type       domain.NotificationType
	Label      string
	Noun       string
	SubjectKey string
	CountKey   string
	LinkPrefix string
}

var (
	TaskKind = Kind{
		Type:       domain.NotifIncompleteTask,
		Label:      "Task",
		Noun:       "goal",
		SubjectKey: "taskId",
		CountKey:   "incompleteGoalsCount",
		LinkPrefix: "/task/",
	}

	CourseKind = Kind{
		Type:       domain.NotifIncompleteCourse,
		Label:      "Course",
		Noun:       "lesson",
		SubjectKey: "courseId",
		CountKey:   "incompleteLessonsCount",
		LinkPrefix: "/course/",
	}
)
