package repository

import (
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"

	"productivity-hub/internal/domain"
)

type Repositories struct {
	User         UserRepository
	Session      SessionRepository
	Note         NoteRepository
	Task         TaskRepository
	Course       CourseRepository
	Notification NotificationRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Session:      NewSessionRepository(db),
		Note:         NewNoteRepository(db),
		Task:         NewTaskRepository(db),
		Course:       NewCourseRepository(db),
		Notification: NewNotificationRepository(db),
	}
}

// requireAffected maps an UPDATE/DELETE that touched no row to ErrNotFound.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern using ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
