package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"productivity-hub/internal/domain"
	"productivity-hub/internal/middleware"
	"productivity-hub/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Note         *NoteHandler
	Task         *TaskHandler
	Course       *CourseHandler
	Notification *NotificationHandler
	Export       *ExportHandler
}

func NewHandlers(services *service.Services, log *zap.Logger) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User, services.Skill),
		Note:         NewNoteHandler(services.Note),
		Task:         NewTaskHandler(services.Task),
		Course:       NewCourseHandler(services.Course),
		Notification: NewNotificationHandler(services.Notification, log.Named("notification")),
		Export:       NewExportHandler(services.Export),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", domain.DefaultPageSize); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}

func parseIDParam(c *fiber.Ctx, name, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Invalid " + label + " ID")
	}
	return id, nil
}
