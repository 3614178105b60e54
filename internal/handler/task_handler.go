package handler

import (
	"github.com/gofiber/fiber/v2"

	"productivity-hub/internal/domain"
	"productivity-hub/internal/middleware"
	"productivity-hub/internal/service/task"
)

type TaskHandler struct {
	taskService task.Service
}

func NewTaskHandler(taskService task.Service) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.CreateTaskInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.taskService.Create(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *TaskHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "taskId", "task")
	if err != nil {
		return err
	}

	found, err := h.taskService.GetByID(c.Context(), id, userID)
	if err != nil {
		return err
	}

	return c.JSON(found)
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "taskId", "task")
	if err != nil {
		return err
	}

	var input domain.UpdateTaskInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.taskService.Update(c.Context(), id, userID, input)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "taskId", "task")
	if err != nil {
		return err
	}

	if err := h.taskService.Delete(c.Context(), id, userID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	items, err := h.taskService.List(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": items})
}
