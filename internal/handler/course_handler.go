package handler

import (
	"github.com/gofiber/fiber/v2"

	"productivity-hub/internal/domain"
	"productivity-hub/internal/middleware"
	"productivity-hub/internal/service/course"
)

type CourseHandler struct {
	courseService course.Service
}

func NewCourseHandler(courseService course.Service) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

func (h *CourseHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.CreateCourseInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.courseService.Create(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *CourseHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "courseId", "course")
	if err != nil {
		return err
	}

	found, err := h.courseService.GetByID(c.Context(), id, userID)
	if err != nil {
		return err
	}

	return c.JSON(found)
}

func (h *CourseHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "courseId", "course")
	if err != nil {
		return err
	}

	var input domain.UpdateCourseInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.courseService.Update(c.Context(), id, userID, input)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

func (h *CourseHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "courseId", "course")
	if err != nil {
		return err
	}

	if err := h.courseService.Delete(c.Context(), id, userID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CourseHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	items, err := h.courseService.List(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": items})
}
