package handler

import (
	"github.com/gofiber/fiber/v2"

	"productivity-hub/internal/domain"
	"productivity-hub/internal/middleware"
	"productivity-hub/internal/service/note"
)

type NoteHandler struct {
	noteService note.Service
}

func NewNoteHandler(noteService note.Service) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

func (h *NoteHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.CreateNoteInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.noteService.Create(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *NoteHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	noteID, err := parseIDParam(c, "noteId", "note")
	if err != nil {
		return err
	}

	found, err := h.noteService.GetByID(c.Context(), noteID, userID)
	if err != nil {
		return err
	}

	return c.JSON(found)
}

func (h *NoteHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	noteID, err := parseIDParam(c, "noteId", "note")
	if err != nil {
		return err
	}

	var input domain.UpdateNoteInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.noteService.Update(c.Context(), noteID, userID, input)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

func (h *NoteHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	noteID, err := parseIDParam(c, "noteId", "note")
	if err != nil {
		return err
	}

	if err := h.noteService.Delete(c.Context(), noteID, userID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *NoteHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	result, err := h.noteService.List(c.Context(), userID, c.Query("tag"), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.JSON(result)
}
