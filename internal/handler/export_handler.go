package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"productivity-hub/internal/middleware"
	"productivity-hub/internal/service/export"
)

type ExportHandler struct {
	exportService export.Service
}

func NewExportHandler(exportService export.Service) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

func (h *ExportHandler) ExportAccount(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	result, err := h.exportService.ExportAccount(c.Context(), userID)
	if errors.Is(err, export.ErrExportUnavailable) {
		return middleware.NewError(fiber.StatusServiceUnavailable, "Export is not available")
	}
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}
