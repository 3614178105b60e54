package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"productivity-hub/internal/domain"
	"productivity-hub/internal/middleware"
	"productivity-hub/internal/service/notification"
	"productivity-hub/internal/service/reminder"
)

type NotificationHandler struct {
	notifService notification.Service
	log          *zap.Logger
}

func NewNotificationHandler(notifService notification.Service, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{notifService: notifService, log: log}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	unreadOnly := c.QueryBool("unread_only", false)

	result, err := h.notifService.List(c.Context(), userID, unreadOnly, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	count, err := h.notifService.GetUnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": count,
	})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	notifID, err := parseIDParam(c, "id", "notification")
	if err != nil {
		return err
	}

	if err := h.notifService.MarkAsRead(c.Context(), notifID, userID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	updated, err := h.notifService.MarkAllAsRead(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"updated": updated,
	})
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	notifID, err := parseIDParam(c, "id", "notification")
	if err != nil {
		return err
	}

	if err := h.notifService.Delete(c.Context(), notifID, userID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *NotificationHandler) DeleteAll(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	deleted, err := h.notifService.DeleteAll(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"deleted": deleted,
	})
}

// SendTest delivers a notification to the caller's own inbox. Only routed
// outside production.
func (h *NotificationHandler) SendTest(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.SendTestNotificationInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return middleware.BadRequest("Invalid request body")
		}
	}

	notif := &domain.Notification{
		RecipientID: userID,
		Type:        domain.NotifSystem,
		Title:       "Test Notification",
		Message:     "This is a test notification",
		Link:        input.Link,
		Metadata:    input.Metadata,
	}
	if input.Type != "" {
		notif.Type = input.Type
	}
	if input.Title != "" {
		notif.Title = input.Title
	}
	if input.Message != "" {
		notif.Message = input.Message
	}

	if err := h.notifService.Create(c.Context(), notif); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(notif)
}

// CheckIncomplete runs the incomplete task and course sweep for the caller.
// Store failures are reported as a generic error; details go to the log.
func (h *NotificationHandler) CheckIncomplete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	force := c.QueryBool("force", false)

	created, err := h.notifService.CheckIncomplete(c.Context(), userID, force)
	if errors.Is(err, reminder.ErrSweepInProgress) {
		return middleware.Conflict("A check is already running")
	}
	if err != nil {
		h.log.Error("incomplete item check failed",
			zap.Stringer("user_id", userID),
			zap.Int("created", len(created)),
			zap.Error(err))
		return middleware.NewError(fiber.StatusInternalServerError, "Failed to check incomplete items")
	}

	if created == nil {
		created = []domain.Notification{}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":  created,
		"count": len(created),
	})
}
