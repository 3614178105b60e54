package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"productivity-hub/internal/domain"
	"productivity-hub/internal/middleware"
	"productivity-hub/internal/service/reminder"
)

// newTestApp mounts routes behind a stub that authenticates as userID.
func newTestApp(userID uuid.UUID, mount func(r fiber.Router)) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.NewErrorHandler(zap.NewNop())})
	r := app.Group("", func(c *fiber.Ctx) error {
		c.Locals(middleware.UserIDContextKey, userID)
		return c.Next()
	})
	mount(r)
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var decoded map[string]interface{}
	_ = json.Unmarshal(raw, &decoded)
	return resp, decoded
}

func mountNotifications(h *NotificationHandler) func(r fiber.Router) {
	return func(r fiber.Router) {
		r.Get("/notifications", h.List)
		r.Get("/notifications/unread-count", h.GetUnreadCount)
		r.Post("/notifications/check", h.CheckIncomplete)
		r.Post("/notifications/test", h.SendTest)
		r.Patch("/notifications/:id/read", h.MarkAsRead)
		r.Delete("/notifications/:id", h.Delete)
		r.Delete("/notifications", h.DeleteAll)
	}
}

func TestNotificationHandler_CheckIncomplete(t *testing.T) {
	userID := uuid.New()

	t.Run("Force flag and created list", func(t *testing.T) {
		svc := new(mockNotificationService)
		app := newTestApp(userID, mountNotifications(NewNotificationHandler(svc, zap.NewNop())))
		svc.On("CheckIncomplete", mock.Anything, userID, true).
			Return([]domain.Notification{{Type: domain.NotifIncompleteTask, Title: "Incomplete Task"}}, nil).Once()

		resp, body := do(t, app, fiber.MethodPost, "/notifications/check?force=true", "")

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(1), body["count"])
		svc.AssertExpectations(t)
	})

	t.Run("Nothing to report", func(t *testing.T) {
		svc := new(mockNotificationService)
		app := newTestApp(userID, mountNotifications(NewNotificationHandler(svc, zap.NewNop())))
		svc.On("CheckIncomplete", mock.Anything, userID, false).Return(nil, nil).Once()

		resp, body := do(t, app, fiber.MethodPost, "/notifications/check", "")

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, []interface{}{}, body["data"])
	})

	t.Run("Store failure is generic", func(t *testing.T) {
		svc := new(mockNotificationService)
		app := newTestApp(userID, mountNotifications(NewNotificationHandler(svc, zap.NewNop())))
		svc.On("CheckIncomplete", mock.Anything, userID, false).
			Return(nil, fmt.Errorf("%w: list tasks: %w", reminder.ErrStoreRead, errors.New("pq: timeout"))).Once()

		resp, body := do(t, app, fiber.MethodPost, "/notifications/check", "")

		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "Failed to check incomplete items", body["message"])
	})

	t.Run("Concurrent sweep", func(t *testing.T) {
		svc := new(mockNotificationService)
		app := newTestApp(userID, mountNotifications(NewNotificationHandler(svc, zap.NewNop())))
		svc.On("CheckIncomplete", mock.Anything, userID, false).Return(nil, reminder.ErrSweepInProgress).Once()

		resp, _ := do(t, app, fiber.MethodPost, "/notifications/check", "")

		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})
}

func TestNotificationHandler_Inbox(t *testing.T) {
	userID := uuid.New()
	notifID := uuid.New()

	t.Run("List unread with paging", func(t *testing.T) {
		svc := new(mockNotificationService)
		app := newTestApp(userID, mountNotifications(NewNotificationHandler(svc, zap.NewNop())))
		page := domain.NewPaginatedResponse([]domain.Notification{{ID: notifID}}, 2, 10, 11)
		svc.On("List", mock.Anything, userID, true, domain.PaginationParams{Page: 2, PageSize: 10}).Return(page, nil).Once()

		resp, body := do(t, app, fiber.MethodGet, "/notifications?unread_only=true&page=2&page_size=10", "")

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(11), body["total_items"])
	})

	t.Run("Unread count", func(t *testing.T) {
		svc := new(mockNotificationService)
		app := newTestApp(userID, mountNotifications(NewNotificationHandler(svc, zap.NewNop())))
		svc.On("GetUnreadCount", mock.Anything, userID).Return(int64(3), nil).Once()

		_, body := do(t, app, fiber.MethodGet, "/notifications/unread-count", "")

		assert.Equal(t, float64(3), body["count"])
	})

	t.Run("Mark read of someone else's notification", func(t *testing.T) {
		svc := new(mockNotificationService)
		app := newTestApp(userID, mountNotifications(NewNotificationHandler(svc, zap.NewNop())))
		svc.On("MarkAsRead", mock.Anything, notifID, userID).Return(domain.ErrNotFound).Once()

		resp, _ := do(t, app, fiber.MethodPatch, "/notifications/"+notifID.String()+"/read", "")

		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("Bad id", func(t *testing.T) {
		svc := new(mockNotificationService)
		app := newTestApp(userID, mountNotifications(NewNotificationHandler(svc, zap.NewNop())))

		resp, _ := do(t, app, fiber.MethodDelete, "/notifications/not-a-uuid", "")

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Delete all", func(t *testing.T) {
		svc := new(mockNotificationService)
		app := newTestApp(userID, mountNotifications(NewNotificationHandler(svc, zap.NewNop())))
		svc.On("DeleteAll", mock.Anything, userID).Return(int64(5), nil).Once()

		_, body := do(t, app, fiber.MethodDelete, "/notifications", "")

		assert.Equal(t, float64(5), body["deleted"])
	})
}

func TestNotificationHandler_SendTest(t *testing.T) {
	userID := uuid.New()

	t.Run("Defaults to a system notice for the caller", func(t *testing.T) {
		svc := new(mockNotificationService)
		app := newTestApp(userID, mountNotifications(NewNotificationHandler(svc, zap.NewNop())))
		svc.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.RecipientID == userID && n.Type == domain.NotifSystem &&
				n.Title == "Test Notification" && n.Message == "This is a test notification"
		})).Return(nil).Once()

		resp, body := do(t, app, fiber.MethodPost, "/notifications/test", "")

		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		assert.Equal(t, "system", body["type"])
		svc.AssertExpectations(t)
	})

	t.Run("Body overrides the content but not the recipient", func(t *testing.T) {
		svc := new(mockNotificationService)
		app := newTestApp(userID, mountNotifications(NewNotificationHandler(svc, zap.NewNop())))
		svc.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.RecipientID == userID && n.Type == domain.NotifSkillMatch &&
				n.Title == "Match" && n.Link != nil && *n.Link == "/users/42"
		})).Return(nil).Once()

		body := `{"type":"skill_match","title":"Match","link":"/users/42","recipient_id":"` + uuid.NewString() + `"}`
		resp, _ := do(t, app, fiber.MethodPost, "/notifications/test", body)

		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("Unknown type", func(t *testing.T) {
		svc := new(mockNotificationService)
		app := newTestApp(userID, mountNotifications(NewNotificationHandler(svc, zap.NewNop())))
		svc.On("Create", mock.Anything, mock.Anything).
			Return(fmt.Errorf("%w: unknown notification type \"nope\"", domain.ErrInvalidInput)).Once()

		resp, _ := do(t, app, fiber.MethodPost, "/notifications/test", `{"type":"nope"}`)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestTaskHandler(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	mount := func(h *TaskHandler) func(r fiber.Router) {
		return func(r fiber.Router) {
			r.Post("/tasks", h.Create)
			r.Get("/tasks", h.List)
			r.Put("/tasks/:taskId", h.Update)
		}
	}

	t.Run("Create", func(t *testing.T) {
		svc := new(mockTaskService)
		app := newTestApp(userID, mount(NewTaskHandler(svc)))
		svc.On("Create", mock.Anything, userID, domain.CreateTaskInput{
			Title: "Ship",
			Goals: []domain.Goal{{Title: "tag"}},
		}).Return(&domain.Task{ID: taskID, UserID: userID, Title: "Ship"}, nil).Once()

		resp, body := do(t, app, fiber.MethodPost, "/tasks", `{"title":"Ship","goals":[{"title":"tag"}]}`)

		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		assert.Equal(t, taskID.String(), body["id"])
	})

	t.Run("Create invalid", func(t *testing.T) {
		svc := new(mockTaskService)
		app := newTestApp(userID, mount(NewTaskHandler(svc)))
		svc.On("Create", mock.Anything, userID, mock.Anything).
			Return(nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)).Once()

		resp, _ := do(t, app, fiber.MethodPost, "/tasks", `{"title":""}`)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Update forbidden", func(t *testing.T) {
		svc := new(mockTaskService)
		app := newTestApp(userID, mount(NewTaskHandler(svc)))
		svc.On("Update", mock.Anything, taskID, userID, mock.Anything).Return(nil, domain.ErrForbidden).Once()

		resp, _ := do(t, app, fiber.MethodPut, "/tasks/"+taskID.String(), `{"title":"x"}`)

		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("List", func(t *testing.T) {
		svc := new(mockTaskService)
		app := newTestApp(userID, mount(NewTaskHandler(svc)))
		svc.On("List", mock.Anything, userID).Return([]domain.Task{{ID: taskID}}, nil).Once()

		resp, body := do(t, app, fiber.MethodGet, "/tasks", "")

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Len(t, body["data"], 1)
	})
}
