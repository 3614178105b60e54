package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"productivity-hub/internal/domain"
	"productivity-hub/internal/repository"
)

type Service interface {
	Create(ctx context.Context, notif *domain.Notification) error
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error)
	CheckIncomplete(ctx context.Context, userID uuid.UUID, forceSend bool) ([]domain.Notification, error)
}

// Sweeper runs the incomplete task and course check for one user.
type Sweeper interface {
	CheckAndNotify(ctx context.Context, userID uuid.UUID, forceSend bool) ([]domain.Notification, error)
}

type service struct {
	notifRepo repository.NotificationRepository
	sweeper   Sweeper
}

func NewService(notifRepo repository.NotificationRepository, sweeper Sweeper) Service {
	return &service{
		notifRepo: notifRepo,
		sweeper:   sweeper,
	}
}

// Create is the generic sink used by flows other than the reminder sweep.
func (s *service) Create(ctx context.Context, notif *domain.Notification) error {
	if !notif.Type.IsValid() {
		return fmt.Errorf("%w: unknown notification type %q", domain.ErrInvalidInput, notif.Type)
	}
	if notif.RecipientID == uuid.Nil {
		return fmt.Errorf("%w: notification recipient is required", domain.ErrInvalidInput)
	}
	if notif.ID == uuid.Nil {
		notif.ID = uuid.New()
	}
	return s.notifRepo.Create(ctx, notif)
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	params.Validate()

	total, err := s.notifRepo.Count(ctx, userID, unreadOnly)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	notifications, err := s.notifRepo.ListRecent(ctx, domain.NotificationQuery{
		RecipientID: userID,
		Limit:       params.PageSize,
		Skip:        params.Offset(),
		UnreadOnly:  unreadOnly,
	})
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *service) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.notifRepo.MarkRead(ctx, id, userID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.MarkAllRead(ctx, userID)
}

func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return s.notifRepo.Delete(ctx, id, userID)
}

func (s *service) DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.DeleteAll(ctx, userID)
}

func (s *service) CheckIncomplete(ctx context.Context, userID uuid.UUID, forceSend bool) ([]domain.Notification, error) {
	return s.sweeper.CheckAndNotify(ctx, userID, forceSend)
}
