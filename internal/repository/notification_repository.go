package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"productivity-hub/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	GetByID(ctx context.Context, id, recipientID uuid.UUID) (*domain.Notification, error)
	ListRecent(ctx context.Context, query domain.NotificationQuery) ([]domain.Notification, error)
	Count(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) (int64, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id, recipientID uuid.UUID) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id, recipientID uuid.UUID) error
	DeleteAll(ctx context.Context, recipientID uuid.UUID) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, recipient_id, sender_id, type, title, message, link, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING is_read, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		notif.ID, notif.RecipientID, notif.SenderID, notif.Type, notif.Title, notif.Message, notif.Link, notif.Metadata,
	).Scan(&notif.IsRead, &notif.CreatedAt, &notif.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id, recipientID uuid.UUID) (*domain.Notification, error) {
	var notif domain.Notification
	query := `SELECT * FROM notifications WHERE notification_id = $1 AND recipient_id = $2`

	err := r.db.GetContext(ctx, &notif, query, id, recipientID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

func (r *notificationRepository) ListRecent(ctx context.Context, q domain.NotificationQuery) ([]domain.Notification, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = domain.DefaultPageSize
	}
	skip := q.Skip
	if skip < 0 {
		skip = 0
	}

	notifications := []domain.Notification{}
	query := `
		SELECT * FROM notifications
		WHERE recipient_id = $1 AND ($2 = false OR is_read = false)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	if err := r.db.SelectContext(ctx, &notifications, query, q.RecipientID, q.UnreadOnly, limit, skip); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) Count(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND ($2 = false OR is_read = false)`
	err := r.db.GetContext(ctx, &count, query, recipientID, unreadOnly)
	return count, err
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	return r.Count(ctx, recipientID, true)
}

// MarkRead is idempotent; a notification that is already read keeps its updated_at.
func (r *notificationRepository) MarkRead(ctx context.Context, id, recipientID uuid.UUID) error {
	query := `
		UPDATE notifications
		SET is_read = true, updated_at = CASE WHEN is_read THEN updated_at ELSE NOW() END
		WHERE notification_id = $1 AND recipient_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, recipientID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	query := `UPDATE notifications SET is_read = true, updated_at = NOW() WHERE recipient_id = $1 AND is_read = false`
	res, err := r.db.ExecContext(ctx, query, recipientID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *notificationRepository) Delete(ctx context.Context, id, recipientID uuid.UUID) error {
	query := `DELETE FROM notifications WHERE notification_id = $1 AND recipient_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, recipientID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *notificationRepository) DeleteAll(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	query := `DELETE FROM notifications WHERE recipient_id = $1`
	res, err := r.db.ExecContext(ctx, query, recipientID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
