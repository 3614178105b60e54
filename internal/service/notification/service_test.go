package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"productivity-hub/internal/domain"
	"productivity-hub/internal/mocks"
)

type sweeperFunc func(ctx context.Context, userID uuid.UUID, forceSend bool) ([]domain.Notification, error)

func (f sweeperFunc) CheckAndNotify(ctx context.Context, userID uuid.UUID, forceSend bool) ([]domain.Notification, error) {
	return f(ctx, userID, forceSend)
}

func TestNotificationService_List(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	svc := NewService(repo, nil)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Translates page into limit and skip", func(t *testing.T) {
		items := []domain.Notification{{ID: uuid.New(), RecipientID: userID}}
		repo.On("Count", ctx, userID, true).Return(int64(41), nil).Once()
		repo.On("ListRecent", ctx, domain.NotificationQuery{RecipientID: userID, Limit: 20, Skip: 40, UnreadOnly: true}).
			Return(items, nil).Once()

		res, err := svc.List(ctx, userID, true, domain.PaginationParams{Page: 3, PageSize: 20})

		require.NoError(t, err)
		assert.Equal(t, items, res.Data)
		assert.Equal(t, 3, res.TotalPages)
		assert.False(t, res.HasNext)
		assert.True(t, res.HasPrev)
		repo.AssertExpectations(t)
	})

	t.Run("Count error", func(t *testing.T) {
		repo.On("Count", ctx, userID, false).Return(int64(0), errors.New("db down")).Once()

		_, err := svc.List(ctx, userID, false, domain.DefaultPagination())

		assert.Error(t, err)
	})
}

func TestNotificationService_Create(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	svc := NewService(repo, nil)
	ctx := context.Background()

	t.Run("Assigns an id", func(t *testing.T) {
		notif := &domain.Notification{RecipientID: uuid.New(), Type: domain.NotifSystem, Title: "Welcome"}
		repo.On("Create", ctx, notif).Return(nil).Once()

		require.NoError(t, svc.Create(ctx, notif))
		assert.NotEqual(t, uuid.Nil, notif.ID)
	})

	t.Run("Rejects unknown type", func(t *testing.T) {
		err := svc.Create(ctx, &domain.Notification{RecipientID: uuid.New(), Type: "party"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Rejects missing recipient", func(t *testing.T) {
		err := svc.Create(ctx, &domain.Notification{Type: domain.NotifMessage})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		repo.AssertNotCalled(t, "Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool { return n.Type == domain.NotifMessage }))
	})
}

func TestNotificationService_OwnerScopedMutations(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	svc := NewService(repo, nil)
	ctx := context.Background()
	userID := uuid.New()
	id := uuid.New()

	repo.On("MarkRead", ctx, id, userID).Return(domain.ErrNotFound).Once()
	repo.On("Delete", ctx, id, userID).Return(nil).Once()
	repo.On("DeleteAll", ctx, userID).Return(int64(4), nil).Once()
	repo.On("MarkAllRead", ctx, userID).Return(int64(2), nil).Once()

	assert.ErrorIs(t, svc.MarkAsRead(ctx, id, userID), domain.ErrNotFound)
	assert.NoError(t, svc.Delete(ctx, id, userID))

	n, err := svc.DeleteAll(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	n, err = svc.MarkAllAsRead(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	repo.AssertExpectations(t)
}

func TestNotificationService_CheckIncomplete(t *testing.T) {
	userID := uuid.New()
	var gotForce bool
	svc := NewService(new(mocks.NotificationRepository), sweeperFunc(func(_ context.Context, id uuid.UUID, force bool) ([]domain.Notification, error) {
		gotForce = force
		return []domain.Notification{{RecipientID: id}}, nil
	}))

	created, err := svc.CheckIncomplete(context.Background(), userID, true)

	require.NoError(t, err)
	assert.True(t, gotForce)
	assert.Equal(t, userID, created[0].RecipientID)
}
