package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"productivity-hub/internal/domain"
)

var (
	ErrStoreRead  = errors.New("reminder: store read failed")
	ErrStoreWrite = errors.New("reminder: store write failed")
)

type TaskLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Task, error)
}

type CourseLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Course, error)
}

// NotificationStore is the slice of the notification repository the checker needs.
type NotificationStore interface {
	HistoryReader
	Create(ctx context.Context, notif *domain.Notification) error
}

const (
	defaultLockWait  = 30 * time.Second
	defaultLockRetry = 50 * time.Millisecond
	maxLockRetry     = time.Second
	maxReruns        = 3
)

type Checker struct {
	tasks   TaskLister
	courses CourseLister
	notifs  NotificationStore
	policy  *Policy
	locker  Locker
	log     *zap.Logger

	lockWait  time.Duration
	lockRetry time.Duration

	Now   func() time.Time
	NewID func() uuid.UUID
}

type Option func(*Checker)

func WithPolicy(window time.Duration, horizon int) Option {
	return func(c *Checker) {
		c.policy = NewPolicy(c.notifs, window, horizon)
	}
}

func WithLocker(l Locker) Option {
	return func(c *Checker) {
		c.locker = l
	}
}

// WithLockWait bounds how long CheckAndNotify waits for another sweep of the
// same user to finish.
func WithLockWait(d time.Duration) Option {
	return func(c *Checker) {
		if d > 0 {
			c.lockWait = d
		}
	}
}

func NewChecker(tasks TaskLister, courses CourseLister, notifs NotificationStore, log *zap.Logger, opts ...Option) *Checker {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Checker{
		tasks:   tasks,
		courses: courses,
		notifs:  notifs,
		log:     log,

		lockWait:  defaultLockWait,
		lockRetry: defaultLockRetry,

		Now:   time.Now,
		NewID: uuid.New,
	}
	c.policy = NewPolicy(notifs, DefaultWindow, DefaultHorizon)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type candidate struct {
	id         uuid.UUID
	title      string
	incomplete int
}

// CheckAndNotify sweeps the user's tasks and then courses and creates one
// reminder per item that still has unfinished sub-items, unless a recent
// reminder for the same item exists and forceSend is false.
//
// On a store failure the sweep stops and the error is returned together with
// the notifications already written; those are not rolled back.
//
// With a locker configured, a sweep already running for the user is waited
// for. ErrSweepInProgress is returned only when the wait runs out.
func (c *Checker) CheckAndNotify(ctx context.Context, userID uuid.UUID, forceSend bool) ([]domain.Notification, error) {
	if c.locker == nil {
		return c.checkAndNotify(ctx, userID, forceSend)
	}

	lease, err := c.waitForLock(ctx, userID)
	if err != nil {
		return nil, err
	}
	return c.runLocked(ctx, lease, userID, forceSend)
}

func (c *Checker) waitForLock(ctx context.Context, userID uuid.UUID) (Lease, error) {
	waitCtx, cancel := context.WithTimeout(ctx, c.lockWait)
	defer cancel()

	delay := c.lockRetry
	for {
		lease, err := c.locker.TryAcquire(waitCtx, userID, false)
		if !errors.Is(err, ErrSweepInProgress) {
			return lease, err
		}

		timer := time.NewTimer(delay)
		select {
		case <-waitCtx.Done():
			timer.Stop()
			return nil, fmt.Errorf("%w: %w", ErrSweepInProgress, waitCtx.Err())
		case <-timer.C:
		}
		delay = min(delay*2, maxLockRetry)
	}
}

// runLocked sweeps while holding lease and sweeps again, unforced, for every
// caller that deferred to it in the meantime.
func (c *Checker) runLocked(ctx context.Context, lease Lease, userID uuid.UUID, forceSend bool) ([]domain.Notification, error) {
	releaseCtx := context.WithoutCancel(ctx)
	all := []domain.Notification{}

	for pass := 0; ; pass++ {
		created, err := c.checkAndNotify(ctx, userID, forceSend && pass == 0)
		all = append(all, created...)

		if err != nil || pass == maxReruns {
			if uerr := lease.Unlock(releaseCtx); uerr != nil {
				c.log.Warn("failed to unlock reminder sweep", zap.Stringer("user_id", userID), zap.Error(uerr))
			}
			return all, err
		}

		rerun, rerr := lease.Release(releaseCtx)
		if rerr != nil {
			c.log.Warn("failed to release reminder sweep lock", zap.Stringer("user_id", userID), zap.Error(rerr))
			return all, nil
		}
		if !rerun {
			return all, nil
		}
		c.log.Debug("reminder sweep rerun requested", zap.Stringer("user_id", userID), zap.Int("pass", pass+1))
	}
}

func (c *Checker) checkAndNotify(ctx context.Context, userID uuid.UUID, forceSend bool) ([]domain.Notification, error) {
	now := c.Now()
	created := []domain.Notification{}

	tasks, err := c.tasks.ListByUser(ctx, userID)
	if err != nil {
		return created, fmt.Errorf("%w: list tasks: %w", ErrStoreRead, err)
	}
	candidates := make([]candidate, 0, len(tasks))
	for _, t := range tasks {
		candidates = append(candidates, candidate{id: t.ID, title: t.Title, incomplete: len(IncompleteSubItems(t.Goals))})
	}
	if created, err = c.sweep(ctx, userID, TaskKind, candidates, forceSend, now, created); err != nil {
		return created, err
	}

	courses, err := c.courses.ListByUser(ctx, userID)
	if err != nil {
		return created, fmt.Errorf("%w: list courses: %w", ErrStoreRead, err)
	}
	candidates = candidates[:0]
	for _, co := range courses {
		candidates = append(candidates, candidate{id: co.ID, title: co.Title, incomplete: len(IncompleteSubItems(co.Lessons))})
	}
	return c.sweep(ctx, userID, CourseKind, candidates, forceSend, now, created)
}

func (c *Checker) sweep(ctx context.Context, userID uuid.UUID, kind Kind, items []candidate, forceSend bool, now time.Time, created []domain.Notification) ([]domain.Notification, error) {
	for _, item := range items {
		if item.incomplete == 0 {
			continue
		}

		if !forceSend {
			suppress, err := c.policy.ShouldSuppress(ctx, userID, kind, item.id, now)
			if err != nil {
				return created, fmt.Errorf("%w: recent notifications: %w", ErrStoreRead, err)
			}
			if suppress {
				continue
			}
		}

		notif := Compose(kind, userID, item.id, item.title, item.incomplete)
		notif.ID = c.NewID()
		if err := c.notifs.Create(ctx, notif); err != nil {
			return created, fmt.Errorf("%w: create %s: %w", ErrStoreWrite, kind.Type, err)
		}
		created = append(created, *notif)
	}
	return created, nil
}

// NotifyQuietly runs a non-forced sweep and only logs the outcome. It is the
// entry point for fire-and-forget callers. When a sweep for the user is
// already running it does not wait; the running sweep goes again instead.
func (c *Checker) NotifyQuietly(ctx context.Context, userID uuid.UUID) {
	var (
		created []domain.Notification
		err     error
	)
	if c.locker == nil {
		created, err = c.checkAndNotify(ctx, userID, false)
	} else {
		var lease Lease
		lease, err = c.locker.TryAcquire(ctx, userID, true)
		if err == nil {
			created, err = c.runLocked(ctx, lease, userID, false)
		}
	}

	switch {
	case errors.Is(err, ErrSweepInProgress):
		c.log.Debug("reminder sweep handed to the running sweep", zap.Stringer("user_id", userID))
	case err != nil:
		c.log.Error("reminder sweep failed",
			zap.Stringer("user_id", userID),
			zap.Int("created_before_failure", len(created)),
			zap.Error(err))
	case len(created) > 0:
		c.log.Info("reminder notifications created", zap.Stringer("user_id", userID), zap.Int("count", len(created)))
	}
}
