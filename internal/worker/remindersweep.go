package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"productivity-hub/internal/domain"
	"productivity-hub/internal/service/reminder"
)

const sweepBatchSize = 100

type ActiveUserLister interface {
	ListActive(ctx context.Context, after uuid.UUID, limit int) ([]domain.User, error)
}

type Sweeper interface {
	CheckAndNotify(ctx context.Context, userID uuid.UUID, forceSend bool) ([]domain.Notification, error)
}

type DigestSender interface {
	SendReminderDigest(ctx context.Context, toEmail, fullName string, reminders []domain.Notification) error
}

// SweepStats summarizes one pass over all active users.
type SweepStats struct {
	Users     int
	Created   int
	Failed    int
	Skipped   int
	Digests   int
	Truncated bool
}

// ReminderSweep periodically runs the incomplete item check for every active
// user and mails a digest of whatever it created. It never forces delivery,
// so the usual duplicate suppression applies.
type ReminderSweep struct {
	users    ActiveUserLister
	sweeper  Sweeper
	digests  DigestSender
	log      *zap.Logger
	interval time.Duration
	timeout  time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func NewReminderSweep(users ActiveUserLister, sweeper Sweeper, digests DigestSender, logger *zap.Logger, interval time.Duration) *ReminderSweep {
	return &ReminderSweep{
		users:    users,
		sweeper:  sweeper,
		digests:  digests,
		log:      logger,
		interval: interval,
		timeout:  10 * time.Minute,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the sweep loop. A zero interval leaves the worker idle.
func (w *ReminderSweep) Start() {
	if w.interval <= 0 {
		w.log.Info("reminder sweep worker disabled")
		return
	}
	w.wg.Add(1)
	go w.run()
	w.log.Info("reminder sweep worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for the current pass to finish.
func (w *ReminderSweep) Stop() {
	if w.interval <= 0 {
		return
	}
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("reminder sweep worker stopped")
}

func (w *ReminderSweep) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
			stats := w.RunOnce(ctx)
			cancel()
			w.log.Info("reminder sweep finished",
				zap.Int("users", stats.Users),
				zap.Int("created", stats.Created),
				zap.Int("failed", stats.Failed),
				zap.Int("skipped", stats.Skipped),
				zap.Int("digests", stats.Digests),
				zap.Bool("truncated", stats.Truncated))
		}
	}
}

// RunOnce sweeps every active user in id order. One user's failure is logged
// and does not stop the pass.
func (w *ReminderSweep) RunOnce(ctx context.Context) SweepStats {
	var stats SweepStats
	after := uuid.Nil

	for {
		users, err := w.users.ListActive(ctx, after, sweepBatchSize)
		if err != nil {
			w.log.Error("failed to list active users", zap.Error(err))
			stats.Truncated = true
			return stats
		}

		for i := range users {
			if ctx.Err() != nil {
				stats.Truncated = true
				return stats
			}
			w.sweepUser(ctx, &users[i], &stats)
		}

		if len(users) < sweepBatchSize {
			return stats
		}
		after = users[len(users)-1].ID
	}
}

func (w *ReminderSweep) sweepUser(ctx context.Context, user *domain.User, stats *SweepStats) {
	stats.Users++

	created, err := w.sweeper.CheckAndNotify(ctx, user.ID, false)
	stats.Created += len(created)
	switch {
	case errors.Is(err, reminder.ErrSweepInProgress):
		stats.Skipped++
		w.log.Debug("reminder sweep already running", zap.Stringer("user_id", user.ID))
	case err != nil:
		stats.Failed++
		w.log.Error("reminder sweep failed",
			zap.Stringer("user_id", user.ID),
			zap.Int("created", len(created)),
			zap.Error(err))
	}

	if len(created) == 0 || w.digests == nil {
		return
	}
	if err := w.digests.SendReminderDigest(ctx, user.Email, user.FullName, created); err != nil {
		w.log.Warn("failed to send reminder digest", zap.Stringer("user_id", user.ID), zap.Error(err))
		return
	}
	stats.Digests++
}
