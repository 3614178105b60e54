package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	CheckSubject    = "reminder.check"
	checkQueueGroup = "reminder-checkers"
	defaultTimeout  = 30 * time.Second
)

// Trigger is told when a user's task or course changed. Implementations must
// not block the caller and must not report errors back to it.
type Trigger interface {
	ItemChanged(userID uuid.UUID)
}

// AsyncTrigger runs the sweep in a goroutine of the current process.
type AsyncTrigger struct {
	checker *Checker
	timeout time.Duration
}

func NewAsyncTrigger(checker *Checker, timeout time.Duration) *AsyncTrigger {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &AsyncTrigger{checker: checker, timeout: timeout}
}

func (t *AsyncTrigger) ItemChanged(userID uuid.UUID) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()
		t.checker.NotifyQuietly(ctx, userID)
	}()
}

// CheckRequest is the payload published on CheckSubject.
type CheckRequest struct {
	UserID      uuid.UUID `json:"user_id"`
	RequestedAt time.Time `json:"requested_at"`
}

type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATSTrigger hands sweeps to whichever instance consumes CheckSubject.
type NATSTrigger struct {
	pub Publisher
	log *zap.Logger
	now func() time.Time
}

func NewNATSTrigger(pub Publisher, log *zap.Logger) *NATSTrigger {
	return &NATSTrigger{pub: pub, log: log, now: time.Now}
}

func (t *NATSTrigger) ItemChanged(userID uuid.UUID) {
	payload, _ := json.Marshal(CheckRequest{UserID: userID, RequestedAt: t.now().UTC()})
	if err := t.pub.Publish(CheckSubject, payload); err != nil {
		t.log.Warn("failed to publish reminder check", zap.Stringer("user_id", userID), zap.Error(err))
	}
}

// HandleCheckRequest decodes a CheckRequest and runs a quiet sweep for it.
func (c *Checker) HandleCheckRequest(ctx context.Context, payload []byte) error {
	var req CheckRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("decode check request: %w", err)
	}
	if req.UserID == uuid.Nil {
		return fmt.Errorf("check request without user id")
	}
	c.NotifyQuietly(ctx, req.UserID)
	return nil
}

// Subscribe consumes CheckSubject in a queue group so each request is swept
// by exactly one instance.
func Subscribe(nc *nats.Conn, checker *Checker, timeout time.Duration) (*nats.Subscription, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return nc.QueueSubscribe(CheckSubject, checkQueueGroup, func(msg *nats.Msg) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := checker.HandleCheckRequest(ctx, msg.Data); err != nil {
			checker.log.Warn("dropping reminder check request", zap.String("subject", msg.Subject), zap.Error(err))
		}
	})
}
